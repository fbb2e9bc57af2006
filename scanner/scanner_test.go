package scanner

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/classkit/classfile"
	"github.com/dhamidi/classkit/classfile/classfiletest"
)

func classBytes(name string) []byte {
	return classfiletest.New(name, "java/lang/Object").Bytes()
}

func zipBytes(t *testing.T, members map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range members {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func names(results []Result) map[string]Result {
	m := make(map[string]Result, len(results))
	for _, r := range results {
		m[r.Name] = r
	}
	return m
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "classes", "a", "A.class"), classBytes("a/A"))
	writeFile(t, filepath.Join(dir, "classes", "a", "README"), []byte("not a class"))
	writeFile(t, filepath.Join(dir, "classes", "Broken.class"), []byte{0xCA, 0xFE})

	inner := zipBytes(t, map[string][]byte{"c/C.class": classBytes("c/C")})
	writeFile(t, filepath.Join(dir, "lib.jar"), zipBytes(t, map[string][]byte{
		"b/B.class":     classBytes("b/B"),
		"META-INF/x.mf": []byte("Manifest-Version: 1.0\n"),
		"deps/in.jar":   inner,
	}))
	loose := filepath.Join(dir, "Loose")
	writeFile(t, loose, classBytes("Loose"))

	s := New(2)
	results, err := s.Scan(context.Background(), []string{
		filepath.Join(dir, "classes"),
		filepath.Join(dir, "lib.jar"),
		loose,
	})
	require.NoError(t, err)
	require.Len(t, results, 5)

	byName := names(results)
	jar := filepath.Join(dir, "lib.jar")
	for name, want := range map[string]string{
		filepath.Join(dir, "classes", "a", "A.class"): "a/A",
		jar + "!b/B.class":                            "b/B",
		jar + "!deps/in.jar!c/C.class":                "c/C",
		loose:                                         "Loose",
	} {
		r, ok := byName[name]
		if !assert.True(t, ok, "missing %s", name) {
			continue
		}
		require.NoError(t, r.Err)
		got, err := r.Class.ClassName()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	broken := byName[filepath.Join(dir, "classes", "Broken.class")]
	assert.ErrorIs(t, broken.Err, classfile.ErrTruncated)
	assert.Nil(t, broken.Class)
}

func TestDecodeKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		p := filepath.Join(dir, name+".class")
		writeFile(t, p, classBytes(name))
		paths = append(paths, p)
	}

	results, err := New(3).Scan(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.Name)
	}
}

func TestScanMissingPath(t *testing.T) {
	_, err := New(1).Scan(context.Background(), []string{filepath.Join(t.TempDir(), "nope")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScanBadArchive(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.jar")
	writeFile(t, p, []byte("not a zip"))
	_, err := New(1).Sources([]string{p})
	assert.Error(t, err)
}

func TestDecodeCancelled(t *testing.T) {
	p := filepath.Join(t.TempDir(), "A.class")
	writeFile(t, p, classBytes("A"))
	s := New(1)
	sources, err := s.Sources([]string{p})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Decode(ctx, sources)
	assert.ErrorIs(t, err, context.Canceled)
}
