package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/classkit/classfile/classfiletest"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeClasses writes Main, which calls Helper.help, and Helper.
func writeClasses(t *testing.T) (mainPath, helperPath string) {
	t.Helper()
	dir := t.TempDir()

	m := classfiletest.New("app/Main", "java/lang/Object")
	help := m.Methodref("app/Helper", "help", "()V")
	m.Method(0x0009, "main", "([Ljava/lang/String;)V", m.Code(0, 1, []byte{
		0xb8, byte(help >> 8), byte(help),
		0xb1,
	}))
	mainPath = filepath.Join(dir, "Main.class")
	require.NoError(t, os.WriteFile(mainPath, m.Bytes(), 0o644))

	h := classfiletest.New("app/Helper", "java/lang/Object")
	h.Method(0x0009, "help", "()V", h.Code(0, 0, []byte{0xb1}))
	helperPath = filepath.Join(dir, "Helper.class")
	require.NoError(t, os.WriteFile(helperPath, h.Bytes(), 0o644))

	return mainPath, helperPath
}

func TestDump(t *testing.T) {
	mainPath, _ := writeClasses(t)

	out, err := run(t, "dump", mainPath)
	require.NoError(t, err)
	assert.Equal(t, "class\tapp.Main\tpublic\nmethod\tmain\tvoid\tjava.lang.String[]\tpublic\tstatic\n", out)

	out, err = run(t, "dump", "-f", "json", mainPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "app.Main"`)

	_, err = run(t, "dump", "-f", "yaml", mainPath)
	assert.ErrorContains(t, err, "unknown format")
}

func TestDumpReportsBrokenFiles(t *testing.T) {
	mainPath, _ := writeClasses(t)
	broken := filepath.Join(t.TempDir(), "Broken.class")
	require.NoError(t, os.WriteFile(broken, []byte{0xCA, 0xFE, 0xBA, 0xBE}, 0o644))

	out, err := run(t, "dump", mainPath, broken)
	assert.ErrorContains(t, err, "1 of 2 class files failed to decode")
	assert.Contains(t, out, "app.Main")
}

func TestPool(t *testing.T) {
	mainPath, helperPath := writeClasses(t)

	out, err := run(t, "pool", mainPath)
	require.NoError(t, err)
	assert.Contains(t, out, "#1 = Utf8")
	assert.Contains(t, out, "app/Helper.help:()V")
	assert.NotContains(t, out, mainPath+":")

	out, err = run(t, "pool", mainPath, helperPath)
	require.NoError(t, err)
	assert.Contains(t, out, mainPath+":\n")
	assert.Contains(t, out, helperPath+":\n")
}

func TestCode(t *testing.T) {
	mainPath, helperPath := writeClasses(t)

	out, err := run(t, "code", mainPath)
	require.NoError(t, err)
	assert.Contains(t, out, "app/Main.main([Ljava/lang/String;)V [public static]")
	assert.Contains(t, out, "invokestatic")
	assert.Contains(t, out, "// app/Helper.help:()V")
	assert.Contains(t, out, "3: return")

	out, err = run(t, "code", "-m", "nothing", mainPath, helperPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "--little-endian", "code", mainPath)
	require.NoError(t, err)
}

func TestCallgraph(t *testing.T) {
	mainPath, helperPath := writeClasses(t)
	output := filepath.Join(t.TempDir(), "graph.dot")

	_, err := run(t, "-j", "2", "callgraph", "-o", output, mainPath, helperPath)
	require.NoError(t, err)
	dot, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "help")

	out, err := run(t, "callgraph", "--no-library", "--title", "app", mainPath)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestCallgraphReportsBrokenFiles(t *testing.T) {
	mainPath, helperPath := writeClasses(t)
	broken := filepath.Join(t.TempDir(), "Broken.class")
	require.NoError(t, os.WriteFile(broken, []byte{0xCA, 0xFE, 0xBA, 0xBE}, 0o644))

	out, err := run(t, "callgraph", mainPath, helperPath, broken)
	assert.ErrorContains(t, err, "1 of 3 class files failed to decode")
	assert.Contains(t, out, "help")

	output := filepath.Join(t.TempDir(), "graph.dot")
	_, err = run(t, "callgraph", "-o", output, broken, mainPath)
	assert.ErrorContains(t, err, "1 of 2 class files failed to decode")
	dot, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "help")

	_, err = run(t, "callgraph", "-o", filepath.Join(t.TempDir(), "none.dot"), broken)
	assert.ErrorContains(t, err, "1 of 1 class files failed to decode")
}

func TestMissingArgs(t *testing.T) {
	for _, sub := range []string{"dump", "pool", "code", "callgraph"} {
		_, err := run(t, sub)
		assert.Error(t, err, sub)
	}
}
