// Package scanner collects class files from paths, directories and jar
// archives and decodes them concurrently.
package scanner

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/classkit/classfile"
)

var log = commonlog.GetLogger("classkit.scanner")

// Source is one class file waiting to be read. Members of an archive are
// named "archive.jar!path/To.class".
type Source struct {
	Name string
	read func() ([]byte, error)
}

func (s Source) Read() ([]byte, error) {
	return s.read()
}

// Result is the outcome of decoding one Source. A failed decode does not
// stop the scan; Err records it.
type Result struct {
	Name  string
	Class *classfile.ClassFile
	Err   error
}

type Scanner struct {
	jobs int
}

// New returns a scanner that decodes at most jobs files at once. A
// non-positive jobs uses one goroutine per CPU.
func New(jobs int) *Scanner {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return &Scanner{jobs: jobs}
}

func isArchive(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".jar" || ext == ".zip"
}

func isClass(name string) bool {
	return filepath.Ext(name) == ".class"
}

func fileSource(path string) Source {
	return Source{Name: path, read: func() ([]byte, error) { return os.ReadFile(path) }}
}

// Sources expands paths into class file sources. Directories are walked for
// .class files and archives; archives contribute their .class members and
// the members of jars nested one level inside them. Any other path is taken
// to be a class file.
func (s *Scanner) Sources(paths []string) ([]Source, error) {
	var sources []Source
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		switch {
		case info.IsDir():
			found, err := scanDirectory(path)
			if err != nil {
				return nil, err
			}
			sources = append(sources, found...)
		case isArchive(path):
			found, err := scanArchiveFile(path)
			if err != nil {
				return nil, err
			}
			sources = append(sources, found...)
		default:
			sources = append(sources, fileSource(path))
		}
	}
	log.Debugf("collected %d class files from %d paths", len(sources), len(paths))
	return sources, nil
}

func scanDirectory(root string) ([]Source, error) {
	var sources []Source
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case isClass(p):
			sources = append(sources, fileSource(p))
		case isArchive(p):
			found, err := scanArchiveFile(p)
			if err != nil {
				return err
			}
			sources = append(sources, found...)
		}
		return nil
	})
	return sources, err
}

func scanArchiveFile(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return scanArchive(path, data, true)
}

func scanArchive(name string, data []byte, nested bool) ([]Source, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open %s as zip: %w", name, err)
	}

	var sources []Source
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		member := name + "!" + f.Name
		switch {
		case isClass(f.Name):
			sources = append(sources, Source{Name: member, read: zipMember(f)})
		case nested && isArchive(f.Name):
			jarData, err := zipMember(f)()
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", member, err)
			}
			found, err := scanArchive(member, jarData, false)
			if err != nil {
				return nil, err
			}
			sources = append(sources, found...)
		}
	}
	return sources, nil
}

func zipMember(f *zip.File) func() ([]byte, error) {
	return func() ([]byte, error) {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
}

// Decode reads and decodes sources concurrently. Results are in source
// order. The returned error is non-nil only when ctx is cancelled.
func (s *Scanner) Decode(ctx context.Context, sources []Source) ([]Result, error) {
	results := make([]Result, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.jobs)
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = decodeSource(src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func decodeSource(src Source) Result {
	r := Result{Name: src.Name}
	data, err := src.Read()
	if err != nil {
		r.Err = fmt.Errorf("read %s: %w", src.Name, err)
		return r
	}
	r.Class, err = classfile.Parse(data)
	if err != nil {
		r.Err = fmt.Errorf("parse %s: %w", src.Name, err)
		log.Debugf("%v", r.Err)
		return r
	}
	return r
}

// Scan is Sources followed by Decode.
func (s *Scanner) Scan(ctx context.Context, paths []string) ([]Result, error) {
	sources, err := s.Sources(paths)
	if err != nil {
		return nil, err
	}
	return s.Decode(ctx, sources)
}
