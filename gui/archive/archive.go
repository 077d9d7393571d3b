// Package archive reads theme packages.
package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Archive is a read-only container of theme files.
type Archive interface {
	// ExtractEntry copies the entry named src to the filesystem path dst.
	ExtractEntry(src, dst string, perm fs.FileMode) error
	ReadFile(name string) ([]byte, error)
	Has(name string) bool
}

// Zip is an Archive backed by a zip file.
type Zip struct {
	rc    *zip.ReadCloser
	files map[string]*zip.File
}

// OpenZip opens the zip file at path.
func OpenZip(path string) (*Zip, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", path, err)
	}
	z := &Zip{rc: rc, files: make(map[string]*zip.File, len(rc.File))}
	for _, f := range rc.File {
		z.files[clean(f.Name)] = f
	}
	return z, nil
}

func (z *Zip) Close() error {
	if z == nil || z.rc == nil {
		return nil
	}
	err := z.rc.Close()
	z.rc = nil
	z.files = nil
	return err
}

func clean(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// Names lists entry names in archive order.
func (z *Zip) Names() []string {
	if z.rc == nil {
		return nil
	}
	out := make([]string, 0, len(z.rc.File))
	for _, f := range z.rc.File {
		out = append(out, clean(f.Name))
	}
	return out
}

func (z *Zip) Has(name string) bool {
	f, ok := z.files[clean(name)]
	return ok && !f.FileInfo().IsDir()
}

func (z *Zip) open(name string) (io.ReadCloser, error) {
	f, ok := z.files[clean(name)]
	if !ok || f.FileInfo().IsDir() {
		return nil, fmt.Errorf("archive: %s: %w", name, fs.ErrNotExist)
	}
	return f.Open()
}

func (z *Zip) ReadFile(name string) ([]byte, error) {
	r, err := z.open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (z *Zip) ExtractEntry(src, dst string, perm fs.FileMode) error {
	r, err := z.open(src)
	if err != nil {
		return err
	}
	defer r.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("archive: create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("archive: extract %s: %w", src, err)
	}
	return out.Close()
}

// Dir is an Archive over an unpacked theme directory.
type Dir struct {
	Root string
}

func (d Dir) path(name string) string {
	return filepath.Join(d.Root, filepath.FromSlash(clean(name)))
}

func (d Dir) Has(name string) bool {
	st, err := os.Stat(d.path(name))
	return err == nil && !st.IsDir()
}

func (d Dir) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(d.path(name))
}

func (d Dir) ExtractEntry(src, dst string, perm fs.FileMode) error {
	data, err := os.ReadFile(d.path(src))
	if err != nil {
		return fmt.Errorf("archive: %s: %w", src, err)
	}
	return os.WriteFile(dst, data, perm)
}

// Open picks Zip or Dir by what path points at.
func Open(p string) (Archive, func() error, error) {
	st, err := os.Stat(p)
	if err != nil {
		return nil, nil, fmt.Errorf("archive: %w", err)
	}
	if st.IsDir() {
		return Dir{Root: p}, func() error { return nil }, nil
	}
	z, err := OpenZip(p)
	if err != nil {
		return nil, nil, err
	}
	return z, z.Close, nil
}

// IsNotExist reports whether err means the entry is absent.
func IsNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }
