// Package atomicfile writes a file under a temporary name and moves it into
// place only once it is complete, so readers never see a partial file.
package atomicfile

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrClosed is returned when a File is used after Commit or Abort.
var ErrClosed = errors.New("atomicfile: already committed or aborted")

// File is an *os.File opened under a temporary name next to its final path.
type File struct {
	*os.File
	path string
	done bool
}

// Create opens a temporary file in the same directory as path.
func Create(path string, perm os.FileMode) (*File, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return nil, err
	}
	return &File{File: f, path: path}, nil
}

// Path returns the final path of the file.
func (f *File) Path() string {
	return f.path
}

// Commit flushes and closes the temporary file, then renames it to the final
// path.
func (f *File) Commit() error {
	if f.done {
		return ErrClosed
	}
	f.done = true
	tmp := f.Name()
	if err := f.Sync(); err != nil {
		_ = f.File.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.File.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Abort closes and removes the temporary file.  Calling Abort after Commit
// is a no-op, so it is safe to defer.
func (f *File) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	tmp := f.Name()
	err := f.File.Close()
	if rmErr := os.Remove(tmp); err == nil {
		err = rmErr
	}
	return err
}
