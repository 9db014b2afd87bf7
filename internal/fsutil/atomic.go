// Package fsutil holds file helpers shared by the output writers.
package fsutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteFile writes the output of fn to path via a temporary sibling that is
// renamed into place once fn and the close succeed. On failure the
// temporary file is removed and path is left as it was.
func WriteFile(path string, fn func(w io.Writer) error) error {
	var s Stage
	if err := s.WriteFile(path, fn); err != nil {
		return err
	}
	return s.Commit()
}

// Stage collects a set of output files in temporary siblings and moves them
// into place together. Nothing is visible at the final paths until Commit.
//
// Directories holding the outputs are created while staging and are not
// removed by Abort. A rename failing part way through Commit leaves the
// files renamed before it in place.
type Stage struct {
	files []staged
}

type staged struct {
	tmp  string
	path string
}

// WriteFile writes the output of fn to a temporary sibling of path. The
// file reaches path on Commit.
func (s *Stage) WriteFile(path string, fn func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "create temporary file for %s", path)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = fn(tmp); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrapf(err, "chmod %s", path)
	}
	s.files = append(s.files, staged{tmp: tmp.Name(), path: path})
	return nil
}

// Len returns the number of staged files.
func (s *Stage) Len() int {
	return len(s.files)
}

// Commit renames every staged file into place in the order it was staged.
func (s *Stage) Commit() error {
	for i, f := range s.files {
		if err := os.Rename(f.tmp, f.path); err != nil {
			s.files = s.files[i:]
			s.Abort()
			return errors.Wrapf(err, "rename into %s", f.path)
		}
	}
	s.files = nil
	return nil
}

// Abort removes every staged file that has not been committed.
func (s *Stage) Abort() {
	for _, f := range s.files {
		os.Remove(f.tmp)
	}
	s.files = nil
}
