package wiki40b_bpe

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// atomicFile is an output file written to a temporary name in the
// destination directory and renamed over the destination on Commit. Until
// then the destination is left untouched.
type atomicFile struct {
	*os.File
	dest   string
	closed bool
	done   bool
}

// createAtomic creates the destination directory if needed and opens the
// temporary file.
func createAtomic(dest string) (*atomicFile, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return nil, errors.Wrapf(err, "creating temporary file in %s", dir)
	}
	_ = os.Chmod(tmp.Name(), filePerm)
	return &atomicFile{File: tmp, dest: dest}, nil
}

// Commit flushes the temporary file to disk and moves it into place.
func (af *atomicFile) Commit() error {
	if err := af.Sync(); err != nil {
		return errors.Wrapf(err, "syncing %s", af.Name())
	}
	af.closed = true
	if err := af.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", af.Name())
	}
	if err := os.Rename(af.Name(), af.dest); err != nil {
		return errors.Wrapf(err, "renaming onto %s", af.dest)
	}
	af.done = true
	return nil
}

// Abort discards the temporary file unless Commit succeeded. Safe to defer.
func (af *atomicFile) Abort() {
	if af.done {
		return
	}
	if !af.closed {
		af.closed = true
		_ = af.Close()
	}
	_ = os.Remove(af.Name())
}
