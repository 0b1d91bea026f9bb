/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fileutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteFileAtomically replaces the file at path with content. The content is
// written to a uniquely named temporary file in the same directory, synced,
// and renamed over path; the directory is synced last. After a crash path
// holds either the old or the new content.
func WriteFileAtomically(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "error while creating temporary file in %s", dir)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return errors.Wrapf(err, "error while setting mode of %s", tmpPath)
	}
	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return errors.Wrapf(err, "error while writing to %s", tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return errors.Wrapf(err, "error while synching %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "error while closing %s", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "error while renaming %s", tmpPath)
	}
	return SyncDir(dir)
}

// EnsureDir creates dirPath with mode 0700 when it is missing and reports
// whether it had to. An existing non-directory is an error.
func EnsureDir(dirPath string) (bool, error) {
	fi, err := os.Stat(dirPath)
	switch {
	case err == nil && !fi.IsDir():
		return false, errors.Errorf("the supplied path [%s] exists but is not a dir", dirPath)
	case err == nil:
		return false, nil
	case !os.IsNotExist(err):
		return false, errors.Wrapf(err, "error checking if dir [%s] exists", dirPath)
	}

	if err := os.MkdirAll(dirPath, 0o700); err != nil {
		return false, errors.Wrapf(err, "error while creating dir: %s", dirPath)
	}
	return true, SyncDir(filepath.Dir(dirPath))
}

// DirEmpty returns true if the dir at dirPath is empty
func DirEmpty(dirPath string) (bool, error) {
	f, err := os.Open(dirPath)
	if err != nil {
		return false, errors.Wrapf(err, "error opening dir [%s]", dirPath)
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	return false, errors.Wrapf(err, "error checking if dir [%s] is empty", dirPath)
}
