/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fileutil

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
)

// SyncDir fsyncs dirPath so that entries renamed into it survive a crash.
// Directories cannot be synced on windows, where this is a no-op.
func SyncDir(dirPath string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	dir, err := os.Open(dirPath)
	if err != nil {
		return errors.Wrapf(err, "error while opening dir:%s", dirPath)
	}
	if err := dir.Sync(); err != nil {
		dir.Close()
		return errors.Wrapf(err, "error while synching dir:%s", dirPath)
	}
	if err := dir.Close(); err != nil {
		return errors.Wrapf(err, "error while closing dir:%s", dirPath)
	}
	return nil
}
