/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tomcrypt

import (
	"io"
	"os"

	"github.com/hyperledger/tomcrypt/internal/fileutil"
	"github.com/pkg/errors"
)

// ReadInput reads the file at path, or stdin when path is empty or "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		return data, errors.Wrap(err, "failed reading standard input")
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrapf(err, "failed reading %s", path)
}

// WriteOutput atomically replaces the file at path with data, or writes to
// stdout when path is empty or "-". Files are created with owner-only
// permissions.
func WriteOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return errors.Wrap(err, "failed writing standard output")
	}
	return errors.WithMessagef(fileutil.WriteFileAtomically(path, data, 0o600), "failed writing %s", path)
}
