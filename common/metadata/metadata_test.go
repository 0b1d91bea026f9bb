/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetVersionInfo(t *testing.T) {
	defer func(v, sha string) { Version, CommitSHA = v, sha }(Version, CommitSHA)
	Version = "1.2.3"
	CommitSHA = "abcdef"

	expected := fmt.Sprintf("tomcrypt:\n Version: 1.2.3\n Commit SHA: abcdef\n Go version: %s\n OS/Arch: %s/%s\n",
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
	require.Equal(t, expected, GetVersionInfo())
}
