/*
Copyright London Stock Exchange 2016 All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"fmt"
	"runtime"
)

// Variables defined by the Makefile and passed in with ldflags
var (
	Version   = "latest"
	CommitSHA = "development build"
)

// GetVersionInfo returns the version banner printed by --version.
func GetVersionInfo() string {
	return fmt.Sprintf("tomcrypt:\n Version: %s\n Commit SHA: %s\n Go version: %s\n OS/Arch: %s/%s\n",
		Version, CommitSHA, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
