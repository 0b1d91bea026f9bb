/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package utils

// Clone clones the passed slice
func Clone(src []byte) []byte {
	if src == nil {
		return nil
	}
	clone := make([]byte, len(src))
	copy(clone, src)

	return clone
}

// Zeroize overwrites b with zeros.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
