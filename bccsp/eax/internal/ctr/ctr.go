/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ctr implements counter mode keystream generation for the EAX
// construction. It provides no integrity and is not meant to be used on its
// own.
package ctr

import (
	"crypto/cipher"
	"crypto/subtle"
)

// XORKeyStream XORs src with the keystream E(iv), E(iv+1), ... and writes
// the result to dst. The counter is the whole block, incremented as a
// big-endian integer and wrapping at 2^(8*blocksize). dst and src may
// overlap entirely but not partially.
func XORKeyStream(b cipher.Block, iv, dst, src []byte) {
	if len(iv) != b.BlockSize() {
		panic("ctr: IV length must equal block size")
	}
	if len(dst) < len(src) {
		panic("ctr: output smaller than input")
	}

	bs := b.BlockSize()
	counter := make([]byte, bs)
	copy(counter, iv)
	stream := make([]byte, bs)
	for len(src) > 0 {
		b.Encrypt(stream, counter)
		n := subtle.XORBytes(dst, src, stream)
		dst, src = dst[n:], src[n:]
		increment(counter)
	}
	clear(stream)
	clear(counter)
}

func increment(counter []byte) {
	for i := len(counter) - 1; i >= 0; i-- {
		counter[i]++
		if counter[i] != 0 {
			return
		}
	}
}
