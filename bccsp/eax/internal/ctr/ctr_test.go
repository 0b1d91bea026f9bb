/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ctr

import (
	"crypto/cipher"
	"math/rand"
	"testing"

	"github.com/hyperledger/tomcrypt/bccsp/rijndael"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrement(t *testing.T) {
	c := []byte{0x00, 0x00, 0xff}
	increment(c)
	assert.Equal(t, []byte{0x00, 0x01, 0x00}, c)

	c = []byte{0xff, 0xff, 0xff}
	increment(c)
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, c, "counter wraps around the full block")
}

func TestMatchesStandardLibrary(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	key := make([]byte, 16)
	r.Read(key)
	b, err := rijndael.NewCipher(key)
	require.NoError(t, err)

	ivs := [][]byte{
		make([]byte, 16),
		{0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}
	for _, iv := range ivs {
		for _, size := range []int{0, 1, 15, 16, 17, 100} {
			src := make([]byte, size)
			r.Read(src)

			got := make([]byte, size)
			XORKeyStream(b, iv, got, src)

			want := make([]byte, size)
			cipher.NewCTR(b, iv).XORKeyStream(want, src)
			assert.Equal(t, want, got, "iv %x size %d", iv, size)

			XORKeyStream(b, iv, got, got)
			assert.Equal(t, src, got, "applying the keystream twice restores the input")
		}
	}
}

func TestPanics(t *testing.T) {
	b, err := rijndael.NewCipher(make([]byte, 16))
	require.NoError(t, err)
	assert.Panics(t, func() { XORKeyStream(b, make([]byte, 8), make([]byte, 4), make([]byte, 4)) })
	assert.Panics(t, func() { XORKeyStream(b, make([]byte, 16), make([]byte, 3), make([]byte, 4)) })
}
