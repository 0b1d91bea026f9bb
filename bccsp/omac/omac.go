/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package omac implements OMAC1 (CMAC, NIST SP 800-38B) over a 128-bit
// block cipher, including the tweaked variant used by EAX.
package omac

import (
	"crypto/cipher"
	"crypto/subtle"
	"hash"

	"github.com/pkg/errors"
)

// Size is the length of a full tag in bytes.
const Size = 16

// MAC computes a CMAC tag incrementally. A MAC is not safe for concurrent
// use; Clone it for each goroutine.
type MAC struct {
	b      cipher.Block
	k1, k2 [Size]byte

	x   [Size]byte // chaining value
	buf [Size]byte // pending block, never flushed until more input arrives
	n   int

	tweaked bool
	tweak   byte
}

var _ hash.Hash = (*MAC)(nil)

// New derives the CMAC subkeys of b.
func New(b cipher.Block) (*MAC, error) {
	if b.BlockSize() != Size {
		return nil, errors.Errorf("block size must be %d bytes, got %d", Size, b.BlockSize())
	}

	m := &MAC{b: b}
	var l [Size]byte
	b.Encrypt(l[:], l[:])
	double(&m.k1, &l)
	double(&m.k2, &m.k1)
	clear(l[:])
	return m, nil
}

// NewTweaked returns a MAC that authenticates the block [t]_n, fifteen zero
// bytes followed by t, ahead of every message.
func NewTweaked(b cipher.Block, t byte) (*MAC, error) {
	m, err := New(b)
	if err != nil {
		return nil, err
	}
	m.SetTweak(t)
	return m, nil
}

// SetTweak resets m and makes t its tweak.
func (m *MAC) SetTweak(t byte) {
	m.tweaked = true
	m.tweak = t
	m.Reset()
}

// Clone returns an independent copy of m, sharing only the cipher.
func (m *MAC) Clone() *MAC {
	c := *m
	return &c
}

// Reset clears any buffered input. A tweaked MAC stays tweaked.
func (m *MAC) Reset() {
	clear(m.x[:])
	clear(m.buf[:])
	m.n = 0
	if m.tweaked {
		m.buf[Size-1] = m.tweak
		m.n = Size
	}
}

func (m *MAC) Size() int      { return Size }
func (m *MAC) BlockSize() int { return Size }

// Write absorbs p. It never returns an error.
func (m *MAC) Write(p []byte) (int, error) {
	written := len(p)
	for len(p) > 0 {
		if m.n == Size {
			subtle.XORBytes(m.x[:], m.x[:], m.buf[:])
			m.b.Encrypt(m.x[:], m.x[:])
			m.n = 0
		}
		c := copy(m.buf[m.n:], p)
		m.n += c
		p = p[c:]
	}
	return written, nil
}

// Sum appends the tag of the data written so far to in. It does not change
// the state of m.
func (m *MAC) Sum(in []byte) []byte {
	var last [Size]byte
	copy(last[:], m.buf[:m.n])
	if m.n == Size {
		subtle.XORBytes(last[:], last[:], m.k1[:])
	} else {
		last[m.n] = 0x80
		subtle.XORBytes(last[:], last[:], m.k2[:])
	}
	subtle.XORBytes(last[:], last[:], m.x[:])
	m.b.Encrypt(last[:], last[:])
	return append(in, last[:]...)
}

// Tag returns the CMAC of msg under b.
func Tag(b cipher.Block, msg []byte) ([]byte, error) {
	m, err := New(b)
	if err != nil {
		return nil, err
	}
	m.Write(msg)
	return m.Sum(nil), nil
}

// Verify reports whether tag, possibly truncated, is the CMAC of msg under
// b. The comparison runs in constant time.
func Verify(b cipher.Block, msg, tag []byte) (bool, error) {
	if len(tag) == 0 || len(tag) > Size {
		return false, errors.Errorf("invalid tag length %d", len(tag))
	}
	expected, err := Tag(b, msg)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(expected[:len(tag)], tag) == 1, nil
}

// double multiplies src by x in GF(2^128) with the reduction polynomial
// x^128 + x^7 + x^2 + x + 1.
func double(dst, src *[Size]byte) {
	msb := src[0] >> 7
	for i := 0; i < Size-1; i++ {
		dst[i] = src[i]<<1 | src[i+1]>>7
	}
	dst[Size-1] = src[Size-1]<<1 ^ (0x87 & -msb)
}
