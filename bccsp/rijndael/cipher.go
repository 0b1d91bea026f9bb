/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package rijndael is a software implementation of the AES block cipher
// (FIPS 197) for 128, 192 and 256 bit keys.
package rijndael

import (
	"crypto/cipher"
	"encoding/binary"

	"github.com/pkg/errors"
)

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// ErrInvalidKeyLength is returned for keys that are not 16, 24 or 32 bytes.
var ErrInvalidKeyLength = errors.New("invalid key length")

// Cipher is an AES instance with precomputed encryption and decryption
// key schedules. It is safe for concurrent use until Destroy is called.
type Cipher struct {
	enc []uint32
	dec []uint32
}

var _ cipher.Block = (*Cipher)(nil)

// NewCipher expands key into a new cipher.
func NewCipher(key []byte) (*Cipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, errors.Wrapf(ErrInvalidKeyLength, "%d bytes", len(key))
	}

	n := len(key) + 28
	c := &Cipher{
		enc: make([]uint32, n),
		dec: make([]uint32, n),
	}
	expandKey(key, c.enc, c.dec)
	return c, nil
}

// BlockSize returns the AES block size.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts the first block of src into dst.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}
	encryptBlock(c.enc, dst, src)
}

// Decrypt decrypts the first block of src into dst.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}
	decryptBlock(c.dec, dst, src)
}

// Destroy zeroizes the key schedules. The cipher must not be used
// afterwards.
func (c *Cipher) Destroy() {
	clear(c.enc)
	clear(c.dec)
}

func encryptBlock(xk []uint32, dst, src []byte) {
	s0 := binary.BigEndian.Uint32(src[0:4]) ^ xk[0]
	s1 := binary.BigEndian.Uint32(src[4:8]) ^ xk[1]
	s2 := binary.BigEndian.Uint32(src[8:12]) ^ xk[2]
	s3 := binary.BigEndian.Uint32(src[12:16]) ^ xk[3]

	k := 4
	rounds := len(xk)/4 - 2
	var t0, t1, t2, t3 uint32
	for r := 0; r < rounds; r++ {
		t0 = xk[k+0] ^ te0[uint8(s0>>24)] ^ te1[uint8(s1>>16)] ^ te2[uint8(s2>>8)] ^ te3[uint8(s3)]
		t1 = xk[k+1] ^ te0[uint8(s1>>24)] ^ te1[uint8(s2>>16)] ^ te2[uint8(s3>>8)] ^ te3[uint8(s0)]
		t2 = xk[k+2] ^ te0[uint8(s2>>24)] ^ te1[uint8(s3>>16)] ^ te2[uint8(s0>>8)] ^ te3[uint8(s1)]
		t3 = xk[k+3] ^ te0[uint8(s3>>24)] ^ te1[uint8(s0>>16)] ^ te2[uint8(s1>>8)] ^ te3[uint8(s2)]
		k += 4
		s0, s1, s2, s3 = t0, t1, t2, t3
	}

	// Final round has no MixColumns.
	s0 = uint32(sbox0[t0>>24])<<24 | uint32(sbox0[t1>>16&0xff])<<16 | uint32(sbox0[t2>>8&0xff])<<8 | uint32(sbox0[t3&0xff])
	s1 = uint32(sbox0[t1>>24])<<24 | uint32(sbox0[t2>>16&0xff])<<16 | uint32(sbox0[t3>>8&0xff])<<8 | uint32(sbox0[t0&0xff])
	s2 = uint32(sbox0[t2>>24])<<24 | uint32(sbox0[t3>>16&0xff])<<16 | uint32(sbox0[t0>>8&0xff])<<8 | uint32(sbox0[t1&0xff])
	s3 = uint32(sbox0[t3>>24])<<24 | uint32(sbox0[t0>>16&0xff])<<16 | uint32(sbox0[t1>>8&0xff])<<8 | uint32(sbox0[t2&0xff])

	binary.BigEndian.PutUint32(dst[0:4], s0^xk[k+0])
	binary.BigEndian.PutUint32(dst[4:8], s1^xk[k+1])
	binary.BigEndian.PutUint32(dst[8:12], s2^xk[k+2])
	binary.BigEndian.PutUint32(dst[12:16], s3^xk[k+3])
}

func decryptBlock(xk []uint32, dst, src []byte) {
	s0 := binary.BigEndian.Uint32(src[0:4]) ^ xk[0]
	s1 := binary.BigEndian.Uint32(src[4:8]) ^ xk[1]
	s2 := binary.BigEndian.Uint32(src[8:12]) ^ xk[2]
	s3 := binary.BigEndian.Uint32(src[12:16]) ^ xk[3]

	k := 4
	rounds := len(xk)/4 - 2
	var t0, t1, t2, t3 uint32
	for r := 0; r < rounds; r++ {
		t0 = xk[k+0] ^ td0[uint8(s0>>24)] ^ td1[uint8(s3>>16)] ^ td2[uint8(s2>>8)] ^ td3[uint8(s1)]
		t1 = xk[k+1] ^ td0[uint8(s1>>24)] ^ td1[uint8(s0>>16)] ^ td2[uint8(s3>>8)] ^ td3[uint8(s2)]
		t2 = xk[k+2] ^ td0[uint8(s2>>24)] ^ td1[uint8(s1>>16)] ^ td2[uint8(s0>>8)] ^ td3[uint8(s3)]
		t3 = xk[k+3] ^ td0[uint8(s3>>24)] ^ td1[uint8(s2>>16)] ^ td2[uint8(s1>>8)] ^ td3[uint8(s0)]
		k += 4
		s0, s1, s2, s3 = t0, t1, t2, t3
	}

	s0 = uint32(sbox1[t0>>24])<<24 | uint32(sbox1[t3>>16&0xff])<<16 | uint32(sbox1[t2>>8&0xff])<<8 | uint32(sbox1[t1&0xff])
	s1 = uint32(sbox1[t1>>24])<<24 | uint32(sbox1[t0>>16&0xff])<<16 | uint32(sbox1[t3>>8&0xff])<<8 | uint32(sbox1[t2&0xff])
	s2 = uint32(sbox1[t2>>24])<<24 | uint32(sbox1[t1>>16&0xff])<<16 | uint32(sbox1[t0>>8&0xff])<<8 | uint32(sbox1[t3&0xff])
	s3 = uint32(sbox1[t3>>24])<<24 | uint32(sbox1[t2>>16&0xff])<<16 | uint32(sbox1[t1>>8&0xff])<<8 | uint32(sbox1[t0&0xff])

	binary.BigEndian.PutUint32(dst[0:4], s0^xk[k+0])
	binary.BigEndian.PutUint32(dst[4:8], s1^xk[k+1])
	binary.BigEndian.PutUint32(dst[8:12], s2^xk[k+2])
	binary.BigEndian.PutUint32(dst[12:16], s3^xk[k+3])
}

func subw(w uint32) uint32 {
	return uint32(sbox0[w>>24])<<24 | uint32(sbox0[w>>16&0xff])<<16 | uint32(sbox0[w>>8&0xff])<<8 | uint32(sbox0[w&0xff])
}

func rotw(w uint32) uint32 { return w<<8 | w>>24 }

// expandKey fills enc with the FIPS 197 key schedule and dec with the
// equivalent inverse cipher schedule (round keys reversed, InvMixColumns
// applied to all but the first and last).
func expandKey(key []byte, enc, dec []uint32) {
	nk := len(key) / 4
	var i int
	for i = 0; i < nk; i++ {
		enc[i] = binary.BigEndian.Uint32(key[4*i:])
	}
	for ; i < len(enc); i++ {
		t := enc[i-1]
		if i%nk == 0 {
			t = subw(rotw(t)) ^ uint32(powx[i/nk-1])<<24
		} else if nk > 6 && i%nk == 4 {
			t = subw(t)
		}
		enc[i] = enc[i-nk] ^ t
	}

	n := len(enc)
	for i := 0; i < n; i += 4 {
		ei := n - i - 4
		for j := 0; j < 4; j++ {
			x := enc[ei+j]
			if i > 0 && i+4 < n {
				x = td0[sbox0[x>>24]] ^ td1[sbox0[x>>16&0xff]] ^ td2[sbox0[x>>8&0xff]] ^ td3[sbox0[x&0xff]]
			}
			dec[i+j] = x
		}
	}
}
