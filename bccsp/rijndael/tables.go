/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rijndael

// Substitution and round tables, derived once at package init from the
// field GF(2^8) with reduction polynomial x^8 + x^4 + x^3 + x + 1.
var (
	sbox0 [256]byte // forward S-box
	sbox1 [256]byte // inverse S-box

	te0, te1, te2, te3 [256]uint32
	td0, td1, td2, td3 [256]uint32

	powx [16]byte // round constants, x^i
)

func init() {
	for i := 0; i < 256; i++ {
		s := affine(gfInverse(byte(i)))
		sbox0[i] = s
		sbox1[s] = byte(i)
	}

	for i := 0; i < 256; i++ {
		s := sbox0[i]
		w := uint32(gfMul(s, 2))<<24 | uint32(s)<<16 | uint32(s)<<8 | uint32(gfMul(s, 3))
		te0[i] = w
		te1[i] = w>>8 | w<<24
		te2[i] = w>>16 | w<<16
		te3[i] = w>>24 | w<<8

		si := sbox1[i]
		w = uint32(gfMul(si, 0x0e))<<24 | uint32(gfMul(si, 0x09))<<16 | uint32(gfMul(si, 0x0d))<<8 | uint32(gfMul(si, 0x0b))
		td0[i] = w
		td1[i] = w>>8 | w<<24
		td2[i] = w>>16 | w<<16
		td3[i] = w>>24 | w<<8
	}

	p := byte(1)
	for i := range powx {
		powx[i] = p
		p = gfMul(p, 2)
	}
}

func gfMul(a, b byte) byte {
	var r byte
	for b != 0 {
		if b&1 != 0 {
			r ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return r
}

// gfInverse returns a^254, which is a^-1 for a != 0 and 0 for a == 0.
func gfInverse(a byte) byte {
	r := byte(1)
	for e := 254; e > 0; e >>= 1 {
		if e&1 != 0 {
			r = gfMul(r, a)
		}
		a = gfMul(a, a)
	}
	return r
}

func affine(b byte) byte {
	rotl := func(x byte, n uint) byte { return x<<n | x>>(8-n) }
	return b ^ rotl(b, 1) ^ rotl(b, 2) ^ rotl(b, 3) ^ rotl(b, 4) ^ 0x63
}
