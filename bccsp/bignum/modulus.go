/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bignum

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Modulus is an odd modulus together with its Montgomery constants. It is
// immutable once built and may be shared between goroutines.
type Modulus struct {
	nat     *Nat
	bitLen  int
	m0inv   uint64 // -m^-1 mod 2^64
	rr      *Nat   // R^2 mod m
	pMinus2 []byte
}

// NewModulus builds a modulus from its big-endian encoding.
func NewModulus(b []byte) (*Modulus, error) {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	if len(b) == 0 {
		return nil, errors.New("modulus must be greater than one")
	}
	if b[len(b)-1]&1 == 0 {
		return nil, errors.New("modulus must be odd")
	}
	if len(b) == 1 && b[0] == 1 {
		return nil, errors.New("modulus must be greater than one")
	}

	n := (len(b) + 7) / 8
	m := &Modulus{nat: &Nat{limbs: make([]uint64, n)}}
	// setBytes only needs the limb count of its modulus argument.
	if err := m.nat.setBytes(b, m); err != nil {
		return nil, err
	}
	m.bitLen = 64*(n-1) + bits.Len64(m.nat.limbs[n-1])
	m.m0inv = minusInverseModW(m.nat.limbs[0])

	// R^2 mod m by doubling one 2*64*n times.
	m.rr = NewNat(m).SetUint(1, m)
	for i := 0; i < 2*64*n; i++ {
		m.rr.Add(m.rr, m)
	}

	two := NewNat(m).SetUint(2, m)
	e := m.nat.Clone()
	e.sub(two)
	m.pMinus2 = e.Bytes(m)
	return m, nil
}

// MustModulus is like NewModulus but panics on error. It is intended for
// package level constants.
func MustModulus(b []byte) *Modulus {
	m, err := NewModulus(b)
	if err != nil {
		panic(err)
	}
	return m
}

// BitLen returns the bit length of m.
func (m *Modulus) BitLen() int {
	return m.bitLen
}

// Size returns the byte length of m.
func (m *Modulus) Size() int {
	return (m.bitLen + 7) / 8
}

// Nat returns m as a value. Note that it is not reduced modulo m.
func (m *Modulus) Nat() *Nat {
	return m.nat.Clone()
}

// Bytes returns the big-endian encoding of m.
func (m *Modulus) Bytes() []byte {
	return m.nat.Bytes(m)
}

// minusInverseModW returns -x^-1 mod 2^64 for odd x. Each Newton step
// doubles the number of correct low bits, starting from three.
func minusInverseModW(x uint64) uint64 {
	y := x
	for i := 0; i < 5; i++ {
		y = y * (2 - x*y)
	}
	return -y
}
