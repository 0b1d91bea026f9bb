/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bignum implements fixed-width modular arithmetic for the curve
// engine. Values are sized to their modulus and every operation runs in time
// that depends only on the size of the modulus, never on the bits of the
// operands.
package bignum

import (
	"encoding/binary"
	"math/bits"

	"github.com/pkg/errors"
)

// ErrNotInvertible is returned by Inverse for inputs that share a factor
// with the modulus.
var ErrNotInvertible = errors.New("value is not invertible")

// Nat is an unsigned integer with as many 64-bit limbs as the modulus it
// was created for. Limbs are stored least significant first.
type Nat struct {
	limbs []uint64
}

// NewNat returns a zero value sized for m.
func NewNat(m *Modulus) *Nat {
	return &Nat{limbs: make([]uint64, len(m.nat.limbs))}
}

func (x *Nat) reset(n int) *Nat {
	if cap(x.limbs) < n {
		x.limbs = make([]uint64, n)
		return x
	}
	x.limbs = x.limbs[:n]
	clear(x.limbs)
	return x
}

// Set sets x = y and returns x.
func (x *Nat) Set(y *Nat) *Nat {
	if x == y {
		return x
	}
	x.reset(len(y.limbs))
	copy(x.limbs, y.limbs)
	return x
}

// Clone returns a copy of x.
func (x *Nat) Clone() *Nat {
	return new(Nat).Set(x)
}

// SetUint sets x = v.
func (x *Nat) SetUint(v uint64, m *Modulus) *Nat {
	x.reset(len(m.nat.limbs))
	x.limbs[0] = v
	return x
}

// SetBytes sets x to the big-endian value b. The value must be smaller
// than m.
func (x *Nat) SetBytes(b []byte, m *Modulus) (*Nat, error) {
	if err := x.setBytes(b, m); err != nil {
		return nil, err
	}
	if x.cmpGeq(m.nat) == 1 {
		return nil, errors.New("input overflows the modulus")
	}
	return x, nil
}

// SetOverflowingBytes sets x to the big-endian value b reduced modulo m.
// The value may not be longer than the bit length of m, which bounds it by
// 2m and allows the reduction to be a single conditional subtraction.
func (x *Nat) SetOverflowingBytes(b []byte, m *Modulus) (*Nat, error) {
	if err := x.setBytes(b, m); err != nil {
		return nil, err
	}
	if excess := m.bitLen % 64; excess != 0 && x.limbs[len(x.limbs)-1]>>excess != 0 {
		return nil, errors.New("input overflows the modulus bit length")
	}
	x.maybeSubtractModulus(0, m)
	return x, nil
}

func (x *Nat) setBytes(b []byte, m *Modulus) error {
	n := len(m.nat.limbs)
	if len(b) > n*8 {
		return errors.New("input overflows the modulus size")
	}
	x.reset(n)
	i, k := len(b), 0
	for k < n && i >= 8 {
		x.limbs[k] = binary.BigEndian.Uint64(b[i-8 : i])
		i -= 8
		k++
	}
	for s := 0; s < 64 && k < n && i > 0; s += 8 {
		x.limbs[k] |= uint64(b[i-1]) << s
		i--
	}
	return nil
}

// Bytes returns x as a big-endian byte slice of exactly m.Size() bytes.
func (x *Nat) Bytes(m *Modulus) []byte {
	i := m.Size()
	b := make([]byte, i)
	for _, limb := range x.limbs {
		for j := 0; j < 8; j++ {
			i--
			if i < 0 {
				return b
			}
			b[i] = byte(limb)
			limb >>= 8
		}
	}
	return b
}

// Zeroize overwrites the limbs of x.
func (x *Nat) Zeroize() {
	clear(x.limbs)
}

// IsZero returns 1 if x == 0, and 0 otherwise.
func (x *Nat) IsZero() uint64 {
	var acc uint64
	for _, l := range x.limbs {
		acc |= l
	}
	return ctIsZero(acc)
}

// Equal returns 1 if x == y, and 0 otherwise. Both must have the same size.
func (x *Nat) Equal(y *Nat) uint64 {
	var acc uint64
	for i := range x.limbs {
		acc |= x.limbs[i] ^ y.limbs[i]
	}
	return ctIsZero(acc)
}

// Less returns 1 if x < y, and 0 otherwise.
func (x *Nat) Less(y *Nat) uint64 {
	return x.cmpGeq(y) ^ 1
}

// Select sets x = a if on == 1, or x = b if on == 0. It is safe for x to
// alias either operand.
func (x *Nat) Select(on uint64, a, b *Nat) *Nat {
	mask := -on
	if len(x.limbs) != len(a.limbs) {
		x.limbs = make([]uint64, len(a.limbs))
	}
	for i := range x.limbs {
		x.limbs[i] = b.limbs[i] ^ (mask & (a.limbs[i] ^ b.limbs[i]))
	}
	return x
}

// Add sets x = x + y mod m.
func (x *Nat) Add(y *Nat, m *Modulus) *Nat {
	overflow := x.add(y)
	x.maybeSubtractModulus(overflow, m)
	return x
}

// Sub sets x = x - y mod m.
func (x *Nat) Sub(y *Nat, m *Modulus) *Nat {
	underflow := x.sub(y)
	t := x.Clone()
	t.add(m.nat)
	x.assign(underflow, t)
	return x
}

// Mul sets x = x * y mod m.
func (x *Nat) Mul(y *Nat, m *Modulus) *Nat {
	x.MontgomeryMul(x, y, m)
	return x.MontgomeryMul(x, m.rr, m)
}

// ToMontgomery converts x to the Montgomery domain, x * R mod m.
func (x *Nat) ToMontgomery(m *Modulus) *Nat {
	return x.MontgomeryMul(x, m.rr, m)
}

// FromMontgomery converts x out of the Montgomery domain, x * R^-1 mod m.
func (x *Nat) FromMontgomery(m *Modulus) *Nat {
	one := NewNat(m).SetUint(1, m)
	return x.MontgomeryMul(x, one, m)
}

// MontgomeryMul sets x = a * b * R^-1 mod m. The operands must be reduced
// and may alias x.
func (x *Nat) MontgomeryMul(a, b *Nat, m *Modulus) *Nat {
	n := len(m.nat.limbs)
	t := make([]uint64, 2*n)
	var c uint64
	for i := 0; i < n; i++ {
		// The window t[i:n+i] holds the running sum; the word below it is
		// cleared by adding y*m, so it shifts out on the next iteration.
		c1 := addMulVVW(t[i:n+i], a.limbs, b.limbs[i])
		y := t[i] * m.m0inv
		c2 := addMulVVW(t[i:n+i], m.nat.limbs, y)
		t[n+i], c = bits.Add64(c1, c2, c)
	}
	x.reset(n)
	copy(x.limbs, t[n:])
	clear(t)
	x.maybeSubtractModulus(c, m)
	return x
}

// Exp sets x = base^e mod m, where e is a big-endian exponent. Every bit of
// e costs one squaring and one multiplication.
func (x *Nat) Exp(base *Nat, e []byte, m *Modulus) *Nat {
	b := base.Clone().ToMontgomery(m)
	acc := NewNat(m).SetUint(1, m).ToMontgomery(m)
	t := NewNat(m)
	for _, octet := range e {
		for j := 7; j >= 0; j-- {
			acc.MontgomeryMul(acc, acc, m)
			t.MontgomeryMul(acc, b, m)
			acc.assign(uint64(octet>>j)&1, t)
		}
	}
	x.Set(acc).FromMontgomery(m)
	b.Zeroize()
	acc.Zeroize()
	t.Zeroize()
	return x
}

// Inverse sets x = x^-1 mod m using Fermat's little theorem, so m must be
// prime. The exponentiation always runs to completion; the zero check is
// only consulted afterwards.
func (x *Nat) Inverse(m *Modulus) (*Nat, error) {
	zero := x.IsZero()
	x.Exp(x, m.pMinus2, m)
	if zero == 1 {
		return nil, ErrNotInvertible
	}
	return x, nil
}

func (x *Nat) cmpGeq(y *Nat) uint64 {
	var c uint64
	for i := range x.limbs {
		_, c = bits.Sub64(x.limbs[i], y.limbs[i], c)
	}
	return c ^ 1
}

func (x *Nat) assign(on uint64, y *Nat) {
	mask := -on
	for i := range x.limbs {
		x.limbs[i] ^= mask & (x.limbs[i] ^ y.limbs[i])
	}
}

func (x *Nat) add(y *Nat) (c uint64) {
	for i := range x.limbs {
		x.limbs[i], c = bits.Add64(x.limbs[i], y.limbs[i], c)
	}
	return c
}

func (x *Nat) sub(y *Nat) (c uint64) {
	for i := range x.limbs {
		x.limbs[i], c = bits.Sub64(x.limbs[i], y.limbs[i], c)
	}
	return c
}

// maybeSubtractModulus subtracts m from x if x >= m or if always is 1.
func (x *Nat) maybeSubtractModulus(always uint64, m *Modulus) {
	t := x.Clone()
	underflow := t.sub(m.nat)
	x.assign((underflow^1)|always, t)
}

func addMulVVW(z, x []uint64, y uint64) (carry uint64) {
	for i := range z {
		hi, lo := bits.Mul64(x[i], y)
		var c uint64
		lo, c = bits.Add64(lo, z[i], 0)
		hi += c
		lo, c = bits.Add64(lo, carry, 0)
		hi += c
		carry = hi
		z[i] = lo
	}
	return carry
}

func ctIsZero(v uint64) uint64 {
	return 1 ^ ((v | -v) >> 63)
}
