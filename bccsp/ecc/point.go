/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecc

import (
	"github.com/hyperledger/tomcrypt/bccsp/bignum"
	"github.com/pkg/errors"
)

// point is a projective point (X:Y:Z) with coordinates in the Montgomery
// domain. The identity is (0:1:0).
type point struct {
	x, y, z *bignum.Nat
}

func (c *Curve) identity() *point {
	return &point{
		x: bignum.NewNat(c.p),
		y: c.one.Clone(),
		z: bignum.NewNat(c.p),
	}
}

func (c *Curve) mul(a, b *bignum.Nat) *bignum.Nat {
	return bignum.NewNat(c.p).MontgomeryMul(a, b, c.p)
}

func (c *Curve) add(a, b *bignum.Nat) *bignum.Nat {
	return a.Clone().Add(b, c.p)
}

func (c *Curve) sub(a, b *bignum.Nat) *bignum.Nat {
	return a.Clone().Sub(b, c.p)
}

// addPoints returns p1 + p2 using the complete formulas for a = -3 from
// Renes, Costello and Batina, "Complete addition formulas for prime order
// elliptic curves" (Algorithm 4). They hold for doubling and the identity.
func (c *Curve) addPoints(p1, p2 *point) *point {
	t0 := c.mul(p1.x, p2.x)
	t1 := c.mul(p1.y, p2.y)
	t2 := c.mul(p1.z, p2.z)
	t3 := c.add(p1.x, p1.y)
	t4 := c.add(p2.x, p2.y)
	t3 = c.mul(t3, t4)
	t4 = c.add(t0, t1)
	t3 = c.sub(t3, t4)
	t4 = c.add(p1.y, p1.z)
	x3 := c.add(p2.y, p2.z)
	t4 = c.mul(t4, x3)
	x3 = c.add(t1, t2)
	t4 = c.sub(t4, x3)
	x3 = c.add(p1.x, p1.z)
	y3 := c.add(p2.x, p2.z)
	x3 = c.mul(x3, y3)
	y3 = c.add(t0, t2)
	y3 = c.sub(x3, y3)
	z3 := c.mul(c.b, t2)
	x3 = c.sub(y3, z3)
	z3 = c.add(x3, x3)
	x3 = c.add(x3, z3)
	z3 = c.sub(t1, x3)
	x3 = c.add(t1, x3)
	y3 = c.mul(c.b, y3)
	t1 = c.add(t2, t2)
	t2 = c.add(t1, t2)
	y3 = c.sub(y3, t2)
	y3 = c.sub(y3, t0)
	t1 = c.add(y3, y3)
	y3 = c.add(t1, y3)
	t1 = c.add(t0, t0)
	t0 = c.add(t1, t0)
	t0 = c.sub(t0, t2)
	t1 = c.mul(t4, y3)
	t2 = c.mul(t0, y3)
	y3 = c.mul(x3, z3)
	y3 = c.add(y3, t2)
	x3 = c.mul(t3, x3)
	x3 = c.sub(x3, t1)
	z3 = c.mul(t4, z3)
	t1 = c.mul(t3, t0)
	z3 = c.add(z3, t1)
	return &point{x: x3, y: y3, z: z3}
}

func (c *Curve) selectPoint(on uint64, a, b *point) *point {
	return &point{
		x: bignum.NewNat(c.p).Select(on, a.x, b.x),
		y: bignum.NewNat(c.p).Select(on, a.y, b.y),
		z: bignum.NewNat(c.p).Select(on, a.z, b.z),
	}
}

// scalarMult returns k*q for a big-endian scalar. Every bit of k costs one
// doubling and one addition, and the sum is kept or dropped with a
// constant-time select.
func (c *Curve) scalarMult(q *point, k []byte) *point {
	r := c.identity()
	for _, octet := range k {
		for j := 7; j >= 0; j-- {
			r = c.addPoints(r, r)
			sum := c.addPoints(r, q)
			r = c.selectPoint(uint64(octet>>j)&1, sum, r)
		}
	}
	return r
}

func (c *Curve) scalarBaseMult(k []byte) *point {
	return c.scalarMult(c.g, k)
}

// affine returns the big-endian affine coordinates of q. The identity has
// none.
func (c *Curve) affine(q *point) (x, y []byte, err error) {
	zinv := q.z.Clone().FromMontgomery(c.p)
	if _, err := zinv.Inverse(c.p); err != nil {
		return nil, nil, errors.New("point at infinity has no affine coordinates")
	}
	zinv.ToMontgomery(c.p)
	x = c.mul(q.x, zinv).FromMontgomery(c.p).Bytes(c.p)
	y = c.mul(q.y, zinv).FromMontgomery(c.p).Bytes(c.p)
	return x, y, nil
}

// isOnCurve checks y^2 = x^3 - 3x + b for Montgomery-domain affine
// coordinates.
func (c *Curve) isOnCurve(x, y *bignum.Nat) bool {
	rhs := c.mul(c.mul(x, x), x)
	threeX := c.add(c.add(x, x), x)
	rhs = c.add(c.sub(rhs, threeX), c.b)
	return c.mul(y, y).Equal(rhs) == 1
}
