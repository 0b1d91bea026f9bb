/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ecc implements key generation, ECDSA signatures and ECDH over the
// NIST prime curves using constant-time fixed-width arithmetic.
package ecc

import (
	"crypto/elliptic"
	"sort"

	"github.com/hyperledger/tomcrypt/bccsp/bignum"
	"github.com/pkg/errors"
)

// Curve holds the parameters of a short Weierstrass curve
// y^2 = x^3 - 3x + b over GF(p) with a base point of prime order n.
// Curves are built at package init and never modified.
type Curve struct {
	name string
	std  elliptic.Curve

	p *bignum.Modulus
	n *bignum.Modulus

	// Field constants in the Montgomery domain.
	b   *bignum.Nat
	one *bignum.Nat

	g *point
}

var (
	p224 = newCurve("P-224", elliptic.P224())
	p256 = newCurve("P-256", elliptic.P256())
	p384 = newCurve("P-384", elliptic.P384())
	p521 = newCurve("P-521", elliptic.P521())

	curves = []*Curve{p224, p256, p384, p521}
)

// P224 returns the NIST P-224 curve.
func P224() *Curve { return p224 }

// P256 returns the NIST P-256 curve.
func P256() *Curve { return p256 }

// P384 returns the NIST P-384 curve.
func P384() *Curve { return p384 }

// P521 returns the NIST P-521 curve.
func P521() *Curve { return p521 }

// CurveByName looks a curve up by its NIST name, such as "P-256".
func CurveByName(name string) (*Curve, error) {
	for _, c := range curves {
		if c.name == name {
			return c, nil
		}
	}
	return nil, errors.Errorf("unsupported curve %q", name)
}

// CurveForKeySize returns the smallest curve whose coordinates are at
// least size bytes long.
func CurveForKeySize(size int) (*Curve, error) {
	if size > 0 {
		i := sort.Search(len(curves), func(i int) bool { return curves[i].Size() >= size })
		if i < len(curves) {
			return curves[i], nil
		}
	}
	return nil, errors.Errorf("no curve for key size %d", size)
}

// CurveFor returns the curve matching a standard library curve.
func CurveFor(c elliptic.Curve) (*Curve, error) {
	if c == nil {
		return nil, errors.New("curve must not be nil")
	}
	return CurveByName(c.Params().Name)
}

func newCurve(name string, std elliptic.Curve) *Curve {
	params := std.Params()
	c := &Curve{
		name: name,
		std:  std,
		p:    bignum.MustModulus(params.P.Bytes()),
		n:    bignum.MustModulus(params.N.Bytes()),
	}
	if c.p.BitLen() != c.n.BitLen() {
		// x(kG) mod n relies on x < 2n.
		panic("ecc: field and order bit lengths differ for " + name)
	}

	size := c.p.Size()
	c.one = bignum.NewNat(c.p).SetUint(1, c.p).ToMontgomery(c.p)
	c.b = c.mustFieldElement(params.B.FillBytes(make([]byte, size)))
	c.g = &point{
		x: c.mustFieldElement(params.Gx.FillBytes(make([]byte, size))),
		y: c.mustFieldElement(params.Gy.FillBytes(make([]byte, size))),
		z: c.one.Clone(),
	}
	return c
}

func (c *Curve) mustFieldElement(b []byte) *bignum.Nat {
	x, err := c.fieldElement(b)
	if err != nil {
		panic(err)
	}
	return x
}

// fieldElement decodes a coordinate into the Montgomery domain.
func (c *Curve) fieldElement(b []byte) (*bignum.Nat, error) {
	x, err := bignum.NewNat(c.p).SetBytes(b, c.p)
	if err != nil {
		return nil, err
	}
	return x.ToMontgomery(c.p), nil
}

// Name returns the NIST name of the curve.
func (c *Curve) Name() string { return c.name }

// Size returns the byte length of field elements and scalars.
func (c *Curve) Size() int { return c.p.Size() }

// BitSize returns the bit length of the group order.
func (c *Curve) BitSize() int { return c.n.BitLen() }

// Order returns the big-endian group order.
func (c *Curve) Order() []byte { return c.n.Bytes() }

// Std returns the equivalent standard library curve, for encodings only.
func (c *Curve) Std() elliptic.Curve { return c.std }
