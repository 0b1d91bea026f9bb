/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecc

import (
	"bytes"
	"io"

	"github.com/hyperledger/tomcrypt/bccsp/bignum"
	"github.com/pkg/errors"
)

// maxScalarDraws bounds rejection sampling. A healthy source needs more
// than a couple of draws with negligible probability.
const maxScalarDraws = 64

// PublicKey is a validated affine point, never the identity.
type PublicKey struct {
	curve *Curve
	x, y  []byte
}

// NewPublicKey imports the fixed-width encoding X||Y. The point is
// rejected with ErrInvalidPublicKey unless both coordinates are reduced,
// it lies on the curve and it is not the point at infinity.
func NewPublicKey(c *Curve, raw []byte) (*PublicKey, error) {
	size := c.Size()
	if len(raw) != 2*size {
		return nil, errors.Wrapf(ErrInvalidPublicKey, "expected %d bytes, got %d", 2*size, len(raw))
	}
	if isAllZero(raw) {
		return nil, errors.Wrap(ErrInvalidPublicKey, "point at infinity")
	}
	x, err := c.fieldElement(raw[:size])
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, "x coordinate out of range")
	}
	y, err := c.fieldElement(raw[size:])
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, "y coordinate out of range")
	}
	if !c.isOnCurve(x, y) {
		return nil, errors.Wrap(ErrInvalidPublicKey, "point is not on curve "+c.name)
	}
	return &PublicKey{
		curve: c,
		x:     bytes.Clone(raw[:size]),
		y:     bytes.Clone(raw[size:]),
	}, nil
}

// Curve returns the curve of the key.
func (k *PublicKey) Curve() *Curve { return k.curve }

// Bytes returns the fixed-width encoding X||Y.
func (k *PublicKey) Bytes() []byte {
	out := make([]byte, 0, 2*len(k.x))
	out = append(out, k.x...)
	return append(out, k.y...)
}

// X returns the big-endian x coordinate.
func (k *PublicKey) X() []byte { return bytes.Clone(k.x) }

// Y returns the big-endian y coordinate.
func (k *PublicKey) Y() []byte { return bytes.Clone(k.y) }

// Equal reports whether k and other are the same point on the same curve.
func (k *PublicKey) Equal(other *PublicKey) bool {
	return other != nil && k.curve == other.curve && bytes.Equal(k.x, other.x) && bytes.Equal(k.y, other.y)
}

func (k *PublicKey) point() *point {
	c := k.curve
	return &point{
		x: c.mustFieldElement(k.x),
		y: c.mustFieldElement(k.y),
		z: c.one.Clone(),
	}
}

// PrivateKey owns a secret scalar in [1, n-1] and its public point. A key
// may be shared for concurrent signing; Destroy must not race with use.
type PrivateKey struct {
	pub       *PublicKey
	d         *bignum.Nat
	destroyed bool
}

// GenerateKey draws a uniform scalar from rand.
func GenerateKey(c *Curve, rand io.Reader) (*PrivateKey, error) {
	d, err := randomScalar(c, rand)
	if err != nil {
		return nil, err
	}
	return newPrivateKey(c, d)
}

// NewPrivateKey imports a fixed-width big-endian scalar.
func NewPrivateKey(c *Curve, raw []byte) (*PrivateKey, error) {
	if len(raw) != c.Size() {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "expected %d bytes, got %d", c.Size(), len(raw))
	}
	d, err := bignum.NewNat(c.n).SetBytes(raw, c.n)
	if err != nil || d.IsZero() == 1 {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "scalar out of range")
	}
	return newPrivateKey(c, d)
}

func newPrivateKey(c *Curve, d *bignum.Nat) (*PrivateKey, error) {
	scalar := d.Bytes(c.n)
	defer clear(scalar)

	x, y, err := c.affine(c.scalarBaseMult(scalar))
	if err != nil {
		d.Zeroize()
		return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
	}
	return &PrivateKey{
		pub: &PublicKey{curve: c, x: x, y: y},
		d:   d,
	}, nil
}

// Curve returns the curve of the key.
func (k *PrivateKey) Curve() *Curve { return k.pub.curve }

// Public returns the public half of the key.
func (k *PrivateKey) Public() *PublicKey { return k.pub }

// Bytes returns the fixed-width big-endian scalar. The caller owns the
// returned copy and should wipe it.
func (k *PrivateKey) Bytes() ([]byte, error) {
	if k.destroyed {
		return nil, ErrKeyDestroyed
	}
	return k.d.Bytes(k.pub.curve.n), nil
}

// Destroy zeroizes the scalar. Every later use fails with ErrKeyDestroyed.
func (k *PrivateKey) Destroy() {
	k.d.Zeroize()
	k.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (k *PrivateKey) Destroyed() bool { return k.destroyed }

// randomScalar samples uniformly from [1, n-1] by masking draws to the bit
// length of n and rejecting out of range values.
func randomScalar(c *Curve, rand io.Reader) (*bignum.Nat, error) {
	if rand == nil {
		return nil, errors.Wrap(ErrRandomnessUnavailable, "no randomness source")
	}
	buf := make([]byte, c.n.Size())
	defer clear(buf)
	excess := len(buf)*8 - c.n.BitLen()

	k := bignum.NewNat(c.n)
	for i := 0; i < maxScalarDraws; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, errors.Wrap(ErrRandomnessUnavailable, err.Error())
		}
		buf[0] &= 0xff >> excess
		if _, err := k.SetBytes(buf, c.n); err != nil {
			continue
		}
		if k.IsZero() == 1 {
			continue
		}
		return k, nil
	}
	k.Zeroize()
	return nil, errors.Wrap(ErrRandomnessUnavailable, "source keeps producing out of range values")
}

func isAllZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
