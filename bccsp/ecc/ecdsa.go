/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecc

import (
	"bytes"
	"hash"
	"io"

	"github.com/hyperledger/tomcrypt/bccsp/bignum"
	"github.com/pkg/errors"
)

// maxSignAttempts bounds the retries on a zero r or s.
const maxSignAttempts = 8

// Signature is an ECDSA signature with r and s encoded big-endian at the
// byte length of the curve order.
type Signature struct {
	R, S []byte
}

// NewSignature left-pads r and s to the width of c. It rejects values
// that do not fit or fall outside [1, n-1].
func NewSignature(c *Curve, r, s []byte) (*Signature, error) {
	size := c.n.Size()
	r, s = bytes.TrimLeft(r, "\x00"), bytes.TrimLeft(s, "\x00")
	if len(r) > size || len(s) > size {
		return nil, errors.Wrap(ErrInvalidSignature, "value longer than the curve order")
	}
	sig := &Signature{R: make([]byte, size), S: make([]byte, size)}
	copy(sig.R[size-len(r):], r)
	copy(sig.S[size-len(s):], s)
	if _, _, err := sig.scalars(c); err != nil {
		return nil, err
	}
	return sig, nil
}

// ParseSignature decodes the fixed-width encoding r||s.
func ParseSignature(c *Curve, raw []byte) (*Signature, error) {
	size := c.n.Size()
	if len(raw) != 2*size {
		return nil, errors.Wrapf(ErrInvalidSignature, "expected %d bytes, got %d", 2*size, len(raw))
	}
	return NewSignature(c, raw[:size], raw[size:])
}

// Bytes returns the fixed-width encoding r||s.
func (sig *Signature) Bytes() []byte {
	out := make([]byte, 0, len(sig.R)+len(sig.S))
	out = append(out, sig.R...)
	return append(out, sig.S...)
}

// scalars decodes r and s, requiring both in [1, n-1].
func (sig *Signature) scalars(c *Curve) (r, s *bignum.Nat, err error) {
	r, err = bignum.NewNat(c.n).SetBytes(sig.R, c.n)
	if err != nil || r.IsZero() == 1 {
		return nil, nil, errors.Wrap(ErrInvalidSignature, "r out of range")
	}
	s, err = bignum.NewNat(c.n).SetBytes(sig.S, c.n)
	if err != nil || s.IsZero() == 1 {
		return nil, nil, errors.Wrap(ErrInvalidSignature, "s out of range")
	}
	return r, s, nil
}

// Sign signs digest with a per-signature scalar drawn from rand.
func Sign(rand io.Reader, priv *PrivateKey, digest []byte) (*Signature, error) {
	return priv.sign(digest, func() (*bignum.Nat, error) {
		return randomScalar(priv.Curve(), rand)
	})
}

// SignDeterministic signs digest with the per-signature scalar derived from
// the key and digest as in RFC 6979, using newHash for HMAC_DRBG.
func SignDeterministic(priv *PrivateKey, digest []byte, newHash func() hash.Hash) (*Signature, error) {
	if priv.destroyed {
		return nil, ErrKeyDestroyed
	}
	if newHash == nil {
		return nil, errors.New("hash function must not be nil")
	}
	c := priv.Curve()
	x := priv.d.Bytes(c.n)
	defer clear(x)
	e, err := hashToNat(c, digest)
	if err != nil {
		return nil, err
	}
	g := newDeterministicNonce(c, newHash, x, e.Bytes(c.n))
	defer g.wipe()
	return priv.sign(digest, g.next)
}

func (k *PrivateKey) sign(digest []byte, nonce func() (*bignum.Nat, error)) (*Signature, error) {
	if k.destroyed {
		return nil, ErrKeyDestroyed
	}
	if len(digest) == 0 {
		return nil, errors.New("digest must not be empty")
	}
	c := k.Curve()
	e, err := hashToNat(c, digest)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxSignAttempts; attempt++ {
		kk, err := nonce()
		if err != nil {
			return nil, err
		}
		sig, err := c.signWithNonce(k.d, e, kk)
		kk.Zeroize()
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
	return nil, errors.Wrapf(ErrSignatureGenerationFailed, "%d attempts", maxSignAttempts)
}

// signWithNonce returns nil without error when r or s is zero and another
// scalar must be tried.
func (c *Curve) signWithNonce(d, e, k *bignum.Nat) (*Signature, error) {
	kb := k.Bytes(c.n)
	defer clear(kb)

	x, _, err := c.affine(c.scalarBaseMult(kb))
	if err != nil {
		return nil, err
	}
	r, err := bignum.NewNat(c.n).SetOverflowingBytes(x, c.n)
	if err != nil {
		return nil, err
	}
	if r.IsZero() == 1 {
		return nil, nil
	}

	kInv, err := k.Clone().Inverse(c.n)
	if err != nil {
		return nil, err
	}
	defer kInv.Zeroize()

	s := r.Clone().Mul(d, c.n)
	s.Add(e, c.n)
	s.Mul(kInv, c.n)
	if s.IsZero() == 1 {
		return nil, nil
	}
	return &Signature{R: r.Bytes(c.n), S: s.Bytes(c.n)}, nil
}

// Verify checks sig over digest. A signature with r or s outside
// [1, n-1] is reported as ErrInvalidSignature; any other mismatch returns
// false without error.
func Verify(pub *PublicKey, digest []byte, sig *Signature) (bool, error) {
	if pub == nil || sig == nil {
		return false, errors.New("public key and signature must not be nil")
	}
	if pub.curve == nil {
		return false, errors.Wrap(ErrInvalidPublicKey, "key has no curve")
	}
	c := pub.curve
	r, s, err := sig.scalars(c)
	if err != nil {
		return false, err
	}
	e, err := hashToNat(c, digest)
	if err != nil {
		return false, err
	}

	w, err := s.Inverse(c.n)
	if err != nil {
		return false, err
	}
	u1 := e.Mul(w, c.n)
	u2 := r.Clone().Mul(w, c.n)

	sum := c.addPoints(c.scalarBaseMult(u1.Bytes(c.n)), c.scalarMult(pub.point(), u2.Bytes(c.n)))
	x, _, err := c.affine(sum)
	if err != nil {
		return false, nil
	}
	v, err := bignum.NewNat(c.n).SetOverflowingBytes(x, c.n)
	if err != nil {
		return false, err
	}
	return v.Equal(r) == 1, nil
}

// IsLowS reports whether s <= n/2.
func IsLowS(c *Curve, sig *Signature) (bool, error) {
	_, s, err := sig.scalars(c)
	if err != nil {
		return false, err
	}
	negS := bignum.NewNat(c.n).Sub(s, c.n)
	return s.Less(negS)|s.Equal(negS) == 1, nil
}

// ToLowS returns sig with s replaced by n-s when s > n/2, and whether it
// changed anything.
func ToLowS(c *Curve, sig *Signature) (*Signature, bool, error) {
	_, s, err := sig.scalars(c)
	if err != nil {
		return nil, false, err
	}
	negS := bignum.NewNat(c.n).Sub(s, c.n)
	if negS.Less(s) == 0 {
		return sig, false, nil
	}
	return &Signature{R: bytes.Clone(sig.R), S: negS.Bytes(c.n)}, true, nil
}

// hashToNat converts a digest to an integer mod n, keeping its leftmost
// bits up to the bit length of n.
func hashToNat(c *Curve, digest []byte) (*bignum.Nat, error) {
	return bignum.NewNat(c.n).SetOverflowingBytes(bitsToBytes(c, digest), c.n)
}

// bitsToBytes keeps the leftmost BitSize bits of b, right aligned.
func bitsToBytes(c *Curve, b []byte) []byte {
	size := c.n.Size()
	if len(b) > size {
		b = b[:size]
	}
	out := bytes.Clone(b)
	if excess := len(out)*8 - c.n.BitLen(); excess > 0 {
		for i := len(out) - 1; i > 0; i-- {
			out[i] = out[i]>>excess | out[i-1]<<(8-excess)
		}
		out[0] >>= excess
	}
	return out
}
