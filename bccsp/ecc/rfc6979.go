/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecc

import (
	"crypto/hmac"
	"hash"

	"github.com/hyperledger/tomcrypt/bccsp/bignum"
)

// deterministicNonce is the HMAC_DRBG of RFC 6979 section 3.2. Each call
// to next continues the same stream, so a candidate that produced r == 0 or
// s == 0 is followed by a fresh one.
type deterministicNonce struct {
	c       *Curve
	newHash func() hash.Hash
	k, v    []byte
	started bool
}

func newDeterministicNonce(c *Curve, newHash func() hash.Hash, x, h1 []byte) *deterministicNonce {
	size := newHash().Size()
	g := &deterministicNonce{
		c:       c,
		newHash: newHash,
		k:       make([]byte, size),
		v:       make([]byte, size),
	}
	for i := range g.v {
		g.v[i] = 0x01
	}
	g.k = g.mac(g.k, g.v, []byte{0x00}, x, h1)
	g.v = g.mac(g.k, g.v)
	g.k = g.mac(g.k, g.v, []byte{0x01}, x, h1)
	g.v = g.mac(g.k, g.v)
	return g
}

func (g *deterministicNonce) mac(key []byte, parts ...[]byte) []byte {
	m := hmac.New(g.newHash, key)
	for _, p := range parts {
		m.Write(p)
	}
	return m.Sum(nil)
}

func (g *deterministicNonce) next() (*bignum.Nat, error) {
	size := g.c.n.Size()
	for {
		if g.started {
			g.k = g.mac(g.k, g.v, []byte{0x00})
			g.v = g.mac(g.k, g.v)
		}
		g.started = true

		t := make([]byte, 0, size+len(g.v))
		for len(t) < size {
			g.v = g.mac(g.k, g.v)
			t = append(t, g.v...)
		}
		candidate := bitsToBytes(g.c, t)
		clear(t)

		k, err := bignum.NewNat(g.c.n).SetBytes(candidate, g.c.n)
		clear(candidate)
		if err == nil && k.IsZero() == 0 {
			return k, nil
		}
	}
}

func (g *deterministicNonce) wipe() {
	clear(g.k)
	clear(g.v)
}
