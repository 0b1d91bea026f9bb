/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecc

import (
	"bytes"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"math/big"
	"testing"

	"github.com/hyperledger/tomcrypt/bccsp/bignum"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stdPublicKey(pub *PublicKey) *ecdsa.PublicKey {
	return &ecdsa.PublicKey{
		Curve: pub.Curve().Std(),
		X:     new(big.Int).SetBytes(pub.X()),
		Y:     new(big.Int).SetBytes(pub.Y()),
	}
}

func TestCurveLookup(t *testing.T) {
	for _, name := range []string{"P-224", "P-256", "P-384", "P-521"} {
		c, err := CurveByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())

		same, err := CurveFor(c.Std())
		require.NoError(t, err)
		assert.Same(t, c, same)
	}
	_, err := CurveByName("P-192")
	assert.EqualError(t, err, `unsupported curve "P-192"`)
	_, err = CurveFor(nil)
	assert.Error(t, err)

	sizes := map[int]*Curve{1: P224(), 12: P224(), 28: P224(), 29: P256(), 32: P256(), 48: P384(), 65: P521(), 66: P521()}
	for size, want := range sizes {
		c, err := CurveForKeySize(size)
		require.NoError(t, err)
		assert.Same(t, want, c, "size %d", size)
	}
	for _, size := range []int{0, -1, 67} {
		_, err := CurveForKeySize(size)
		assert.Error(t, err)
	}

	assert.Equal(t, 32, P256().Size())
	assert.Equal(t, 521, P521().BitSize())
	assert.Equal(t, P256().Std().Params().N.Bytes(), P256().Order())
}

func TestPublicKeyDerivationMatchesStandardLibrary(t *testing.T) {
	pairs := map[*Curve]ecdh.Curve{
		P256(): ecdh.P256(),
		P384(): ecdh.P384(),
		P521(): ecdh.P521(),
	}
	for c, std := range pairs {
		priv, err := GenerateKey(c, rand.Reader)
		require.NoError(t, err)
		d, err := priv.Bytes()
		require.NoError(t, err)

		ref, err := std.NewPrivateKey(d)
		require.NoError(t, err)
		assert.Equal(t, ref.PublicKey().Bytes()[1:], priv.Public().Bytes(), c.Name())
	}

	// P-224 is not offered by crypto/ecdh.
	priv, err := GenerateKey(P224(), rand.Reader)
	require.NoError(t, err)
	assert.True(t, P224().Std().IsOnCurve(new(big.Int).SetBytes(priv.Public().X()), new(big.Int).SetBytes(priv.Public().Y())))
}

func TestSignVerifyInterop(t *testing.T) {
	for _, c := range []*Curve{P224(), P256(), P384(), P521()} {
		t.Run(c.Name(), func(t *testing.T) {
			priv, err := GenerateKey(c, rand.Reader)
			require.NoError(t, err)
			digest := sha512.Sum512([]byte("interop"))

			sig, err := Sign(rand.Reader, priv, digest[:])
			require.NoError(t, err)
			assert.Len(t, sig.Bytes(), 2*c.Size())

			ok, err := Verify(priv.Public(), digest[:], sig)
			require.NoError(t, err)
			assert.True(t, ok)

			stdPub := stdPublicKey(priv.Public())
			assert.True(t, ecdsa.Verify(stdPub, digest[:], new(big.Int).SetBytes(sig.R), new(big.Int).SetBytes(sig.S)))

			d, err := priv.Bytes()
			require.NoError(t, err)
			stdPriv := &ecdsa.PrivateKey{PublicKey: *stdPub, D: new(big.Int).SetBytes(d)}
			r, s, err := ecdsa.Sign(rand.Reader, stdPriv, digest[:])
			require.NoError(t, err)
			theirs, err := NewSignature(c, r.Bytes(), s.Bytes())
			require.NoError(t, err)
			ok, err = Verify(priv.Public(), digest[:], theirs)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestRFC6979(t *testing.T) {
	// RFC 6979 A.2.5, P-256 with SHA-256.
	d, _ := hex.DecodeString("c9afa9d845ba75166b5c215767b1d6934e50c3db36e89b127b8a622b120f6721")
	priv, err := NewPrivateKey(P256(), d)
	require.NoError(t, err)
	assert.Equal(t,
		"60fed4ba255a9d31c961eb74c6356d68c049b8923b61fa6ce669622e60f29fb6"+
			"7903fe1008b8bc99a41ae9e95628bc64f2f1b20c2d7e9f5177a3c294d4462299",
		hex.EncodeToString(priv.Public().Bytes()))

	tests := []struct {
		msg, r, s string
	}{
		{
			msg: "sample",
			r:   "efd48b2aacb6a8fd1140dd9cd45e81d69d2c877b56aaf991c34d0ea84eaf3716",
			s:   "f7cb1c942d657c41d436c7a1b6e29f65f3e900dbb9aff4064dc4ab2f843acda8",
		},
		{
			msg: "test",
			r:   "f1abb023518351cd71d881567b1ea663ed3efcf6c5132b354f28d3b0b7d38367",
			s:   "019f4113742a2b14bd25926b49c649155f267e60d3814b4c0cc84250e46f0083",
		},
	}
	for _, tt := range tests {
		digest := sha256.Sum256([]byte(tt.msg))
		sig, err := SignDeterministic(priv, digest[:], sha256.New)
		require.NoError(t, err)
		assert.Equal(t, tt.r, hex.EncodeToString(sig.R), tt.msg)
		assert.Equal(t, tt.s, hex.EncodeToString(sig.S), tt.msg)

		again, err := SignDeterministic(priv, digest[:], sha256.New)
		require.NoError(t, err)
		assert.Equal(t, sig, again)
	}

	_, err = SignDeterministic(priv, []byte{1}, nil)
	assert.EqualError(t, err, "hash function must not be nil")
}

func TestForgeryRejection(t *testing.T) {
	priv, err := GenerateKey(P256(), rand.Reader)
	require.NoError(t, err)
	digest := sha256.Sum256([]byte("message"))
	sig, err := Sign(rand.Reader, priv, digest[:])
	require.NoError(t, err)

	flip := func(b []byte, bit int) []byte {
		c := bytes.Clone(b)
		c[bit/8] ^= 1 << (bit % 8)
		return c
	}

	for _, bit := range []int{0, 7, 100, 255} {
		ok, err := Verify(priv.Public(), flip(digest[:], bit), sig)
		require.NoError(t, err)
		assert.False(t, ok, "digest bit %d", bit)

		for _, forged := range []*Signature{
			{R: flip(sig.R, bit), S: sig.S},
			{R: sig.R, S: flip(sig.S, bit)},
		} {
			ok, err := Verify(priv.Public(), digest[:], forged)
			if err != nil {
				assert.True(t, errors.Is(err, ErrInvalidSignature))
				continue
			}
			assert.False(t, ok, "signature bit %d", bit)
		}
	}

	n := P256().Order()
	for _, forged := range []*Signature{
		{R: make([]byte, 32), S: sig.S},
		{R: sig.R, S: make([]byte, 32)},
		{R: n, S: sig.S},
		{R: sig.R, S: n},
	} {
		ok, err := Verify(priv.Public(), digest[:], forged)
		assert.ErrorIs(t, err, ErrInvalidSignature)
		assert.False(t, ok)
	}

	other, err := GenerateKey(P256(), rand.Reader)
	require.NoError(t, err)
	ok, err := Verify(other.Public(), digest[:], sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidPublicKeys(t *testing.T) {
	c := P256()
	priv, err := GenerateKey(c, rand.Reader)
	require.NoError(t, err)
	raw := priv.Public().Bytes()

	pub, err := NewPublicKey(c, raw)
	require.NoError(t, err)
	assert.True(t, pub.Equal(priv.Public()))

	offCurve := bytes.Clone(raw)
	offCurve[len(offCurve)-1] ^= 0x01
	_, err = NewPublicKey(c, offCurve)
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
	assert.Contains(t, err.Error(), "not on curve")

	_, err = NewPublicKey(c, make([]byte, 64))
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
	assert.Contains(t, err.Error(), "infinity")

	_, err = NewPublicKey(c, raw[:63])
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	tooBig := bytes.Clone(raw)
	copy(tooBig[:32], c.Std().Params().P.Bytes())
	_, err = NewPublicKey(c, tooBig)
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
	assert.Contains(t, err.Error(), "out of range")

	_, err = NewPublicKey(P384(), raw)
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	digest := sha256.Sum256([]byte("uninitialized key"))
	sig, err := Sign(rand.Reader, priv, digest[:])
	require.NoError(t, err)
	valid, err := Verify(&PublicKey{}, digest[:], sig)
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
	assert.False(t, valid)
}

func TestPrivateKeyImport(t *testing.T) {
	c := P256()
	_, err := NewPrivateKey(c, make([]byte, 32))
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
	_, err = NewPrivateKey(c, c.Order())
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
	_, err = NewPrivateKey(c, []byte{1})
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)

	priv, err := GenerateKey(c, rand.Reader)
	require.NoError(t, err)
	d, err := priv.Bytes()
	require.NoError(t, err)
	imported, err := NewPrivateKey(c, d)
	require.NoError(t, err)
	assert.True(t, imported.Public().Equal(priv.Public()))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy pool closed") }

type constantReader byte

func (r constantReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r)
	}
	return len(p), nil
}

func TestRandomnessUnavailable(t *testing.T) {
	_, err := GenerateKey(P256(), failingReader{})
	assert.ErrorIs(t, err, ErrRandomnessUnavailable)
	assert.Contains(t, err.Error(), "entropy pool closed")

	_, err = GenerateKey(P256(), nil)
	assert.ErrorIs(t, err, ErrRandomnessUnavailable)

	_, err = GenerateKey(P256(), constantReader(0xff))
	assert.ErrorIs(t, err, ErrRandomnessUnavailable)

	_, err = GenerateKey(P256(), io.LimitReader(rand.Reader, 8))
	assert.ErrorIs(t, err, ErrRandomnessUnavailable)

	priv, err := GenerateKey(P256(), rand.Reader)
	require.NoError(t, err)
	_, err = Sign(failingReader{}, priv, []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrRandomnessUnavailable)
}

func TestSignatureGenerationFailed(t *testing.T) {
	c := P256()
	priv, err := GenerateKey(c, rand.Reader)
	require.NoError(t, err)

	// Pick the digest e = -r*d mod n so that every attempt with the same k
	// ends with s == 0.
	k := bignum.NewNat(c.n).SetUint(7, c.n)
	x, _, err := c.affine(c.scalarBaseMult(k.Bytes(c.n)))
	require.NoError(t, err)
	n := new(big.Int).SetBytes(c.Order())
	r := new(big.Int).Mod(new(big.Int).SetBytes(x), n)
	d, err := priv.Bytes()
	require.NoError(t, err)
	e := new(big.Int).Mul(r, new(big.Int).SetBytes(d))
	e.Neg(e).Mod(e, n)

	calls := 0
	_, err = priv.sign(e.FillBytes(make([]byte, 32)), func() (*bignum.Nat, error) {
		calls++
		return bignum.NewNat(c.n).SetUint(7, c.n), nil
	})
	assert.ErrorIs(t, err, ErrSignatureGenerationFailed)
	assert.Equal(t, maxSignAttempts, calls)
}

func TestDestroy(t *testing.T) {
	priv, err := GenerateKey(P384(), rand.Reader)
	require.NoError(t, err)
	peer, err := GenerateKey(P384(), rand.Reader)
	require.NoError(t, err)

	priv.Destroy()
	assert.True(t, priv.Destroyed())
	assert.Equal(t, uint64(1), priv.d.IsZero())

	_, err = priv.Bytes()
	assert.ErrorIs(t, err, ErrKeyDestroyed)
	_, err = Sign(rand.Reader, priv, []byte{1})
	assert.ErrorIs(t, err, ErrKeyDestroyed)
	_, err = SignDeterministic(priv, []byte{1}, sha512.New384)
	assert.ErrorIs(t, err, ErrKeyDestroyed)
	_, err = ECDH(priv, peer.Public())
	assert.ErrorIs(t, err, ErrKeyDestroyed)

	// The public half stays usable.
	assert.Len(t, priv.Public().Bytes(), 96)
}

func TestECDH(t *testing.T) {
	for c, std := range map[*Curve]ecdh.Curve{P256(): ecdh.P256(), P521(): ecdh.P521()} {
		alice, err := GenerateKey(c, rand.Reader)
		require.NoError(t, err)
		bob, err := GenerateKey(c, rand.Reader)
		require.NoError(t, err)

		ab, err := ECDH(alice, bob.Public())
		require.NoError(t, err)
		ba, err := ECDH(bob, alice.Public())
		require.NoError(t, err)
		assert.Equal(t, ab, ba)

		d, err := alice.Bytes()
		require.NoError(t, err)
		ref, err := std.NewPrivateKey(d)
		require.NoError(t, err)
		refPub, err := std.NewPublicKey(append([]byte{0x04}, bob.Public().Bytes()...))
		require.NoError(t, err)
		want, err := ref.ECDH(refPub)
		require.NoError(t, err)
		assert.Equal(t, want, ab)
	}

	a, err := GenerateKey(P256(), rand.Reader)
	require.NoError(t, err)
	b, err := GenerateKey(P384(), rand.Reader)
	require.NoError(t, err)
	_, err = ECDH(a, b.Public())
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = ECDH(a, &PublicKey{})
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
	_, err = ECDH(a, nil)
	assert.EqualError(t, err, "keys must not be nil")
}

func TestLowS(t *testing.T) {
	c := P256()
	priv, err := GenerateKey(c, rand.Reader)
	require.NoError(t, err)
	digest := sha256.Sum256([]byte("low-s"))

	for i := 0; i < 8; i++ {
		sig, err := Sign(rand.Reader, priv, digest[:])
		require.NoError(t, err)

		low, modified, err := ToLowS(c, sig)
		require.NoError(t, err)
		isLow, err := IsLowS(c, low)
		require.NoError(t, err)
		assert.True(t, isLow)

		wasLow, err := IsLowS(c, sig)
		require.NoError(t, err)
		assert.Equal(t, !wasLow, modified)

		ok, err := Verify(priv.Public(), digest[:], low)
		require.NoError(t, err)
		assert.True(t, ok, "both s and n-s verify")
	}
}

func TestSignatureEncoding(t *testing.T) {
	c := P384()
	raw := make([]byte, 96)
	raw[47], raw[95] = 1, 2
	sig, err := ParseSignature(c, raw)
	require.NoError(t, err)
	assert.Equal(t, raw, sig.Bytes())

	_, err = ParseSignature(c, raw[:95])
	assert.ErrorIs(t, err, ErrInvalidSignature)

	sig, err = NewSignature(c, []byte{0, 0, 5}, []byte{6})
	require.NoError(t, err)
	assert.Len(t, sig.R, 48)
	assert.Equal(t, byte(5), sig.R[47])

	_, err = NewSignature(c, make([]byte, 49), []byte{1})
	assert.ErrorIs(t, err, ErrInvalidSignature, "zero r")
	_, err = NewSignature(c, bytes.Repeat([]byte{1}, 49), []byte{1})
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDigestTruncation(t *testing.T) {
	// For P-521 a 66 byte input keeps its leftmost 521 bits.
	in := bytes.Repeat([]byte{0xff}, 70)
	out := bitsToBytes(P521(), in)
	assert.Len(t, out, 66)
	assert.Equal(t, byte(0x01), out[0])
	assert.Equal(t, byte(0xff), out[65])

	// Shorter digests are used whole.
	assert.Equal(t, []byte{1, 2, 3}, bitsToBytes(P256(), []byte{1, 2, 3}))

	priv, err := GenerateKey(P256(), rand.Reader)
	require.NoError(t, err)
	_, err = Sign(rand.Reader, priv, nil)
	assert.EqualError(t, err, "digest must not be empty")
}
