/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tomcrypt

import (
	"crypto/sha256"
	"testing"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealProviderErrors(t *testing.T) {
	k := &mocks.MockKey{SKIValue: []byte{0xab}}
	csp := &mocks.MockBCCSP{
		EncryptError: errors.New("boom"),
		DecryptError: errors.New("message authentication failed"),
	}

	_, err := Seal(csp, k, []byte("hello"), SealOptions{TagLen: 12})
	assert.EqualError(t, err, "failed sealing with key [ab]: boom")

	out, err := Open(csp, k, []byte("sealed"), SealOptions{AdditionalData: []byte("ad")})
	assert.EqualError(t, err, "failed opening with key [ab]: message authentication failed")
	assert.Nil(t, out)

	require.Len(t, csp.EncryptOptsArgs, 1)
	assert.Equal(t, &bccsp.EAXModeOpts{TagLen: 12}, csp.EncryptOptsArgs[0])
	require.Len(t, csp.DecryptOptsArgs, 1)
	assert.Equal(t, &bccsp.EAXModeOpts{AdditionalData: []byte("ad")}, csp.DecryptOptsArgs[0])
}

func TestSignProviderErrors(t *testing.T) {
	k := &mocks.MockKey{SKIValue: []byte{0x01, 0x02}}
	msg := []byte("message")
	digest := sha256.Sum256(msg)

	csp := &mocks.MockBCCSP{HashErr: errors.New("no hash")}
	_, err := Sign(csp, k, msg, SignOptions{})
	assert.EqualError(t, err, "failed hashing message: no hash")
	_, err = Verify(csp, k, msg, []byte("sig"), SignOptions{})
	assert.EqualError(t, err, "failed hashing message: no hash")

	csp = &mocks.MockBCCSP{
		HashVal:       digest[:],
		SignArgKey:    k,
		SignDigestArg: digest[:],
		SignOptsArg:   &bccsp.ECDSASignerOpts{Deterministic: true, Encoding: bccsp.DERSignature},
		SignErr:       errors.New("randomness unavailable"),
	}
	_, err = Sign(csp, k, msg, SignOptions{Deterministic: true, DER: true})
	assert.EqualError(t, err, "failed signing with key [0102]: randomness unavailable")

	csp.SignErr = nil
	csp.SignValue = []byte("signature")
	sig, err := Sign(csp, k, msg, SignOptions{Deterministic: true, DER: true})
	require.NoError(t, err)
	assert.Equal(t, []byte("signature"), sig)

	_, err = Sign(csp, k, msg, SignOptions{})
	assert.EqualError(t, err, "failed signing with key [0102]: invalid opts")

	csp.VerifyErr = errors.New("invalid public key")
	_, err = Verify(csp, k, msg, sig, SignOptions{})
	assert.EqualError(t, err, "failed verifying with key [0102]: invalid public key")

	csp.VerifyErr = nil
	csp.ExpectedSig = sig
	valid, err := Verify(csp, k, msg, sig, SignOptions{})
	require.NoError(t, err)
	assert.True(t, valid)
	valid, err = Verify(csp, k, msg, []byte("other"), SignOptions{})
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestKeyGenProviderErrors(t *testing.T) {
	csp := &mocks.MockBCCSP{KeyGenErr: errors.New("read-only key store")}

	_, err := KeyGen(csp, "aes256")
	assert.EqualError(t, err, "failed generating aes256 key: read-only key store")
	require.Len(t, csp.KeyGenOptsArgs, 1)
	assert.IsType(t, &bccsp.AES256KeyGenOpts{}, csp.KeyGenOptsArgs[0])

	_, err = KeyGen(csp, "rsa")
	assert.EqualError(t, err, `unknown key algorithm "rsa"`)
	assert.Len(t, csp.KeyGenOptsArgs, 1)

	csp = &mocks.MockBCCSP{KeyGenValue: &mocks.MockKey{SKIValue: []byte{7}}}
	k, err := KeyGen(csp, "ecdsa-p384")
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, k.SKI())
	assert.IsType(t, &bccsp.ECDSAP384KeyGenOpts{}, csp.KeyGenOptsArgs[0])
}

func TestGetKeyProviderErrors(t *testing.T) {
	csp := &mocks.MockBCCSP{GetKeyErr: errors.New("key not found")}

	_, err := GetKey(csp, "zz")
	assert.ErrorContains(t, err, `invalid SKI "zz"`)

	_, err = GetKey(csp, "")
	assert.EqualError(t, err, "invalid SKI. It must not be empty")

	_, err = GetKey(csp, "0a0b")
	assert.EqualError(t, err, "key not found")

	expected := &mocks.MockKey{SKIValue: []byte{0x0a, 0x0b}}
	csp = &mocks.MockBCCSP{GetKeyValue: expected}
	k, err := GetKey(csp, "0a0b")
	require.NoError(t, err)
	assert.Same(t, expected, k)
}

func TestPublicKeyPEMErrors(t *testing.T) {
	_, err := PublicKeyPEM(&mocks.MockKey{Symm: true, SKIValue: []byte{1}})
	assert.EqualError(t, err, "key [01] is symmetric and has no public key")
}
