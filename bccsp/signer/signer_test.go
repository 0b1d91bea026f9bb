/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/mocks"
	"github.com/hyperledger/tomcrypt/bccsp/sw"
	"github.com/stretchr/testify/require"
)

func TestInitFailures(t *testing.T) {
	_, err := New(nil, &mocks.MockKey{})
	require.Error(t, err)

	_, err = New(&mocks.MockBCCSP{}, nil)
	require.Error(t, err)

	_, err = New(&mocks.MockBCCSP{}, &mocks.MockKey{Symm: true})
	require.Error(t, err)

	_, err = New(&mocks.MockBCCSP{}, &mocks.MockKey{PKErr: errors.New("No PK")})
	require.Error(t, err)
	require.Equal(t, "failed getting public key: No PK", err.Error())

	_, err = New(&mocks.MockBCCSP{}, &mocks.MockKey{PK: &mocks.MockKey{BytesErr: errors.New("No bytes")}})
	require.Error(t, err)
	require.Equal(t, "failed marshalling public key: No bytes", err.Error())

	_, err = New(&mocks.MockBCCSP{}, &mocks.MockKey{PK: &mocks.MockKey{BytesValue: []byte{0, 1, 2, 3}}})
	require.Error(t, err)
}

func TestInit(t *testing.T) {
	k, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	pkRaw, err := x509.MarshalPKIXPublicKey(&k.PublicKey)
	require.NoError(t, err)

	signer, err := New(&mocks.MockBCCSP{}, &mocks.MockKey{PK: &mocks.MockKey{BytesValue: pkRaw}})
	require.NoError(t, err)
	require.NotNil(t, signer)

	// Test public key
	R, S, err := ecdsa.Sign(rand.Reader, k, []byte{0, 1, 2, 3})
	require.NoError(t, err)

	require.True(t, ecdsa.Verify(signer.Public().(*ecdsa.PublicKey), []byte{0, 1, 2, 3}, R, S))
}

func TestPublic(t *testing.T) {
	pk := &mocks.MockKey{}
	signer := &bccspCryptoSigner{pk: pk}

	pk2 := signer.Public()
	require.NotNil(t, pk, pk2)
}

func TestSign(t *testing.T) {
	expectedSig := []byte{0, 1, 2, 3, 4}
	expectedKey := &mocks.MockKey{}
	expectedDigest := []byte{0, 1, 2, 3, 4, 5}
	expectedOpts := &bccsp.ECDSASignerOpts{Encoding: bccsp.DERSignature, Hash: crypto.SHA256}

	signer := &bccspCryptoSigner{
		key: expectedKey,
		csp: &mocks.MockBCCSP{
			SignArgKey: expectedKey, SignDigestArg: expectedDigest, SignOptsArg: expectedOpts,
			SignValue: expectedSig,
		},
	}
	signature, err := signer.Sign(nil, expectedDigest, &mocks.SignerOpts{HashFuncValue: crypto.SHA256})
	require.NoError(t, err)
	require.Equal(t, expectedSig, signature)

	signature, err = signer.Sign(nil, expectedDigest, crypto.SHA256)
	require.NoError(t, err)
	require.Equal(t, expectedSig, signature)

	signer = &bccspCryptoSigner{
		key: expectedKey,
		csp: &mocks.MockBCCSP{
			SignArgKey: expectedKey, SignDigestArg: expectedDigest, SignOptsArg: expectedOpts,
			SignErr: errors.New("no signature"),
		},
	}
	_, err = signer.Sign(nil, expectedDigest, crypto.SHA256)
	require.Error(t, err)
	require.Equal(t, err.Error(), "no signature")

	signer = &bccspCryptoSigner{
		key: nil,
		csp: &mocks.MockBCCSP{SignArgKey: expectedKey, SignDigestArg: expectedDigest, SignOptsArg: expectedOpts},
	}
	_, err = signer.Sign(nil, expectedDigest, crypto.SHA256)
	require.Error(t, err)
	require.Equal(t, err.Error(), "invalid key")

	signer = &bccspCryptoSigner{
		key: expectedKey,
		csp: &mocks.MockBCCSP{SignArgKey: expectedKey, SignDigestArg: expectedDigest, SignOptsArg: expectedOpts},
	}
	_, err = signer.Sign(nil, nil, crypto.SHA256)
	require.Error(t, err)
	require.Equal(t, err.Error(), "invalid digest")
}

func TestSignerOpts(t *testing.T) {
	o := signerOpts(nil)
	require.Equal(t, &bccsp.ECDSASignerOpts{Encoding: bccsp.DERSignature}, o)

	explicit := &bccsp.ECDSASignerOpts{Deterministic: true}
	require.Same(t, explicit, signerOpts(explicit))
}

func TestSignerWithSoftwareProvider(t *testing.T) {
	csp, err := sw.NewDefaultSecurityLevelWithKeystore(sw.NewDummyKeyStore())
	require.NoError(t, err)

	k, err := csp.KeyGen(&bccsp.ECDSAP256KeyGenOpts{Temporary: true})
	require.NoError(t, err)

	signer, err := New(csp, k)
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("tomcrypt"))
	sig, err := signer.Sign(rand.Reader, digest[:], crypto.SHA256)
	require.NoError(t, err)
	require.True(t, ecdsa.VerifyASN1(signer.Public().(*ecdsa.PublicKey), digest[:], sig))

	// crypto/x509 drives the signer through the crypto.Signer interface
	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "tomcrypt"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		BasicConstraintsValid: true,
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, signer.Public(), signer)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	require.NoError(t, cert.CheckSignatureFrom(cert))
}
