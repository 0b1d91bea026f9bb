/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/pem"
	"errors"
	"math/big"
	"testing"

	"github.com/hyperledger/tomcrypt/bccsp/eax"
	"github.com/hyperledger/tomcrypt/bccsp/ecc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECDSAKeys(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	// Private Key DER format
	der, err := PrivateKeyToDER(key)
	require.NoError(t, err)
	keyFromDER, err := DERToPrivateKey(der)
	require.NoError(t, err)
	ecdsaKeyFromDer := keyFromDER.(*ecdsa.PrivateKey)
	require.Equal(t, elliptic.P256(), ecdsaKeyFromDer.Curve)
	require.Zero(t, key.D.Cmp(ecdsaKeyFromDer.D))
	require.Zero(t, key.X.Cmp(ecdsaKeyFromDer.X))
	require.Zero(t, key.Y.Cmp(ecdsaKeyFromDer.Y))

	// Private Key PEM format
	rawPEM, err := PrivateKeyToPEM(key, nil)
	require.NoError(t, err)
	keyFromPEM, err := PEMtoPrivateKey(rawPEM, nil)
	require.NoError(t, err)
	ecdsaKeyFromPEM := keyFromPEM.(*ecdsa.PrivateKey)
	require.Zero(t, key.D.Cmp(ecdsaKeyFromPEM.D))
	require.Zero(t, key.X.Cmp(ecdsaKeyFromPEM.X))
	require.Zero(t, key.Y.Cmp(ecdsaKeyFromPEM.Y))

	// Nil Private Key <-> PEM
	_, err = PrivateKeyToPEM(nil, nil)
	require.Error(t, err)
	_, err = PrivateKeyToPEM((*ecdsa.PrivateKey)(nil), nil)
	require.Error(t, err)
	_, err = PEMtoPrivateKey(nil, nil)
	require.Error(t, err)
	_, err = PEMtoPrivateKey([]byte{0, 1, 3, 4}, nil)
	require.Error(t, err)
	_, err = DERToPrivateKey(nil)
	require.Error(t, err)
	_, err = DERToPrivateKey([]byte{0, 1, 3, 4})
	require.Error(t, err)
	_, err = PrivateKeyToDER(nil)
	require.Error(t, err)
	_, err = PrivateKeyToDER("not a key")
	require.EqualError(t, err, "invalid key type string. It must be *ecdsa.PrivateKey or *ecc.PrivateKey")

	// Private Key Encrypted PEM format
	encPEM, err := PrivateKeyToPEM(key, []byte("passwd"))
	require.NoError(t, err)
	block, _ := pem.Decode(encPEM)
	require.True(t, IsEncryptedPEMBlock(block))
	encKeyFromPEM, err := PEMtoPrivateKey(encPEM, []byte("passwd"))
	require.NoError(t, err)
	ecdsaKeyFromEncPEM := encKeyFromPEM.(*ecdsa.PrivateKey)
	require.Zero(t, key.D.Cmp(ecdsaKeyFromEncPEM.D))
	require.Zero(t, key.X.Cmp(ecdsaKeyFromEncPEM.X))
	require.Zero(t, key.Y.Cmp(ecdsaKeyFromEncPEM.Y))

	_, err = PEMtoPrivateKey(encPEM, nil)
	require.EqualError(t, err, "encrypted Key. Need a password")

	// Public Key PEM format
	rawPEM, err = PublicKeyToPEM(&key.PublicKey, nil)
	require.NoError(t, err)
	keyFromPEM, err = PEMtoPublicKey(rawPEM, nil)
	require.NoError(t, err)
	ecdsaPkFromPEM := keyFromPEM.(*ecdsa.PublicKey)
	require.Zero(t, key.X.Cmp(ecdsaPkFromPEM.X))
	require.Zero(t, key.Y.Cmp(ecdsaPkFromPEM.Y))

	// Nil Public Key <-> PEM
	_, err = PublicKeyToPEM(nil, nil)
	require.Error(t, err)
	_, err = PEMtoPublicKey(nil, nil)
	require.Error(t, err)
	_, err = PEMtoPublicKey([]byte{0, 1, 3, 4}, nil)
	require.Error(t, err)

	// Public Key Encrypted PEM format
	encPEM, err = PublicKeyToPEM(&key.PublicKey, []byte("passwd"))
	require.NoError(t, err)
	pkFromEncPEM, err := PEMtoPublicKey(encPEM, []byte("passwd"))
	require.NoError(t, err)
	ecdsaPkFromEncPEM := pkFromEncPEM.(*ecdsa.PublicKey)
	require.Zero(t, key.X.Cmp(ecdsaPkFromEncPEM.X))
	require.Zero(t, key.Y.Cmp(ecdsaPkFromEncPEM.Y))

	_, err = PEMtoPublicKey(encPEM, []byte("passw"))
	require.Error(t, err)
	require.True(t, errors.Is(err, eax.ErrAuthenticationFailure))
	_, err = PEMtoPublicKey(nil, []byte("passwd"))
	require.Error(t, err)
	_, err = PEMtoPublicKey([]byte{0, 1, 3, 4}, []byte("passwd"))
	require.Error(t, err)
}

func TestECCKeyConversion(t *testing.T) {
	for _, c := range []*ecc.Curve{ecc.P224(), ecc.P256(), ecc.P384(), ecc.P521()} {
		t.Run(c.Name(), func(t *testing.T) {
			k, err := ecc.GenerateKey(c, rand.Reader)
			require.NoError(t, err)

			stdKey, err := ToECDSAPrivateKey(k)
			require.NoError(t, err)
			require.Equal(t, c.Std(), stdKey.Curve)
			require.True(t, stdKey.Curve.IsOnCurve(stdKey.X, stdKey.Y))

			back, err := FromECDSAPrivateKey(stdKey)
			require.NoError(t, err)
			require.True(t, back.Public().Equal(k.Public()))

			pub, err := FromECDSAPublicKey(&stdKey.PublicKey)
			require.NoError(t, err)
			require.True(t, pub.Equal(k.Public()))

			// PEM through the engine types.
			rawPEM, err := PrivateKeyToPEM(k, nil)
			require.NoError(t, err)
			imported, err := PEMtoECCPrivateKey(rawPEM, nil)
			require.NoError(t, err)
			require.True(t, imported.Public().Equal(k.Public()))

			rawPEM, err = PublicKeyToPEM(k.Public(), nil)
			require.NoError(t, err)
			importedPub, err := PEMtoECCPublicKey(rawPEM, nil)
			require.NoError(t, err)
			require.True(t, importedPub.Equal(k.Public()))
		})
	}
}

func TestECCKeyConversionFailures(t *testing.T) {
	_, err := ToECDSAPrivateKey(nil)
	require.Error(t, err)
	require.Nil(t, ToECDSAPublicKey(nil))

	k, err := ecc.GenerateKey(ecc.P256(), rand.Reader)
	require.NoError(t, err)
	k.Destroy()
	_, err = ToECDSAPrivateKey(k)
	require.True(t, errors.Is(err, ecc.ErrKeyDestroyed))
	_, err = PrivateKeyToPEM(k, nil)
	require.True(t, errors.Is(err, ecc.ErrKeyDestroyed))

	stdKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	offCurve := stdKey.PublicKey
	offCurve.Y = new(big.Int).Add(stdKey.Y, big.NewInt(1))
	_, err = FromECDSAPublicKey(&offCurve)
	require.True(t, errors.Is(err, ecc.ErrInvalidPublicKey))

	zero := *stdKey
	zero.D = new(big.Int)
	_, err = FromECDSAPrivateKey(&zero)
	require.True(t, errors.Is(err, ecc.ErrInvalidPrivateKey))

	_, err = FromECDSAPrivateKey(nil)
	require.Error(t, err)
	_, err = FromECDSAPublicKey(nil)
	require.Error(t, err)
}

func TestAESKeys(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	raw, err := PEMtoAES(AESToPEM(key), nil)
	require.NoError(t, err)
	require.Equal(t, key, raw)

	encPEM, err := AESToEncryptedPEM(key, []byte("passwd"))
	require.NoError(t, err)
	raw, err = PEMtoAES(encPEM, []byte("passwd"))
	require.NoError(t, err)
	require.Equal(t, key, raw)

	_, err = PEMtoAES(encPEM, []byte("wrong"))
	require.Error(t, err)
	_, err = PEMtoAES(encPEM, nil)
	require.Error(t, err)
	_, err = AESToEncryptedPEM(nil, []byte("passwd"))
	require.Error(t, err)
	_, err = PEMtoAES(nil, nil)
	require.Error(t, err)

	plain, err := AESToEncryptedPEM(key, nil)
	require.NoError(t, err)
	assert.Equal(t, AESToPEM(key), plain)
}

func TestEncryptedPEMBlock(t *testing.T) {
	block, err := EncryptPEMBlock(nil, "TEST", []byte("secret"), []byte("pwd"))
	require.NoError(t, err)
	require.Equal(t, "4,ENCRYPTED", block.Headers["Proc-Type"])
	require.NotContains(t, string(block.Bytes), "secret")

	out, err := DecryptPEMBlock(block, []byte("pwd"))
	require.NoError(t, err)
	require.Equal(t, []byte("secret"), out)

	// The block type is bound to the ciphertext.
	retyped := *block
	retyped.Type = "OTHER"
	_, err = DecryptPEMBlock(&retyped, []byte("pwd"))
	require.True(t, errors.Is(err, eax.ErrAuthenticationFailure))

	_, err = EncryptPEMBlock(nil, "TEST", []byte("secret"), nil)
	require.Error(t, err)

	_, err = DecryptPEMBlock(&pem.Block{Type: "TEST"}, []byte("pwd"))
	require.EqualError(t, err, "PEM block is not encrypted")

	bad := &pem.Block{Type: "TEST", Headers: map[string]string{"DEK-Info": "AES-256-CBC,00"}}
	_, err = DecryptPEMBlock(bad, []byte("pwd"))
	require.EqualError(t, err, "unsupported PEM encryption [AES-256-CBC,00]")

	_, err = EncryptPEMBlock(failingReader{}, "TEST", []byte("secret"), []byte("pwd"))
	require.Error(t, err)
}

func TestECDSASignatureDER(t *testing.T) {
	k, err := ecc.GenerateKey(ecc.P256(), rand.Reader)
	require.NoError(t, err)
	digest := sha256.Sum256([]byte("hello"))
	sig, err := ecc.Sign(rand.Reader, k, digest[:])
	require.NoError(t, err)

	der, err := MarshalECDSASignature(sig)
	require.NoError(t, err)
	// crypto/ecdsa understands the encoding.
	require.True(t, ecdsa.VerifyASN1(ToECDSAPublicKey(k.Public()), digest[:], der))

	parsed, err := UnmarshalECDSASignature(ecc.P256(), der)
	require.NoError(t, err)
	require.Equal(t, sig, parsed)

	stdKey, err := ToECDSAPrivateKey(k)
	require.NoError(t, err)
	stdDER, err := ecdsa.SignASN1(rand.Reader, stdKey, digest[:])
	require.NoError(t, err)
	parsed, err = UnmarshalECDSASignature(ecc.P256(), stdDER)
	require.NoError(t, err)
	valid, err := ecc.Verify(k.Public(), digest[:], parsed)
	require.NoError(t, err)
	require.True(t, valid)

	_, err = MarshalECDSASignature(nil)
	require.Error(t, err)

	for _, bad := range [][]byte{
		nil,
		{0x30, 0x00},
		append(append([]byte{}, der...), 0x00),
		{0x30, 0x06, 0x02, 0x01, 0x00, 0x02, 0x01, 0x01},
		{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0xff},
	} {
		_, err = UnmarshalECDSASignature(ecc.P256(), bad)
		require.True(t, errors.Is(err, ecc.ErrInvalidSignature), "input %x", bad)
	}
}

func TestClone(t *testing.T) {
	src := []byte{0, 1, 2, 3, 4}
	clone := Clone(src)
	require.Equal(t, src, clone)
	clone[0] = 9
	require.Equal(t, byte(0), src[0])
	require.Nil(t, Clone(nil))

	Zeroize(src)
	require.Equal(t, make([]byte, 5), src)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }
