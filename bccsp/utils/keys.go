/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"math/big"

	"github.com/hyperledger/tomcrypt/bccsp/ecc"
	"github.com/pkg/errors"
)

const (
	privateKeyPEMType = "PRIVATE KEY"
	publicKeyPEMType  = "PUBLIC KEY"
	aesKeyPEMType     = "AES PRIVATE KEY"
)

// ToECDSAPrivateKey converts an engine private key into its crypto/ecdsa
// counterpart so it can be handed to x509.
func ToECDSAPrivateKey(k *ecc.PrivateKey) (*ecdsa.PrivateKey, error) {
	if k == nil {
		return nil, errors.New("invalid ecc private key. It must be different from nil")
	}
	d, err := k.Bytes()
	if err != nil {
		return nil, err
	}
	defer Zeroize(d)

	return &ecdsa.PrivateKey{
		PublicKey: *ToECDSAPublicKey(k.Public()),
		D:         new(big.Int).SetBytes(d),
	}, nil
}

// ToECDSAPublicKey converts an engine public key into a *ecdsa.PublicKey.
func ToECDSAPublicKey(k *ecc.PublicKey) *ecdsa.PublicKey {
	if k == nil {
		return nil
	}
	return &ecdsa.PublicKey{
		Curve: k.Curve().Std(),
		X:     new(big.Int).SetBytes(k.X()),
		Y:     new(big.Int).SetBytes(k.Y()),
	}
}

// FromECDSAPrivateKey imports a *ecdsa.PrivateKey into the engine. The
// scalar is range checked and the public point recomputed.
func FromECDSAPrivateKey(k *ecdsa.PrivateKey) (*ecc.PrivateKey, error) {
	if k == nil || k.D == nil {
		return nil, errors.New("invalid ecdsa private key. It must be different from nil")
	}
	c, err := ecc.CurveFor(k.Curve)
	if err != nil {
		return nil, err
	}
	if k.D.Sign() <= 0 || k.D.BitLen() > c.BitSize() {
		return nil, errors.Wrap(ecc.ErrInvalidPrivateKey, "scalar out of range")
	}
	d := k.D.FillBytes(make([]byte, c.Size()))
	defer Zeroize(d)

	return ecc.NewPrivateKey(c, d)
}

// FromECDSAPublicKey imports and validates a *ecdsa.PublicKey.
func FromECDSAPublicKey(k *ecdsa.PublicKey) (*ecc.PublicKey, error) {
	if k == nil || k.X == nil || k.Y == nil {
		return nil, errors.New("invalid ecdsa public key. It must be different from nil")
	}
	c, err := ecc.CurveFor(k.Curve)
	if err != nil {
		return nil, err
	}
	if k.X.Sign() < 0 || k.Y.Sign() < 0 || k.X.BitLen() > c.Size()*8 || k.Y.BitLen() > c.Size()*8 {
		return nil, errors.Wrap(ecc.ErrInvalidPublicKey, "coordinate out of range")
	}
	raw := make([]byte, 2*c.Size())
	k.X.FillBytes(raw[:c.Size()])
	k.Y.FillBytes(raw[c.Size():])

	return ecc.NewPublicKey(c, raw)
}

// PrivateKeyToDER marshals a private key into PKCS#8 DER.
func PrivateKeyToDER(privateKey interface{}) ([]byte, error) {
	k, err := asECDSAPrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return x509.MarshalPKCS8PrivateKey(k)
}

// PrivateKeyToPEM converts a private key to PEM. A non-empty pwd produces
// an encrypted PEM block.
func PrivateKeyToPEM(privateKey interface{}, pwd []byte) ([]byte, error) {
	der, err := PrivateKeyToDER(privateKey)
	if err != nil {
		return nil, err
	}
	defer Zeroize(der)

	return encodePEM(privateKeyPEMType, der, pwd)
}

// DERToPrivateKey parses a PKCS#8 or SEC 1 encoded ECDSA private key.
func DERToPrivateKey(der []byte) (key interface{}, err error) {
	if len(der) == 0 {
		return nil, errors.New("invalid DER. It must be different from nil")
	}

	if key, err = x509.ParsePKCS8PrivateKey(der); err == nil {
		switch key.(type) {
		case *ecdsa.PrivateKey:
			return key, nil
		default:
			return nil, errors.New("found unknown private key type in PKCS#8 wrapping")
		}
	}

	if key, err = x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}

	return nil, errors.New("invalid key type. The DER must contain an ecdsa.PrivateKey")
}

// PEMtoPrivateKey unmarshals a PEM encoded private key into a
// *ecdsa.PrivateKey, decrypting it with pwd when needed.
func PEMtoPrivateKey(raw []byte, pwd []byte) (interface{}, error) {
	der, err := decodePEM(raw, pwd)
	if err != nil {
		return nil, err
	}
	return DERToPrivateKey(der)
}

// PEMtoECCPrivateKey is PEMtoPrivateKey followed by FromECDSAPrivateKey.
func PEMtoECCPrivateKey(raw []byte, pwd []byte) (*ecc.PrivateKey, error) {
	key, err := PEMtoPrivateKey(raw, pwd)
	if err != nil {
		return nil, err
	}
	return FromECDSAPrivateKey(key.(*ecdsa.PrivateKey))
}

// PublicKeyToDER marshals a public key into PKIX DER.
func PublicKeyToDER(publicKey interface{}) ([]byte, error) {
	k, err := asECDSAPublicKey(publicKey)
	if err != nil {
		return nil, err
	}
	return x509.MarshalPKIXPublicKey(k)
}

// PublicKeyToPEM converts a public key to PEM, encrypted when pwd is set.
func PublicKeyToPEM(publicKey interface{}, pwd []byte) ([]byte, error) {
	der, err := PublicKeyToDER(publicKey)
	if err != nil {
		return nil, err
	}
	return encodePEM(publicKeyPEMType, der, pwd)
}

// DERToPublicKey parses a PKIX public key.
func DERToPublicKey(raw []byte) (pub interface{}, err error) {
	if len(raw) == 0 {
		return nil, errors.New("invalid DER. It must be different from nil")
	}

	key, err := x509.ParsePKIXPublicKey(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed parsing PKIX public key")
	}
	return key, nil
}

// PEMtoPublicKey unmarshals a PEM encoded PKIX public key.
func PEMtoPublicKey(raw []byte, pwd []byte) (interface{}, error) {
	der, err := decodePEM(raw, pwd)
	if err != nil {
		return nil, err
	}
	return DERToPublicKey(der)
}

// PEMtoECCPublicKey is PEMtoPublicKey followed by FromECDSAPublicKey.
func PEMtoECCPublicKey(raw []byte, pwd []byte) (*ecc.PublicKey, error) {
	key, err := PEMtoPublicKey(raw, pwd)
	if err != nil {
		return nil, err
	}
	k, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.Errorf("invalid key type %T. It must be *ecdsa.PublicKey", key)
	}
	return FromECDSAPublicKey(k)
}

// AESToPEM encapsulates a raw AES key in a PEM block.
func AESToPEM(raw []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: aesKeyPEMType, Bytes: raw})
}

// AESToEncryptedPEM encapsulates a raw AES key in a PEM block encrypted
// under pwd. An empty pwd falls back to AESToPEM.
func AESToEncryptedPEM(raw []byte, pwd []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, errors.New("invalid aes key. It must be different from nil")
	}
	return encodePEM(aesKeyPEMType, raw, pwd)
}

// PEMtoAES extracts a raw AES key from a PEM block.
func PEMtoAES(raw []byte, pwd []byte) ([]byte, error) {
	return decodePEM(raw, pwd)
}

func encodePEM(typ string, der, pwd []byte) ([]byte, error) {
	if len(pwd) == 0 {
		return pem.EncodeToMemory(&pem.Block{Type: typ, Bytes: der}), nil
	}

	block, err := EncryptPEMBlock(nil, typ, der, pwd)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(block), nil
}

func decodePEM(raw []byte, pwd []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, errors.New("invalid PEM. It must be different from nil")
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("failed decoding PEM. Block must be different from nil")
	}

	if IsEncryptedPEMBlock(block) {
		if len(pwd) == 0 {
			return nil, errors.New("encrypted Key. Need a password")
		}
		decrypted, err := DecryptPEMBlock(block, pwd)
		if err != nil {
			return nil, errors.WithMessage(err, "failed PEM decryption")
		}
		return decrypted, nil
	}

	return block.Bytes, nil
}

func asECDSAPrivateKey(privateKey interface{}) (*ecdsa.PrivateKey, error) {
	switch k := privateKey.(type) {
	case *ecdsa.PrivateKey:
		if k == nil {
			return nil, errors.New("invalid ecdsa private key. It must be different from nil")
		}
		return k, nil
	case *ecc.PrivateKey:
		return ToECDSAPrivateKey(k)
	case nil:
		return nil, errors.New("invalid key. It must be different from nil")
	default:
		return nil, errors.Errorf("invalid key type %T. It must be *ecdsa.PrivateKey or *ecc.PrivateKey", privateKey)
	}
}

func asECDSAPublicKey(publicKey interface{}) (*ecdsa.PublicKey, error) {
	switch k := publicKey.(type) {
	case *ecdsa.PublicKey:
		if k == nil {
			return nil, errors.New("invalid ecdsa public key. It must be different from nil")
		}
		return k, nil
	case *ecc.PublicKey:
		if k == nil {
			return nil, errors.New("invalid ecc public key. It must be different from nil")
		}
		return ToECDSAPublicKey(k), nil
	case nil:
		return nil, errors.New("invalid public key. It must be different from nil")
	default:
		return nil, errors.Errorf("invalid key type %T. It must be *ecdsa.PublicKey or *ecc.PublicKey", publicKey)
	}
}
