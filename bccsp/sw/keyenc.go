/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/utils"
	"github.com/pkg/errors"
)

// Suffixes tagging the kind of a persisted key.
const (
	privateKeySuffix = "sk"
	publicKeySuffix  = "pk"
	secretKeySuffix  = "key"
)

// lookupOrder is the order in which persistent keystores probe for a SKI.
// A private key shares its SKI with its public key and takes precedence.
var lookupOrder = []string{privateKeySuffix, secretKeySuffix, publicKeySuffix}

// marshalKey encodes k as PEM, encrypted under pwd when pwd is not empty,
// and returns the suffix identifying its kind.
func marshalKey(k bccsp.Key, pwd []byte) (suffix string, raw []byte, err error) {
	switch kk := k.(type) {
	case *ecdsaPrivateKey:
		raw, err = utils.PrivateKeyToPEM(kk.privKey, pwd)
		if err != nil {
			return "", nil, errors.WithMessage(err, "failed encoding ECDSA private key")
		}
		return privateKeySuffix, raw, nil

	case *ecdsaPublicKey:
		raw, err = utils.PublicKeyToPEM(kk.pubKey, pwd)
		if err != nil {
			return "", nil, errors.WithMessage(err, "failed encoding ECDSA public key")
		}
		return publicKeySuffix, raw, nil

	case *aesPrivateKey:
		raw, err = aesKeyToPEM(kk, pwd)
		if err != nil {
			return "", nil, errors.WithMessage(err, "failed encoding AES key")
		}
		return secretKeySuffix, raw, nil

	default:
		return "", nil, errors.Errorf("key type not recognized [%T]", k)
	}
}

// unmarshalKey reverses marshalKey.
func unmarshalKey(suffix string, raw, pwd []byte) (bccsp.Key, error) {
	switch suffix {
	case privateKeySuffix:
		key, err := utils.PEMtoECCPrivateKey(raw, pwd)
		if err != nil {
			return nil, errors.WithMessage(err, "failed parsing private key")
		}
		return &ecdsaPrivateKey{key}, nil

	case publicKeySuffix:
		key, err := utils.PEMtoECCPublicKey(raw, pwd)
		if err != nil {
			return nil, errors.WithMessage(err, "failed parsing public key")
		}
		return &ecdsaPublicKey{key}, nil

	case secretKeySuffix:
		key, err := utils.PEMtoAES(raw, pwd)
		if err != nil {
			return nil, errors.WithMessage(err, "failed parsing key")
		}
		defer utils.Zeroize(key)
		return newAESKey(key, false)

	default:
		return nil, errors.Errorf("key suffix not recognized [%s]", suffix)
	}
}

// aesKeyToPEM encodes the raw key, encrypted under pwd when it is set.
func aesKeyToPEM(k *aesPrivateKey, pwd []byte) ([]byte, error) {
	k.mutex.RLock()
	defer k.mutex.RUnlock()

	if k.destroyed {
		return nil, bccsp.ErrKeyDestroyed
	}
	if len(pwd) == 0 {
		return utils.AESToPEM(k.privKey), nil
	}
	return utils.AESToEncryptedPEM(k.privKey, pwd)
}
