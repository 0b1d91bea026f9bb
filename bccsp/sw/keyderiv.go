/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"crypto/sha256"
	"io"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/ecc"
	"github.com/hyperledger/tomcrypt/bccsp/utils"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

type ecdsaPrivateKeyKeyDeriver struct {
	conf *config
}

// KeyDeriv agrees on a shared secret with the peer key named in opts and
// expands it with HKDF-SHA256 into an AES key.
func (kd *ecdsaPrivateKeyKeyDeriver) KeyDeriv(k bccsp.Key, opts bccsp.KeyDerivOpts) (bccsp.Key, error) {
	deriveOpts, ok := opts.(*bccsp.ECDHKeyDerivOpts)
	if !ok {
		return nil, errors.Errorf("Unsupported 'KeyDerivOpts' provided [%v]", opts.Algorithm())
	}
	if deriveOpts.PublicKey == nil {
		return nil, errors.New("Invalid peer key. It must not be nil.")
	}

	var peer *ecc.PublicKey
	switch pk := deriveOpts.PublicKey.(type) {
	case *ecdsaPublicKey:
		peer = pk.pubKey
	case *ecdsaPrivateKey:
		peer = pk.privKey.Public()
	default:
		return nil, errors.Errorf("Invalid peer key type [%T]", deriveOpts.PublicKey)
	}

	keyLen := deriveOpts.KeyLen
	if keyLen == 0 {
		keyLen = kd.conf.aesByteLength
	}
	if keyLen != 16 && keyLen != 24 && keyLen != 32 {
		return nil, errors.Wrapf(bccsp.ErrInvalidKeyLength, "%d bytes", keyLen)
	}

	secret, err := ecc.ECDH(k.(*ecdsaPrivateKey).privKey, peer)
	if err != nil {
		return nil, err
	}
	defer utils.Zeroize(secret)

	derived := make([]byte, keyLen)
	defer utils.Zeroize(derived)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, deriveOpts.Salt, deriveOpts.Info), derived); err != nil {
		return nil, errors.Wrap(err, "Failed expanding shared secret")
	}

	return newAESKey(derived, false)
}
