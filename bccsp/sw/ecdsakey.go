/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"crypto/sha256"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/ecc"
	"github.com/hyperledger/tomcrypt/bccsp/utils"
	"github.com/pkg/errors"
)

type ecdsaPrivateKey struct {
	privKey *ecc.PrivateKey
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *ecdsaPrivateKey) Bytes() ([]byte, error) {
	return nil, errors.New("Not supported.")
}

// SKI returns the subject key identifier of this key.
func (k *ecdsaPrivateKey) SKI() []byte {
	if k.privKey == nil {
		return nil
	}
	return computeECSKI(k.privKey.Public())
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric
func (k *ecdsaPrivateKey) Symmetric() bool {
	return false
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *ecdsaPrivateKey) Private() bool {
	return true
}

// PublicKey returns the corresponding public key part of an asymmetric public/private key pair.
// This method returns an error in symmetric key schemes.
func (k *ecdsaPrivateKey) PublicKey() (bccsp.Key, error) {
	return &ecdsaPublicKey{k.privKey.Public()}, nil
}

// Destroy zeroizes the private scalar.
func (k *ecdsaPrivateKey) Destroy() {
	k.privKey.Destroy()
}

type ecdsaPublicKey struct {
	pubKey *ecc.PublicKey
}

// Bytes returns the PKIX DER encoding of the public key.
func (k *ecdsaPublicKey) Bytes() (raw []byte, err error) {
	raw, err = utils.PublicKeyToDER(k.pubKey)
	if err != nil {
		return nil, errors.Wrap(err, "Failed marshalling key")
	}
	return
}

// SKI returns the subject key identifier of this key.
func (k *ecdsaPublicKey) SKI() []byte {
	if k.pubKey == nil {
		return nil
	}
	return computeECSKI(k.pubKey)
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric
func (k *ecdsaPublicKey) Symmetric() bool {
	return false
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *ecdsaPublicKey) Private() bool {
	return false
}

// PublicKey returns the corresponding public key part of an asymmetric public/private key pair.
// This method returns an error in symmetric key schemes.
func (k *ecdsaPublicKey) PublicKey() (bccsp.Key, error) {
	return k, nil
}

// computeECSKI hashes the uncompressed point 0x04||X||Y.
func computeECSKI(pub *ecc.PublicKey) []byte {
	hash := sha256.New()
	hash.Write([]byte{0x04})
	hash.Write(pub.Bytes())
	return hash.Sum(nil)
}
