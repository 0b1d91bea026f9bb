/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tomcrypt

import (
	"encoding/hex"
	"encoding/pem"
	"sort"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/common/flogging"
	"github.com/pkg/errors"
)

var logger = flogging.MustGetLogger("tomcrypt")

const publicKeyPEMType = "PUBLIC KEY"

var keyGenOpts = map[string]func() bccsp.KeyGenOpts{
	"ecdsa":      func() bccsp.KeyGenOpts { return &bccsp.ECDSAKeyGenOpts{} },
	"ecdsa-p224": func() bccsp.KeyGenOpts { return &bccsp.ECDSAP224KeyGenOpts{} },
	"ecdsa-p256": func() bccsp.KeyGenOpts { return &bccsp.ECDSAP256KeyGenOpts{} },
	"ecdsa-p384": func() bccsp.KeyGenOpts { return &bccsp.ECDSAP384KeyGenOpts{} },
	"ecdsa-p521": func() bccsp.KeyGenOpts { return &bccsp.ECDSAP521KeyGenOpts{} },
	"aes":        func() bccsp.KeyGenOpts { return &bccsp.AESKeyGenOpts{} },
	"aes128":     func() bccsp.KeyGenOpts { return &bccsp.AES128KeyGenOpts{} },
	"aes192":     func() bccsp.KeyGenOpts { return &bccsp.AES192KeyGenOpts{} },
	"aes256":     func() bccsp.KeyGenOpts { return &bccsp.AES256KeyGenOpts{} },
}

// KeyGenAlgorithms lists the algorithm names accepted by KeyGen.
func KeyGenAlgorithms() []string {
	names := make([]string, 0, len(keyGenOpts))
	for name := range keyGenOpts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeyGen generates a persistent key. The provider must be backed by a
// writable key store.
func KeyGen(csp bccsp.BCCSP, algorithm string) (bccsp.Key, error) {
	newOpts, ok := keyGenOpts[algorithm]
	if !ok {
		return nil, errors.Errorf("unknown key algorithm %q", algorithm)
	}

	k, err := csp.KeyGen(newOpts())
	if err != nil {
		return nil, errors.WithMessagef(err, "failed generating %s key", algorithm)
	}
	logger.Infof("Generated %s key [%x]", algorithm, k.SKI())
	return k, nil
}

// GetKey loads the key identified by the hex encoded SKI.
func GetKey(csp bccsp.BCCSP, skiHex string) (bccsp.Key, error) {
	ski, err := hex.DecodeString(skiHex)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid SKI %q", skiHex)
	}
	if len(ski) == 0 {
		return nil, errors.New("invalid SKI. It must not be empty")
	}
	return csp.GetKey(ski)
}

// PublicKeyPEM encodes the public half of k as a PKIX PEM block.
func PublicKeyPEM(k bccsp.Key) ([]byte, error) {
	if k.Symmetric() {
		return nil, errors.Errorf("key [%x] is symmetric and has no public key", k.SKI())
	}
	pub, err := k.PublicKey()
	if err != nil {
		return nil, errors.WithMessage(err, "failed getting public key")
	}
	der, err := pub.Bytes()
	if err != nil {
		return nil, errors.WithMessage(err, "failed marshalling public key")
	}
	return pem.EncodeToMemory(&pem.Block{Type: publicKeyPEMType, Bytes: der}), nil
}

// ImportPublicKeyPEM imports a PKIX PEM public key as an ephemeral key.
func ImportPublicKeyPEM(csp bccsp.BCCSP, raw []byte) (bccsp.Key, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("failed decoding PEM public key")
	}
	if block.Type != publicKeyPEMType {
		return nil, errors.Errorf("unexpected PEM block type %q", block.Type)
	}
	return csp.KeyImport(block.Bytes, &bccsp.ECDSAPKIXPublicKeyImportOpts{Temporary: true})
}
