/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"io"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/ecc"
	"github.com/hyperledger/tomcrypt/bccsp/utils"
	"github.com/pkg/errors"
)

type ecdsaKeyGenerator struct {
	curve *ecc.Curve
	rand  io.Reader
}

func (kg *ecdsaKeyGenerator) KeyGen(opts bccsp.KeyGenOpts) (bccsp.Key, error) {
	privKey, err := ecc.GenerateKey(kg.curve, kg.rand)
	if err != nil {
		return nil, errors.WithMessagef(err, "Failed generating ECDSA key for [%s]", kg.curve.Name())
	}

	return &ecdsaPrivateKey{privKey}, nil
}

type aesKeyGenerator struct {
	length int
	rand   io.Reader
}

func (kg *aesKeyGenerator) KeyGen(opts bccsp.KeyGenOpts) (bccsp.Key, error) {
	if kg.length <= 0 {
		return nil, errors.New("Len must be larger than 0")
	}

	lowLevelKey, err := GetRandomBytes(kg.rand, kg.length)
	if err != nil {
		return nil, errors.WithMessagef(err, "Failed generating AES %d key", kg.length)
	}
	defer utils.Zeroize(lowLevelKey)

	return newAESKey(lowLevelKey, false)
}
