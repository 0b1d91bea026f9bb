/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/eax"
	"github.com/hyperledger/tomcrypt/bccsp/ecc"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// config holds the algorithm parameters selected by a security level and
// hash family.
type config struct {
	ellipticCurve *ecc.Curve
	hashFunction  func() hash.Hash
	aesByteLength int
	tagLength     int
}

type levelParams struct {
	curve func() *ecc.Curve
	hash  func() hash.Hash
}

var securityLevels = map[string]map[int]levelParams{
	bccsp.SHA2: {
		256: {ecc.P256, sha256.New},
		384: {ecc.P384, sha512.New384},
	},
	bccsp.SHA3: {
		256: {ecc.P256, sha3.New256},
		384: {ecc.P384, sha3.New384},
	},
}

// setSecurityLevel picks the curve and hash for level within hashFamily.
// AES keys are always 256 bits.
func (conf *config) setSecurityLevel(securityLevel int, hashFamily string) error {
	levels, ok := securityLevels[hashFamily]
	if !ok {
		return errors.Errorf("Hash Family not supported [%s]", hashFamily)
	}
	params, ok := levels[securityLevel]
	if !ok {
		return errors.Errorf("Security level not supported [%d]", securityLevel)
	}

	conf.ellipticCurve = params.curve()
	conf.hashFunction = params.hash
	conf.aesByteLength = 32
	return nil
}

// setTagLength validates the default EAX tag length. Zero selects
// eax.DefaultTagSize.
func (conf *config) setTagLength(n int) error {
	if n == 0 {
		conf.tagLength = eax.DefaultTagSize
		return nil
	}
	if err := eax.CheckTagSize(n); err != nil {
		return err
	}
	conf.tagLength = n
	return nil
}
