/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tomcrypt

import (
	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/pkg/errors"
)

// SealOptions configures authenticated encryption. A zero TagLen selects
// the provider default.
type SealOptions struct {
	AdditionalData []byte
	TagLen         int
}

func (o SealOptions) eaxOpts() *bccsp.EAXModeOpts {
	return &bccsp.EAXModeOpts{AdditionalData: o.AdditionalData, TagLen: o.TagLen}
}

// Seal encrypts and authenticates plaintext with the AES key k. The output
// is nonce || ciphertext || tag with a fresh random nonce.
func Seal(csp bccsp.BCCSP, k bccsp.Key, plaintext []byte, o SealOptions) ([]byte, error) {
	out, err := csp.Encrypt(k, plaintext, o.eaxOpts())
	if err != nil {
		return nil, errors.WithMessagef(err, "failed sealing with key [%x]", k.SKI())
	}
	logger.Debugf("Sealed %d bytes with key [%x]", len(plaintext), k.SKI())
	return out, nil
}

// Open reverses Seal. Nothing is returned unless the tag verifies.
func Open(csp bccsp.BCCSP, k bccsp.Key, sealed []byte, o SealOptions) ([]byte, error) {
	out, err := csp.Decrypt(k, sealed, o.eaxOpts())
	if err != nil {
		return nil, errors.WithMessagef(err, "failed opening with key [%x]", k.SKI())
	}
	return out, nil
}
