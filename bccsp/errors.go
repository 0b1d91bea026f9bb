/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bccsp

import (
	"github.com/hyperledger/tomcrypt/bccsp/bignum"
	"github.com/hyperledger/tomcrypt/bccsp/eax"
	"github.com/hyperledger/tomcrypt/bccsp/ecc"
	"github.com/hyperledger/tomcrypt/bccsp/rijndael"
)

// Error kinds reported by providers. Errors are wrapped with context, so
// test for them with errors.Is. None of them carry key material.
var (
	ErrInvalidKeyLength          = rijndael.ErrInvalidKeyLength
	ErrInvalidTagLength          = eax.ErrInvalidTagLength
	ErrAuthenticationFailure     = eax.ErrAuthenticationFailure
	ErrInvalidPublicKey          = ecc.ErrInvalidPublicKey
	ErrInvalidPrivateKey         = ecc.ErrInvalidPrivateKey
	ErrInvalidSignature          = ecc.ErrInvalidSignature
	ErrRandomnessUnavailable     = ecc.ErrRandomnessUnavailable
	ErrSignatureGenerationFailed = ecc.ErrSignatureGenerationFailed
	ErrNotInvertible             = bignum.ErrNotInvertible
	ErrKeyDestroyed              = ecc.ErrKeyDestroyed
)
