/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecc

import "github.com/pkg/errors"

var (
	// ErrInvalidPublicKey reports a point that is malformed, off the curve
	// or the point at infinity.
	ErrInvalidPublicKey = errors.New("invalid public key")
	// ErrInvalidPrivateKey reports a scalar outside [1, n-1].
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrInvalidSignature reports r or s outside [1, n-1] or a malformed
	// encoding.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrRandomnessUnavailable reports a failing randomness source.
	ErrRandomnessUnavailable = errors.New("randomness unavailable")
	// ErrSignatureGenerationFailed reports that every signing attempt hit a
	// degenerate r or s.
	ErrSignatureGenerationFailed = errors.New("signature generation failed")
	// ErrKeyDestroyed reports use of a key after Destroy.
	ErrKeyDestroyed = errors.New("key has been destroyed")
)
