/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tomcrypt

import (
	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/pkg/errors"
)

// SignOptions selects the signature scheme used by Sign and Verify.
type SignOptions struct {
	Deterministic bool
	DER           bool
}

func (o SignOptions) signerOpts() *bccsp.ECDSASignerOpts {
	opts := &bccsp.ECDSASignerOpts{Deterministic: o.Deterministic}
	if o.DER {
		opts.Encoding = bccsp.DERSignature
	}
	return opts
}

// Sign hashes msg with the provider's default hash function and signs the
// digest with k.
func Sign(csp bccsp.BCCSP, k bccsp.Key, msg []byte, o SignOptions) ([]byte, error) {
	digest, err := csp.Hash(msg, &bccsp.SHAOpts{})
	if err != nil {
		return nil, errors.WithMessage(err, "failed hashing message")
	}

	sig, err := csp.Sign(k, digest, o.signerOpts())
	if err != nil {
		return nil, errors.WithMessagef(err, "failed signing with key [%x]", k.SKI())
	}
	logger.Debugf("Signed %d byte message with key [%x]", len(msg), k.SKI())
	return sig, nil
}

// Verify checks sig over msg with k, which may be a private or public key.
func Verify(csp bccsp.BCCSP, k bccsp.Key, msg, sig []byte, o SignOptions) (bool, error) {
	digest, err := csp.Hash(msg, &bccsp.SHAOpts{})
	if err != nil {
		return false, errors.WithMessage(err, "failed hashing message")
	}

	valid, err := csp.Verify(k, sig, digest, o.signerOpts())
	if err != nil {
		return false, errors.WithMessagef(err, "failed verifying with key [%x]", k.SKI())
	}
	return valid, nil
}
