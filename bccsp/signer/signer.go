/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"crypto"
	"io"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/utils"
	"github.com/pkg/errors"
)

// bccspCryptoSigner is the BCCSP-based implementation of a crypto.Signer
type bccspCryptoSigner struct {
	csp bccsp.BCCSP
	key bccsp.Key
	pk  interface{}
}

// New returns a new BCCSP-based crypto.Signer
// for the given BCCSP instance and key.
func New(csp bccsp.BCCSP, key bccsp.Key) (crypto.Signer, error) {
	// Validate arguments
	if csp == nil {
		return nil, errors.New("bccsp instance must be different from nil.")
	}
	if key == nil {
		return nil, errors.New("key must be different from nil.")
	}
	if key.Symmetric() {
		return nil, errors.New("key must be asymmetric.")
	}

	// Marshall the bccsp public key as a crypto.PublicKey
	pub, err := key.PublicKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed getting public key")
	}

	raw, err := pub.Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "failed marshalling public key")
	}

	pk, err := utils.DERToPublicKey(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed marshalling der to public key")
	}

	return &bccspCryptoSigner{csp, key, pk}, nil
}

// Public returns the public key corresponding to the opaque,
// private key.
func (s *bccspCryptoSigner) Public() crypto.PublicKey {
	return s.pk
}

// Sign signs digest with the private key. The rand argument is ignored; the
// provider draws from its own source. Signatures are ASN.1 DER encoded as
// crypto.Signer callers such as crypto/x509 expect.
func (s *bccspCryptoSigner) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	if s.key == nil {
		return nil, errors.New("invalid key")
	}
	if len(digest) == 0 {
		return nil, errors.New("invalid digest")
	}

	return s.csp.Sign(s.key, digest, signerOpts(opts))
}

func signerOpts(opts crypto.SignerOpts) bccsp.SignerOpts {
	if o, ok := opts.(*bccsp.ECDSASignerOpts); ok {
		return o
	}

	o := &bccsp.ECDSASignerOpts{Encoding: bccsp.DERSignature}
	if opts != nil {
		o.Hash = opts.HashFunc()
	}
	return o
}
