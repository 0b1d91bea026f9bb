/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"math/big"

	"github.com/hyperledger/tomcrypt/bccsp/ecc"
	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// MarshalECDSASignature encodes a signature as the ASN.1 structure
// SEQUENCE { r INTEGER, s INTEGER }.
func MarshalECDSASignature(sig *ecc.Signature) ([]byte, error) {
	if sig == nil {
		return nil, errors.New("invalid signature. It must be different from nil")
	}

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(new(big.Int).SetBytes(sig.R))
		b.AddASN1BigInt(new(big.Int).SetBytes(sig.S))
	})
	return b.Bytes()
}

// UnmarshalECDSASignature parses a DER signature for curve c. Malformed
// encodings, trailing data and non-positive or oversized integers are
// reported as ecc.ErrInvalidSignature.
func UnmarshalECDSASignature(c *ecc.Curve, raw []byte) (*ecc.Signature, error) {
	var (
		r, s  = new(big.Int), new(big.Int)
		inner cryptobyte.String
	)
	input := cryptobyte.String(raw)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return nil, errors.Wrap(ecc.ErrInvalidSignature, "failed unmarshalling signature")
	}

	if r.Sign() <= 0 || s.Sign() <= 0 {
		return nil, errors.Wrap(ecc.ErrInvalidSignature, "signature components must be positive")
	}
	return ecc.NewSignature(c, r.Bytes(), s.Bytes())
}
