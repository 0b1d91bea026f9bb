/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"hash"
	"io"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/ecc"
	"github.com/hyperledger/tomcrypt/bccsp/utils"
	"github.com/pkg/errors"
)

func signerOpts(opts bccsp.SignerOpts) *bccsp.ECDSASignerOpts {
	if o, ok := opts.(*bccsp.ECDSASignerOpts); ok && o != nil {
		return o
	}
	return &bccsp.ECDSASignerOpts{}
}

// signECDSA signs digest and normalizes the result to low-S.
func signECDSA(k *ecc.PrivateKey, digest []byte, opts bccsp.SignerOpts, prng io.Reader, defaultHash func() hash.Hash) ([]byte, error) {
	o := signerOpts(opts)

	var (
		sig *ecc.Signature
		err error
	)
	if o.Deterministic {
		newHash := defaultHash
		if o.Hash != 0 && o.Hash.Available() {
			newHash = o.Hash.New
		}
		sig, err = ecc.SignDeterministic(k, digest, newHash)
	} else {
		sig, err = ecc.Sign(prng, k, digest)
	}
	if err != nil {
		return nil, err
	}

	sig, _, err = ecc.ToLowS(k.Curve(), sig)
	if err != nil {
		return nil, err
	}

	return encodeSignature(sig, o.Encoding)
}

func encodeSignature(sig *ecc.Signature, enc bccsp.SignatureEncoding) ([]byte, error) {
	switch enc {
	case bccsp.RawSignature:
		return sig.Bytes(), nil
	case bccsp.DERSignature:
		return utils.MarshalECDSASignature(sig)
	default:
		return nil, errors.Errorf("Signature encoding not recognized [%d]", enc)
	}
}

func decodeSignature(c *ecc.Curve, raw []byte, enc bccsp.SignatureEncoding) (*ecc.Signature, error) {
	switch enc {
	case bccsp.RawSignature:
		return ecc.ParseSignature(c, raw)
	case bccsp.DERSignature:
		return utils.UnmarshalECDSASignature(c, raw)
	default:
		return nil, errors.Errorf("Signature encoding not recognized [%d]", enc)
	}
}

// verifyECDSA checks signature against digest. Structurally invalid
// signatures are errors; a well formed signature that does not match is
// reported as false.
func verifyECDSA(k *ecc.PublicKey, signature, digest []byte, opts bccsp.SignerOpts) (bool, error) {
	sig, err := decodeSignature(k.Curve(), signature, signerOpts(opts).Encoding)
	if err != nil {
		return false, err
	}
	return ecc.Verify(k, digest, sig)
}

type ecdsaSigner struct {
	conf *config
	rand io.Reader
}

func (s *ecdsaSigner) Sign(k bccsp.Key, digest []byte, opts bccsp.SignerOpts) ([]byte, error) {
	return signECDSA(k.(*ecdsaPrivateKey).privKey, digest, opts, s.rand, s.conf.hashFunction)
}

type ecdsaPrivateKeyVerifier struct{}

func (v *ecdsaPrivateKeyVerifier) Verify(k bccsp.Key, signature, digest []byte, opts bccsp.SignerOpts) (bool, error) {
	return verifyECDSA(k.(*ecdsaPrivateKey).privKey.Public(), signature, digest, opts)
}

type ecdsaPublicKeyKeyVerifier struct{}

func (v *ecdsaPublicKeyKeyVerifier) Verify(k bccsp.Key, signature, digest []byte, opts bccsp.SignerOpts) (bool, error) {
	return verifyECDSA(k.(*ecdsaPublicKey).pubKey, signature, digest, opts)
}
