/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"crypto/ecdsa"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/ecc"
	"github.com/hyperledger/tomcrypt/bccsp/utils"
	"github.com/pkg/errors"
)

type aesImportKeyOptsKeyImporter struct{}

func (*aesImportKeyOptsKeyImporter) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	aesRaw, ok := raw.([]byte)
	if !ok {
		return nil, errors.New("Invalid raw material. Expected byte array.")
	}
	if aesRaw == nil {
		return nil, errors.New("Invalid raw material. It must not be nil.")
	}

	return newAESKey(aesRaw, false)
}

type ecdsaPrivateKeyImportOptsKeyImporter struct {
	conf *config
}

// KeyImport accepts either the fixed-width scalar of the named curve or,
// when no curve is named, a PKCS#8 or SEC 1 DER private key.
func (ki *ecdsaPrivateKeyImportOptsKeyImporter) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	der, ok := raw.([]byte)
	if !ok {
		return nil, errors.New("Invalid raw material. Expected byte array.")
	}
	if len(der) == 0 {
		return nil, errors.New("Invalid raw. It must not be nil.")
	}

	curveName := opts.(*bccsp.ECDSAPrivateKeyImportOpts).Curve
	if curveName == "" {
		lowLevelKey, err := utils.DERToPrivateKey(der)
		if err != nil {
			return nil, errors.WithMessage(err, "Failed converting DER to ECDSA private key")
		}
		privKey, err := utils.FromECDSAPrivateKey(lowLevelKey.(*ecdsa.PrivateKey))
		if err != nil {
			return nil, err
		}
		return &ecdsaPrivateKey{privKey}, nil
	}

	curve, err := ecc.CurveByName(curveName)
	if err != nil {
		return nil, err
	}
	privKey, err := ecc.NewPrivateKey(curve, der)
	if err != nil {
		return nil, err
	}
	return &ecdsaPrivateKey{privKey}, nil
}

type ecdsaPublicKeyImportOptsKeyImporter struct {
	conf *config
}

// KeyImport imports X||Y on the named curve, or on the provider's curve
// when none is named.
func (ki *ecdsaPublicKeyImportOptsKeyImporter) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	point, ok := raw.([]byte)
	if !ok {
		return nil, errors.New("Invalid raw material. Expected byte array.")
	}
	if len(point) == 0 {
		return nil, errors.New("Invalid raw. It must not be nil.")
	}

	curve := ki.conf.ellipticCurve
	if name := opts.(*bccsp.ECDSAPublicKeyImportOpts).Curve; name != "" {
		var err error
		if curve, err = ecc.CurveByName(name); err != nil {
			return nil, err
		}
	}

	pubKey, err := ecc.NewPublicKey(curve, point)
	if err != nil {
		return nil, err
	}
	return &ecdsaPublicKey{pubKey}, nil
}

type ecdsaPKIXPublicKeyImportOptsKeyImporter struct{}

func (*ecdsaPKIXPublicKeyImportOptsKeyImporter) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	der, ok := raw.([]byte)
	if !ok {
		return nil, errors.New("Invalid raw material. Expected byte array.")
	}
	if len(der) == 0 {
		return nil, errors.New("Invalid raw. It must not be nil.")
	}

	lowLevelKey, err := utils.DERToPublicKey(der)
	if err != nil {
		return nil, errors.WithMessage(err, "Failed converting PKIX to ECDSA public key")
	}
	ecdsaPK, ok := lowLevelKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("Failed casting to ECDSA public key. Invalid raw material.")
	}

	pubKey, err := utils.FromECDSAPublicKey(ecdsaPK)
	if err != nil {
		return nil, err
	}
	return &ecdsaPublicKey{pubKey}, nil
}

type ecdsaGoPublicKeyImportOptsKeyImporter struct{}

func (*ecdsaGoPublicKeyImportOptsKeyImporter) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	lowLevelKey, ok := raw.(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("Invalid raw material. Expected *ecdsa.PublicKey.")
	}

	pubKey, err := utils.FromECDSAPublicKey(lowLevelKey)
	if err != nil {
		return nil, err
	}
	return &ecdsaPublicKey{pubKey}, nil
}
