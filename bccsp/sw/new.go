/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"io"
	"reflect"

	"code.cloudfoundry.org/clock"
	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/ecc"
	"github.com/hyperledger/tomcrypt/common/metrics"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// Option customizes a software provider.
type Option func(*options)

type options struct {
	tagLength int
	rand      io.Reader
	provider  metrics.Provider
	clock     clock.Clock
}

// WithTagLength sets the default EAX tag length in bytes (8 to 16).
func WithTagLength(n int) Option {
	return func(o *options) { o.tagLength = n }
}

// WithRand replaces crypto/rand as the source for keys, nonces and
// signature scalars.
func WithRand(r io.Reader) Option {
	return func(o *options) { o.rand = r }
}

// WithMetricsProvider records operation counts and durations with p.
func WithMetricsProvider(p metrics.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithClock sets the clock used to time operations.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// NewDefaultSecurityLevel returns a new instance of the software-based BCCSP
// at security level 256, hash family SHA2 and using FolderBasedKeyStore as KeyStore.
func NewDefaultSecurityLevel(keyStorePath string) (bccsp.BCCSP, error) {
	ks, err := NewFileBasedKeyStore(nil, keyStorePath, false)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed initializing key store at [%v]", keyStorePath)
	}

	return NewWithParams(256, bccsp.SHA2, ks)
}

// NewDefaultSecurityLevelWithKeystore returns a new instance of the software-based BCCSP
// at security level 256, hash family SHA2 and using the passed KeyStore.
func NewDefaultSecurityLevelWithKeystore(keyStore bccsp.KeyStore) (bccsp.BCCSP, error) {
	return NewWithParams(256, bccsp.SHA2, keyStore)
}

// NewWithParams returns a new instance of the software-based BCCSP
// set at the passed security level, hash family and KeyStore.
func NewWithParams(securityLevel int, hashFamily string, keyStore bccsp.KeyStore, opts ...Option) (bccsp.BCCSP, error) {
	o := &options{rand: rand.Reader, clock: clock.NewClock()}
	for _, opt := range opts {
		opt(o)
	}

	// Init config
	conf := &config{}
	err := conf.setSecurityLevel(securityLevel, hashFamily)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed initializing configuration at [%v,%v]", securityLevel, hashFamily)
	}
	if err := conf.setTagLength(o.tagLength); err != nil {
		return nil, errors.WithMessage(err, "Failed initializing configuration")
	}

	swbccsp, err := New(keyStore)
	if err != nil {
		return nil, err
	}
	if o.provider != nil {
		swbccsp.observer = &operationObserver{metrics: NewMetrics(o.provider), clock: o.clock}
	}

	// Notice that errors are ignored here because some test will fail if one
	// of the following call fails.

	// Set the Encryptors
	swbccsp.AddWrapper(reflect.TypeOf(&aesPrivateKey{}), &eaxEncryptor{conf: conf, rand: o.rand})

	// Set the Decryptors
	swbccsp.AddWrapper(reflect.TypeOf(&aesPrivateKey{}), &eaxDecryptor{conf: conf})

	// Set the Signers
	swbccsp.AddWrapper(reflect.TypeOf(&ecdsaPrivateKey{}), &ecdsaSigner{conf: conf, rand: o.rand})

	// Set the Verifiers
	swbccsp.AddWrapper(reflect.TypeOf(&ecdsaPrivateKey{}), &ecdsaPrivateKeyVerifier{})
	swbccsp.AddWrapper(reflect.TypeOf(&ecdsaPublicKey{}), &ecdsaPublicKeyKeyVerifier{})

	// Set the Hashers
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.SHAOpts{}), &hasher{hash: conf.hashFunction})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.SHA256Opts{}), &hasher{hash: sha256.New})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.SHA384Opts{}), &hasher{hash: sha512.New384})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.SHA3_256Opts{}), &hasher{hash: sha3.New256})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.SHA3_384Opts{}), &hasher{hash: sha3.New384})

	// Set the key generators
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.ECDSAKeyGenOpts{}), &ecdsaKeyGenerator{curve: conf.ellipticCurve, rand: o.rand})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.ECDSAP224KeyGenOpts{}), &ecdsaKeyGenerator{curve: ecc.P224(), rand: o.rand})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.ECDSAP256KeyGenOpts{}), &ecdsaKeyGenerator{curve: ecc.P256(), rand: o.rand})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.ECDSAP384KeyGenOpts{}), &ecdsaKeyGenerator{curve: ecc.P384(), rand: o.rand})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.ECDSAP521KeyGenOpts{}), &ecdsaKeyGenerator{curve: ecc.P521(), rand: o.rand})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.AESKeyGenOpts{}), &aesKeyGenerator{length: conf.aesByteLength, rand: o.rand})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.AES128KeyGenOpts{}), &aesKeyGenerator{length: 16, rand: o.rand})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.AES192KeyGenOpts{}), &aesKeyGenerator{length: 24, rand: o.rand})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.AES256KeyGenOpts{}), &aesKeyGenerator{length: 32, rand: o.rand})

	// Set the key deriver
	swbccsp.AddWrapper(reflect.TypeOf(&ecdsaPrivateKey{}), &ecdsaPrivateKeyKeyDeriver{conf: conf})

	// Set the key importers
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.AESImportKeyOpts{}), &aesImportKeyOptsKeyImporter{})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.ECDSAPrivateKeyImportOpts{}), &ecdsaPrivateKeyImportOptsKeyImporter{conf: conf})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.ECDSAPublicKeyImportOpts{}), &ecdsaPublicKeyImportOptsKeyImporter{conf: conf})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.ECDSAPKIXPublicKeyImportOpts{}), &ecdsaPKIXPublicKeyImportOptsKeyImporter{})
	swbccsp.AddWrapper(reflect.TypeOf(&bccsp.ECDSAGoPublicKeyImportOpts{}), &ecdsaGoPublicKeyImportOptsKeyImporter{})

	logger.Debugf("Initialized software provider [level %d, family %s, tag %d bytes]", securityLevel, hashFamily, conf.tagLength)
	return swbccsp, nil
}
