/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bccsp

import (
	"crypto"
	"io"
)

const (
	// ECDSA is the Elliptic Curve Digital Signature Algorithm at the
	// provider's default security level.
	ECDSA = "ECDSA"
	// ECDSAP224 is ECDSA over curve P-224.
	ECDSAP224 = "ECDSAP224"
	// ECDSAP256 is ECDSA over curve P-256.
	ECDSAP256 = "ECDSAP256"
	// ECDSAP384 is ECDSA over curve P-384.
	ECDSAP384 = "ECDSAP384"
	// ECDSAP521 is ECDSA over curve P-521.
	ECDSAP521 = "ECDSAP521"

	// ECDH is key agreement over the curve of an ECDSA key pair.
	ECDH = "ECDH"

	// AES at the provider's default security level.
	AES = "AES"
	// AES128 is AES with a 128 bit key.
	AES128 = "AES128"
	// AES192 is AES with a 192 bit key.
	AES192 = "AES192"
	// AES256 is AES with a 256 bit key.
	AES256 = "AES256"

	// EAX is the EAX authenticated encryption mode.
	EAX = "EAX"

	// SHA at the provider's default security level and family.
	SHA = "SHA"
	// SHA2 is an identifier for the SHA2 hash family
	SHA2 = "SHA2"
	// SHA3 is an identifier for the SHA3 hash family
	SHA3 = "SHA3"
	// SHA256
	SHA256 = "SHA256"
	// SHA384
	SHA384 = "SHA384"
	// SHA3_256
	SHA3_256 = "SHA3_256"
	// SHA3_384
	SHA3_384 = "SHA3_384"
)

// AESKeyGenOpts generates an AES key at the default security level.
type AESKeyGenOpts struct {
	Temporary bool
}

func (opts *AESKeyGenOpts) Algorithm() string { return AES }
func (opts *AESKeyGenOpts) Ephemeral() bool   { return opts.Temporary }

// AES128KeyGenOpts generates a 128 bit AES key.
type AES128KeyGenOpts struct {
	Temporary bool
}

func (opts *AES128KeyGenOpts) Algorithm() string { return AES128 }
func (opts *AES128KeyGenOpts) Ephemeral() bool   { return opts.Temporary }

// AES192KeyGenOpts generates a 192 bit AES key.
type AES192KeyGenOpts struct {
	Temporary bool
}

func (opts *AES192KeyGenOpts) Algorithm() string { return AES192 }
func (opts *AES192KeyGenOpts) Ephemeral() bool   { return opts.Temporary }

// AES256KeyGenOpts generates a 256 bit AES key.
type AES256KeyGenOpts struct {
	Temporary bool
}

func (opts *AES256KeyGenOpts) Algorithm() string { return AES256 }
func (opts *AES256KeyGenOpts) Ephemeral() bool   { return opts.Temporary }

// AESImportKeyOpts imports a raw AES key of 16, 24 or 32 bytes.
type AESImportKeyOpts struct {
	Temporary bool
}

func (opts *AESImportKeyOpts) Algorithm() string { return AES }
func (opts *AESImportKeyOpts) Ephemeral() bool   { return opts.Temporary }

// ECDSAPrivateKeyImportOpts imports a fixed-width big-endian private
// scalar for the named curve ("P-256" and so on).
type ECDSAPrivateKeyImportOpts struct {
	Curve     string
	Temporary bool
}

func (opts *ECDSAPrivateKeyImportOpts) Algorithm() string { return ECDSA }
func (opts *ECDSAPrivateKeyImportOpts) Ephemeral() bool   { return opts.Temporary }

// ECDSAPublicKeyImportOpts imports the fixed-width encoding X||Y of a
// public point on the named curve.
type ECDSAPublicKeyImportOpts struct {
	Curve     string
	Temporary bool
}

func (opts *ECDSAPublicKeyImportOpts) Algorithm() string { return ECDSA }
func (opts *ECDSAPublicKeyImportOpts) Ephemeral() bool   { return opts.Temporary }

// ECDSAPKIXPublicKeyImportOpts imports a DER encoded PKIX public key.
type ECDSAPKIXPublicKeyImportOpts struct {
	Temporary bool
}

func (opts *ECDSAPKIXPublicKeyImportOpts) Algorithm() string { return ECDSA }
func (opts *ECDSAPKIXPublicKeyImportOpts) Ephemeral() bool   { return opts.Temporary }

// ECDSAGoPublicKeyImportOpts imports a *ecdsa.PublicKey.
type ECDSAGoPublicKeyImportOpts struct {
	Temporary bool
}

func (opts *ECDSAGoPublicKeyImportOpts) Algorithm() string { return ECDSA }
func (opts *ECDSAGoPublicKeyImportOpts) Ephemeral() bool   { return opts.Temporary }

// ECDHKeyDerivOpts derives an AES key from an ECDSA private key and a peer
// public key. The shared secret is expanded with HKDF-SHA256 using Salt and
// Info.
type ECDHKeyDerivOpts struct {
	PublicKey Key
	KeyLen    int // 16, 24 or 32; zero selects the default security level
	Salt      []byte
	Info      []byte
	Temporary bool
}

func (opts *ECDHKeyDerivOpts) Algorithm() string { return ECDH }
func (opts *ECDHKeyDerivOpts) Ephemeral() bool   { return opts.Temporary }

// EAXModeOpts configures EAX encryption and decryption.
//
// On encryption a nil Nonce makes the provider draw a fresh 16 byte nonce
// from PRNG (crypto/rand when nil) and prepend it to the output. On
// decryption a nil Nonce means the input starts with a 16 byte nonce.
// TagLen zero selects the provider default; otherwise it must be between
// 8 and 16.
type EAXModeOpts struct {
	Nonce          []byte
	AdditionalData []byte
	TagLen         int
	PRNG           io.Reader
}

// SignatureEncoding selects the wire format of ECDSA signatures.
type SignatureEncoding int

const (
	// RawSignature is the fixed-width encoding r||s.
	RawSignature SignatureEncoding = iota
	// DERSignature is the ASN.1 SEQUENCE { r, s } used by X.509.
	DERSignature
)

// ECDSASignerOpts controls signing and verification. A nil SignerOpts is
// equivalent to the zero value: randomized signing and raw encoding.
type ECDSASignerOpts struct {
	// Deterministic derives the per-signature scalar from the key and
	// digest (RFC 6979) instead of drawing it at random.
	Deterministic bool
	Encoding      SignatureEncoding
	Hash          crypto.Hash
}

// HashFunc returns the hash used to produce the digest, zero if unknown.
func (opts *ECDSASignerOpts) HashFunc() crypto.Hash { return opts.Hash }
