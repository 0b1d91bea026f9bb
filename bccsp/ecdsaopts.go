/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bccsp

// ECDSAKeyGenOpts generates an ECDSA key on the curve matching the
// provider's security level.
type ECDSAKeyGenOpts struct {
	Temporary bool
}

// Algorithm returns the key generation algorithm identifier (to be used).
func (opts *ECDSAKeyGenOpts) Algorithm() string {
	return ECDSA
}

// Ephemeral returns true if the key to generate has to be ephemeral,
// false otherwise.
func (opts *ECDSAKeyGenOpts) Ephemeral() bool {
	return opts.Temporary
}

// ECDSAP224KeyGenOpts contains options for ECDSA key generation with curve P-224.
type ECDSAP224KeyGenOpts struct {
	Temporary bool
}

func (opts *ECDSAP224KeyGenOpts) Algorithm() string { return ECDSAP224 }
func (opts *ECDSAP224KeyGenOpts) Ephemeral() bool   { return opts.Temporary }

// ECDSAP256KeyGenOpts contains options for ECDSA key generation with curve P-256.
type ECDSAP256KeyGenOpts struct {
	Temporary bool
}

func (opts *ECDSAP256KeyGenOpts) Algorithm() string { return ECDSAP256 }
func (opts *ECDSAP256KeyGenOpts) Ephemeral() bool   { return opts.Temporary }

// ECDSAP384KeyGenOpts contains options for ECDSA key generation with curve P-384.
type ECDSAP384KeyGenOpts struct {
	Temporary bool
}

func (opts *ECDSAP384KeyGenOpts) Algorithm() string { return ECDSAP384 }
func (opts *ECDSAP384KeyGenOpts) Ephemeral() bool   { return opts.Temporary }

// ECDSAP521KeyGenOpts contains options for ECDSA key generation with curve P-521.
type ECDSAP521KeyGenOpts struct {
	Temporary bool
}

func (opts *ECDSAP521KeyGenOpts) Algorithm() string { return ECDSAP521 }
func (opts *ECDSAP521KeyGenOpts) Ephemeral() bool   { return opts.Temporary }
