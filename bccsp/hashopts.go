/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bccsp

import "github.com/pkg/errors"

// SHAOpts selects the hash of the provider's configured family and
// security level.
type SHAOpts struct{}

func (opts *SHAOpts) Algorithm() string { return SHA }

// SHA256Opts contains options relating to SHA-256.
type SHA256Opts struct{}

func (opts *SHA256Opts) Algorithm() string { return SHA256 }

// SHA384Opts contains options relating to SHA-384.
type SHA384Opts struct{}

func (opts *SHA384Opts) Algorithm() string { return SHA384 }

// SHA3_256Opts contains options relating to SHA3-256.
type SHA3_256Opts struct{}

func (opts *SHA3_256Opts) Algorithm() string { return SHA3_256 }

// SHA3_384Opts contains options relating to SHA3-384.
type SHA3_384Opts struct{}

func (opts *SHA3_384Opts) Algorithm() string { return SHA3_384 }

// GetHashOpt returns the HashOpts corresponding to the passed hash function
func GetHashOpt(hashFunction string) (HashOpts, error) {
	switch hashFunction {
	case SHA:
		return &SHAOpts{}, nil
	case SHA256:
		return &SHA256Opts{}, nil
	case SHA384:
		return &SHA384Opts{}, nil
	case SHA3_256:
		return &SHA3_256Opts{}, nil
	case SHA3_384:
		return &SHA3_384Opts{}, nil
	}
	return nil, errors.Errorf("hash function not recognized [%s]", hashFunction)
}
