/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package factory

import (
	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/sw"
	"github.com/hyperledger/tomcrypt/common/metrics"
	"github.com/pkg/errors"
)

const (
	// SoftwareBasedFactoryName is the name of the factory of the software-based BCCSP implementation
	SoftwareBasedFactoryName = "SW"
)

// SWFactory is the factory of the software-based BCCSP.
type SWFactory struct {
	// MetricsProvider, when set, records operation counts and durations
	// for every provider this factory creates.
	MetricsProvider metrics.Provider
}

// Name returns the name of this factory
func (f *SWFactory) Name() string {
	return SoftwareBasedFactoryName
}

// Get returns an instance of BCCSP using Opts.
func (f *SWFactory) Get(config *FactoryOpts) (bccsp.BCCSP, error) {
	// Validate arguments
	if config == nil || config.SW == nil {
		return nil, errors.New("Invalid config. It must not be nil.")
	}

	swOpts := config.SW

	ks, err := newKeyStore(swOpts)
	if err != nil {
		return nil, err
	}

	var opts []sw.Option
	if swOpts.TagLength != 0 {
		opts = append(opts, sw.WithTagLength(swOpts.TagLength))
	}
	if f.MetricsProvider != nil {
		opts = append(opts, sw.WithMetricsProvider(f.MetricsProvider))
	}

	return sw.NewWithParams(swOpts.Security, swOpts.Hash, ks, opts...)
}

// newKeyStore picks the key store named by the options. The file and
// LevelDB stores take precedence over the in-memory store; with nothing
// configured the read-only dummy store is used.
func newKeyStore(swOpts *SwOpts) (bccsp.KeyStore, error) {
	var pwd []byte
	if swOpts.Password != "" {
		pwd = []byte(swOpts.Password)
	}

	switch {
	case swOpts.FileKeystore != nil:
		fks, err := sw.NewFileBasedKeyStore(pwd, swOpts.FileKeystore.KeyStorePath, swOpts.FileKeystore.ReadOnly)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to initialize software key store")
		}
		logger.Debugf("Using file key store at [%s]", swOpts.FileKeystore.KeyStorePath)
		return fks, nil

	case swOpts.LevelDBKeystore != nil:
		lks, err := sw.NewLevelDBKeyStore(pwd, swOpts.LevelDBKeystore.Path, swOpts.LevelDBKeystore.ReadOnly)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to initialize LevelDB key store")
		}
		logger.Debugf("Using LevelDB key store at [%s]", swOpts.LevelDBKeystore.Path)
		return lks, nil

	case swOpts.InMemoryKeystore != nil:
		return sw.NewInMemoryKeyStore(), nil

	default:
		return sw.NewDummyKeyStore(), nil
	}
}
