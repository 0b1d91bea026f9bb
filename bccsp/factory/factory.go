/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package factory

import (
	"sync"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/common/flogging"
	"github.com/pkg/errors"
)

var (
	defaultBCCSP       bccsp.BCCSP // default BCCSP
	factoriesInitOnce  sync.Once   // factories' Sync on Initialization
	factoriesInitError error       // Factories' Initialization Error

	// when InitFactories has not been called yet (should only happen
	// in test cases), use this BCCSP temporarily
	bootBCCSP         bccsp.BCCSP
	bootBCCSPInitOnce sync.Once

	bccspMap map[string]bccsp.BCCSP

	logger = flogging.MustGetLogger("bccsp_factory")
)

// BCCSPFactory is used to get instances of the BCCSP interface.
// A Factory has name used to address it.
type BCCSPFactory interface {
	// Name returns the name of this factory
	Name() string

	// Get returns an instance of BCCSP using opts.
	Get(opts *FactoryOpts) (bccsp.BCCSP, error)
}

// GetDefault returns a non-ephemeral (long-term) BCCSP
func GetDefault() bccsp.BCCSP {
	if defaultBCCSP == nil {
		logger.Debug("Before using BCCSP, please call InitFactories(). Falling back to bootBCCSP.")
		bootBCCSPInitOnce.Do(func() {
			var err error
			bootBCCSP, err = (&SWFactory{}).Get(GetDefaultOpts())
			if err != nil {
				panic("BCCSP Internal error, failed initialization with GetDefaultOpts!")
			}
		})
		return bootBCCSP
	}
	return defaultBCCSP
}

// GetBCCSP returns a BCCSP created according to the options passed in input.
func GetBCCSP(name string) (bccsp.BCCSP, error) {
	csp, ok := bccspMap[name]
	if !ok {
		return nil, errors.Errorf("Could not find BCCSP, no '%s' provider", name)
	}
	return csp, nil
}

// InitFactories must be called before using factory interfaces.
// It is acceptable to call with config = nil, in which case
// some defaults will get used.
// Error is returned only if defaultBCCSP cannot be found.
func InitFactories(config *FactoryOpts) error {
	factoriesInitOnce.Do(func() {
		factoriesInitError = initFactories(config)
	})

	return factoriesInitError
}

func initFactories(config *FactoryOpts) error {
	// Take some precautions on default opts
	if config == nil {
		config = GetDefaultOpts()
	}

	if config.Default == "" {
		config.Default = SoftwareBasedFactoryName
	}

	if config.SW == nil {
		config.SW = GetDefaultOpts().SW
	}

	bccspMap = make(map[string]bccsp.BCCSP)

	// Software-Based BCCSP
	if config.Default == SoftwareBasedFactoryName && config.SW != nil {
		f := &SWFactory{}
		err := initBCCSP(f, config)
		if err != nil {
			return errors.Wrapf(err, "Failed initializing BCCSP")
		}
	}

	var ok bool
	defaultBCCSP, ok = bccspMap[config.Default]
	if !ok {
		return errors.Errorf("Could not find default `%s` BCCSP", config.Default)
	}
	return nil
}

// GetBCCSPFromOpts returns a BCCSP created according to the options passed in input.
func GetBCCSPFromOpts(config *FactoryOpts) (bccsp.BCCSP, error) {
	return GetBCCSPFromFactory(config, nil)
}

// GetBCCSPFromFactory builds a BCCSP for config with the named factory. A nil
// factory selects one by config.Default.
func GetBCCSPFromFactory(config *FactoryOpts, f BCCSPFactory) (bccsp.BCCSP, error) {
	if config == nil {
		return nil, errors.New("Invalid config. It must not be nil.")
	}

	if f == nil {
		switch config.Default {
		case SoftwareBasedFactoryName, "":
			f = &SWFactory{}
		default:
			return nil, errors.Errorf("Could not find BCCSP, no '%s' provider", config.Default)
		}
	}

	csp, err := f.Get(config)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not initialize BCCSP %s", f.Name())
	}
	return csp, nil
}

func initBCCSP(f BCCSPFactory, config *FactoryOpts) error {
	csp, err := f.Get(config)
	if err != nil {
		return errors.Errorf("Could not initialize BCCSP %s [%s]", f.Name(), err)
	}

	logger.Debugf("Initialize BCCSP [%s]", f.Name())
	bccspMap[f.Name()] = csp
	return nil
}
