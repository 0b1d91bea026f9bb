/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tomcrypt

import (
	"io"

	"github.com/hyperledger/tomcrypt/bccsp/factory"
	"github.com/hyperledger/tomcrypt/common/viperutil"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ConfigName is the configuration file name stem searched for in the
// configuration paths. Upper-cased, it also prefixes the environment
// variables that override configuration values, e.g.
// TOMCRYPT_BCCSP_SW_PASSWORD.
const ConfigName = "tomcrypt"

const redacted = "<redacted>"

// Config is the command line tool configuration.
type Config struct {
	BCCSP   *factory.FactoryOpts `yaml:"BCCSP"`
	Logging Logging              `yaml:"Logging"`
}

// Logging configures the process logger.
type Logging struct {
	Spec   string `yaml:"Spec,omitempty"`
	Format string `yaml:"Format,omitempty"`
}

// LoadConfig reads the YAML file at path and applies environment overrides.
// When path is empty tomcrypt.yaml is searched for in the configuration
// paths, and the provider defaults are used if none exists.
func LoadConfig(path string) (*Config, error) {
	p := viperutil.New()
	p.SetConfigName(ConfigName)
	if path != "" {
		p.SetConfigFile(path)
	}

	err := p.ReadInConfig()
	switch {
	case err == viperutil.ErrConfigFileNotFound && path == "":
		logger.Debug("No configuration file found, using defaults")
	case err != nil:
		return nil, errors.Wrapf(err, "failed reading configuration file %s", path)
	default:
		logger.Debugf("Using configuration file %s", p.ConfigFileUsed())
	}

	conf := &Config{}
	if err := p.EnhancedExactUnmarshal(conf); err != nil {
		return nil, errors.Wrapf(err, "failed decoding configuration file %s", p.ConfigFileUsed())
	}
	if conf.BCCSP == nil {
		conf.BCCSP = factory.GetDefaultOpts()
	}
	return conf, nil
}

// WriteConfig writes c as YAML. The key store password is redacted.
func WriteConfig(w io.Writer, c *Config) error {
	out := *c
	if c.BCCSP != nil && c.BCCSP.SW != nil && c.BCCSP.SW.Password != "" {
		bccspOpts := *c.BCCSP
		swOpts := *c.BCCSP.SW
		swOpts.Password = redacted
		bccspOpts.SW = &swOpts
		out.BCCSP = &bccspOpts
	}

	raw, err := yaml.Marshal(&out)
	if err != nil {
		return errors.Wrap(err, "failed marshalling configuration")
	}
	_, err = w.Write(raw)
	return err
}
