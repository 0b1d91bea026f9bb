/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package factory

// FactoryOpts holds configuration information used to initialize factory implementations
type FactoryOpts struct {
	Default string  `mapstructure:"default" json:"default" yaml:"Default"`
	SW      *SwOpts `mapstructure:"SW,omitempty" json:"SW,omitempty" yaml:"SW,omitempty"`
}

// SwOpts contains options for the software provider.
type SwOpts struct {
	Security  int    `mapstructure:"security" json:"security" yaml:"Security"`
	Hash      string `mapstructure:"hash" json:"hash" yaml:"Hash"`
	TagLength int    `mapstructure:"taglength" json:"taglength,omitempty" yaml:"TagLength,omitempty"`

	// Password, when set, encrypts keys written by the file and LevelDB
	// key stores.
	Password string `mapstructure:"password" json:"password,omitempty" yaml:"Password,omitempty"`

	FileKeystore     *FileKeystoreOpts     `mapstructure:"filekeystore,omitempty" json:"filekeystore,omitempty" yaml:"FileKeyStore,omitempty"`
	LevelDBKeystore  *LevelDBKeystoreOpts  `mapstructure:"leveldbkeystore,omitempty" json:"leveldbkeystore,omitempty" yaml:"LevelDBKeyStore,omitempty"`
	DummyKeystore    *DummyKeystoreOpts    `mapstructure:"dummykeystore,omitempty" json:"dummykeystore,omitempty" yaml:"DummyKeyStore,omitempty"`
	InMemoryKeystore *InMemoryKeystoreOpts `mapstructure:"inmemorykeystore,omitempty" json:"inmemorykeystore,omitempty" yaml:"InMemoryKeyStore,omitempty"`
}

// FileKeystoreOpts points the file-based key store at a directory.
type FileKeystoreOpts struct {
	KeyStorePath string `mapstructure:"keystore" json:"keystore" yaml:"KeyStore"`
	ReadOnly     bool   `mapstructure:"readonly" json:"readonly,omitempty" yaml:"ReadOnly,omitempty"`
}

// LevelDBKeystoreOpts points the LevelDB key store at a database directory.
type LevelDBKeystoreOpts struct {
	Path     string `mapstructure:"path" json:"path" yaml:"Path"`
	ReadOnly bool   `mapstructure:"readonly" json:"readonly,omitempty" yaml:"ReadOnly,omitempty"`
}

type DummyKeystoreOpts struct{}

type InMemoryKeystoreOpts struct{}

// GetDefaultOpts offers a default implementation for Opts
// returns a new instance every time
func GetDefaultOpts() *FactoryOpts {
	return &FactoryOpts{
		Default: SoftwareBasedFactoryName,
		SW: &SwOpts{
			Hash:     "SHA2",
			Security: 256,
		},
	}
}

// FactoryName returns the name of the provider
func (o *FactoryOpts) FactoryName() string {
	return o.Default
}
