/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package factory

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func readYAML(t *testing.T, cfg string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(cfg)))
	return v
}

func TestReadConfig(t *testing.T) {
	v := readYAML(t, `
BCCSP:
    Default: SW
    SW:
        Hash: SHA3
        Security: 384
        TagLength: 12
        FileKeyStore:
            KeyStore: /var/tomcrypt/keys
`)

	opts, err := ReadConfig(v, "bccsp")
	require.NoError(t, err)
	assert.Equal(t, &FactoryOpts{
		Default: "SW",
		SW: &SwOpts{
			Hash:         "SHA3",
			Security:     384,
			TagLength:    12,
			FileKeystore: &FileKeystoreOpts{KeyStorePath: "/var/tomcrypt/keys"},
		},
	}, opts)
}

func TestReadConfigLevelDB(t *testing.T) {
	v := readYAML(t, `
BCCSP:
    SW:
        Hash: SHA2
        Security: "256"
        Password: secret
        LevelDBKeyStore:
            Path: /var/tomcrypt/db
            ReadOnly: true
`)

	opts, err := ReadConfig(v, "BCCSP")
	require.NoError(t, err)
	assert.Equal(t, "SW", opts.Default)
	assert.Equal(t, 256, opts.SW.Security)
	assert.Equal(t, "secret", opts.SW.Password)
	assert.Equal(t, &LevelDBKeystoreOpts{Path: "/var/tomcrypt/db", ReadOnly: true}, opts.SW.LevelDBKeystore)
	assert.Nil(t, opts.SW.FileKeystore)
}

func TestReadConfigMissingSection(t *testing.T) {
	v := readYAML(t, "other: value\n")
	opts, err := ReadConfig(v, "bccsp")
	require.NoError(t, err)
	assert.Equal(t, GetDefaultOpts(), opts)
}

func TestReadConfigErrors(t *testing.T) {
	v := readYAML(t, "bccsp: SW\n")
	_, err := ReadConfig(v, "bccsp")
	assert.EqualError(t, err, "configuration section bccsp is not a map but string")

	v = readYAML(t, `
bccsp:
    SW:
        Hash: SHA2
        Flavor: vanilla
`)
	_, err = ReadConfig(v, "bccsp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed decoding configuration section bccsp")
	assert.Contains(t, err.Error(), "flavor")
}

func TestDecodeOptsFromYAML(t *testing.T) {
	var m map[string]interface{}
	err := yaml.Unmarshal([]byte(`
default: SW
sw:
  hash: SHA2
  security: 256
  inmemorykeystore: {}
`), &m)
	require.NoError(t, err)

	opts, err := DecodeOpts(m)
	require.NoError(t, err)
	assert.Equal(t, &InMemoryKeystoreOpts{}, opts.SW.InMemoryKeystore)
	assert.Equal(t, 256, opts.SW.Security)
}

func TestDecodeOptsDefaults(t *testing.T) {
	opts, err := DecodeOpts(map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, GetDefaultOpts(), opts)
}

func TestFactoryOptsJSON(t *testing.T) {
	var opts *FactoryOpts
	err := json.Unmarshal([]byte(`{ "default": "SW", "SW":{ "security": 384, "hash": "SHA3" } }`), &opts)
	require.NoError(t, err)
	assert.Equal(t, "SW", opts.FactoryName())
	assert.Equal(t, 384, opts.SW.Security)
	assert.Equal(t, "SHA3", opts.SW.Hash)
}

func TestFactoryOptsYAMLRoundTrip(t *testing.T) {
	opts := GetDefaultOpts()
	opts.SW.FileKeystore = &FileKeystoreOpts{KeyStorePath: "keys"}

	out, err := yaml.Marshal(opts)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Default: SW")
	assert.Contains(t, string(out), "KeyStore: keys")
	assert.NotContains(t, string(out), "LevelDBKeyStore")
}
