/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package factory

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/sw"
	"github.com/hyperledger/tomcrypt/common/metrics"
	"github.com/hyperledger/tomcrypt/common/metrics/metricsfakes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSWFactoryName(t *testing.T) {
	f := &SWFactory{}
	assert.Equal(t, f.Name(), SoftwareBasedFactoryName)
}

func TestSWFactoryGetInvalidArgs(t *testing.T) {
	f := &SWFactory{}

	_, err := f.Get(nil)
	assert.Error(t, err, "Invalid config. It must not be nil.")

	_, err = f.Get(&FactoryOpts{})
	assert.Error(t, err, "Invalid config. It must not be nil.")

	opts := &FactoryOpts{SW: &SwOpts{}}
	_, err = f.Get(opts)
	assert.Error(t, err, "CSP:500 - Failed initializing configuration at [0,]")

	opts = &FactoryOpts{SW: &SwOpts{Security: 256, Hash: "SHA2", TagLength: 4}}
	_, err = f.Get(opts)
	assert.ErrorIs(t, err, bccsp.ErrInvalidTagLength)
}

func TestSWFactoryGet(t *testing.T) {
	f := &SWFactory{}

	opts := &FactoryOpts{
		SW: &SwOpts{
			Security: 256,
			Hash:     "SHA2",
		},
	}
	csp, err := f.Get(opts)
	assert.NoError(t, err)
	assert.NotNil(t, csp)

	// the dummy key store refuses persistent keys
	_, err = csp.KeyGen(&bccsp.AES256KeyGenOpts{})
	assert.Error(t, err)

	opts = &FactoryOpts{
		SW: &SwOpts{
			Security:     256,
			Hash:         "SHA2",
			FileKeystore: &FileKeystoreOpts{KeyStorePath: t.TempDir()},
		},
	}
	csp, err = f.Get(opts)
	assert.NoError(t, err)
	assert.NotNil(t, csp)
}

func TestSWFactoryKeyStores(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		swOpts *SwOpts
		check  func(t *testing.T)
	}{
		{
			name: "file",
			swOpts: &SwOpts{
				FileKeystore: &FileKeystoreOpts{KeyStorePath: filepath.Join(dir, "file")},
			},
			check: func(t *testing.T) {
				entries, err := os.ReadDir(filepath.Join(dir, "file"))
				require.NoError(t, err)
				assert.Len(t, entries, 1)
			},
		},
		{
			name: "encrypted file",
			swOpts: &SwOpts{
				Password:     "sealed",
				FileKeystore: &FileKeystoreOpts{KeyStorePath: filepath.Join(dir, "encrypted")},
			},
			check: func(t *testing.T) {
				entries, err := os.ReadDir(filepath.Join(dir, "encrypted"))
				require.NoError(t, err)
				require.Len(t, entries, 1)
				raw, err := os.ReadFile(filepath.Join(dir, "encrypted", entries[0].Name()))
				require.NoError(t, err)
				assert.Contains(t, string(raw), "ENCRYPTED")
			},
		},
		{
			name: "leveldb",
			swOpts: &SwOpts{
				LevelDBKeystore: &LevelDBKeystoreOpts{Path: filepath.Join(dir, "leveldb")},
			},
			check: func(t *testing.T) {
				_, err := os.Stat(filepath.Join(dir, "leveldb"))
				assert.NoError(t, err)
			},
		},
		{
			name:   "in memory",
			swOpts: &SwOpts{InMemoryKeystore: &InMemoryKeystoreOpts{}},
			check:  func(t *testing.T) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.swOpts.Security = 256
			tt.swOpts.Hash = "SHA2"

			csp, err := (&SWFactory{}).Get(&FactoryOpts{SW: tt.swOpts})
			require.NoError(t, err)

			k, err := csp.KeyGen(&bccsp.ECDSAP256KeyGenOpts{})
			require.NoError(t, err)

			stored, err := csp.GetKey(k.SKI())
			require.NoError(t, err)
			assert.Equal(t, k.SKI(), stored.SKI())
			assert.True(t, stored.Private())

			tt.check(t)

			require.NoError(t, csp.(io.Closer).Close())
		})
	}
}

func TestSWFactoryKeyStoreErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := (&SWFactory{}).Get(&FactoryOpts{SW: &SwOpts{
		Security:     256,
		Hash:         "SHA2",
		FileKeystore: &FileKeystoreOpts{KeyStorePath: filepath.Join(file, "ks")},
	}})
	assert.ErrorContains(t, err, "Failed to initialize software key store")

	_, err = (&SWFactory{}).Get(&FactoryOpts{SW: &SwOpts{
		Security:        256,
		Hash:            "SHA2",
		LevelDBKeystore: &LevelDBKeystoreOpts{Path: filepath.Join(file, "db")},
	}})
	assert.ErrorContains(t, err, "Failed to initialize LevelDB key store")
}

func TestSWFactoryMetrics(t *testing.T) {
	counter := &metricsfakes.Counter{}
	counter.WithReturns(counter)
	histogram := &metricsfakes.Histogram{}
	histogram.WithReturns(histogram)

	provider := &metricsfakes.Provider{}
	provider.NewCounterStub = func(o metrics.CounterOpts) metrics.Counter {
		assert.Equal(t, sw.OperationsCounterOpts, o)
		return counter
	}
	provider.NewHistogramReturns(histogram)

	f := &SWFactory{MetricsProvider: provider}
	csp, err := f.Get(GetDefaultOpts())
	require.NoError(t, err)
	assert.Equal(t, 1, provider.NewCounterCallCount())
	assert.Equal(t, 1, provider.NewHistogramCallCount())

	_, err = csp.KeyGen(&bccsp.AES256KeyGenOpts{Temporary: true})
	require.NoError(t, err)
	assert.Equal(t, 1, counter.AddCallCount())
	assert.Equal(t, []string{"operation", "key_gen", "result", "success"}, counter.WithArgsForCall(0))
	assert.Equal(t, 1, histogram.ObserveCallCount())
}
