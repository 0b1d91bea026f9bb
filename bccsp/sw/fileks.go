/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/utils"
	"github.com/hyperledger/tomcrypt/internal/fileutil"
	"github.com/pkg/errors"
)

// NewFileBasedKeyStore opens the key store rooted at path, creating the
// directory when it is missing. Keys are written one PEM file per key, named
// <hex SKI>_<sk|key|pk>. With a non-empty pwd, every key is written
// encrypted, and reading an encrypted key without the password
// fails. A read-only store refuses StoreKey.
func NewFileBasedKeyStore(pwd []byte, path string, readOnly bool) (bccsp.KeyStore, error) {
	if path == "" {
		return nil, errors.New("an invalid KeyStore path provided. Path cannot be an empty string")
	}

	created, err := fileutil.EnsureDir(path)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Debugf("Created KeyStore at [%s]", path)
	}

	return &fileBasedKeyStore{
		path:     path,
		pwd:      utils.Clone(pwd),
		readOnly: readOnly,
	}, nil
}

type fileBasedKeyStore struct {
	path     string
	pwd      []byte
	readOnly bool
}

func (ks *fileBasedKeyStore) ReadOnly() bool {
	return ks.readOnly
}

// GetKey returns a key object whose SKI is the one passed. When a private
// key and its public key are both stored, the private key wins.
func (ks *fileBasedKeyStore) GetKey(ski []byte) (bccsp.Key, error) {
	if len(ski) == 0 {
		return nil, errors.New("invalid SKI. Cannot be of zero length")
	}

	alias := hex.EncodeToString(ski)
	suffix := ks.getSuffix(alias)
	if suffix == "" {
		return ks.searchKeystoreForSKI(ski)
	}

	raw, err := ks.readFile(alias, suffix)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed loading key [%x]", ski)
	}
	k, err := unmarshalKey(suffix, raw, ks.pwd)
	if err != nil {
		logger.Errorf("Failed parsing key [%s_%s]: [%s]", alias, suffix, err)
		return nil, errors.WithMessagef(err, "failed loading key [%x]", ski)
	}
	return k, nil
}

// StoreKey writes k atomically, replacing a file stored under the same
// SKI and kind.
func (ks *fileBasedKeyStore) StoreKey(k bccsp.Key) error {
	if ks.readOnly {
		return errors.New("read only KeyStore")
	}

	if k == nil {
		return errors.New("invalid key. It must be different from nil")
	}

	suffix, raw, err := marshalKey(k, ks.pwd)
	if err != nil {
		return err
	}
	return errors.WithMessagef(ks.writeFile(hex.EncodeToString(k.SKI()), suffix, raw), "failed storing key [%x]", k.SKI())
}

// maxKeyFileSize bounds the files read while scanning for a renamed key.
const maxKeyFileSize = 1 << 16

// searchKeystoreForSKI finds a private key whose file was renamed by
// parsing every small file in the store.
func (ks *fileBasedKeyStore) searchKeystoreForSKI(ski []byte) (k bccsp.Key, err error) {
	files, _ := os.ReadDir(ks.path)
	for _, f := range files {
		if f.IsDir() {
			continue
		}

		info, err := f.Info()
		if err != nil || info.Size() > maxKeyFileSize {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(ks.path, f.Name()))
		if err != nil {
			continue
		}

		k, err = unmarshalKey(privateKeySuffix, raw, ks.pwd)
		if err != nil {
			continue
		}
		if !bytes.Equal(k.SKI(), ski) {
			continue
		}

		return k, nil
	}
	return nil, errors.Errorf("key with SKI %x not found in %s", ski, ks.path)
}

func (ks *fileBasedKeyStore) getSuffix(alias string) string {
	for _, suffix := range lookupOrder {
		if _, err := os.Stat(ks.getPathForAlias(alias, suffix)); err == nil {
			return suffix
		}
	}
	return ""
}

func (ks *fileBasedKeyStore) writeFile(alias, suffix string, raw []byte) error {
	err := fileutil.WriteFileAtomically(ks.getPathForAlias(alias, suffix), raw, 0o600)
	if err != nil {
		logger.Errorf("Failed storing key [%s_%s]: [%s]", alias, suffix, err)
		return err
	}
	return nil
}

func (ks *fileBasedKeyStore) readFile(alias, suffix string) ([]byte, error) {
	path := ks.getPathForAlias(alias, suffix)
	logger.Debugf("Loading key [%s] at [%s]...", alias, path)

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Errorf("Failed loading key [%s]: [%s]", alias, err)
		return nil, err
	}
	return raw, nil
}

func (ks *fileBasedKeyStore) getPathForAlias(alias, suffix string) string {
	return filepath.Join(ks.path, alias+"_"+suffix)
}
