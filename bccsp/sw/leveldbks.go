/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"sync"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/utils"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelDBKeyStore persists keys in a LevelDB database. Records are keyed by
// the key kind followed by the SKI and hold the same PEM encoding used by
// the file based keystore.
type LevelDBKeyStore struct {
	path     string
	readOnly bool
	pwd      []byte

	db    *leveldb.DB
	mutex sync.RWMutex

	readOpts  *opt.ReadOptions
	writeOpts *opt.WriteOptions
}

// NewLevelDBKeyStore opens, creating it when missing, the database at path.
// Keys are encrypted under pwd when it is not empty. Close must be called
// to release the database.
func NewLevelDBKeyStore(pwd []byte, path string, readOnly bool) (*LevelDBKeyStore, error) {
	if len(path) == 0 {
		return nil, errors.New("an invalid KeyStore path provided. Path cannot be an empty string")
	}

	db, err := leveldb.OpenFile(path, &opt.Options{ReadOnly: readOnly})
	if err != nil {
		return nil, errors.Wrapf(err, "error opening leveldb keystore at [%s]", path)
	}
	logger.Debugf("LevelDB KeyStore opened at [%s]", path)

	return &LevelDBKeyStore{
		path:      path,
		readOnly:  readOnly,
		pwd:       utils.Clone(pwd),
		db:        db,
		readOpts:  &opt.ReadOptions{},
		writeOpts: &opt.WriteOptions{Sync: true},
	}, nil
}

// ReadOnly returns true if this KeyStore is read only, false otherwise.
func (ks *LevelDBKeyStore) ReadOnly() bool {
	return ks.readOnly
}

// GetKey returns the key stored under ski. A private key takes precedence
// over the public key sharing its SKI.
func (ks *LevelDBKeyStore) GetKey(ski []byte) (bccsp.Key, error) {
	if len(ski) == 0 {
		return nil, errors.New("invalid SKI. Cannot be of zero length")
	}

	ks.mutex.RLock()
	defer ks.mutex.RUnlock()
	if ks.db == nil {
		return nil, errors.New("keystore is closed")
	}

	for _, suffix := range lookupOrder {
		raw, err := ks.db.Get(dbKey(suffix, ski), ks.readOpts)
		if err == leveldb.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "error retrieving key [%x]", ski)
		}
		return unmarshalKey(suffix, raw, ks.pwd)
	}

	return nil, errors.Errorf("key with SKI %x not found in %s", ski, ks.path)
}

// StoreKey stores k. Existing records for the same kind and SKI are
// overwritten.
func (ks *LevelDBKeyStore) StoreKey(k bccsp.Key) error {
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

	ks.mutex.RLock()
	defer ks.mutex.RUnlock()
	if ks.db == nil {
		return errors.New("keystore is closed")
	}

	if err := ks.db.Put(dbKey(suffix, k.SKI()), raw, ks.writeOpts); err != nil {
		logger.Errorf("Error writing key [%x]: %s", k.SKI(), err)
		return errors.Wrapf(err, "error writing key [%x]", k.SKI())
	}
	return nil
}

// Close releases the database. Further calls fail.
func (ks *LevelDBKeyStore) Close() error {
	ks.mutex.Lock()
	defer ks.mutex.Unlock()
	if ks.db == nil {
		return nil
	}
	err := ks.db.Close()
	ks.db = nil
	utils.Zeroize(ks.pwd)
	return errors.Wrapf(err, "error closing leveldb keystore at [%s]", ks.path)
}

func dbKey(suffix string, ski []byte) []byte {
	key := make([]byte, 0, len(suffix)+1+len(ski))
	key = append(key, suffix...)
	key = append(key, '/')
	return append(key, ski...)
}
