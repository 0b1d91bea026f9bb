/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"encoding/hex"
	"sync"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/pkg/errors"
)

// NewInMemoryKeyStore returns a key store that holds key handles for the
// life of the process. AES keys keep their expanded schedule, so nothing
// is serialized.
func NewInMemoryKeyStore() bccsp.KeyStore {
	return &inmemoryKeyStore{keys: map[string]bccsp.Key{}}
}

type inmemoryKeyStore struct {
	m    sync.RWMutex
	keys map[string]bccsp.Key // hex SKI -> key
}

func (ks *inmemoryKeyStore) ReadOnly() bool {
	return false
}

func (ks *inmemoryKeyStore) GetKey(ski []byte) (bccsp.Key, error) {
	if len(ski) == 0 {
		return nil, errors.New("ski is nil or empty")
	}

	skiStr := hex.EncodeToString(ski)

	ks.m.RLock()
	defer ks.m.RUnlock()
	if key, found := ks.keys[skiStr]; found {
		return key, nil
	}
	return nil, errors.Errorf("no key found for ski %x", ski)
}

// StoreKey refuses to replace a key already held under the same SKI.
func (ks *inmemoryKeyStore) StoreKey(k bccsp.Key) error {
	if k == nil {
		return errors.New("key is nil")
	}

	if len(k.SKI()) == 0 {
		return errors.New("key has an empty SKI")
	}
	ski := hex.EncodeToString(k.SKI())

	ks.m.Lock()
	defer ks.m.Unlock()

	if _, found := ks.keys[ski]; found {
		return errors.Errorf("ski %x already exists in the keystore", k.SKI())
	}
	ks.keys[ski] = k

	return nil
}
