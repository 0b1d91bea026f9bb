/*
Copyright IBM Corp. 2016 All Rights Reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package sw

import (
	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/pkg/errors"
)

// NewDummyKeyStore returns a read-only key store that holds nothing. A
// provider built on it only serves keys generated, derived or imported with
// Temporary set, such as the per-message keys of an ECDH exchange.
func NewDummyKeyStore() bccsp.KeyStore {
	return dummyKeyStore{}
}

type dummyKeyStore struct{}

func (dummyKeyStore) ReadOnly() bool {
	return true
}

func (dummyKeyStore) GetKey(ski []byte) (bccsp.Key, error) {
	if len(ski) == 0 {
		return nil, errors.New("invalid SKI. Cannot be of zero length")
	}
	return nil, errors.Errorf("Key [%x] not found. This is a dummy KeyStore", ski)
}

func (dummyKeyStore) StoreKey(k bccsp.Key) error {
	if k == nil {
		return errors.New("invalid key. It must be different from nil")
	}
	return errors.Errorf("Cannot store key [%x]. This is a dummy read-only KeyStore", k.SKI())
}
