/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"crypto/sha256"
	"sync"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/rijndael"
	"github.com/hyperledger/tomcrypt/bccsp/utils"
	"github.com/pkg/errors"
)

// aesPrivateKey holds a raw AES key together with its expanded schedule,
// so the schedule is computed once per key rather than once per call.
type aesPrivateKey struct {
	privKey    []byte
	exportable bool

	ski   []byte
	block *rijndael.Cipher

	mutex     sync.RWMutex
	destroyed bool
}

func newAESKey(raw []byte, exportable bool) (*aesPrivateKey, error) {
	block, err := rijndael.NewCipher(raw)
	if err != nil {
		return nil, err
	}

	k := &aesPrivateKey{
		privKey:    utils.Clone(raw),
		exportable: exportable,
		block:      block,
	}
	hash := sha256.New()
	hash.Write([]byte{0x01})
	hash.Write(k.privKey)
	k.ski = hash.Sum(nil)

	return k, nil
}

// Bytes converts this key to its byte representation,
// if this operation is allowed.
func (k *aesPrivateKey) Bytes() ([]byte, error) {
	k.mutex.RLock()
	defer k.mutex.RUnlock()

	if k.destroyed {
		return nil, bccsp.ErrKeyDestroyed
	}
	if k.exportable {
		return utils.Clone(k.privKey), nil
	}

	return nil, errors.New("Not supported.")
}

// SKI returns the subject key identifier of this key.
func (k *aesPrivateKey) SKI() []byte {
	return utils.Clone(k.ski)
}

// Symmetric returns true if this key is a symmetric key,
// false if this key is asymmetric
func (k *aesPrivateKey) Symmetric() bool {
	return true
}

// Private returns true if this key is a private key,
// false otherwise.
func (k *aesPrivateKey) Private() bool {
	return true
}

// PublicKey returns the corresponding public key part of an asymmetric public/private key pair.
// This method returns an error in symmetric key schemes.
func (k *aesPrivateKey) PublicKey() (bccsp.Key, error) {
	return nil, errors.New("Cannot call this method on a symmetric key.")
}

// Destroy wipes the key and its schedule.
func (k *aesPrivateKey) Destroy() {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	utils.Zeroize(k.privKey)
	k.block.Destroy()
	k.destroyed = true
}

// cipher returns the expanded block cipher while holding the read lock.
// The caller must invoke release when done with it.
func (k *aesPrivateKey) cipher() (block *rijndael.Cipher, release func(), err error) {
	k.mutex.RLock()
	if k.destroyed {
		k.mutex.RUnlock()
		return nil, nil, bccsp.ErrKeyDestroyed
	}
	return k.block, k.mutex.RUnlock, nil
}
