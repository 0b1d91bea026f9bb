/*
Copyright IBM Corp. 2017 All Rights Reserved.

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

package mocks

import (
	"bytes"
	"crypto"
	"errors"
	"hash"
	"reflect"

	"github.com/hyperledger/tomcrypt/bccsp"
)

// MockBCCSP is a programmable BCCSP. Operations return the configured
// values and record the options they were called with.
type MockBCCSP struct {
	KeyGenValue bccsp.Key
	KeyGenErr   error
	KeyGenOptsArgs []bccsp.KeyGenOpts

	GetKeyValue bccsp.Key
	GetKeyErr   error

	KeyImportValue bccsp.Key
	KeyImportErr   error

	HashVal []byte
	HashErr error

	SignArgKey    bccsp.Key
	SignDigestArg []byte
	SignOptsArg   bccsp.SignerOpts
	SignValue     []byte
	SignErr       error

	VerifyValue bool
	VerifyErr   error
	ExpectedSig []byte

	// Encrypt and Decrypt echo their input unless an error is configured.
	EncryptError    error
	DecryptError    error
	EncryptOptsArgs []bccsp.EncrypterOpts
	DecryptOptsArgs []bccsp.DecrypterOpts
}

func (m *MockBCCSP) KeyGen(opts bccsp.KeyGenOpts) (bccsp.Key, error) {
	m.KeyGenOptsArgs = append(m.KeyGenOptsArgs, opts)
	return m.KeyGenValue, m.KeyGenErr
}

func (*MockBCCSP) KeyDeriv(k bccsp.Key, opts bccsp.KeyDerivOpts) (bccsp.Key, error) {
	return nil, errors.New("key derivation is not supported by the mock")
}

func (m *MockBCCSP) KeyImport(raw interface{}, opts bccsp.KeyImportOpts) (bccsp.Key, error) {
	return m.KeyImportValue, m.KeyImportErr
}

func (m *MockBCCSP) GetKey(ski []byte) (bccsp.Key, error) {
	return m.GetKeyValue, m.GetKeyErr
}

func (m *MockBCCSP) Hash(msg []byte, opts bccsp.HashOpts) ([]byte, error) {
	return m.HashVal, m.HashErr
}

func (*MockBCCSP) GetHash(opts bccsp.HashOpts) (hash.Hash, error) {
	return nil, errors.New("hash instances are not supported by the mock")
}

// Sign fails unless it is called with the expected key, digest and opts.
func (m *MockBCCSP) Sign(k bccsp.Key, digest []byte, opts bccsp.SignerOpts) ([]byte, error) {
	if !reflect.DeepEqual(m.SignArgKey, k) {
		return nil, errors.New("invalid key")
	}
	if !reflect.DeepEqual(m.SignDigestArg, digest) {
		return nil, errors.New("invalid digest")
	}
	if !reflect.DeepEqual(m.SignOptsArg, opts) {
		return nil, errors.New("invalid opts")
	}

	return m.SignValue, m.SignErr
}

// Verify reports VerifyValue when set, VerifyErr when configured, and
// otherwise compares signature with ExpectedSig.
func (m *MockBCCSP) Verify(k bccsp.Key, signature, digest []byte, opts bccsp.SignerOpts) (bool, error) {
	switch {
	case m.VerifyValue:
		return true, nil
	case m.VerifyErr != nil:
		return false, m.VerifyErr
	default:
		return bytes.Equal(m.ExpectedSig, signature), nil
	}
}

func (m *MockBCCSP) Encrypt(k bccsp.Key, plaintext []byte, opts bccsp.EncrypterOpts) ([]byte, error) {
	m.EncryptOptsArgs = append(m.EncryptOptsArgs, opts)
	if m.EncryptError != nil {
		return nil, m.EncryptError
	}
	return plaintext, nil
}

func (m *MockBCCSP) Decrypt(k bccsp.Key, ciphertext []byte, opts bccsp.DecrypterOpts) ([]byte, error) {
	m.DecryptOptsArgs = append(m.DecryptOptsArgs, opts)
	if m.DecryptError != nil {
		return nil, m.DecryptError
	}
	return ciphertext, nil
}

type MockKey struct {
	BytesValue []byte
	BytesErr   error
	Symm       bool
	PK         bccsp.Key
	PKErr      error
	Pvt        bool
	SKIValue   []byte
	Destroyed  bool
}

func (m *MockKey) Bytes() ([]byte, error) { return m.BytesValue, m.BytesErr }
func (m *MockKey) SKI() []byte            { return m.SKIValue }
func (m *MockKey) Symmetric() bool        { return m.Symm }
func (m *MockKey) Private() bool          { return m.Pvt }
func (m *MockKey) Destroy()               { m.Destroyed = true }

func (m *MockKey) PublicKey() (bccsp.Key, error) {
	return m.PK, m.PKErr
}

type SignerOpts struct {
	HashFuncValue crypto.Hash
}

func (o *SignerOpts) HashFunc() crypto.Hash {
	return o.HashFuncValue
}

// EncrypterOpts and DecrypterOpts are modes no provider recognizes.
type (
	EncrypterOpts struct{}
	DecrypterOpts struct{}
)

type KeyGenOpts struct {
	EphemeralValue bool
}

func (*KeyGenOpts) Algorithm() string {
	return "MOCK"
}

func (o *KeyGenOpts) Ephemeral() bool {
	return o.EphemeralValue
}

type KeyImportOpts struct {
	EphemeralValue bool
}

func (*KeyImportOpts) Algorithm() string {
	return "MOCK"
}

func (o *KeyImportOpts) Ephemeral() bool {
	return o.EphemeralValue
}

type HashOpts struct{}

func (HashOpts) Algorithm() string {
	return "MOCK"
}

// KeyStore serves GetKeyValue for every SKI and keeps nothing.
type KeyStore struct {
	GetKeyValue   bccsp.Key
	GetKeyErr     error
	StoreKeyErr   error
	ReadOnlyValue bool
	Stored        []bccsp.Key
}

func (ks *KeyStore) ReadOnly() bool {
	return ks.ReadOnlyValue
}

func (ks *KeyStore) GetKey(ski []byte) (bccsp.Key, error) {
	return ks.GetKeyValue, ks.GetKeyErr
}

func (ks *KeyStore) StoreKey(k bccsp.Key) error {
	if ks.StoreKeyErr != nil {
		return ks.StoreKeyErr
	}
	ks.Stored = append(ks.Stored, k)
	return nil
}

type KeyDerivOpts struct {
	EphemeralValue bool
}

func (*KeyDerivOpts) Algorithm() string {
	return "Mock KeyDerivOpts"
}

func (o *KeyDerivOpts) Ephemeral() bool {
	return o.EphemeralValue
}
