/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"crypto/rand"
	"io"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/eax"
	"github.com/pkg/errors"
)

// GetRandomBytes returns len random looking bytes read from prng, or from
// crypto/rand when prng is nil.
func GetRandomBytes(prng io.Reader, len int) ([]byte, error) {
	if len < 0 {
		return nil, errors.New("Len must be larger than 0")
	}
	if prng == nil {
		prng = rand.Reader
	}

	buffer := make([]byte, len)
	if _, err := io.ReadFull(prng, buffer); err != nil {
		return nil, errors.Wrap(bccsp.ErrRandomnessUnavailable, err.Error())
	}

	return buffer, nil
}

// eaxOpts normalizes the encrypter and decrypter options. A nil value
// selects a random prepended nonce and the default tag length.
func eaxOpts(opts interface{}) (*bccsp.EAXModeOpts, error) {
	switch o := opts.(type) {
	case *bccsp.EAXModeOpts:
		if o == nil {
			return &bccsp.EAXModeOpts{}, nil
		}
		return o, nil
	case bccsp.EAXModeOpts:
		return &o, nil
	case nil:
		return &bccsp.EAXModeOpts{}, nil
	default:
		return nil, errors.Errorf("Mode not recognized [%T]", opts)
	}
}

// newEAX builds the mode for key k. The returned release func must be
// called once the mode is no longer used.
func (conf *config) newEAX(k *aesPrivateKey, tagLen int) (*eax.EAX, func(), error) {
	if tagLen == 0 {
		tagLen = conf.tagLength
	}
	if err := eax.CheckTagSize(tagLen); err != nil {
		return nil, nil, err
	}

	block, release, err := k.cipher()
	if err != nil {
		return nil, nil, err
	}
	mode, err := eax.NewWithTagSize(block, tagLen)
	if err != nil {
		release()
		return nil, nil, err
	}
	return mode, release, nil
}

type eaxEncryptor struct {
	conf *config
	rand io.Reader
}

// Encrypt seals plaintext under k. Without an explicit nonce a fresh one
// is drawn and prepended to the output.
func (e *eaxEncryptor) Encrypt(k bccsp.Key, plaintext []byte, opts bccsp.EncrypterOpts) ([]byte, error) {
	o, err := eaxOpts(opts)
	if err != nil {
		return nil, err
	}

	mode, release, err := e.conf.newEAX(k.(*aesPrivateKey), o.TagLen)
	if err != nil {
		return nil, err
	}
	defer release()

	if o.Nonce != nil {
		return mode.Seal(nil, o.Nonce, plaintext, o.AdditionalData), nil
	}

	prng := o.PRNG
	if prng == nil {
		prng = e.rand
	}
	nonce, err := GetRandomBytes(prng, mode.NonceSize())
	if err != nil {
		return nil, errors.WithMessage(err, "failed generating nonce")
	}

	out := make([]byte, len(nonce), len(nonce)+len(plaintext)+mode.Overhead())
	copy(out, nonce)
	return mode.Seal(out, nonce, plaintext, o.AdditionalData), nil
}

type eaxDecryptor struct {
	conf *config
}

// Decrypt opens ciphertext under k. Without an explicit nonce the input is
// expected to start with one.
func (d *eaxDecryptor) Decrypt(k bccsp.Key, ciphertext []byte, opts bccsp.DecrypterOpts) ([]byte, error) {
	o, err := eaxOpts(opts)
	if err != nil {
		return nil, err
	}

	mode, release, err := d.conf.newEAX(k.(*aesPrivateKey), o.TagLen)
	if err != nil {
		return nil, err
	}
	defer release()

	nonce := o.Nonce
	if nonce == nil {
		if len(ciphertext) < mode.NonceSize()+mode.Overhead() {
			return nil, errors.Wrap(bccsp.ErrAuthenticationFailure, "input shorter than nonce and tag")
		}
		nonce, ciphertext = ciphertext[:mode.NonceSize()], ciphertext[mode.NonceSize():]
	}

	return mode.Open(nil, nonce, ciphertext, o.AdditionalData)
}
