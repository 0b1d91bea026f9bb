/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/pem"
	"io"
	"strings"

	"github.com/hyperledger/tomcrypt/bccsp/eax"
	"github.com/hyperledger/tomcrypt/bccsp/rijndael"
	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

// PEMCipher names the only password based scheme understood by
// EncryptPEMBlock: an Argon2id derived AES-256 key used in EAX mode.
const PEMCipher = "ARGON2ID-AES256-EAX"

// Argon2id cost parameters for the PEM key encryption key.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

const (
	procTypeHeader = "Proc-Type"
	dekInfoHeader  = "DEK-Info"
	nonceHeader    = "Nonce"
)

// IsEncryptedPEMBlock reports whether the block carries the password
// encryption headers written by EncryptPEMBlock.
func IsEncryptedPEMBlock(b *pem.Block) bool {
	if b == nil {
		return false
	}
	_, ok := b.Headers[dekInfoHeader]
	return ok
}

// EncryptPEMBlock encrypts data under a key derived from pwd and returns a
// PEM block of the given type. The salt and nonce are drawn from rand
// (crypto/rand when nil) and stored in the block headers; the block type
// is authenticated as associated data.
func EncryptPEMBlock(rnd io.Reader, typ string, data, pwd []byte) (*pem.Block, error) {
	if len(pwd) == 0 {
		return nil, errors.New("password must be different from nil")
	}
	if rnd == nil {
		rnd = rand.Reader
	}

	salt := make([]byte, argonSaltLen)
	nonce := make([]byte, eax.DefaultNonceSize)
	if _, err := io.ReadFull(rnd, salt); err != nil {
		return nil, errors.Wrap(err, "failed generating salt")
	}
	if _, err := io.ReadFull(rnd, nonce); err != nil {
		return nil, errors.Wrap(err, "failed generating nonce")
	}

	aead, destroy, err := pemAEAD(pwd, salt)
	if err != nil {
		return nil, err
	}
	defer destroy()

	return &pem.Block{
		Type: typ,
		Headers: map[string]string{
			procTypeHeader: "4,ENCRYPTED",
			dekInfoHeader:  PEMCipher + "," + hex.EncodeToString(salt),
			nonceHeader:    hex.EncodeToString(nonce),
		},
		Bytes: aead.Seal(nil, nonce, data, []byte(typ)),
	}, nil
}

// DecryptPEMBlock reverses EncryptPEMBlock. A wrong password or any
// tampering yields eax.ErrAuthenticationFailure.
func DecryptPEMBlock(b *pem.Block, pwd []byte) ([]byte, error) {
	if !IsEncryptedPEMBlock(b) {
		return nil, errors.New("PEM block is not encrypted")
	}

	mode, saltHex, ok := strings.Cut(b.Headers[dekInfoHeader], ",")
	if !ok || mode != PEMCipher {
		return nil, errors.Errorf("unsupported PEM encryption [%s]", b.Headers[dekInfoHeader])
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) != argonSaltLen {
		return nil, errors.New("malformed PEM salt")
	}
	nonce, err := hex.DecodeString(b.Headers[nonceHeader])
	if err != nil || len(nonce) == 0 {
		return nil, errors.New("malformed PEM nonce")
	}

	aead, destroy, err := pemAEAD(pwd, salt)
	if err != nil {
		return nil, err
	}
	defer destroy()

	return aead.Open(nil, nonce, b.Bytes, []byte(b.Type))
}

func pemAEAD(pwd, salt []byte) (*eax.EAX, func(), error) {
	kek := argon2.IDKey(pwd, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	defer Zeroize(kek)

	block, err := rijndael.NewCipher(kek)
	if err != nil {
		return nil, nil, err
	}
	aead, err := eax.New(block)
	if err != nil {
		block.Destroy()
		return nil, nil, err
	}
	return aead, block.Destroy, nil
}
