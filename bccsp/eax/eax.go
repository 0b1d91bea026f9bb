/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package eax implements the EAX authenticated encryption mode of Bellare,
// Rogaway and Wagner over a 128-bit block cipher.
package eax

import (
	"crypto/cipher"
	"crypto/subtle"

	"github.com/hyperledger/tomcrypt/bccsp/eax/internal/ctr"
	"github.com/hyperledger/tomcrypt/bccsp/omac"
	"github.com/pkg/errors"
)

const (
	// DefaultTagSize is the tag length used by New.
	DefaultTagSize = 16
	// MinTagSize is the shortest tag accepted.
	MinTagSize = 8
	// DefaultNonceSize is the nonce length reported by NonceSize. Seal and
	// Open accept nonces of any length.
	DefaultNonceSize = 16
)

var (
	// ErrInvalidTagLength is returned for tag lengths outside
	// [MinTagSize, 16].
	ErrInvalidTagLength = errors.New("invalid tag length")
	// ErrAuthenticationFailure is returned by Open when the tag does not
	// match. No plaintext is released together with it.
	ErrAuthenticationFailure = errors.New("message authentication failed")
)

const (
	tweakNonce  = 0
	tweakHeader = 1
	tweakCipher = 2
)

// Bundle is a sealed message: ciphertext of the same length as the
// plaintext and its authentication tag.
type Bundle struct {
	Ciphertext []byte
	Tag        []byte
}

// EAX is an AEAD instance bound to one block cipher key. It holds no
// per-message state and is safe for concurrent use.
type EAX struct {
	block   cipher.Block
	mac     *omac.MAC
	tagSize int
}

var _ cipher.AEAD = (*EAX)(nil)

// New returns EAX with a 16 byte tag.
func New(block cipher.Block) (*EAX, error) {
	return NewWithTagSize(block, DefaultTagSize)
}

// NewWithTagSize returns EAX producing tags of tagSize bytes.
func NewWithTagSize(block cipher.Block, tagSize int) (*EAX, error) {
	if err := CheckTagSize(tagSize); err != nil {
		return nil, err
	}
	mac, err := omac.New(block)
	if err != nil {
		return nil, err
	}
	return &EAX{block: block, mac: mac, tagSize: tagSize}, nil
}

// CheckTagSize returns ErrInvalidTagLength unless MinTagSize <= size <= 16.
func CheckTagSize(size int) error {
	if size < MinTagSize || size > omac.Size {
		return errors.Wrapf(ErrInvalidTagLength, "%d bytes, must be between %d and %d", size, MinTagSize, omac.Size)
	}
	return nil
}

// NonceSize returns the recommended nonce length.
func (e *EAX) NonceSize() int { return DefaultNonceSize }

// Overhead returns the tag length.
func (e *EAX) Overhead() int { return e.tagSize }

// TagSize returns the tag length.
func (e *EAX) TagSize() int { return e.tagSize }

// Seal encrypts and authenticates plaintext, authenticates additionalData
// and appends ciphertext||tag to dst.
func (e *EAX) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	ret, out := sliceForAppend(dst, len(plaintext)+e.tagSize)
	n := e.omacWithTweak(tweakNonce, nonce)
	h := e.omacWithTweak(tweakHeader, additionalData)

	ctr.XORKeyStream(e.block, n, out[:len(plaintext)], plaintext)
	c := e.omacWithTweak(tweakCipher, out[:len(plaintext)])

	subtle.XORBytes(c, c, n)
	subtle.XORBytes(c, c, h)
	copy(out[len(plaintext):], c[:e.tagSize])
	return ret
}

// Open authenticates ciphertext||tag and additionalData and, only when the
// tag matches, appends the decrypted plaintext to dst.
func (e *EAX) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < e.tagSize {
		return nil, errors.Wrap(ErrAuthenticationFailure, "input shorter than tag")
	}
	body := ciphertext[:len(ciphertext)-e.tagSize]
	tag := ciphertext[len(ciphertext)-e.tagSize:]

	n, ok := e.authenticate(nonce, additionalData, body, tag)
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	ret, out := sliceForAppend(dst, len(body))
	ctr.XORKeyStream(e.block, n, out, body)
	if ret == nil {
		// nil is reserved for failure
		ret = []byte{}
	}
	return ret, nil
}

// SealBundle is Seal returning the ciphertext and tag separately.
func (e *EAX) SealBundle(nonce, additionalData, plaintext []byte) *Bundle {
	sealed := e.Seal(nil, nonce, plaintext, additionalData)
	return &Bundle{
		Ciphertext: sealed[:len(plaintext):len(plaintext)],
		Tag:        sealed[len(plaintext):],
	}
}

// OpenBundle is Open taking the ciphertext and tag separately. The tag must
// have the configured length.
func (e *EAX) OpenBundle(nonce, additionalData []byte, b *Bundle) ([]byte, error) {
	if b == nil {
		return nil, errors.New("bundle must not be nil")
	}
	if len(b.Tag) != e.tagSize {
		return nil, errors.Wrapf(ErrInvalidTagLength, "got %d bytes, expected %d", len(b.Tag), e.tagSize)
	}

	n, ok := e.authenticate(nonce, additionalData, b.Ciphertext, b.Tag)
	if !ok {
		return nil, ErrAuthenticationFailure
	}
	out := make([]byte, len(b.Ciphertext))
	ctr.XORKeyStream(e.block, n, out, b.Ciphertext)
	return out, nil
}

// authenticate recomputes the tag over the ciphertext. It returns the CTR
// starting block only when the tags match.
func (e *EAX) authenticate(nonce, additionalData, ciphertext, tag []byte) ([]byte, bool) {
	n := e.omacWithTweak(tweakNonce, nonce)
	h := e.omacWithTweak(tweakHeader, additionalData)
	c := e.omacWithTweak(tweakCipher, ciphertext)
	defer clear(h)
	defer clear(c)

	subtle.XORBytes(c, c, n)
	subtle.XORBytes(c, c, h)
	if subtle.ConstantTimeCompare(c[:e.tagSize], tag) != 1 {
		clear(n)
		return nil, false
	}
	return n, true
}

func (e *EAX) omacWithTweak(t byte, data []byte) []byte {
	m := e.mac.Clone()
	m.SetTweak(t)
	m.Write(data)
	return m.Sum(nil)
}

// sliceForAppend extends in by n bytes and returns the whole slice and the
// extension.
func sliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
