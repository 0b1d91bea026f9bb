/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecc

import "github.com/pkg/errors"

// ECDH returns the x coordinate of d*Q, the raw Diffie-Hellman shared
// secret between priv and pub. Callers should feed it to a KDF rather than
// use it as a key.
func ECDH(priv *PrivateKey, pub *PublicKey) ([]byte, error) {
	if priv == nil || pub == nil {
		return nil, errors.New("keys must not be nil")
	}
	if priv.destroyed {
		return nil, ErrKeyDestroyed
	}
	if pub.curve == nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, "key has no curve")
	}
	c := priv.Curve()
	if pub.curve != c {
		return nil, errors.Wrapf(ErrInvalidPublicKey, "curve mismatch: %s and %s", c.name, pub.curve.name)
	}

	d := priv.d.Bytes(c.n)
	defer clear(d)
	x, _, err := c.affine(c.scalarMult(pub.point(), d))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}
	return x, nil
}
