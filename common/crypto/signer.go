/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"crypto"
	"crypto/dsa"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"github.com/zhigui-projects/go-pemsign/api"
)

// KeySigner signs with any crypto.Signer whose public half fits the
// algorithm's scheme.
type KeySigner struct {
	Algorithm Algorithm
	Pri       crypto.Signer
}

func (s *KeySigner) Sign(data []byte) ([]byte, error) {
	digest, err := s.Algorithm.Digest(data)
	if err != nil {
		return nil, err
	}
	sig, err := s.Pri.Sign(rand.Reader, digest, s.Algorithm.SignerOpts())
	if err != nil {
		return nil, errors.Wrapf(err, "failed signing with %s", s.Algorithm)
	}
	return sig, nil
}

// NewSigner binds a private key to alg.
func NewSigner(alg Algorithm, key *Key) (api.Signer, error) {
	if key == nil || key.Private == nil {
		return nil, errors.Errorf("%s requires a private key", alg)
	}
	if err := checkScheme(alg, key.Private.Public()); err != nil {
		return nil, err
	}
	return &KeySigner{Algorithm: alg, Pri: key.Private}, nil
}

// NewVerifier binds the public half of key to alg. A private key verifies
// with its own public key.
func NewVerifier(alg Algorithm, key *Key) (api.Verifier, error) {
	if key == nil || key.Public == nil {
		return nil, errors.Errorf("%s requires a public key", alg)
	}
	if err := checkScheme(alg, key.Public); err != nil {
		return nil, err
	}
	switch pub := key.Public.(type) {
	case *rsa.PublicKey:
		return &RSAVerifier{Pub: pub, Hash: alg.Hash, PSS: alg.Scheme == SchemeRSAPSS}, nil
	case *dsa.PublicKey:
		return &DSAVerifier{Pub: pub, Hash: alg.Hash}, nil
	default:
		return &ECDSAVerifier{Pub: pub.(*ecdsa.PublicKey), Hash: alg.Hash}, nil
	}
}

// ErrSchemeMismatch is returned when the key type cannot serve the algorithm.
var ErrSchemeMismatch = errors.New("key type does not match signature algorithm")

func checkScheme(alg Algorithm, pub crypto.PublicKey) error {
	switch pub.(type) {
	case *rsa.PublicKey:
		if alg.Scheme == SchemeRSA || alg.Scheme == SchemeRSAPSS {
			return nil
		}
	case *ecdsa.PublicKey:
		if alg.Scheme == SchemeECDSA {
			return nil
		}
	case *dsa.PublicKey:
		if alg.Scheme == SchemeDSA {
			return nil
		}
	}
	return errors.Wrapf(ErrSchemeMismatch, "%T cannot be used with %s", pub, alg)
}

// EncodeSignature returns the lowercase hex form used on the command line.
func EncodeSignature(sig []byte) string {
	return hex.EncodeToString(sig)
}

// DecodeSignature ignores surrounding whitespace such as a trailing newline
// in a signature file.
func DecodeSignature(s string) ([]byte, error) {
	sig, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrap(err, "signature is not hex encoded")
	}
	return sig, nil
}
