/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"bytes"
	"crypto"
	"crypto/dsa"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"regexp"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

// PEM block types understood by ParseKey.
const (
	CertificatePEMBlockType = "CERTIFICATE"
	pemPKCS8PrivateKey      = "PRIVATE KEY"
	pemPKCS1PrivateKey      = "RSA PRIVATE KEY"
	pemSEC1PrivateKey       = "EC PRIVATE KEY"
	pemDSAPrivateKey        = "DSA PRIVATE KEY"
	pemOpenSSHPrivateKey    = "OPENSSH PRIVATE KEY"
	pemPKIXPublicKey        = "PUBLIC KEY"
	pemPKCS1PublicKey       = "RSA PUBLIC KEY"
)

type KeyRole int

const (
	RoleUnknown KeyRole = iota
	RolePrivate
	RolePublic
	RoleCertificate
)

func (r KeyRole) String() string {
	switch r {
	case RolePrivate:
		return "private"
	case RolePublic:
		return "public"
	case RoleCertificate:
		return "certificate"
	default:
		return "unknown"
	}
}

// Key is a resolved key handle. It is built once per operation and never
// cached.
type Key struct {
	Role        KeyRole
	Private     crypto.Signer
	Public      crypto.PublicKey
	Certificate *x509.Certificate
}

func NewPrivateKey(priv crypto.Signer) *Key {
	return &Key{Role: RolePrivate, Private: priv, Public: priv.Public()}
}

func NewPublicKey(pub crypto.PublicKey) *Key {
	return &Key{Role: RolePublic, Public: pub}
}

func NewCertificateKey(cert *x509.Certificate) *Key {
	return &Key{Role: RoleCertificate, Public: cert.PublicKey, Certificate: cert}
}

// ParseKey returns the first private key, public key or certificate found in
// the PEM data. A single-line PEM, as produced for remote certificates, is
// accepted as well.
func ParseKey(raw []byte) (*Key, error) {
	key, err := parseBlocks(raw)
	if err == errNoPEM {
		key, err = parseBlocks(reflowPEM(raw))
	}
	return key, err
}

var errNoPEM = errors.New("no PEM data found")

func parseBlocks(raw []byte) (*Key, error) {
	var lastErr error
	rest := raw
	found := false
	for len(rest) > 0 {
		block, next := pem.Decode(rest)
		if block == nil {
			break
		}
		found = true
		key, err := parseBlock(block)
		if err == nil {
			return key, nil
		}
		lastErr = err
		rest = next
	}
	if !found {
		return nil, errNoPEM
	}
	return nil, lastErr
}

func parseBlock(block *pem.Block) (*Key, error) {
	switch block.Type {
	case pemPKCS8PrivateKey, pemPKCS1PrivateKey, pemSEC1PrivateKey:
		priv, err := ParsePrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		return NewPrivateKey(priv), nil
	case pemOpenSSHPrivateKey, pemDSAPrivateKey:
		k, err := ssh.ParseRawPrivateKey(pem.EncodeToMemory(block))
		if err != nil {
			return nil, errors.Wrapf(err, "failed parsing %s", block.Type)
		}
		switch priv := k.(type) {
		case *dsa.PrivateKey:
			return NewPrivateKey(NewDSASigner(priv)), nil
		case crypto.Signer:
			return NewPrivateKey(priv), nil
		default:
			return nil, errors.Errorf("unsupported private key type %T", k)
		}
	case pemPKIXPublicKey:
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(err, "failed parsing public key")
		}
		return NewPublicKey(pub), nil
	case pemPKCS1PublicKey:
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(err, "failed parsing RSA public key")
		}
		return NewPublicKey(pub), nil
	case CertificatePEMBlockType:
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(err, "failed parsing certificate")
		}
		return NewCertificateKey(cert), nil
	default:
		return nil, errors.Errorf("unsupported PEM block type %q", block.Type)
	}
}

// ParsePrivateKey parses a DER private key in PKCS#8, PKCS#1 or SEC 1 form.
func ParsePrivateKey(der []byte) (crypto.Signer, error) {
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		switch k := key.(type) {
		case *rsa.PrivateKey, *ecdsa.PrivateKey:
			return k.(crypto.Signer), nil
		default:
			return nil, errors.Errorf("unsupported private key type %T", key)
		}
	}
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}
	return nil, errors.New("failed parsing private key: not PKCS#8, PKCS#1 or SEC 1")
}

var pemBoundary = regexp.MustCompile(`-----(BEGIN|END) [A-Z0-9 ]+-----`)

// reflowPEM puts every BEGIN/END marker on a line of its own.
func reflowPEM(raw []byte) []byte {
	out := pemBoundary.ReplaceAllFunc(raw, func(m []byte) []byte {
		return append(append([]byte{'\n'}, m...), '\n')
	})
	return bytes.TrimLeft(out, "\n")
}
