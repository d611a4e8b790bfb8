/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"crypto/dsa"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/base64"
	"encoding/pem"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

var (
	keysOnce sync.Once
	rsaKey   *rsa.PrivateKey
	ecKey    *ecdsa.PrivateKey
)

func testKeys(t *testing.T) (*rsa.PrivateKey, *ecdsa.PrivateKey) {
	keysOnce.Do(func() {
		var err error
		rsaKey, err = rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		ecKey, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			panic(err)
		}
	})
	return rsaKey, ecKey
}

var (
	dsaOnce sync.Once
	dsaKey  *dsa.PrivateKey
)

func testDSAKey(t *testing.T) *dsa.PrivateKey {
	dsaOnce.Do(func() {
		key := new(dsa.PrivateKey)
		if err := dsa.GenerateParameters(&key.Parameters, rand.Reader, dsa.L1024N160); err != nil {
			panic(err)
		}
		if err := dsa.GenerateKey(key, rand.Reader); err != nil {
			panic(err)
		}
		dsaKey = key
	})
	return dsaKey
}

// dsaPEM returns the OpenSSL "DSA PRIVATE KEY" and PKIX "PUBLIC KEY" blocks.
func dsaPEM(t *testing.T, key *dsa.PrivateKey) ([]byte, []byte) {
	priv, err := asn1.Marshal(struct {
		Version       int
		P, Q, G, Y, X *big.Int
	}{0, key.P, key.Q, key.G, key.Y, key.X})
	require.NoError(t, err)

	params, err := asn1.Marshal(struct{ P, Q, G *big.Int }{key.P, key.Q, key.G})
	require.NoError(t, err)
	y, err := asn1.Marshal(key.Y)
	require.NoError(t, err)
	pub, err := asn1.Marshal(struct {
		Algorithm pkix.AlgorithmIdentifier
		PublicKey asn1.BitString
	}{
		Algorithm: pkix.AlgorithmIdentifier{
			Algorithm:  asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 1},
			Parameters: asn1.RawValue{FullBytes: params},
		},
		PublicKey: asn1.BitString{Bytes: y, BitLength: 8 * len(y)},
	})
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "DSA PRIVATE KEY", Bytes: priv}),
		pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pub})
}

func selfSigned(t *testing.T, priv *rsa.PrivateKey) *x509.Certificate {
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "pemsign test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return cert
}

func TestAlgorithms(t *testing.T) {
	names := Algorithms()
	assert.Len(t, names, 24)
	assert.Equal(t, "MD5withRSA", names[0])
	assert.Equal(t, []string{"SHA1withDSA", "SHA224withDSA", "SHA256withDSA"}, names[14:17])
	assert.Equal(t, "MD5withRSAandMGF1", names[17])
	assert.Contains(t, names, "SHA256withRSA")
	assert.Contains(t, names, "SHA384withECDSA")
	assert.Contains(t, names, "RIPEMD160withRSAandMGF1")

	alg, ok := LookupAlgorithm("SHA256withECDSA")
	assert.True(t, ok)
	assert.Equal(t, SchemeECDSA, alg.Scheme)

	_, ok = LookupAlgorithm("SHA512withDSA")
	assert.False(t, ok)

	_, err := ParseAlgorithm("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid alg type bogus. Not in [MD5withRSA, SHA1withRSA")
}

func TestSignVerifyRoundTrip(t *testing.T) {
	rk, ek := testKeys(t)
	dk := testDSAKey(t)
	payload := []byte("hello world")

	for _, name := range Algorithms() {
		alg, _ := LookupAlgorithm(name)
		var key *Key
		switch alg.Scheme {
		case SchemeECDSA:
			key = NewPrivateKey(ek)
		case SchemeDSA:
			key = NewPrivateKey(NewDSASigner(dk))
		default:
			key = NewPrivateKey(rk)
		}

		t.Run(name, func(t *testing.T) {
			signer, err := NewSigner(alg, key)
			require.NoError(t, err)
			sig, err := signer.Sign(payload)
			require.NoError(t, err)
			assert.NotEmpty(t, sig)

			verifier, err := NewVerifier(alg, NewPublicKey(key.Public))
			require.NoError(t, err)
			ok, err := verifier.Verify(sig, payload)
			require.NoError(t, err)
			assert.True(t, ok)

			for i := range payload {
				tampered := append([]byte(nil), payload...)
				tampered[i] ^= 0x01
				ok, err = verifier.Verify(sig, tampered)
				require.NoError(t, err)
				assert.False(t, ok, "flipped byte %d", i)
			}
		})
	}
}

func TestSchemeMismatch(t *testing.T) {
	rk, ek := testKeys(t)
	ecdsaAlg, _ := LookupAlgorithm("SHA256withECDSA")
	rsaAlg, _ := LookupAlgorithm("SHA256withRSA")

	_, err := NewSigner(ecdsaAlg, NewPrivateKey(rk))
	require.Error(t, err)
	assert.Equal(t, ErrSchemeMismatch, errors.Cause(err))

	_, err = NewVerifier(rsaAlg, NewPublicKey(&ek.PublicKey))
	assert.Equal(t, ErrSchemeMismatch, errors.Cause(err))

	_, err = NewSigner(rsaAlg, NewPublicKey(&rk.PublicKey))
	assert.Error(t, err)

	dsaAlg, _ := LookupAlgorithm("SHA256withDSA")
	_, err = NewSigner(dsaAlg, NewPrivateKey(rk))
	assert.Equal(t, ErrSchemeMismatch, errors.Cause(err))
	_, err = NewVerifier(ecdsaAlg, NewPublicKey(&testDSAKey(t).PublicKey))
	assert.Equal(t, ErrSchemeMismatch, errors.Cause(err))
}

func TestDSAKeyFromPEM(t *testing.T) {
	privPEM, pubPEM := dsaPEM(t, testDSAKey(t))
	alg, err := ParseAlgorithm("SHA256withDSA")
	require.NoError(t, err)

	priv, err := ParseKey(privPEM)
	require.NoError(t, err)
	assert.Equal(t, RolePrivate, priv.Role)
	pub, err := ParseKey(pubPEM)
	require.NoError(t, err)
	assert.Equal(t, RolePublic, pub.Role)
	assert.IsType(t, &dsa.PublicKey{}, pub.Public)

	signer, err := NewSigner(alg, priv)
	require.NoError(t, err)
	sig, err := signer.Sign([]byte("hello world"))
	require.NoError(t, err)

	verifier, err := NewVerifier(alg, pub)
	require.NoError(t, err)
	ok, err := verifier.Verify(sig, []byte("hello world"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = verifier.Verify([]byte{0x01, 0x02}, []byte("hello world"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseKey(t *testing.T) {
	rk, ek := testKeys(t)

	pkcs8, err := x509.MarshalPKCS8PrivateKey(ek)
	require.NoError(t, err)
	sec1, err := x509.MarshalECPrivateKey(ek)
	require.NoError(t, err)
	pkixDER, err := x509.MarshalPKIXPublicKey(&rk.PublicKey)
	require.NoError(t, err)
	sshBlock, err := ssh.MarshalPrivateKey(rk, "pemsign")
	require.NoError(t, err)
	cert := selfSigned(t, rk)

	tests := []struct {
		name  string
		pem   []byte
		role  KeyRole
		isRSA bool
	}{
		{"pkcs8", pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8}), RolePrivate, false},
		{"pkcs1", pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(rk)}), RolePrivate, true},
		{"sec1", pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: sec1}), RolePrivate, false},
		{"openssh", pem.EncodeToMemory(sshBlock), RolePrivate, true},
		{"pkix", pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pkixDER}), RolePublic, true},
		{"pkcs1 public", pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(&rk.PublicKey)}), RolePublic, true},
		{"certificate", pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw}), RoleCertificate, true},
		{"single line certificate", []byte("-----BEGIN CERTIFICATE-----" + base64.StdEncoding.EncodeToString(cert.Raw) + "-----END CERTIFICATE-----"), RoleCertificate, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParseKey(tt.pem)
			require.NoError(t, err)
			assert.Equal(t, tt.role, key.Role)
			_, isRSA := key.Public.(*rsa.PublicKey)
			assert.Equal(t, tt.isRSA, isRSA)
		})
	}

	_, err = ParseKey([]byte("not a pem"))
	assert.Error(t, err)

	_, err = ParseKey(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte("garbage")}))
	assert.Error(t, err)
}

func TestParseKeySkipsUnknownBlocks(t *testing.T) {
	rk, _ := testKeys(t)
	data := append(pem.EncodeToMemory(&pem.Block{Type: "X509 CRL", Bytes: []byte{1, 2, 3}}),
		pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(rk)})...)
	key, err := ParseKey(data)
	require.NoError(t, err)
	assert.Equal(t, RolePrivate, key.Role)
}

func TestSignatureEncoding(t *testing.T) {
	assert.Equal(t, "00ff10", EncodeSignature([]byte{0x00, 0xff, 0x10}))

	sig, err := DecodeSignature("00FF10\n")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x10}, sig)

	_, err = DecodeSignature("zz")
	assert.Error(t, err)
}
