/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"crypto"
	"crypto/rsa"
	"strings"

	// hash implementations referenced from the algorithm table
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"

	_ "golang.org/x/crypto/ripemd160"

	"github.com/pkg/errors"
)

type Scheme int

const (
	SchemeRSA Scheme = iota + 1
	SchemeECDSA
	SchemeRSAPSS
	SchemeDSA
)

func (s Scheme) String() string {
	switch s {
	case SchemeRSA:
		return "RSA"
	case SchemeECDSA:
		return "ECDSA"
	case SchemeRSAPSS:
		return "RSAandMGF1"
	case SchemeDSA:
		return "DSA"
	default:
		return "unknown"
	}
}

// Algorithm is a named hash + signature scheme pair, e.g. SHA256withRSA.
type Algorithm struct {
	Name   string
	Hash   crypto.Hash
	Scheme Scheme
}

var hashNames = []struct {
	name string
	hash crypto.Hash
}{
	{"MD5", crypto.MD5},
	{"SHA1", crypto.SHA1},
	{"SHA224", crypto.SHA224},
	{"SHA256", crypto.SHA256},
	{"SHA384", crypto.SHA384},
	{"SHA512", crypto.SHA512},
	{"RIPEMD160", crypto.RIPEMD160},
}

// DSA is only offered with the SHA-1 and SHA-2 digests up to 256 bits.
var dsaHashNames = hashNames[1:4]

var (
	algorithmList []Algorithm
	algorithmMap  = map[string]Algorithm{}
)

func init() {
	for _, scheme := range []Scheme{SchemeRSA, SchemeECDSA, SchemeDSA, SchemeRSAPSS} {
		hashes := hashNames
		if scheme == SchemeDSA {
			hashes = dsaHashNames
		}
		for _, h := range hashes {
			alg := Algorithm{Name: h.name + "with" + scheme.String(), Hash: h.hash, Scheme: scheme}
			algorithmList = append(algorithmList, alg)
			algorithmMap[alg.Name] = alg
		}
	}
}

// Algorithms returns the supported algorithm ids in table order.
func Algorithms() []string {
	names := make([]string, 0, len(algorithmList))
	for _, alg := range algorithmList {
		names = append(names, alg.Name)
	}
	return names
}

func LookupAlgorithm(name string) (Algorithm, bool) {
	alg, ok := algorithmMap[name]
	return alg, ok
}

// ParseAlgorithm is LookupAlgorithm with an error naming the valid set.
func ParseAlgorithm(name string) (Algorithm, error) {
	if alg, ok := LookupAlgorithm(name); ok {
		return alg, nil
	}
	return Algorithm{}, errors.Errorf("Invalid alg type %s. Not in [%s]", name, strings.Join(Algorithms(), ", "))
}

// Digest hashes the whole payload in a single write.
func (a Algorithm) Digest(data []byte) ([]byte, error) {
	if !a.Hash.Available() {
		return nil, errors.Errorf("hash function for %s is not linked into the binary", a.Name)
	}
	h := a.Hash.New()
	h.Write(data)
	return h.Sum(nil), nil
}

// SignerOpts returns the options handed to crypto.Signer.Sign.
func (a Algorithm) SignerOpts() crypto.SignerOpts {
	if a.Scheme == SchemeRSAPSS {
		return &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: a.Hash}
	}
	return a.Hash
}

func (a Algorithm) String() string { return a.Name }
