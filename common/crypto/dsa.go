package crypto

import (
	"crypto"
	"crypto/dsa"
	"encoding/asn1"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

type dsaSignature struct {
	R, S *big.Int
}

// DSASigner adapts a DSA private key to crypto.Signer. Signatures are ASN.1
// DER encoded (r, s) pairs, the same framing ECDSA uses.
type DSASigner struct {
	Pri *dsa.PrivateKey
}

func NewDSASigner(priv *dsa.PrivateKey) *DSASigner {
	return &DSASigner{Pri: priv}
}

func (s *DSASigner) Public() crypto.PublicKey {
	return &s.Pri.PublicKey
}

func (s *DSASigner) Sign(rand io.Reader, digest []byte, _ crypto.SignerOpts) ([]byte, error) {
	r, ss, err := dsa.Sign(rand, s.Pri, truncateDigest(&s.Pri.PublicKey, digest))
	if err != nil {
		return nil, errors.Wrap(err, "dsa sign failed")
	}
	return asn1.Marshal(dsaSignature{R: r, S: ss})
}

type DSAVerifier struct {
	Pub  *dsa.PublicKey
	Hash crypto.Hash
}

func (v *DSAVerifier) Verify(signature, data []byte) (bool, error) {
	digest, err := Algorithm{Hash: v.Hash}.Digest(data)
	if err != nil {
		return false, err
	}
	var sig dsaSignature
	rest, err := asn1.Unmarshal(signature, &sig)
	if err != nil || len(rest) != 0 || sig.R == nil || sig.S == nil {
		logger.Debug("malformed dsa signature", "error", err)
		return false, nil
	}
	return dsa.Verify(v.Pub, truncateDigest(v.Pub, digest), sig.R, sig.S), nil
}

// truncateDigest keeps the leftmost bytes of digest that fit the subgroup
// order, as FIPS 186-3 section 4.6 requires. crypto/dsa leaves it to callers.
func truncateDigest(pub *dsa.PublicKey, digest []byte) []byte {
	if n := (pub.Q.BitLen() + 7) / 8; len(digest) > n {
		return digest[:n]
	}
	return digest
}
