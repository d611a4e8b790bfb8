package crypto

import (
	"crypto"
	"crypto/ecdsa"
)

type ECDSAVerifier struct {
	Pub  *ecdsa.PublicKey
	Hash crypto.Hash
}

// Verify expects an ASN.1 DER encoded (r, s) pair.
func (v *ECDSAVerifier) Verify(signature, data []byte) (bool, error) {
	digest, err := Algorithm{Hash: v.Hash}.Digest(data)
	if err != nil {
		return false, err
	}
	return ecdsa.VerifyASN1(v.Pub, digest, signature), nil
}
