package crypto

import (
	"crypto"
	"crypto/rsa"
)

type RSAVerifier struct {
	Pub  *rsa.PublicKey
	Hash crypto.Hash
	// PSS selects RSASSA-PSS (the "andMGF1" algorithms) over PKCS#1 v1.5.
	PSS bool
}

func (v *RSAVerifier) Verify(signature, data []byte) (bool, error) {
	digest, err := Algorithm{Hash: v.Hash}.Digest(data)
	if err != nil {
		return false, err
	}
	if v.PSS {
		err = rsa.VerifyPSS(v.Pub, v.Hash, digest, signature, &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthAuto})
	} else {
		err = rsa.VerifyPKCS1v15(v.Pub, v.Hash, digest, signature)
	}
	if err != nil {
		logger.Debug("rsa signature mismatch", "hash", v.Hash, "pss", v.PSS, "error", err)
		return false, nil
	}
	return true, nil
}
