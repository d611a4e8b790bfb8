/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

// Signer produces a signature over the whole payload in one call.
type Signer interface {
	Sign(data []byte) ([]byte, error)
}

// Verifier reports whether signature matches data. A mismatch is (false, nil);
// an error means the check could not be carried out at all.
type Verifier interface {
	Verify(signature, data []byte) (bool, error)
}
