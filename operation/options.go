/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operation

import (
	"github.com/zhigui-projects/go-pemsign/common/crypto"
)

type Action string

const (
	ActionUnspecified Action = ""
	ActionSign        Action = "SIGN"
	ActionVerify      Action = "VERIFY"
)

// Options configures a single sign or verify operation.
//
// Key and PEM are alternatives. When both are set Key wins and PEM is
// ignored with a warning. Data wins over Input and SigString wins over
// Signature in the same way.
type Options struct {
	// Action may be left unspecified, it is then inferred from the key role.
	Action Action
	// PEM is inline PEM text, a PEM file path or an https URL whose server
	// certificate is used (verification only).
	PEM string
	// Key is a pre-built key handle.
	Key *crypto.Key
	// Algorithm is a signature algorithm id such as SHA256withRSA.
	Algorithm string
	// Input names the file to sign or verify. Its bytes are signed as read,
	// without text decoding: for content that is not valid UTF-8 the
	// signature differs from tools that sign the UTF-8 decoded string with
	// replacement characters.
	Input string
	// Data is the payload itself. A non-nil empty slice is a valid payload.
	Data []byte
	// Signature names the file holding the hex signature to verify.
	Signature string
	// SigString is the hex signature itself.
	SigString string
	// Debug raises log verbosity for this operation.
	Debug bool
}

// Result is the outcome of an operation: a signature for SIGN, a match flag
// for VERIFY.
type Result struct {
	Action    Action
	Signature string
	Verified  bool
}

// Value returns the signature string for SIGN and the boolean for VERIFY.
func (r *Result) Value() interface{} {
	if r.Action == ActionSign {
		return r.Signature
	}
	return r.Verified
}
