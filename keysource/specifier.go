/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keysource

import (
	"regexp"
	"strings"

	"github.com/zhigui-projects/go-pemsign/common/crypto"
	"go.etcd.io/etcd/pkg/fileutil"
)

// PEMMarker starts every PEM block.
const PEMMarker = "-----BEGIN"

type Kind int

const (
	KindUnknown Kind = iota
	KindHandle
	KindInlinePEM
	KindFile
	KindHTTPS
)

func (k Kind) String() string {
	switch k {
	case KindHandle:
		return "handle"
	case KindInlinePEM:
		return "inline-pem"
	case KindFile:
		return "file"
	case KindHTTPS:
		return "https"
	default:
		return "unknown"
	}
}

// Specifier says where key material comes from. Exactly one of Value and
// Handle is meaningful, selected by Kind.
type Specifier struct {
	Kind   Kind
	Value  string
	Handle *crypto.Key
}

// FromHandle wraps a pre-built key.
func FromHandle(key *crypto.Key) Specifier {
	return Specifier{Kind: KindHandle, Handle: key}
}

// Parse classifies value; see Classify.
func Parse(value string) Specifier {
	return Specifier{Kind: Classify(value), Value: value}
}

func (s Specifier) String() string {
	if s.Kind == KindHandle {
		return "<key handle>"
	}
	if s.Kind == KindInlinePEM {
		return "<inline pem>"
	}
	return s.Value
}

// Classify applies the predicates in order, first match wins: inline PEM
// text, an existing local file, an https URL. Content sniffing comes first,
// so text starting with the PEM marker is inline even when a file of that
// name exists.
func Classify(value string) Kind {
	switch {
	case IsInlinePEM(value):
		return KindInlinePEM
	case IsLocalFile(value):
		return KindFile
	case IsHTTPSURL(value):
		return KindHTTPS
	default:
		return KindUnknown
	}
}

func IsInlinePEM(value string) bool {
	return strings.HasPrefix(value, PEMMarker)
}

func IsLocalFile(value string) bool {
	return value != "" && fileutil.Exist(value)
}

var httpsURL = regexp.MustCompile(`(?i)^https://`)

func IsHTTPSURL(value string) bool {
	return httpsURL.MatchString(value)
}
