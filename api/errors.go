/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	KindPrecondition ErrorKind = iota + 1
	KindUnsupportedAlgorithm
	KindKeyUnreadable
	KindSourceRead
	KindUnhandledAction
	KindMissingSignature
)

func (k ErrorKind) String() string {
	switch k {
	case KindPrecondition:
		return "PreconditionError"
	case KindUnsupportedAlgorithm:
		return "UnsupportedAlgorithmError"
	case KindKeyUnreadable:
		return "KeyUnreadableError"
	case KindSourceRead:
		return "SourceReadError"
	case KindUnhandledAction:
		return "UnhandledActionError"
	case KindMissingSignature:
		return "MissingSignatureError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the typed failure returned by every stage of a sign or verify
// operation. Err, when set, is the underlying I/O or parse error.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError returns an *Error of the given kind annotated with a stack trace.
func NewError(kind ErrorKind, format string, args ...interface{}) error {
	return errors.WithStack(&Error{Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// WrapError is NewError with an underlying cause.
func WrapError(kind ErrorKind, err error, format string, args ...interface{}) error {
	return errors.WithStack(&Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err})
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
