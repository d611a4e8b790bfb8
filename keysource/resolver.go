/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keysource

import (
	"context"

	"github.com/zhigui-projects/go-pemsign/api"
	"github.com/zhigui-projects/go-pemsign/common/crypto"
	"github.com/zhigui-projects/go-pemsign/common/log"
	"github.com/zhigui-projects/go-pemsign/common/source"
	"github.com/zhigui-projects/go-pemsign/transport"
)

var logger = log.GetLogger("module", "keysource")

// CertificateFetcher returns the DER leaf certificate served at an https URL.
type CertificateFetcher interface {
	FetchLeafCertificate(ctx context.Context, rawURL string) ([]byte, error)
}

type Resolver struct {
	fetcher CertificateFetcher
	reader  api.SourceReader
}

// NewResolver returns a Resolver. A nil reader reads local files; a nil
// fetcher rejects https specifiers.
func NewResolver(fetcher CertificateFetcher, reader api.SourceReader) *Resolver {
	if reader == nil {
		reader = source.FileReader{}
	}
	return &Resolver{fetcher: fetcher, reader: reader}
}

// Resolve turns spec into a key. Every failure is a KindKeyUnreadable error.
func (r *Resolver) Resolve(ctx context.Context, spec Specifier) (*crypto.Key, error) {
	if spec.Kind == KindHandle {
		if spec.Handle == nil {
			return nil, api.NewError(api.KindKeyUnreadable, "Cannot read PEM: empty key handle")
		}
		return spec.Handle, nil
	}

	pemString, err := r.ResolvePEM(ctx, spec)
	if err != nil {
		return nil, err
	}
	key, err := crypto.ParseKey([]byte(pemString))
	if err != nil {
		return nil, api.WrapError(api.KindKeyUnreadable, err, "Cannot read PEM: %s", spec)
	}
	logger.Debug("key resolved", "source", spec.Kind, "role", key.Role)
	return key, nil
}

// ResolvePEM returns the PEM text designated by spec.
func (r *Resolver) ResolvePEM(ctx context.Context, spec Specifier) (string, error) {
	switch spec.Kind {
	case KindInlinePEM:
		return spec.Value, nil

	case KindFile:
		raw, err := r.reader.ReadSource(ctx, spec.Value)
		if err != nil {
			return "", api.WrapError(api.KindKeyUnreadable, err, "Cannot read PEM: %s", spec.Value)
		}
		return string(raw), nil

	case KindHTTPS:
		if r.fetcher == nil {
			return "", api.NewError(api.KindKeyUnreadable, "Cannot read PEM: %s: remote certificates are disabled", spec.Value)
		}
		logger.Debug("fetching remote certificate", "url", spec.Value)
		der, err := r.fetcher.FetchLeafCertificate(ctx, spec.Value)
		if err != nil {
			return "", api.WrapError(api.KindKeyUnreadable, err, "Cannot read PEM: %s", spec.Value)
		}
		return transport.CertificatePEM(der), nil

	default:
		return "", api.NewError(api.KindKeyUnreadable, "Cannot read PEM: %s", spec.Value)
	}
}
