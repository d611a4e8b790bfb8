/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package source

import (
	"context"
	"io/ioutil"

	"github.com/dustin/go-humanize"
	"github.com/zhigui-projects/go-pemsign/api"
	"github.com/zhigui-projects/go-pemsign/common/log"
)

var logger = log.GetLogger("module", "source")

// FileReader reads sources from the local file system.
type FileReader struct{}

func (FileReader) ReadSource(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ioutil.ReadFile(name)
}

// Provider supplies the payload and, for verification, the signature of a
// single operation. Explicit values always win over named sources.
type Provider struct {
	Reader api.SourceReader
}

func NewProvider(reader api.SourceReader) *Provider {
	if reader == nil {
		reader = FileReader{}
	}
	return &Provider{Reader: reader}
}

// Payload returns data verbatim when it is non-nil, otherwise the full
// contents of input.
func (p *Provider) Payload(ctx context.Context, data []byte, input string) ([]byte, error) {
	if data != nil {
		return data, nil
	}
	if input == "" {
		return nil, api.NewError(api.KindPrecondition, "input file not specified")
	}
	raw, err := p.Reader.ReadSource(ctx, input)
	if err != nil {
		return nil, api.WrapError(api.KindSourceRead, err, "Cannot read input %s", input)
	}
	logger.Debug("payload loaded", "input", input, "size", humanize.Bytes(uint64(len(raw))))
	return raw, nil
}

// Signature returns sigString verbatim when set, otherwise the contents of
// the signature source.
func (p *Provider) Signature(ctx context.Context, sigString, signature string) (string, error) {
	if sigString != "" {
		return sigString, nil
	}
	if signature == "" {
		return "", api.NewError(api.KindMissingSignature, "Signature file not specified")
	}
	raw, err := p.Reader.ReadSource(ctx, signature)
	if err != nil {
		return "", api.WrapError(api.KindSourceRead, err, "Cannot read signature %s", signature)
	}
	logger.Debug("signature loaded", "signature", signature, "size", humanize.Bytes(uint64(len(raw))))
	return string(raw), nil
}
