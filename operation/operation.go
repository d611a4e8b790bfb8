/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operation

import (
	"context"

	"github.com/zhigui-projects/go-pemsign/api"
	"github.com/zhigui-projects/go-pemsign/common/crypto"
	"github.com/zhigui-projects/go-pemsign/common/log"
	"github.com/zhigui-projects/go-pemsign/common/source"
	"github.com/zhigui-projects/go-pemsign/keysource"
	"github.com/zhigui-projects/go-pemsign/transport"
	"golang.org/x/sync/errgroup"
)

var logger = log.GetLogger("module", "operation")

type KeyResolver interface {
	Resolve(ctx context.Context, spec keysource.Specifier) (*crypto.Key, error)
}

// Operator runs sign and verify operations. It holds no per-operation state
// and may be shared between goroutines.
type Operator struct {
	resolver KeyResolver
	provider *source.Provider
}

func New(resolver KeyResolver, reader api.SourceReader) *Operator {
	return &Operator{resolver: resolver, provider: source.NewProvider(reader)}
}

// NewDefault wires the file system reader and a TLS client for https key
// specifiers.
func NewDefault(opts *transport.TLSOptions) (*Operator, error) {
	client, err := transport.NewTLSClient(opts)
	if err != nil {
		return nil, err
	}
	reader := source.FileReader{}
	return New(keysource.NewResolver(client, reader), reader), nil
}

// Run signs or verifies with the default wiring.
func Run(ctx context.Context, opts Options) (*Result, error) {
	op, err := NewDefault(nil)
	if err != nil {
		return nil, err
	}
	return op.Run(ctx, opts)
}

func Sign(ctx context.Context, opts Options) (*Result, error) {
	opts.Action = ActionSign
	return Run(ctx, opts)
}

func Verify(ctx context.Context, opts Options) (*Result, error) {
	opts.Action = ActionVerify
	return Run(ctx, opts)
}

// CheckAlgorithm resolves an algorithm id against the provider table.
func CheckAlgorithm(name string) (crypto.Algorithm, error) {
	alg, err := crypto.ParseAlgorithm(name)
	if err != nil {
		return crypto.Algorithm{}, api.NewError(api.KindUnsupportedAlgorithm, "%s", err.Error())
	}
	return alg, nil
}

func validate(opts Options) (crypto.Algorithm, error) {
	if opts.Key == nil && opts.PEM == "" {
		return crypto.Algorithm{}, api.NewError(api.KindPrecondition, "no key or PEM specified")
	}
	if opts.Input == "" && opts.Data == nil {
		return crypto.Algorithm{}, api.NewError(api.KindPrecondition, "input file not specified")
	}
	alg, err := CheckAlgorithm(opts.Algorithm)
	if err != nil {
		return crypto.Algorithm{}, err
	}
	if !opts.Action.valid() {
		return crypto.Algorithm{}, api.NewError(api.KindUnhandledAction, "Unhandled action: %s", opts.Action)
	}
	if opts.Action == ActionVerify && opts.Signature == "" && opts.SigString == "" {
		return crypto.Algorithm{}, api.NewError(api.KindMissingSignature, "Signature file not specified")
	}
	return alg, nil
}

// Run validates opts without touching the file system or network, reads the
// key, payload and signature concurrently, then signs or verifies. When more
// than one read fails the error of the earliest stage (key, payload,
// signature) is returned.
func (o *Operator) Run(ctx context.Context, opts Options) (*Result, error) {
	l := logger.New("algorithm", opts.Algorithm, "input", opts.Input)
	trace := l.Debug
	if opts.Debug {
		trace = l.Info
	}

	state := StateValidating
	fail := func(err error) (*Result, error) {
		trace("operation state", "state", StateFailed, "stage", state, "error", err)
		return nil, err
	}

	trace("operation state", "state", state)
	alg, err := validate(opts)
	if err != nil {
		return fail(err)
	}

	spec := keysource.Parse(opts.PEM)
	if opts.Key != nil {
		if opts.PEM != "" {
			l.Warning("both key handle and PEM given, ignoring PEM", "pem", spec)
		}
		spec = keysource.FromHandle(opts.Key)
	}
	readSignature := opts.Action == ActionVerify ||
		(opts.Action == ActionUnspecified && (opts.Signature != "" || opts.SigString != ""))

	var (
		key       *crypto.Key
		payload   []byte
		signature string
		errs      [3]error
		g         errgroup.Group
	)
	stages := [3]State{StateResolvingKey, StateReadingPayload, StateReadingSignature}

	g.Go(func() error {
		trace("operation state", "state", StateResolvingKey, "key", spec)
		key, errs[0] = o.resolver.Resolve(ctx, spec)
		return errs[0]
	})
	g.Go(func() error {
		trace("operation state", "state", StateReadingPayload)
		payload, errs[1] = o.provider.Payload(ctx, opts.Data, opts.Input)
		return errs[1]
	})
	if readSignature {
		g.Go(func() error {
			trace("operation state", "state", StateReadingSignature)
			signature, errs[2] = o.provider.Signature(ctx, opts.SigString, opts.Signature)
			return errs[2]
		})
	}
	_ = g.Wait()
	for i, err := range errs {
		if err != nil {
			state = stages[i]
			return fail(err)
		}
	}

	state = StateDispatching
	trace("operation state", "state", state, "role", key.Role)
	res, err := dispatch(opts.Action, alg, key, payload, signature, readSignature)
	if err != nil {
		return fail(err)
	}
	trace("operation state", "state", StateDone, "action", res.Action)
	return res, nil
}
