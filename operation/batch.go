package operation

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchEntry is the outcome for one input file.
type BatchEntry struct {
	File   string      `json:"file"`
	Result interface{} `json:"result"`
	Error  string      `json:"error,omitempty"`
	Err    error       `json:"-"`
}

type Batch struct {
	Entries []BatchEntry
}

// Failed reports whether any entry errored or any verification did not match.
func (b *Batch) Failed() bool {
	for _, e := range b.Entries {
		if e.Err != nil {
			return true
		}
		if ok, isBool := e.Result.(bool); isBool && !ok {
			return true
		}
	}
	return false
}

// RunBatch runs base once per input, pairing signatures[i] with inputs[i].
// At most jobs operations run at a time; entries keep input order and a
// failing input never stops the others.
func (o *Operator) RunBatch(ctx context.Context, base Options, inputs, signatures []string, jobs int) *Batch {
	if jobs < 1 {
		jobs = 1
	}
	b := &Batch{Entries: make([]BatchEntry, len(inputs))}

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, input := range inputs {
		i, opts := i, base
		opts.Input = input
		opts.Data = nil
		if i < len(signatures) {
			opts.Signature = signatures[i]
		}
		g.Go(func() error {
			entry := BatchEntry{File: opts.Input}
			res, err := o.Run(ctx, opts)
			if err != nil {
				logger.Error("operation failed", "input", opts.Input, "error", err)
				entry.Err = err
				entry.Error = err.Error()
			} else {
				entry.Result = res.Value()
			}
			b.Entries[i] = entry
			return nil
		})
	}
	_ = g.Wait()
	return b
}
