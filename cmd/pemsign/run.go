package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/zhigui-projects/go-pemsign/api"
	"github.com/zhigui-projects/go-pemsign/common/log"
	"github.com/zhigui-projects/go-pemsign/operation"
	"github.com/zhigui-projects/go-pemsign/transport"
)

func (c *cli) run(cmd *cobra.Command, args []string, action operation.Action) error {
	if len(args) != 0 {
		return errors.Errorf("Invalid argument: %v", args)
	}
	if c.listAlgorithms {
		return c.printAlgorithms()
	}

	logCfg := log.Config{Debug: c.debug, ErrorFile: c.logFile}
	if c.stderr != os.Stderr {
		logCfg.Writer = c.stderr
	}
	if err := log.Configure(logCfg); err != nil {
		return err
	}

	if len(c.inputs) == 0 {
		return api.NewError(api.KindPrecondition, "No input file specified")
	}
	if _, err := operation.CheckAlgorithm(c.algorithm); err != nil {
		return err
	}

	tlsOpts, err := c.tlsOptions()
	if err != nil {
		return err
	}
	op, err := operation.NewDefault(tlsOpts)
	if err != nil {
		return err
	}

	base := operation.Options{Action: action, PEM: c.pem, Algorithm: c.algorithm, Debug: c.debug}
	batch := op.RunBatch(cmd.Context(), base, c.inputs, c.signatures, c.jobs)

	if len(batch.Entries) == 1 {
		entry := batch.Entries[0]
		if entry.Err != nil {
			return entry.Err
		}
		fmt.Fprintln(c.stdout, entry.Result)
	} else {
		out, err := json.MarshalIndent(batch.Entries, "", "    ")
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, string(out))
	}

	if batch.Failed() {
		c.exitCode = 1
	}
	return nil
}

func (c *cli) tlsOptions() (*transport.TLSOptions, error) {
	opts := &transport.TLSOptions{
		InsecureSkipVerify: c.insecure,
		Timeout:            c.timeout,
	}
	for _, file := range c.caFiles {
		raw, err := ioutil.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed reading CA file %s", file)
		}
		opts.ServerRootCAs = append(opts.ServerRootCAs, raw)
	}
	return opts, nil
}
