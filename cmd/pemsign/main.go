package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/zhigui-projects/go-pemsign/common/crypto"
	"github.com/zhigui-projects/go-pemsign/transport"
)

// cli holds the flags of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	listAlgorithms bool
	debug          bool
	logFile        string
	timeout        time.Duration
	caFiles        []string
	insecure       bool
	jobs           int

	pem        string
	algorithm  string
	inputs     []string
	signatures []string

	exitCode int
}

// The main command describes the service and
// defaults to printing the help message.
func mainCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pemsign",
		Short:         "Compute or verify signatures with PEM keys.",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.listAlgorithms {
				return c.printAlgorithms()
			}
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&c.listAlgorithms, "list-algorithms", "A", false, "print the supported signature algorithms as JSON and exit")
	flags.BoolVarP(&c.debug, "debug", "D", false, "verbose logging, errors are printed with their stack trace")
	flags.StringVar(&c.logFile, "log-file", "", "also write error records as JSON lines to this file")
	flags.DurationVar(&c.timeout, "timeout", transport.DefaultConnectionTimeout, "connect and handshake timeout for https key specifiers")
	flags.StringArrayVar(&c.caFiles, "ca-file", nil, "PEM file with root certificates trusted for https key specifiers (repeatable)")
	flags.BoolVar(&c.insecure, "insecure-skip-verify", false, "do not verify the certificate chain of https key specifiers")
	flags.IntVarP(&c.jobs, "jobs", "j", 1, "number of input files processed at the same time")

	cmd.AddCommand(signCmd(c), verifyCmd(c))
	return cmd
}

func (c *cli) printAlgorithms() error {
	out, err := json.MarshalIndent(crypto.Algorithms(), "", "    ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, string(out))
	return nil
}

// execute runs the command line and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	cmd := mainCmd(c)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if c.debug {
			fmt.Fprintf(stderr, "%+v\n", err)
		} else {
			fmt.Fprintf(stderr, "Error: %s\n", err)
		}
		return 1
	}
	return c.exitCode
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
