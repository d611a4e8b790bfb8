package main

import (
	"github.com/spf13/cobra"
	"github.com/zhigui-projects/go-pemsign/operation"
)

func signCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Compute a signature.",
		Long:  `Compute a hex encoded signature for every input file with a private key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args, operation.ActionSign)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&c.pem, "pem", "p", "", "private key: PEM text or PEM file name")
	flags.StringVarP(&c.algorithm, "algorithm", "a", "", "signature algorithm, see --list-algorithms")
	flags.StringArrayVarP(&c.inputs, "input", "i", nil, "file to process (repeatable)")
	return cmd
}
