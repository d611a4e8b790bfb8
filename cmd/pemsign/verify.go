package main

import (
	"github.com/spf13/cobra"
	"github.com/zhigui-projects/go-pemsign/operation"
)

func verifyCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature.",
		Long: `Verify the signature of every input file. Signature files are paired
with input files by position. The key may be an https url, the certificate
presented by that server is then used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args, operation.ActionVerify)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&c.pem, "pem", "p", "", "public key or certificate: PEM text, PEM file name or https url")
	flags.StringVarP(&c.algorithm, "algorithm", "a", "", "signature algorithm, see --list-algorithms")
	flags.StringArrayVarP(&c.inputs, "input", "i", nil, "file to process (repeatable)")
	flags.StringArrayVarP(&c.signatures, "signature", "s", nil, "signature to verify (repeatable, one per input)")
	return cmd
}
