package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eosiogo/crypto"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new K1 key pair",
	Args:  cobra.NoArgs,
	RunE:  runKeygen,
}

func runKeygen(cmd *cobra.Command, _ []string) error {
	priv, err := crypto.GenerateK1PrivateKey()
	if err != nil {
		return err
	}
	pub, err := priv.PublicKey()
	if err != nil {
		return err
	}
	wif, err := priv.WIF()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "private (WIF):    %s\n", wif)
	fmt.Fprintf(out, "private (modern): %s\n", priv.String())
	fmt.Fprintf(out, "public (modern):  %s\n", pub.String())
	fmt.Fprintf(out, "public (legacy):  %s\n", pub.LegacyString())
	return nil
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
