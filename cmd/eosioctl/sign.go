package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eosiogo/chain"
	"eosiogo/crypto"
)

var signDigestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Sign a raw 32-byte hex digest with a K1 key",
	Args:  cobra.NoArgs,
	RunE:  runSignDigest,
}

var signTxCmd = &cobra.Command{
	Use:   "tx",
	Short: "Sign a transaction JSON file against a chain id",
	Args:  cobra.NoArgs,
	RunE:  runSignTx,
}

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign digests or transactions",
}

func loadSigningKey(flag string) (crypto.PrivateKey, error) {
	if flag == "" {
		return crypto.PrivateKey{}, fmt.Errorf("eosioctl: --key is required")
	}
	return crypto.ParsePrivateKey(flag)
}

func runSignDigest(cmd *cobra.Command, _ []string) error {
	keyStr, _ := cmd.Flags().GetString("key")
	digestStr, _ := cmd.Flags().GetString("digest")

	priv, err := loadSigningKey(keyStr)
	if err != nil {
		return err
	}
	raw, err := hex.DecodeString(digestStr)
	if err != nil {
		return fmt.Errorf("eosioctl: malformed --digest: %w", err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("eosioctl: --digest must be 32 bytes, got %d", len(raw))
	}

	var digest [32]byte
	copy(digest[:], raw)
	sig, err := crypto.K1Sign(priv, digest)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sig.String())
	return nil
}

func runSignTx(cmd *cobra.Command, _ []string) error {
	keyStr, _ := cmd.Flags().GetString("key")
	txPath, _ := cmd.Flags().GetString("tx")
	chainIDStr, _ := cmd.Flags().GetString("chain-id")

	priv, err := loadSigningKey(keyStr)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(txPath)
	if err != nil {
		return fmt.Errorf("eosioctl: read %s: %w", txPath, err)
	}
	var tx chain.Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return fmt.Errorf("eosioctl: parse transaction json: %w", err)
	}

	chainID, err := chain.ParseChecksum256(chainIDStr)
	if err != nil {
		return fmt.Errorf("eosioctl: malformed --chain-id: %w", err)
	}

	digest := tx.SigningDigest(chainID)
	sig, err := crypto.K1Sign(priv, [32]byte(digest))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sig.String())
	return nil
}

func init() {
	signDigestCmd.Flags().String("key", "", "private key (WIF or PVT_ form)")
	signDigestCmd.Flags().String("digest", "", "32-byte hex digest")

	signTxCmd.Flags().String("key", "", "private key (WIF or PVT_ form)")
	signTxCmd.Flags().String("tx", "", "path to a transaction JSON file")
	signTxCmd.Flags().String("chain-id", "", "32-byte hex chain id")

	signCmd.AddCommand(signDigestCmd, signTxCmd)
	rootCmd.AddCommand(signCmd)
}
