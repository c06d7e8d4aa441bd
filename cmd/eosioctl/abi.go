package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eosiogo/abi"
	"eosiogo/codec"
)

var abiCmd = &cobra.Command{
	Use:   "abi",
	Short: "Encode/decode values against an ABI definition",
}

var abiEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a JSON value to its ABI binary form",
	Args:  cobra.NoArgs,
	RunE:  runAbiEncode,
}

var abiDecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode an ABI binary value to JSON",
	Args:  cobra.NoArgs,
	RunE:  runAbiDecode,
}

func loadResolvedType(abiPath, typeName string) (*abi.ResolvedType, error) {
	raw, err := os.ReadFile(abiPath)
	if err != nil {
		return nil, fmt.Errorf("eosioctl: read %s: %w", abiPath, err)
	}
	var def abi.ABI
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("eosioctl: parse abi json: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("eosioctl: invalid abi: %w", err)
	}
	resolver := abi.NewResolver(def)
	return resolver.Resolve(typeName)
}

func runAbiEncode(cmd *cobra.Command, _ []string) error {
	abiPath, _ := cmd.Flags().GetString("abi")
	typeName, _ := cmd.Flags().GetString("type")
	valuePath, _ := cmd.Flags().GetString("value")

	rt, err := loadResolvedType(abiPath, typeName)
	if err != nil {
		return err
	}

	valueJSON, err := os.ReadFile(valuePath)
	if err != nil {
		return fmt.Errorf("eosioctl: read %s: %w", valuePath, err)
	}

	v, err := abi.DynamicDecodeJSON(rt, valueJSON)
	if err != nil {
		return fmt.Errorf("eosioctl: parse value against %q: %w", typeName, err)
	}

	w := codec.NewWriter(256)
	if err := abi.DynamicEncodeBinary(rt, v, w); err != nil {
		return fmt.Errorf("eosioctl: encode %q: %w", typeName, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(w.Bytes()))
	return nil
}

func runAbiDecode(cmd *cobra.Command, _ []string) error {
	abiPath, _ := cmd.Flags().GetString("abi")
	typeName, _ := cmd.Flags().GetString("type")
	dataHex, _ := cmd.Flags().GetString("data")

	rt, err := loadResolvedType(abiPath, typeName)
	if err != nil {
		return err
	}

	data, err := hex.DecodeString(dataHex)
	if err != nil {
		return fmt.Errorf("eosioctl: malformed --data: %w", err)
	}

	v, err := abi.DynamicDecodeBinary(rt, codec.NewReader(data))
	if err != nil {
		return fmt.Errorf("eosioctl: decode %q: %w", typeName, err)
	}

	out, err := abi.DynamicEncodeJSON(rt, v)
	if err != nil {
		return fmt.Errorf("eosioctl: render %q as json: %w", typeName, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func init() {
	abiEncodeCmd.Flags().String("abi", "", "path to the ABI json definition")
	abiEncodeCmd.Flags().String("type", "", "type name within the ABI to encode against")
	abiEncodeCmd.Flags().String("value", "", "path to a JSON file holding the value")

	abiDecodeCmd.Flags().String("abi", "", "path to the ABI json definition")
	abiDecodeCmd.Flags().String("type", "", "type name within the ABI to decode against")
	abiDecodeCmd.Flags().String("data", "", "hex-encoded binary data")

	abiCmd.AddCommand(abiEncodeCmd, abiDecodeCmd)
	rootCmd.AddCommand(abiCmd)
}
