package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"eosiogo/abi"
	"eosiogo/chain"
	"eosiogo/signingrequest"
)

var esrCmd = &cobra.Command{
	Use:   "esr",
	Short: "Build, decode, and resolve EEP-7 signing requests",
}

var esrEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build a signing request URI for a single action",
	Args:  cobra.NoArgs,
	RunE:  runEsrEncode,
}

var esrDecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a signing request URI to JSON",
	Args:  cobra.NoArgs,
	RunE:  runEsrDecode,
}

var esrResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Decode a signing request and resolve placeholders/TaPoS",
	Args:  cobra.NoArgs,
	RunE:  runEsrResolve,
}

func chainIDFromFlag(s string) (signingrequest.ChainID, error) {
	if alias, ok := signingrequest.ChainAliasFromName(s); ok {
		return signingrequest.ChainIDFromAlias(alias), nil
	}
	full, err := chain.ParseChecksum256(s)
	if err != nil {
		return signingrequest.ChainID{}, fmt.Errorf("eosioctl: --chain must be a known alias name or 32-byte hex id: %w", err)
	}
	return signingrequest.ChainIDFromFull(full), nil
}

func runEsrEncode(cmd *cobra.Command, _ []string) error {
	chainStr, _ := cmd.Flags().GetString("chain")
	account, _ := cmd.Flags().GetString("account")
	actionName, _ := cmd.Flags().GetString("action")
	authStr, _ := cmd.Flags().GetString("auth")
	dataHex, _ := cmd.Flags().GetString("data")
	callback, _ := cmd.Flags().GetString("callback")
	broadcast, _ := cmd.Flags().GetBool("broadcast")

	chainID, err := chainIDFromFlag(chainStr)
	if err != nil {
		return err
	}
	auth, err := chain.ParsePermissionLevel(authStr)
	if err != nil {
		return fmt.Errorf("eosioctl: malformed --auth: %w", err)
	}
	data, err := hex.DecodeString(dataHex)
	if err != nil {
		return fmt.Errorf("eosioctl: malformed --data: %w", err)
	}

	action := chain.Action{
		Account:       chain.NewName(account),
		Name:          chain.NewName(actionName),
		Authorization: []chain.PermissionLevel{auth},
		Data:          data,
	}

	builder := signingrequest.NewBuilder(chainID).
		WithActions(action).
		WithBroadcast(broadcast).
		WithCallback(callback, false)

	uri, err := builder.Encode()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), uri)
	return nil
}

func runEsrDecode(cmd *cobra.Command, _ []string) error {
	uri, _ := cmd.Flags().GetString("uri")
	req, err := signingrequest.DecodeURI(uri, 0)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(describeRequest(req), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// requestSummary is the CLI's own JSON projection of a decoded request —
// Content's sum-type shape isn't directly JSON-able, so this flattens it.
type requestSummary struct {
	Version  signingrequest.Version `json:"version"`
	Callback string                 `json:"callback"`
	Flags    uint8                  `json:"flags"`
	Signed   bool                   `json:"signed"`
	Signer   string                 `json:"signer,omitempty"`
	Actions  []chain.Action         `json:"actions,omitempty"`
}

func describeRequest(req *signingrequest.Request) requestSummary {
	summary := requestSummary{
		Version:  req.Version,
		Callback: req.Callback,
		Flags:    uint8(req.Flags),
		Signed:   req.IsSigned(),
		Actions:  req.Content.Actions(),
	}
	if req.Signature != nil {
		summary.Signer = req.Signature.Signer.String()
	}
	return summary
}

func runEsrResolve(cmd *cobra.Command, _ []string) error {
	uri, _ := cmd.Flags().GetString("uri")
	signerStr, _ := cmd.Flags().GetString("signer")
	abiPaths, _ := cmd.Flags().GetStringToString("abi")
	refBlockNum, _ := cmd.Flags().GetUint16("ref-block-num")
	refBlockPrefix, _ := cmd.Flags().GetUint32("ref-block-prefix")
	expiresIn, _ := cmd.Flags().GetDuration("expires-in")

	req, err := signingrequest.DecodeURI(uri, 0)
	if err != nil {
		return err
	}
	signer, err := chain.ParsePermissionLevel(signerStr)
	if err != nil {
		return fmt.Errorf("eosioctl: malformed --signer: %w", err)
	}

	abis := make(map[chain.Name]abi.ABI, len(abiPaths))
	for account, path := range abiPaths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("eosioctl: read %s: %w", path, err)
		}
		var def abi.ABI
		if err := json.Unmarshal(raw, &def); err != nil {
			return fmt.Errorf("eosioctl: parse abi json for %s: %w", account, err)
		}
		abis[chain.NewName(account)] = def
	}

	resolved, err := signingrequest.Resolve(req, signer, abis, cliTapos{
		refBlockNum:    refBlockNum,
		refBlockPrefix: refBlockPrefix,
		expiresIn:      expiresIn,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(resolved.Transaction.Transaction, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// cliTapos supplies TaPoS fields straight from CLI flags; a real client
// would instead read the chain's current head block.
type cliTapos struct {
	refBlockNum    uint16
	refBlockPrefix uint32
	expiresIn      time.Duration
}

func (c cliTapos) Tapos() (uint16, uint32, *chain.TimePointSec, error) {
	expiration := chain.NewTimePointSec(time.Now().Add(c.expiresIn))
	return c.refBlockNum, c.refBlockPrefix, &expiration, nil
}

func init() {
	esrEncodeCmd.Flags().String("chain", "eos", "chain alias name or 32-byte hex chain id")
	esrEncodeCmd.Flags().String("account", "", "action's contract account")
	esrEncodeCmd.Flags().String("action", "", "action name")
	esrEncodeCmd.Flags().String("auth", "............1@............2", "actor@permission (placeholders by default)")
	esrEncodeCmd.Flags().String("data", "", "hex-encoded action data")
	esrEncodeCmd.Flags().String("callback", "", "callback URL template")
	esrEncodeCmd.Flags().Bool("broadcast", true, "set the broadcast flag")

	esrDecodeCmd.Flags().String("uri", "", "esr: URI to decode")

	esrResolveCmd.Flags().String("uri", "", "esr: URI to resolve")
	esrResolveCmd.Flags().String("signer", "", "actor@permission resolving the request's placeholders")
	esrResolveCmd.Flags().StringToString("abi", nil, "account=path/to/abi.json, repeatable")
	esrResolveCmd.Flags().Uint16("ref-block-num", 0, "TaPoS ref block num")
	esrResolveCmd.Flags().Uint32("ref-block-prefix", 0, "TaPoS ref block prefix")
	esrResolveCmd.Flags().Duration("expires-in", 60*time.Second, "transaction expiration, relative to now")

	esrCmd.AddCommand(esrEncodeCmd, esrDecodeCmd, esrResolveCmd)
	rootCmd.AddCommand(esrCmd)
}
