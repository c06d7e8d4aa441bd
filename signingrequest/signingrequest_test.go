package signingrequest

import (
	"bytes"
	"strings"
	"testing"

	"eosiogo/abi"
	"eosiogo/chain"
	"eosiogo/codec"
	"eosiogo/crypto"
)

func testPrivateKey(t *testing.T) crypto.PrivateKey {
	t.Helper()
	scalar := bytes.Repeat([]byte{0x07}, 32)
	priv, err := crypto.NewK1PrivateKey(scalar)
	if err != nil {
		t.Fatalf("NewK1PrivateKey: %v", err)
	}
	return priv
}

func sampleAction() chain.Action {
	return chain.Action{
		Account: chain.NewName("eosio.token"),
		Name:    chain.NewName("transfer"),
		Authorization: []chain.PermissionLevel{
			{Actor: chain.ActorPlaceholder, Permission: chain.PermissionPlaceholder},
		},
		Data: []byte{0x01, 0x02, 0x03},
	}
}

func TestChainIDAliasRoundTrip(t *testing.T) {
	id := ChainIDFromAlias(ChainAliasEOS)
	if !id.IsAlias() {
		t.Fatalf("expected alias form")
	}
	full := id.Resolve()

	fromFull := ChainIDFromFull(full)
	if !fromFull.IsAlias() || fromFull.Alias() != ChainAliasEOS {
		t.Fatalf("ChainIDFromFull did not compact known id back to its alias")
	}
	if !id.Equal(fromFull) {
		t.Fatalf("alias and full forms of the same chain id compared unequal")
	}
}

func TestChainIDUnknownFullDoesNotAlias(t *testing.T) {
	var arbitrary chain.Checksum256
	arbitrary[0] = 0xff
	id := ChainIDFromFull(arbitrary)
	if id.IsAlias() {
		t.Fatalf("arbitrary id should not resolve to a built-in alias")
	}
	if id.Resolve() != arbitrary {
		t.Fatalf("Resolve() did not round-trip the full id")
	}
}

func TestPackUnpackUnsignedRequest(t *testing.T) {
	req := &Request{
		Version:  Version2,
		ChainID:  ChainIDFromAlias(ChainAliasEOS),
		Content:  NewActionContent(sampleAction()),
		Flags:    FlagBroadcast,
		Callback: "https://example.com/cb?tx={{tx}}",
	}
	req.SetInfo("note", []byte("hello"))

	packed, err := Pack(req, EncodeOptions{Compress: false})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if packed[0]&compressionFlag != 0 {
		t.Fatalf("compression bit set for uncompressed pack")
	}

	decoded, err := Unpack(packed, 0)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if decoded.IsSigned() {
		t.Fatalf("expected unsigned request")
	}
	if decoded.Flags.Broadcast() != true || decoded.Flags.Background() != false {
		t.Fatalf("flags mismatch: got %08b", decoded.Flags)
	}
	if decoded.Callback != req.Callback {
		t.Fatalf("callback mismatch: got %q want %q", decoded.Callback, req.Callback)
	}
	note, ok := decoded.InfoValue("note")
	if !ok || string(note) != "hello" {
		t.Fatalf("info round-trip failed: %q ok=%v", note, ok)
	}
	if decoded.Content.Kind != ContentAction {
		t.Fatalf("content kind mismatch: %v", decoded.Content.Kind)
	}
	if decoded.Content.Action.Account != chain.NewName("eosio.token") {
		t.Fatalf("action account mismatch: %v", decoded.Content.Action.Account)
	}
}

func TestPackUnpackCompressed(t *testing.T) {
	req := &Request{
		Version: Version2,
		ChainID: ChainIDFromAlias(ChainAliasJungle),
		Content: NewActionsContent([]chain.Action{sampleAction(), sampleAction()}),
	}

	packed, err := Pack(req, EncodeOptions{Compress: true})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if packed[0]&compressionFlag == 0 {
		t.Fatalf("expected compression bit set")
	}

	decoded, err := Unpack(packed, 0)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if len(decoded.Content.Actions()) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(decoded.Content.Actions()))
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	priv := testPrivateKey(t)
	pub, err := priv.PublicKey()
	if err != nil {
		t.Fatalf("PublicKey: %v", err)
	}

	req := &Request{
		Version: Version2,
		ChainID: ChainIDFromAlias(ChainAliasEOS),
		Content: NewActionContent(sampleAction()),
	}

	signerName := chain.NewName("alice")
	signed, err := Sign(req, signerName, priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !signed.IsSigned() {
		t.Fatalf("signed request reports unsigned")
	}
	if req.IsSigned() {
		t.Fatalf("Sign mutated the original request")
	}

	ok, err := Verify(signed, pub)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("signature did not verify")
	}

	recovered, err := RecoverSigner(signed)
	if err != nil {
		t.Fatalf("RecoverSigner: %v", err)
	}
	if recovered.String() != pub.String() {
		t.Fatalf("recovered key mismatch: got %s want %s", recovered.String(), pub.String())
	}
}

func TestPackUnpackPreservesSignature(t *testing.T) {
	priv := testPrivateKey(t)
	req := &Request{
		Version: Version2,
		ChainID: ChainIDFromAlias(ChainAliasEOS),
		Content: NewActionContent(sampleAction()),
	}
	signed, err := Sign(req, chain.NewName("alice"), priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	packed, err := Pack(signed, EncodeOptions{Compress: true})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	decoded, err := Unpack(packed, 0)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if !decoded.IsSigned() {
		t.Fatalf("signature lost across pack/unpack")
	}
	if decoded.Signature.Signer != chain.NewName("alice") {
		t.Fatalf("signer name lost: %v", decoded.Signature.Signer)
	}
	pub, _ := priv.PublicKey()
	ok, err := Verify(decoded, pub)
	if err != nil || !ok {
		t.Fatalf("decoded signature did not verify: ok=%v err=%v", ok, err)
	}
}

func TestEncodeDecodeURI(t *testing.T) {
	req := &Request{
		Version:  Version2,
		ChainID:  ChainIDFromAlias(ChainAliasEOS),
		Content:  NewActionContent(sampleAction()),
		Callback: "https://example.com/cb",
	}
	uri, err := EncodeURI(req, DefaultEncodeOptions)
	if err != nil {
		t.Fatalf("EncodeURI: %v", err)
	}
	if !strings.HasPrefix(uri, "esr://") {
		t.Fatalf("URI missing esr:// prefix: %s", uri)
	}

	decoded, err := DecodeURI(uri, 0)
	if err != nil {
		t.Fatalf("DecodeURI: %v", err)
	}
	if decoded.Callback != req.Callback {
		t.Fatalf("callback mismatch after URI round-trip")
	}

	// Bare "esr:" prefix (no authority slashes) must also decode.
	bare := strings.Replace(uri, "esr://", "esr:", 1)
	if _, err := DecodeURI(bare, 0); err != nil {
		t.Fatalf("DecodeURI with bare esr: prefix: %v", err)
	}
}

func TestDecodeURIRejectsWrongScheme(t *testing.T) {
	if _, err := DecodeURI("not-a-request", 0); err == nil {
		t.Fatalf("expected error for missing scheme")
	}
}

func TestUnpackRejectsUnsupportedVersion(t *testing.T) {
	if _, err := Unpack([]byte{0x09}, 0); err == nil {
		t.Fatalf("expected error for unsupported version byte")
	}
}

func TestVersion3IdentityScope(t *testing.T) {
	scope := chain.NewName("someapp")
	id := Identity{Account: chain.ActorPlaceholder, Scope: &scope}
	req := &Request{
		Version: Version3,
		ChainID: ChainIDFromAlias(ChainAliasEOS),
		Content: NewIdentityContent(id),
	}
	packed, err := Pack(req, EncodeOptions{Compress: false})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	decoded, err := Unpack(packed, 0)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if decoded.Content.Kind != ContentIdentity {
		t.Fatalf("expected identity content")
	}
	if decoded.Content.Identity.Scope == nil || *decoded.Content.Identity.Scope != scope {
		t.Fatalf("scope lost across round-trip: %+v", decoded.Content.Identity.Scope)
	}
}

func TestVersion2IdentityHasNoScopeField(t *testing.T) {
	id := Identity{Account: chain.NewName("alice")}
	req := &Request{
		Version: Version2,
		ChainID: ChainIDFromAlias(ChainAliasEOS),
		Content: NewIdentityContent(id),
	}
	packed, err := Pack(req, EncodeOptions{Compress: false})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	decoded, err := Unpack(packed, 0)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if decoded.Content.Identity.Scope != nil {
		t.Fatalf("Version2 identity should carry no scope field")
	}
}

func TestSubstitutePlaceholders(t *testing.T) {
	signer := chain.PermissionLevel{Actor: chain.NewName("alice"), Permission: chain.NewName("active")}
	pl := substitutePermissionLevel(chain.PermissionLevel{
		Actor:      chain.ActorPlaceholder,
		Permission: chain.PermissionPlaceholder,
	}, signer)
	if pl.Actor != signer.Actor || pl.Permission != signer.Permission {
		t.Fatalf("placeholder substitution failed: %+v", pl)
	}

	untouched := chain.PermissionLevel{Actor: chain.NewName("bob"), Permission: chain.NewName("owner")}
	pl2 := substitutePermissionLevel(untouched, signer)
	if pl2 != untouched {
		t.Fatalf("non-placeholder permission level was modified: %+v", pl2)
	}
}

func TestCallbackTemplating(t *testing.T) {
	priv := testPrivateKey(t)
	pub, _ := priv.PublicKey()
	digest := chain.HashSHA256([]byte("irrelevant, only used to produce a deterministic signature"))
	sig, err := crypto.K1Sign(priv, [32]byte(digest))
	if err != nil {
		t.Fatalf("K1Sign: %v", err)
	}
	_ = pub

	ctx := CallbackContext{
		Signatures: []crypto.Signature{sig},
		Signer:     chain.PermissionLevel{Actor: chain.NewName("alice"), Permission: chain.NewName("active")},
	}

	req := &Request{Callback: "cb?sig={{sig}}&sa={{sa}}&sp={{sp}}&unknown={{nope}}"}
	rendered, err := RenderCallback(req, ctx)
	if err != nil {
		t.Fatalf("RenderCallback: %v", err)
	}
	if !strings.Contains(rendered, sig.String()) {
		t.Fatalf("rendered callback missing signature: %s", rendered)
	}
	if !strings.Contains(rendered, "sa=alice") || !strings.Contains(rendered, "sp=active") {
		t.Fatalf("rendered callback missing actor/permission: %s", rendered)
	}
	if !strings.Contains(rendered, "{{nope}}") {
		t.Fatalf("unrecognized token should be left untouched: %s", rendered)
	}
}

func TestBackgroundPayloadRejectsReservedKey(t *testing.T) {
	ctx := CallbackContext{
		Signer: chain.PermissionLevel{Actor: chain.NewName("alice"), Permission: chain.NewName("active")},
	}
	if _, err := BackgroundPayload(ctx, map[string]string{"sa": "mallory"}); err == nil {
		t.Fatalf("expected reserved-key error")
	}
	out, err := BackgroundPayload(ctx, map[string]string{"extra": "value"})
	if err != nil {
		t.Fatalf("BackgroundPayload: %v", err)
	}
	if out["extra"] != "value" {
		t.Fatalf("extra key not carried through: %+v", out)
	}
	if out["sa"] != "alice" {
		t.Fatalf("reserved token not populated: %+v", out)
	}
}

func TestBuilderFluentRoundTrip(t *testing.T) {
	priv := testPrivateKey(t)
	uri, err := NewBuilder(ChainIDFromAlias(ChainAliasEOS)).
		WithActions(sampleAction()).
		WithBroadcast(true).
		WithCallback("https://example.com/cb", false).
		Sign(chain.NewName("alice"), priv).
		Encode()
	if err != nil {
		t.Fatalf("builder chain: %v", err)
	}

	decoded, err := DecodeURI(uri, 0)
	if err != nil {
		t.Fatalf("DecodeURI: %v", err)
	}
	if !decoded.IsSigned() {
		t.Fatalf("expected signed request from builder")
	}
	if !decoded.Flags.Broadcast() {
		t.Fatalf("expected broadcast flag set")
	}
}

func TestBuilderLatchesSignError(t *testing.T) {
	// An R1 key has no PublicKey()/signing support in this package, so
	// Sign must fail and the error must surface from Build/Encode rather
	// than panicking.
	r1 := crypto.NewOtherPrivateKey(crypto.CurveR1, bytes.Repeat([]byte{0x01}, 32))
	_, err := NewBuilder(ChainIDFromAlias(ChainAliasEOS)).
		WithAction(sampleAction()).
		Sign(chain.NewName("alice"), r1).
		Encode()
	if err == nil {
		t.Fatalf("expected latched error from signing with a non-K1 key")
	}
}

func TestResolveIdentitySubstitutesActorPlaceholder(t *testing.T) {
	req := &Request{
		Content: NewIdentityContent(Identity{Account: chain.ActorPlaceholder}),
	}
	signer := chain.PermissionLevel{Actor: chain.NewName("alice"), Permission: chain.NewName("active")}

	resolved, err := Resolve(req, signer, nil, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !resolved.Transaction.IsIdentity {
		t.Fatalf("expected identity resolution")
	}
	if resolved.Transaction.Identity.Account != signer.Actor {
		t.Fatalf("actor placeholder not substituted: %v", resolved.Transaction.Identity.Account)
	}
}

func TestResolveRequiresTaposSourceWhenMissing(t *testing.T) {
	contractABI := abi.ABI{
		Version: abi.DefaultVersion,
		Structs: []abi.Struct{
			{Name: "noop", Fields: []abi.Field{}},
		},
		Actions: []abi.Action{
			{Name: "transfer", Type: "noop"},
		},
	}
	req := &Request{
		Content: NewActionContent(chain.Action{
			Account: chain.NewName("eosio.token"),
			Name:    chain.NewName("transfer"),
		}),
	}
	signer := chain.PermissionLevel{Actor: chain.NewName("alice"), Permission: chain.NewName("active")}
	abis := map[chain.Name]abi.ABI{chain.NewName("eosio.token"): contractABI}

	if _, err := Resolve(req, signer, abis, nil); err != ErrMissingTaposSource {
		t.Fatalf("expected ErrMissingTaposSource, got %v", err)
	}
}

type fixedTapos struct {
	refBlockNum    uint16
	refBlockPrefix uint32
}

func (f fixedTapos) Tapos() (uint16, uint32, *chain.TimePointSec, error) {
	return f.refBlockNum, f.refBlockPrefix, nil, nil
}

func TestResolveFillsTaposWhenProvided(t *testing.T) {
	contractABI := abi.ABI{
		Version: abi.DefaultVersion,
		Structs: []abi.Struct{
			{Name: "noop", Fields: []abi.Field{}},
		},
		Actions: []abi.Action{
			{Name: "transfer", Type: "noop"},
		},
	}
	req := &Request{
		Content: NewActionContent(chain.Action{
			Account: chain.NewName("eosio.token"),
			Name:    chain.NewName("transfer"),
		}),
	}
	signer := chain.PermissionLevel{Actor: chain.NewName("alice"), Permission: chain.NewName("active")}
	abis := map[chain.Name]abi.ABI{chain.NewName("eosio.token"): contractABI}

	resolved, err := Resolve(req, signer, abis, fixedTapos{refBlockNum: 42, refBlockPrefix: 1234})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Transaction.RefBlockNum != 42 || resolved.Transaction.RefBlockPrefix != 1234 {
		t.Fatalf("tapos fields not filled: %+v", resolved.Transaction.Transaction)
	}
	if resolved.Transaction.Expiration == 0 {
		t.Fatalf("expiration was not defaulted")
	}
}

// TestDecodeWorkedExampleFixture pins the normative end-to-end fixture
// (spec §8 worked example 4) byte-for-byte: a compressed "esr://" URI
// decoding to an EOS mainnet transfer of 1 PENG to "foo", and that same
// request's uncompressed re-encoding sharing the fixture's literal prefix.
func TestDecodeWorkedExampleFixture(t *testing.T) {
	const uri = "esr://gmNgZGBY1mTC_MoglIGBIVzX5uxZRqAQGMBoExgDAjRi4fwAVz93ICUckpGYl12skJZfpFCSkaqQllmcwczAAAA"

	req, err := DecodeURI(uri, 0)
	if err != nil {
		t.Fatalf("DecodeURI: %v", err)
	}
	if !req.ChainID.IsAlias() || req.ChainID.Alias() != ChainAliasEOS {
		t.Fatalf("expected chain alias 1 (EOS mainnet), got %+v", req.ChainID)
	}

	actions := req.Content.Actions()
	if len(actions) != 1 {
		t.Fatalf("expected a single action, got %d", len(actions))
	}
	action := actions[0]
	if action.Account != chain.NewName("eosio.token") || action.Name != chain.NewName("transfer") {
		t.Fatalf("unexpected action target: %s::%s", action.Account, action.Name)
	}

	transferABI := abi.ABI{
		Version: abi.DefaultVersion,
		Structs: []abi.Struct{
			{
				Name: "transfer",
				Fields: []abi.Field{
					{Name: "from", Type: "name"},
					{Name: "to", Type: "name"},
					{Name: "quantity", Type: "asset"},
					{Name: "memo", Type: "string"},
				},
			},
		},
		Actions: []abi.Action{{Name: "transfer", Type: "transfer"}},
	}
	rt, err := abi.NewResolver(transferABI).Resolve("transfer")
	if err != nil {
		t.Fatalf("resolve transfer type: %v", err)
	}
	decoded, err := abi.DynamicDecodeBinary(rt, codec.NewReader(action.Data))
	if err != nil {
		t.Fatalf("DynamicDecodeBinary: %v", err)
	}
	fields, ok := decoded.(*abi.OrderedMap)
	if !ok {
		t.Fatalf("decoded transfer is not an OrderedMap: %T", decoded)
	}

	to, _ := fields.Get("to")
	if to.(chain.Name) != chain.NewName("foo") {
		t.Fatalf("to = %v, want foo", to)
	}
	quantity, _ := fields.Get("quantity")
	if got, want := quantity.(chain.Asset).String(), "1 PENG"; got != want {
		t.Fatalf("quantity = %q, want %q", got, want)
	}
	memo, _ := fields.Get("memo")
	if got, want := memo.(string), "Thanks for the fish"; got != want {
		t.Fatalf("memo = %q, want %q", got, want)
	}

	uncompressed, err := EncodeURI(req, EncodeOptions{Compress: false})
	if err != nil {
		t.Fatalf("EncodeURI (uncompressed): %v", err)
	}
	const wantPrefix = "esr://AgABAACmgjQD6jBVAAAAVy08zc0B"
	if !strings.HasPrefix(uncompressed, wantPrefix) {
		t.Fatalf("uncompressed re-encoding = %s, want prefix %s", uncompressed, wantPrefix)
	}
}
