package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eosiogo/abi"
	"eosiogo/chain"
	"eosiogo/signingrequest"
)

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func TestHandleEncodeThenDecode(t *testing.T) {
	s := New(0)

	encodeResp := postJSON(t, s, "/v1/esr/encode", encodeRequest{
		Chain: "eos",
		Action: chain.Action{
			Account: chain.NewName("eosio.token"),
			Name:    chain.NewName("transfer"),
			Authorization: []chain.PermissionLevel{
				{Actor: chain.ActorPlaceholder, Permission: chain.PermissionPlaceholder},
			},
			Data: []byte{0x01, 0x02},
		},
		Broadcast: true,
	})
	if encodeResp.Code != http.StatusOK {
		t.Fatalf("encode: status %d body %s", encodeResp.Code, encodeResp.Body.String())
	}
	var encoded encodeResponse
	if err := json.Unmarshal(encodeResp.Body.Bytes(), &encoded); err != nil {
		t.Fatalf("unmarshal encode response: %v", err)
	}
	if encoded.URI == "" {
		t.Fatalf("expected a non-empty uri")
	}

	decodeResp := postJSON(t, s, "/v1/esr/decode", decodeRequest{URI: encoded.URI})
	if decodeResp.Code != http.StatusOK {
		t.Fatalf("decode: status %d body %s", decodeResp.Code, decodeResp.Body.String())
	}
	var summary requestSummary
	if err := json.Unmarshal(decodeResp.Body.Bytes(), &summary); err != nil {
		t.Fatalf("unmarshal decode response: %v", err)
	}
	if summary.Signed {
		t.Fatalf("expected unsigned request")
	}
	if len(summary.Actions) != 1 || summary.Actions[0].Account != chain.NewName("eosio.token") {
		t.Fatalf("unexpected actions: %+v", summary.Actions)
	}
}

func TestHandleDecodeRejectsMalformedURI(t *testing.T) {
	s := New(0)
	resp := postJSON(t, s, "/v1/esr/decode", decodeRequest{URI: "not-a-request"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHandleResolveFillsTapos(t *testing.T) {
	s := New(0)

	contractABI := abi.ABI{
		Version: abi.DefaultVersion,
		Structs: []abi.Struct{
			{Name: "noop", Fields: []abi.Field{}},
		},
		Actions: []abi.Action{
			{Name: "transfer", Type: "noop"},
		},
	}

	action := chain.Action{
		Account: chain.NewName("eosio.token"),
		Name:    chain.NewName("transfer"),
	}
	uri, err := signingrequest.NewBuilder(signingrequest.ChainIDFromAlias(signingrequest.ChainAliasEOS)).
		WithAction(action).
		Encode()
	if err != nil {
		t.Fatalf("build uri: %v", err)
	}

	resolveResp := postJSON(t, s, "/v1/esr/resolve", resolveRequest{
		URI:            uri,
		Signer:         "alice@active",
		ABIs:           map[string]abi.ABI{"eosio.token": contractABI},
		RefBlockNum:    10,
		RefBlockPrefix: 20,
		ExpiresInSec:   30,
	})
	if resolveResp.Code != http.StatusOK {
		t.Fatalf("resolve: status %d body %s", resolveResp.Code, resolveResp.Body.String())
	}

	var tx chain.Transaction
	if err := json.Unmarshal(resolveResp.Body.Bytes(), &tx); err != nil {
		t.Fatalf("unmarshal resolve response: %v", err)
	}
	if tx.RefBlockNum != 10 || tx.RefBlockPrefix != 20 {
		t.Fatalf("tapos fields not filled: %+v", tx)
	}
}
