package server

import (
	"encoding/json"
	"net/http"
	"time"

	"eosiogo/abi"
	"eosiogo/chain"
	"eosiogo/signingrequest"
)

// decodeRequest is the POST /v1/esr/decode request body: a single URI.
type decodeRequest struct {
	URI string `json:"uri"`
}

// requestSummary is this server's own JSON projection of a decoded
// request — Content's sum-type shape isn't directly JSON-able, so this
// flattens it into the fields a caller actually wants to inspect.
type requestSummary struct {
	Version  signingrequest.Version `json:"version"`
	Callback string                 `json:"callback,omitempty"`
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

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var body decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req, err := signingrequest.DecodeURI(body.URI, s.inflateCapByte)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, describeRequest(req))
}

// encodeRequest is the POST /v1/esr/encode request body: a chain id
// (alias name or 32-byte hex) and a single action to wrap.
type encodeRequest struct {
	Chain     string       `json:"chain"`
	Action    chain.Action `json:"action"`
	Callback  string       `json:"callback"`
	Broadcast bool         `json:"broadcast"`
}

type encodeResponse struct {
	URI string `json:"uri"`
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	var body encodeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var chainID signingrequest.ChainID
	if alias, ok := signingrequest.ChainAliasFromName(body.Chain); ok {
		chainID = signingrequest.ChainIDFromAlias(alias)
	} else {
		full, err := chain.ParseChecksum256(body.Chain)
		if err != nil {
			http.Error(w, "malformed chain id: "+err.Error(), http.StatusBadRequest)
			return
		}
		chainID = signingrequest.ChainIDFromFull(full)
	}

	uri, err := signingrequest.NewBuilder(chainID).
		WithAction(body.Action).
		WithBroadcast(body.Broadcast).
		WithCallback(body.Callback, false).
		Encode()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, encodeResponse{URI: uri})
}

// resolveRequest is the POST /v1/esr/resolve request body: a URI, the
// resolving signer, the account→ABI map needed to decode its actions, and
// the TaPoS fields to inject if the request carries none.
type resolveRequest struct {
	URI            string             `json:"uri"`
	Signer         string             `json:"signer"`
	ABIs           map[string]abi.ABI `json:"abis"`
	RefBlockNum    uint16             `json:"ref_block_num"`
	RefBlockPrefix uint32             `json:"ref_block_prefix"`
	ExpiresInSec   int64              `json:"expires_in_sec"`
}

type fixedTapos struct {
	refBlockNum    uint16
	refBlockPrefix uint32
	expiresIn      time.Duration
}

func (f fixedTapos) Tapos() (uint16, uint32, *chain.TimePointSec, error) {
	expiration := chain.NewTimePointSec(time.Now().Add(f.expiresIn))
	return f.refBlockNum, f.refBlockPrefix, &expiration, nil
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var body resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req, err := signingrequest.DecodeURI(body.URI, s.inflateCapByte)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	signer, err := chain.ParsePermissionLevel(body.Signer)
	if err != nil {
		http.Error(w, "malformed signer: "+err.Error(), http.StatusBadRequest)
		return
	}

	abis := make(map[chain.Name]abi.ABI, len(body.ABIs))
	for account, def := range body.ABIs {
		abis[chain.NewName(account)] = def
	}

	expiresIn := time.Duration(body.ExpiresInSec) * time.Second
	if expiresIn <= 0 {
		expiresIn = 60 * time.Second
	}

	resolved, err := signingrequest.Resolve(req, signer, abis, fixedTapos{
		refBlockNum:    body.RefBlockNum,
		refBlockPrefix: body.RefBlockPrefix,
		expiresIn:      expiresIn,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, resolved.Transaction.Transaction)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
