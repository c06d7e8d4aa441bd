package chain

import (
	"encoding/hex"
	"encoding/json"

	"eosiogo/codec"
)

// Action is a single call against (Account, Name) carrying its
// authorization list and ABI-encoded argument bytes. Data is opaque here —
// the abi package is what knows how to encode/decode it against a struct
// definition.
type Action struct {
	Account       Name              `json:"account"`
	Name          Name              `json:"name"`
	Authorization []PermissionLevel `json:"authorization"`
	Data          []byte            `json:"data"`
}

func (a Action) MarshalBinary(w *codec.Writer) error {
	if err := a.Account.MarshalBinary(w); err != nil {
		return err
	}
	if err := a.Name.MarshalBinary(w); err != nil {
		return err
	}
	w.WriteVaruint64(uint64(len(a.Authorization)))
	for _, auth := range a.Authorization {
		if err := auth.MarshalBinary(w); err != nil {
			return err
		}
	}
	w.WriteBytes(a.Data)
	return nil
}

func (a *Action) UnmarshalBinary(r *codec.Reader) error {
	if err := a.Account.UnmarshalBinary(r); err != nil {
		return err
	}
	if err := a.Name.UnmarshalBinary(r); err != nil {
		return err
	}
	count, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	a.Authorization = make([]PermissionLevel, count)
	for i := range a.Authorization {
		if err := a.Authorization[i].UnmarshalBinary(r); err != nil {
			return err
		}
	}
	data, err := r.ReadBytes()
	if err != nil {
		return err
	}
	a.Data = data
	return nil
}

// actionJSON mirrors Action but renders Data as hex, matching the chain's
// own JSON convention for opaque action payloads once an ABI isn't
// available to expand them into a named struct.
type actionJSON struct {
	Account       Name              `json:"account"`
	Name          Name              `json:"name"`
	Authorization []PermissionLevel `json:"authorization"`
	Data          string            `json:"data"`
}

func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(actionJSON{
		Account:       a.Account,
		Name:          a.Name,
		Authorization: a.Authorization,
		Data:          hex.EncodeToString(a.Data),
	})
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var v actionJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	raw, err := hex.DecodeString(v.Data)
	if err != nil {
		return err
	}
	a.Account, a.Name, a.Authorization, a.Data = v.Account, v.Name, v.Authorization, raw
	return nil
}
