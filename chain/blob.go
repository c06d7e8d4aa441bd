package chain

import (
	"encoding/json"

	"eosiogo/codec"
)

// Blob is an opaque byte string, length-prefixed on the wire and
// base64-encoded in JSON.
type Blob []byte

func (b Blob) MarshalBinary(w *codec.Writer) error {
	w.WriteBytes(b)
	return nil
}

func (b *Blob) UnmarshalBinary(r *codec.Reader) error {
	data, err := r.ReadBytes()
	if err != nil {
		return err
	}
	*b = data
	return nil
}

func (b Blob) MarshalJSON() ([]byte, error) {
	return json.Marshal(codec.EncodeBase64(b))
}

func (b *Blob) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := codec.DecodeBase64Padded(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}
