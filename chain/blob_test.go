package chain

import (
	"encoding/json"
	"testing"

	"eosiogo/codec"
)

func TestBlobBinaryRoundTrip(t *testing.T) {
	b := Blob([]byte{1, 2, 3, 4, 5})
	w := codec.NewWriter(8)
	if err := b.MarshalBinary(w); err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var out Blob
	if err := out.UnmarshalBinary(codec.NewReader(w.Bytes())); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if string(out) != string(b) {
		t.Errorf("round trip = %v, want %v", out, b)
	}
}

func TestBlobJSONMissingPadding(t *testing.T) {
	// "Zg" base64-decodes to "f" but is missing its "==" padding.
	var out Blob
	if err := json.Unmarshal([]byte(`"Zg"`), &out); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if string(out) != "f" {
		t.Errorf("got %q, want f", out)
	}
}
