package chain

import (
	"encoding/json"
	"testing"

	"eosiogo/codec"
)

func TestChecksum256HexRoundTrip(t *testing.T) {
	c := HashSHA256([]byte("I like turtles"))
	parsed, err := ParseChecksum256(c.String())
	if err != nil {
		t.Fatalf("ParseChecksum256: %v", err)
	}
	if parsed != c {
		t.Errorf("round trip = %v, want %v", parsed, c)
	}
}

func TestChecksumBinaryRoundTrip(t *testing.T) {
	c := HashSHA256([]byte("data"))
	w := codec.NewWriter(32)
	if err := c.MarshalBinary(w); err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var out Checksum256
	if err := out.UnmarshalBinary(codec.NewReader(w.Bytes())); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if out != c {
		t.Errorf("round trip = %v, want %v", out, c)
	}
}

func TestChecksumJSONRoundTrip(t *testing.T) {
	c := HashRipemd160([]byte("data"))
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var out Checksum160
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if out != c {
		t.Errorf("round trip = %v, want %v", out, c)
	}
}

func TestParseChecksumWrongLength(t *testing.T) {
	if _, err := ParseChecksum256("abcd"); err == nil {
		t.Error("expected error for short checksum hex")
	}
}
