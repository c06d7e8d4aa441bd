package chain

import (
	"encoding/json"
	"testing"
)

func TestFCUint64JSONSmallValueIsNumber(t *testing.T) {
	f := FCUint64(42)
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != "42" {
		t.Errorf("MarshalJSON = %s, want 42", data)
	}
}

func TestFCUint64JSONLargeValueIsString(t *testing.T) {
	f := FCUint64(1) << 40
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `"1099511627776"` {
		t.Errorf("MarshalJSON = %s, want quoted large number", data)
	}
	var out FCUint64
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if out != f {
		t.Errorf("round trip = %d, want %d", out, f)
	}
}

func TestFCUint64JSONAcceptsStringForSmallValue(t *testing.T) {
	var out FCUint64
	if err := json.Unmarshal([]byte(`"7"`), &out); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if out != 7 {
		t.Errorf("got %d, want 7", out)
	}
}
