package chain

import (
	"encoding/json"
	"testing"
	"time"

	"eosiogo/codec"
)

func TestTimePointBinaryRoundTrip(t *testing.T) {
	tp := NewTimePoint(time.Unix(1700000000, 123000).UTC())
	w := codec.NewWriter(8)
	if err := tp.MarshalBinary(w); err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var out TimePoint
	if err := out.UnmarshalBinary(codec.NewReader(w.Bytes())); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if out != tp {
		t.Errorf("round trip = %v, want %v", out, tp)
	}
}

func TestTimePointSecStringHasNoFractionalSeconds(t *testing.T) {
	tp := NewTimePointSec(time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC))
	if got, want := tp.String(), "2023-11-14T22:13:20"; got != want {
		t.Errorf("TimePointSec.String() = %q, want %q", got, want)
	}
}

func TestTimePointSecJSONRoundTrip(t *testing.T) {
	tp := NewTimePointSec(time.Unix(1700000000, 0).UTC())
	data, err := json.Marshal(tp)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var out TimePointSec
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if out != tp {
		t.Errorf("round trip = %v, want %v", out, tp)
	}
}
