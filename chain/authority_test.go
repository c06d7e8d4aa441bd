package chain

import (
	"testing"

	"eosiogo/codec"
	"eosiogo/crypto"
)

func TestAuthorityBinaryRoundTrip(t *testing.T) {
	priv, err := crypto.GenerateK1PrivateKey()
	if err != nil {
		t.Fatalf("GenerateK1PrivateKey: %v", err)
	}
	pub, err := priv.PublicKey()
	if err != nil {
		t.Fatalf("PublicKey: %v", err)
	}

	auth := Authority{
		Threshold: 1,
		Keys:      []KeyWeight{{Key: pub, Weight: 1}},
		Accounts: []PermissionLevelWeight{
			{Permission: PermissionLevel{Actor: NewName("foo"), Permission: NewName("active")}, Weight: 1},
		},
		Waits: []WaitWeight{{WaitSec: 3600, Weight: 1}},
	}

	w := codec.NewWriter(128)
	if err := auth.MarshalBinary(w); err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var out Authority
	if err := out.UnmarshalBinary(codec.NewReader(w.Bytes())); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if out.Threshold != auth.Threshold {
		t.Errorf("Threshold = %d, want %d", out.Threshold, auth.Threshold)
	}
	if len(out.Keys) != 1 || !out.Keys[0].Key.Equal(auth.Keys[0].Key) {
		t.Errorf("Keys round trip mismatch: %+v", out.Keys)
	}
	if len(out.Accounts) != 1 || out.Accounts[0] != auth.Accounts[0] {
		t.Errorf("Accounts round trip mismatch: %+v", out.Accounts)
	}
	if len(out.Waits) != 1 || out.Waits[0] != auth.Waits[0] {
		t.Errorf("Waits round trip mismatch: %+v", out.Waits)
	}
}
