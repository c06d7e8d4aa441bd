package chain

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"eosiogo/codec"
	"eosiogo/crypto"
)

func TestActionBinaryRoundTrip(t *testing.T) {
	quantity, _ := ParseAsset("1.0000 BAZ")
	w := codec.NewWriter(32)
	if err := NewName("foo").MarshalBinary(w); err != nil {
		t.Fatalf("from MarshalBinary: %v", err)
	}
	if err := NewName("bar").MarshalBinary(w); err != nil {
		t.Fatalf("to MarshalBinary: %v", err)
	}
	if err := quantity.MarshalBinary(w); err != nil {
		t.Fatalf("quantity MarshalBinary: %v", err)
	}
	w.WriteString("qux")

	a := Action{
		Account:       NewName("eosio.token"),
		Name:          NewName("transfer"),
		Authorization: []PermissionLevel{{Actor: NewName("foo"), Permission: NewName("active")}},
		Data:          w.Bytes(),
	}

	// spec worked example 1: Transfer{from=foo,to=bar,quantity=1.0000
	// BAZ,memo=qux} encodes to this exact hex.
	want := "000000000000285D000000000000AE3910270000000000000442415A0000000003717578"
	if got := hex.EncodeToString(a.Data); got != strings.ToLower(want) {
		t.Errorf("transfer data hex = %s, want %s", got, want)
	}

	out := codec.NewWriter(64)
	if err := a.MarshalBinary(out); err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var decoded Action
	if err := decoded.UnmarshalBinary(codec.NewReader(out.Bytes())); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if decoded.Account != a.Account || decoded.Name != a.Name {
		t.Errorf("round trip account/name mismatch: %+v", decoded)
	}
	if len(decoded.Authorization) != 1 || decoded.Authorization[0] != a.Authorization[0] {
		t.Errorf("round trip authorization mismatch: %+v", decoded.Authorization)
	}
}

func TestTransactionIDAndSigningDigest(t *testing.T) {
	tx := Transaction{
		Expiration:     NewTimePointSec(time.Unix(1700000000, 0)),
		RefBlockNum:    1,
		RefBlockPrefix: 2,
	}
	id := tx.ID()
	var zero Checksum256
	if id == zero {
		t.Error("ID() returned zero sentinel for a valid transaction")
	}

	var chainID Checksum256
	digest := tx.SigningDigest(chainID)
	if digest == zero {
		t.Error("SigningDigest() returned zero sentinel for a valid transaction")
	}
	if digest == Checksum256(id) {
		t.Error("SigningDigest() should differ from the bare transaction ID")
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	quantity, _ := ParseAsset("1.0000 EOS")
	_ = quantity
	sig, _ := crypto.NewK1Signature(make([]byte, 65))

	tx := SignedTransaction{
		Transaction: Transaction{
			Expiration:     42,
			RefBlockNum:    7,
			RefBlockPrefix: 99,
			Actions: []Action{{
				Account: NewName("eosio.token"),
				Name:    NewName("transfer"),
				Data:    []byte{1, 2, 3},
			}},
		},
		Signatures:      []crypto.Signature{sig},
		ContextFreeData: [][]byte{{0xaa, 0xbb}},
	}

	for _, compress := range []bool{false, true} {
		packed, err := Pack(tx, compress)
		if err != nil {
			t.Fatalf("Pack(compress=%v): %v", compress, err)
		}
		unpacked, err := Unpack(packed)
		if err != nil {
			t.Fatalf("Unpack(compress=%v): %v", compress, err)
		}
		if unpacked.Expiration != tx.Expiration || unpacked.RefBlockNum != tx.RefBlockNum {
			t.Errorf("round trip header mismatch: %+v", unpacked.Transaction)
		}
		if len(unpacked.Actions) != 1 || unpacked.Actions[0].Account != tx.Actions[0].Account {
			t.Errorf("round trip actions mismatch: %+v", unpacked.Actions)
		}
		if len(unpacked.ContextFreeData) != 1 || unpacked.ContextFreeData[0][0] != 0xaa {
			t.Errorf("round trip context-free data mismatch: %+v", unpacked.ContextFreeData)
		}
	}
}
