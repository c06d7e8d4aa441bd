package chain

import "testing"

func TestAssetParseAndString(t *testing.T) {
	a, err := ParseAsset("1.0000 BAZ")
	if err != nil {
		t.Fatalf("ParseAsset: %v", err)
	}
	if a.Units != 10000 {
		t.Errorf("Units = %d, want 10000", a.Units)
	}
	if a.Symbol.Precision() != 4 {
		t.Errorf("Precision = %d, want 4", a.Symbol.Precision())
	}
	if got := a.String(); got != "1.0000 BAZ" {
		t.Errorf("String() = %q, want 1.0000 BAZ", got)
	}
}

func TestAssetNegative(t *testing.T) {
	a, err := ParseAsset("-0.5000 EOS")
	if err != nil {
		t.Fatalf("ParseAsset: %v", err)
	}
	if a.Units != -5000 {
		t.Errorf("Units = %d, want -5000", a.Units)
	}
	if got := a.String(); got != "-0.5000 EOS" {
		t.Errorf("String() = %q, want -0.5000 EOS", got)
	}
}

func TestAssetWholeNumberPrecisionZero(t *testing.T) {
	a, err := ParseAsset("42 PENG")
	if err != nil {
		t.Fatalf("ParseAsset: %v", err)
	}
	if a.Symbol.Precision() != 0 {
		t.Errorf("Precision = %d, want 0", a.Symbol.Precision())
	}
	if got := a.String(); got != "42 PENG" {
		t.Errorf("String() = %q, want 42 PENG", got)
	}
}

func TestAssetAddSubSymbolMismatch(t *testing.T) {
	a, _ := ParseAsset("1.0000 EOS")
	b, _ := ParseAsset("1.0000 BAZ")
	if _, err := a.Add(b); err == nil {
		t.Error("expected symbol mismatch error on Add")
	}
	if _, err := a.Sub(b); err == nil {
		t.Error("expected symbol mismatch error on Sub")
	}
}

func TestAssetAddSub(t *testing.T) {
	a, _ := ParseAsset("1.5000 EOS")
	b, _ := ParseAsset("0.2500 EOS")
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := sum.String(); got != "1.7500 EOS" {
		t.Errorf("Add = %q, want 1.7500 EOS", got)
	}
	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if got := diff.String(); got != "1.2500 EOS" {
		t.Errorf("Sub = %q, want 1.2500 EOS", got)
	}
}

func TestExtendedAssetJSON(t *testing.T) {
	quantity, _ := ParseAsset("1.0000 EOS")
	ea := ExtendedAsset{Quantity: quantity, Contract: NewName("eosio.token")}
	data, err := ea.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var out ExtendedAsset
	if err := out.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if out.Quantity != ea.Quantity || out.Contract != ea.Contract {
		t.Errorf("round trip = %+v, want %+v", out, ea)
	}
}
