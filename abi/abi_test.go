package abi

import (
	"testing"

	"eosiogo/codec"
)

func sampleABI() ABI {
	return ABI{
		Version: DefaultVersion,
		Types: []TypeAlias{
			{NewTypeName: "account_name", Type: "name"},
		},
		Structs: []Struct{
			{
				Name: "transfer",
				Fields: []Field{
					{Name: "from", Type: "account_name"},
					{Name: "to", Type: "account_name"},
					{Name: "quantity", Type: "asset"},
					{Name: "memo", Type: "string"},
				},
			},
		},
		Actions: []Action{
			{Name: "transfer", Type: "transfer", RicardianContract: ""},
		},
		Tables: []Table{
			{Name: "accounts", IndexType: "i64", KeyNames: []string{"balance"}, KeyTypes: []string{"asset"}, Type: "account"},
		},
		RicardianClauses: []Clause{
			{ID: "transfer-clause", Body: "Transfer tokens from one account to another."},
		},
		Variants: []VariantDef{
			{Name: "any_value", Types: []string{"int64", "string"}},
		},
	}
}

func TestABIBinaryRoundTrip(t *testing.T) {
	in := sampleABI()
	w := codec.NewWriter(128)
	if err := in.MarshalBinary(w); err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var out ABI
	if err := out.UnmarshalBinary(codec.NewReader(w.Bytes())); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}

	if out.Version != in.Version {
		t.Errorf("version = %q, want %q", out.Version, in.Version)
	}
	if len(out.Types) != 1 || out.Types[0] != in.Types[0] {
		t.Errorf("types mismatch: %+v", out.Types)
	}
	if len(out.Structs) != 1 || out.Structs[0].Name != "transfer" || len(out.Structs[0].Fields) != 4 {
		t.Errorf("structs mismatch: %+v", out.Structs)
	}
	if len(out.Variants) != 1 || out.Variants[0].Name != "any_value" {
		t.Errorf("variants mismatch: %+v", out.Variants)
	}
}

func TestABIBinaryToleratesMissingTrailingExtensions(t *testing.T) {
	// Simulates an ABI written before error_messages/abi_extensions/
	// variants existed: the stream ends right after ricardian clauses.
	w := codec.NewWriter(64)
	w.WriteString(DefaultVersion)
	w.WriteVaruint64(0) // types
	w.WriteVaruint64(0) // structs
	w.WriteVaruint64(0) // actions
	w.WriteVaruint64(0) // tables
	w.WriteVaruint64(0) // ricardian_clauses

	var out ABI
	if err := out.UnmarshalBinary(codec.NewReader(w.Bytes())); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if out.Variants != nil {
		t.Errorf("Variants = %v, want nil for a pre-extension stream", out.Variants)
	}
}

func TestABIJSONRoundTrip(t *testing.T) {
	in := sampleABI()
	data, err := in.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var out ABI
	if err := out.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if out.Version != in.Version || len(out.Structs) != 1 || out.Structs[0].Name != "transfer" {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestABIJSONDefaultsVersionWhenAbsent(t *testing.T) {
	var out ABI
	if err := out.UnmarshalJSON([]byte(`{"structs":[],"types":[],"actions":[],"tables":[],"ricardian_clauses":[]}`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if out.Version != DefaultVersion {
		t.Errorf("version = %q, want default %q", out.Version, DefaultVersion)
	}
}

func TestValidateRejectsDuplicateStructName(t *testing.T) {
	a := sampleABI()
	a.Structs = append(a.Structs, a.Structs[0])
	if err := a.Validate(); err == nil {
		t.Error("Validate() = nil, want duplicate struct name error")
	}
}

func TestValidateRejectsUnknownBase(t *testing.T) {
	a := sampleABI()
	a.Structs[0].Base = "nonexistent"
	if err := a.Validate(); err == nil {
		t.Error("Validate() = nil, want unknown base error")
	}
}

func TestValidateAcceptsWellFormedABI(t *testing.T) {
	a := sampleABI()
	if err := a.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
