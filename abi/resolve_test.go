package abi

import "testing"

func TestResolverFlattensAliasChain(t *testing.T) {
	a := ABI{
		Types: []TypeAlias{
			{NewTypeName: "account_name", Type: "name"},
			{NewTypeName: "user_name", Type: "account_name?"},
		},
	}
	r := NewResolver(a)
	rt, err := r.Resolve("user_name[]")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rt.Kind != KindBuiltin || rt.Builtin != "name" {
		t.Fatalf("got kind=%v builtin=%q, want builtin name", rt.Kind, rt.Builtin)
	}
	if !rt.IsArray() || !rt.IsOptional() {
		t.Errorf("flags = %+v, want array and optional both set", rt.Flags)
	}
}

func TestResolverRejectsCircularAliasChain(t *testing.T) {
	a := ABI{
		Types: []TypeAlias{
			{NewTypeName: "a", Type: "b"},
			{NewTypeName: "b", Type: "a"},
		},
	}
	r := NewResolver(a)
	if _, err := r.Resolve("a"); err == nil {
		t.Error("Resolve() = nil, want SchemaError for circular alias graph")
	}
}

func TestResolverAllowsSelfReferentialStructField(t *testing.T) {
	a := ABI{
		Structs: []Struct{
			{
				Name: "node",
				Fields: []Field{
					{Name: "value", Type: "int64"},
					{Name: "next", Type: "node?"},
				},
			},
		},
	}
	r := NewResolver(a)
	rt, err := r.Resolve("node")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rt.Kind != KindStruct || len(rt.Fields) != 2 {
		t.Fatalf("got %+v, want a 2-field struct", rt)
	}
	next := rt.Fields[1].Type
	if next.Kind != KindStruct || !next.IsOptional() {
		t.Fatalf("next field = %+v, want optional struct", next)
	}
	if next.Fields[1].Type != next {
		t.Error("self-referential field should resolve to the same cached node for its decorated name")
	}
}

func TestResolverRejectsCircularBaseInheritance(t *testing.T) {
	a := ABI{
		Structs: []Struct{
			{Name: "a", Base: "b"},
			{Name: "b", Base: "a"},
		},
	}
	r := NewResolver(a)
	if _, err := r.Resolve("a"); err == nil {
		t.Error("Resolve() = nil, want SchemaError for circular base inheritance")
	}
}

func TestResolverPrependsBaseFields(t *testing.T) {
	a := ABI{
		Structs: []Struct{
			{Name: "base", Fields: []Field{{Name: "id", Type: "uint64"}}},
			{Name: "derived", Base: "base", Fields: []Field{{Name: "name", Type: "string"}}},
		},
	}
	r := NewResolver(a)
	rt, err := r.Resolve("derived")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(rt.Fields) != 2 || rt.Fields[0].Name != "id" || rt.Fields[1].Name != "name" {
		t.Fatalf("fields = %+v, want [id name]", rt.Fields)
	}
}

func TestResolverVariantAlternatives(t *testing.T) {
	a := ABI{
		Variants: []VariantDef{
			{Name: "any_value", Types: []string{"int64", "string"}},
		},
	}
	r := NewResolver(a)
	rt, err := r.Resolve("any_value")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rt.Kind != KindVariant || len(rt.Alternatives) != 2 {
		t.Fatalf("got %+v, want a 2-alternative variant", rt)
	}
	if rt.Alternatives[0].Type.Builtin != "int64" || rt.Alternatives[1].Type.Builtin != "string" {
		t.Errorf("alternatives = %+v", rt.Alternatives)
	}
}

func TestResolverUnknownTypeYieldsKindUnknown(t *testing.T) {
	r := NewResolver(ABI{})
	rt, err := r.Resolve("does_not_exist")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rt.Kind != KindUnknown {
		t.Errorf("Kind = %v, want KindUnknown", rt.Kind)
	}
}
