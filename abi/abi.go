package abi

import (
	"encoding/json"

	"eosiogo/codec"
)

// DefaultVersion is used when an ABI's version string is absent entirely.
const DefaultVersion = "eosio::abi/1.1"

// TypeAlias maps a new type name onto an existing one.
type TypeAlias struct {
	NewTypeName string `json:"new_type_name"`
	Type        string `json:"type"`
}

// Field is a single (name, type) pair inside a Struct.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Struct is a named, optionally-derived record type.
type Struct struct {
	Name   string  `json:"name"`
	Base   string  `json:"base"`
	Fields []Field `json:"fields"`
}

// VariantDef names an ordered set of alternative types.
type VariantDef struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

// Action maps an action name onto the struct type carrying its
// arguments, with an optional ricardian contract clause id.
type Action struct {
	Name              string `json:"name"`
	Type              string `json:"type"`
	RicardianContract string `json:"ricardian_contract"`
}

// Table describes a multi-index table's row type and key shape.
type Table struct {
	Name      string   `json:"name"`
	IndexType string   `json:"index_type"`
	KeyNames  []string `json:"key_names"`
	KeyTypes  []string `json:"key_types"`
	Type      string   `json:"type"`
}

// Clause is a (id, body) ricardian clause entry.
type Clause struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

// ABI is the schema describing a contract's action and table shapes.
// Field order here mirrors the chain's own abi_def: version, types,
// structs, actions, tables, ricardian_clauses — with variants, error
// messages and abi extensions carried as trailing binary extensions for
// backward compatibility with ABIs written before those slots existed.
type ABI struct {
	Version           string       `json:"version"`
	Types             []TypeAlias  `json:"types"`
	Structs           []Struct     `json:"structs"`
	Actions           []Action     `json:"actions"`
	Tables            []Table      `json:"tables"`
	RicardianClauses  []Clause     `json:"ricardian_clauses"`
	ErrorMessages     []string     `json:"error_messages"`
	AbiExtensions     [][]byte     `json:"abi_extensions"`
	Variants          []VariantDef `json:"variants"`
}

// abiJSON mirrors ABI with every slice as an explicit pointer-free slice
// so omitted top-level arrays (the chain's own leniency) unmarshal to nil
// rather than erroring, and marshal back out as empty arrays (except
// variants, which are omitted when empty).
type abiJSON struct {
	Version          string       `json:"version"`
	Types            []TypeAlias  `json:"types"`
	Structs          []Struct     `json:"structs"`
	Actions          []Action     `json:"actions"`
	Tables           []Table      `json:"tables"`
	RicardianClauses []Clause     `json:"ricardian_clauses"`
	Variants         []VariantDef `json:"variants,omitempty"`
}

func (a ABI) MarshalJSON() ([]byte, error) {
	return json.Marshal(abiJSON{
		Version:          a.nonEmptyVersion(),
		Types:            orEmptyAliases(a.Types),
		Structs:          orEmptyStructs(a.Structs),
		Actions:          orEmptyActions(a.Actions),
		Tables:           orEmptyTables(a.Tables),
		RicardianClauses: orEmptyClauses(a.RicardianClauses),
		Variants:         a.Variants,
	})
}

func (a *ABI) UnmarshalJSON(data []byte) error {
	var v abiJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.Version = v.Version
	if a.Version == "" {
		a.Version = DefaultVersion
	}
	a.Types, a.Structs, a.Actions, a.Tables = v.Types, v.Structs, v.Actions, v.Tables
	a.RicardianClauses, a.Variants = v.RicardianClauses, v.Variants
	return nil
}

func (a ABI) nonEmptyVersion() string {
	if a.Version == "" {
		return DefaultVersion
	}
	return a.Version
}

func orEmptyAliases(v []TypeAlias) []TypeAlias { if v == nil { return []TypeAlias{} }; return v }
func orEmptyStructs(v []Struct) []Struct        { if v == nil { return []Struct{} }; return v }
func orEmptyActions(v []Action) []Action        { if v == nil { return []Action{} }; return v }
func orEmptyTables(v []Table) []Table           { if v == nil { return []Table{} }; return v }
func orEmptyClauses(v []Clause) []Clause        { if v == nil { return []Clause{} }; return v }

func (t TypeAlias) marshalBinary(w *codec.Writer) {
	w.WriteString(t.NewTypeName)
	w.WriteString(t.Type)
}

func (t *TypeAlias) unmarshalBinary(r *codec.Reader) error {
	var err error
	if t.NewTypeName, err = r.ReadString(); err != nil {
		return err
	}
	t.Type, err = r.ReadString()
	return err
}

func (f Field) marshalBinary(w *codec.Writer) {
	w.WriteString(f.Name)
	w.WriteString(f.Type)
}

func (f *Field) unmarshalBinary(r *codec.Reader) error {
	var err error
	if f.Name, err = r.ReadString(); err != nil {
		return err
	}
	f.Type, err = r.ReadString()
	return err
}

func (s Struct) marshalBinary(w *codec.Writer) {
	w.WriteString(s.Name)
	w.WriteString(s.Base)
	w.WriteVaruint64(uint64(len(s.Fields)))
	for _, f := range s.Fields {
		f.marshalBinary(w)
	}
}

func (s *Struct) unmarshalBinary(r *codec.Reader) error {
	var err error
	if s.Name, err = r.ReadString(); err != nil {
		return err
	}
	if s.Base, err = r.ReadString(); err != nil {
		return err
	}
	count, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	s.Fields = make([]Field, count)
	for i := range s.Fields {
		if err := s.Fields[i].unmarshalBinary(r); err != nil {
			return err
		}
	}
	return nil
}

func (a Action) marshalBinary(w *codec.Writer) {
	w.WriteString(a.Name)
	w.WriteString(a.Type)
	w.WriteString(a.RicardianContract)
}

func (a *Action) unmarshalBinary(r *codec.Reader) error {
	var err error
	if a.Name, err = r.ReadString(); err != nil {
		return err
	}
	if a.Type, err = r.ReadString(); err != nil {
		return err
	}
	a.RicardianContract, err = r.ReadString()
	return err
}

func (t Table) marshalBinary(w *codec.Writer) {
	w.WriteString(t.Name)
	w.WriteString(t.IndexType)
	w.WriteVaruint64(uint64(len(t.KeyNames)))
	for _, n := range t.KeyNames {
		w.WriteString(n)
	}
	w.WriteVaruint64(uint64(len(t.KeyTypes)))
	for _, tp := range t.KeyTypes {
		w.WriteString(tp)
	}
	w.WriteString(t.Type)
}

func (t *Table) unmarshalBinary(r *codec.Reader) error {
	var err error
	if t.Name, err = r.ReadString(); err != nil {
		return err
	}
	if t.IndexType, err = r.ReadString(); err != nil {
		return err
	}
	nameCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	t.KeyNames = make([]string, nameCount)
	for i := range t.KeyNames {
		if t.KeyNames[i], err = r.ReadString(); err != nil {
			return err
		}
	}
	typeCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	t.KeyTypes = make([]string, typeCount)
	for i := range t.KeyTypes {
		if t.KeyTypes[i], err = r.ReadString(); err != nil {
			return err
		}
	}
	t.Type, err = r.ReadString()
	return err
}

func (c Clause) marshalBinary(w *codec.Writer) {
	w.WriteString(c.ID)
	w.WriteString(c.Body)
}

func (c *Clause) unmarshalBinary(r *codec.Reader) error {
	var err error
	if c.ID, err = r.ReadString(); err != nil {
		return err
	}
	c.Body, err = r.ReadString()
	return err
}

func (v VariantDef) marshalBinary(w *codec.Writer) {
	w.WriteString(v.Name)
	w.WriteVaruint64(uint64(len(v.Types)))
	for _, t := range v.Types {
		w.WriteString(t)
	}
}

func (v *VariantDef) unmarshalBinary(r *codec.Reader) error {
	var err error
	if v.Name, err = r.ReadString(); err != nil {
		return err
	}
	count, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	v.Types = make([]string, count)
	for i := range v.Types {
		if v.Types[i], err = r.ReadString(); err != nil {
			return err
		}
	}
	return nil
}

// MarshalBinary writes the ABI's self-description wire form: version,
// types, structs, actions, tables, ricardian clauses, then (as binary
// extensions, so older readers stop cleanly before them) empty
// error_messages and abi_extensions lists and the variants list.
func (a ABI) MarshalBinary(w *codec.Writer) error {
	w.WriteString(a.nonEmptyVersion())

	w.WriteVaruint64(uint64(len(a.Types)))
	for _, t := range a.Types {
		t.marshalBinary(w)
	}
	w.WriteVaruint64(uint64(len(a.Structs)))
	for _, s := range a.Structs {
		s.marshalBinary(w)
	}
	w.WriteVaruint64(uint64(len(a.Actions)))
	for _, act := range a.Actions {
		act.marshalBinary(w)
	}
	w.WriteVaruint64(uint64(len(a.Tables)))
	for _, t := range a.Tables {
		t.marshalBinary(w)
	}
	w.WriteVaruint64(uint64(len(a.RicardianClauses)))
	for _, c := range a.RicardianClauses {
		c.marshalBinary(w)
	}

	// error_messages: always empty on encode.
	w.WriteVaruint64(0)
	// abi_extensions: always empty on encode.
	w.WriteVaruint64(0)
	// variants, trailing binary extension.
	w.WriteVaruint64(uint64(len(a.Variants)))
	for _, v := range a.Variants {
		v.marshalBinary(w)
	}
	return nil
}

// UnmarshalBinary reads the wire form, tolerating a stream that ends
// before any of the binary-extension slots (error_messages,
// abi_extensions, variants) — each is simply left empty in that case.
func (a *ABI) UnmarshalBinary(r *codec.Reader) error {
	var err error
	if a.Version, err = r.ReadString(); err != nil {
		return err
	}
	if a.Version == "" {
		a.Version = DefaultVersion
	}

	typeCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	a.Types = make([]TypeAlias, typeCount)
	for i := range a.Types {
		if err := a.Types[i].unmarshalBinary(r); err != nil {
			return err
		}
	}

	structCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	a.Structs = make([]Struct, structCount)
	for i := range a.Structs {
		if err := a.Structs[i].unmarshalBinary(r); err != nil {
			return err
		}
	}

	actionCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	a.Actions = make([]Action, actionCount)
	for i := range a.Actions {
		if err := a.Actions[i].unmarshalBinary(r); err != nil {
			return err
		}
	}

	tableCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	a.Tables = make([]Table, tableCount)
	for i := range a.Tables {
		if err := a.Tables[i].unmarshalBinary(r); err != nil {
			return err
		}
	}

	clauseCount, err := r.ReadVaruint64()
	if err != nil {
		return err
	}
	a.RicardianClauses = make([]Clause, clauseCount)
	for i := range a.RicardianClauses {
		if err := a.RicardianClauses[i].unmarshalBinary(r); err != nil {
			return err
		}
	}

	if r.AtEnd() {
		return nil
	}
	if _, err := r.ReadVaruint64(); err != nil { // error_messages count, ignored
		return nil
	}
	// error_messages bodies aren't modeled; a real encoder never emits
	// non-zero here, so nothing further to skip.

	if r.AtEnd() {
		return nil
	}
	if _, err := r.ReadVaruint64(); err != nil { // abi_extensions count, ignored
		return nil
	}

	if r.AtEnd() {
		return nil
	}
	variantCount, err := r.ReadVaruint64()
	if err != nil {
		return nil
	}
	a.Variants = make([]VariantDef, variantCount)
	for i := range a.Variants {
		if err := a.Variants[i].unmarshalBinary(r); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports structural problems the resolver would otherwise
// surface lazily per-type: two structs sharing a name, a base that is
// neither a declared struct nor a builtin, and any error the resolver
// returns for a struct or variant (such as a circular base). A name shared
// between a struct and a variant or type alias is not reported.
func (a ABI) Validate() error {
	seenStructs := make(map[string]bool, len(a.Structs))
	for _, s := range a.Structs {
		if seenStructs[s.Name] {
			return &SchemaError{Detail: "duplicate struct name " + s.Name}
		}
		seenStructs[s.Name] = true
	}
	for _, s := range a.Structs {
		if s.Base == "" {
			continue
		}
		if !seenStructs[s.Base] && !builtinNames[s.Base] {
			return &SchemaError{Detail: "struct " + s.Name + " has unknown base " + s.Base}
		}
	}
	resolver := NewResolver(a)
	for _, s := range a.Structs {
		if _, err := resolver.Resolve(s.Name); err != nil {
			return err
		}
	}
	for _, v := range a.Variants {
		if _, err := resolver.Resolve(v.Name); err != nil {
			return err
		}
	}
	return nil
}
