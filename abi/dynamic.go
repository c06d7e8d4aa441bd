package abi

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"eosiogo/chain"
	"eosiogo/codec"
	"eosiogo/crypto"
)

// DynamicEncodeBinary walks rt and v, writing v's binary ABI wire form to
// w. v is the untyped Value representation described in value.go.
func DynamicEncodeBinary(rt *ResolvedType, v Value, w *codec.Writer) error {
	return encodeBinary(rt, v, w, "$")
}

// DynamicDecodeBinary reads rt's binary wire form from r, returning it as
// an untyped Value.
func DynamicDecodeBinary(rt *ResolvedType, r *codec.Reader) (Value, error) {
	return decodeBinary(rt, r, "$")
}

// DynamicEncodeJSON walks rt and v, producing the canonical JSON encoding.
func DynamicEncodeJSON(rt *ResolvedType, v Value) ([]byte, error) {
	return encodeJSON(rt, v, "$")
}

// DynamicDecodeJSON parses raw against rt, returning an untyped Value.
func DynamicDecodeJSON(rt *ResolvedType, raw []byte) (Value, error) {
	return decodeJSON(rt, raw, "$")
}

func demote(rt *ResolvedType, clearOptional, clearBinaryExt, clearArray bool) *ResolvedType {
	cp := *rt
	if clearOptional {
		cp.Flags.Optional = false
	}
	if clearBinaryExt {
		cp.Flags.BinaryExt = false
	}
	if clearArray {
		cp.Flags.Array = false
	}
	return &cp
}

func encodeBinary(rt *ResolvedType, v Value, w *codec.Writer, path string) error {
	if rt.Flags.Optional {
		present := v != nil
		w.WriteBool(present)
		if !present {
			return nil
		}
		return encodeBinary(demote(rt, true, false, false), v, w, path)
	}
	if rt.Flags.BinaryExt {
		return encodeBinary(demote(rt, false, true, false), v, w, path)
	}
	if rt.Flags.Array {
		arr, ok := v.([]Value)
		if !ok {
			return &InvalidValueError{ExpectedType: rt.Name + " (array)", Actual: v, Path: path}
		}
		w.WriteVaruint64(uint64(len(arr)))
		elemType := demote(rt, false, false, true)
		for i, el := range arr {
			if err := encodeBinary(elemType, el, w, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	}

	switch rt.Kind {
	case KindBuiltin:
		return encodeBuiltinBinary(rt.Builtin, v, w, path)
	case KindStruct:
		return encodeStructBinary(rt, v, w, path)
	case KindVariant:
		return encodeVariantBinary(rt, v, w, path)
	default:
		return &UnknownTypeError{TypeName: rt.Name}
	}
}

func encodeStructBinary(rt *ResolvedType, v Value, w *codec.Writer, path string) error {
	om, ok := v.(*OrderedMap)
	if !ok {
		return &InvalidValueError{ExpectedType: rt.Name + " (struct)", Actual: v, Path: path}
	}
	for _, f := range rt.Fields {
		fv, _ := om.Get(f.Name)
		if f.Type.Flags.BinaryExt && fv == nil {
			continue
		}
		if err := encodeBinary(f.Type, fv, w, path+"."+f.Name); err != nil {
			return err
		}
	}
	return nil
}

func encodeVariantBinary(rt *ResolvedType, v Value, w *codec.Writer, path string) error {
	variant, ok := v.(Variant)
	if !ok {
		return &InvalidValueError{ExpectedType: rt.Name + " (variant)", Actual: v, Path: path}
	}
	idx := altIndex(rt, variant.TypeName)
	if idx < 0 {
		return &UnknownVariantError{VariantName: rt.Name, Tag: variant.TypeName}
	}
	w.WriteVaruint64(uint64(idx))
	return encodeBinary(rt.Alternatives[idx].Type, variant.Value, w, path)
}

func altIndex(rt *ResolvedType, name string) int {
	for i, alt := range rt.Alternatives {
		if alt.TypeName == name {
			return i
		}
	}
	return -1
}

func decodeBinary(rt *ResolvedType, r *codec.Reader, path string) (Value, error) {
	if rt.Flags.Optional {
		present, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, nil
		}
		return decodeBinary(demote(rt, true, false, false), r, path)
	}
	if rt.Flags.BinaryExt {
		if r.AtEnd() {
			return nil, nil
		}
		return decodeBinary(demote(rt, false, true, false), r, path)
	}
	if rt.Flags.Array {
		count, err := r.ReadVaruint64()
		if err != nil {
			return nil, err
		}
		elemType := demote(rt, false, false, true)
		out := make([]Value, count)
		for i := range out {
			v, err := decodeBinary(elemType, r, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	switch rt.Kind {
	case KindBuiltin:
		return decodeBuiltinBinary(rt.Builtin, r, path)
	case KindStruct:
		return decodeStructBinary(rt, r, path)
	case KindVariant:
		return decodeVariantBinary(rt, r, path)
	default:
		return nil, &UnknownTypeError{TypeName: rt.Name}
	}
}

func decodeStructBinary(rt *ResolvedType, r *codec.Reader, path string) (Value, error) {
	om := NewOrderedMap()
	for _, f := range rt.Fields {
		v, err := decodeBinary(f.Type, r, path+"."+f.Name)
		if err != nil {
			return nil, err
		}
		om.Set(f.Name, v)
	}
	return om, nil
}

func decodeVariantBinary(rt *ResolvedType, r *codec.Reader, path string) (Value, error) {
	idx, err := r.ReadVaruint64()
	if err != nil {
		return nil, err
	}
	if int(idx) >= len(rt.Alternatives) {
		return nil, &UnknownVariantError{VariantName: rt.Name, Tag: idx}
	}
	alt := rt.Alternatives[idx]
	v, err := decodeBinary(alt.Type, r, path)
	if err != nil {
		return nil, err
	}
	return Variant{TypeName: alt.TypeName, Value: v}, nil
}

// stringJSONBuiltins lists builtins the string-coercion rule (§4.4)
// applies to: their JSON form is a plain string, and a caller-supplied
// Go string is accepted in place of the native type on encode.
var stringJSONBuiltins = map[string]bool{
	"name": true, "asset": true, "symbol": true, "symbol_code": true,
	"checksum160": true, "checksum256": true, "checksum512": true,
	"public_key": true, "signature": true,
	"time_point": true, "time_point_sec": true,
}

func encodeBuiltinBinary(name string, v Value, w *codec.Writer, path string) error {
	switch name {
	case "string":
		s, ok := v.(string)
		if !ok {
			return invalidValue(name, v, path)
		}
		w.WriteString(s)
		return nil
	case "bool":
		b, ok := v.(bool)
		if !ok {
			return invalidValue(name, v, path)
		}
		w.WriteBool(b)
		return nil
	case "bytes":
		b, err := asBytes(v, path)
		if err != nil {
			return err
		}
		w.WriteBytes(b)
		return nil
	case "int8", "uint8":
		n, err := asInt(v, path)
		if err != nil {
			return err
		}
		w.WriteUint8(uint8(n))
		return nil
	case "int16", "uint16":
		n, err := asInt(v, path)
		if err != nil {
			return err
		}
		w.WriteUint16(uint16(n))
		return nil
	case "int32", "uint32":
		n, err := asInt(v, path)
		if err != nil {
			return err
		}
		w.WriteUint32(uint32(n))
		return nil
	case "int64", "uint64":
		n, err := asInt(v, path)
		if err != nil {
			return err
		}
		w.WriteUint64(uint64(n))
		return nil
	case "varint32":
		n, err := asInt(v, path)
		if err != nil {
			return err
		}
		w.WriteVarint32(int32(n))
		return nil
	case "varuint32":
		n, err := asInt(v, path)
		if err != nil {
			return err
		}
		w.WriteVaruint32(uint32(n))
		return nil
	case "float32":
		f, err := asFloat(v, path)
		if err != nil {
			return err
		}
		w.WriteFloat32(float32(f))
		return nil
	case "float64":
		f, err := asFloat(v, path)
		if err != nil {
			return err
		}
		w.WriteFloat64(f)
		return nil
	case "name":
		n, err := coerceName(v, path)
		if err != nil {
			return err
		}
		return n.MarshalBinary(w)
	case "asset":
		a, err := coerceAsset(v, path)
		if err != nil {
			return err
		}
		return a.MarshalBinary(w)
	case "extended_asset":
		ea, err := coerceExtendedAsset(v, path)
		if err != nil {
			return err
		}
		return ea.MarshalBinary(w)
	case "symbol":
		s, err := coerceSymbol(v, path)
		if err != nil {
			return err
		}
		return s.MarshalBinary(w)
	case "symbol_code":
		s, err := coerceSymbolCode(v, path)
		if err != nil {
			return err
		}
		return s.MarshalBinary(w)
	case "checksum160":
		c, err := coerceChecksum160(v, path)
		if err != nil {
			return err
		}
		return c.MarshalBinary(w)
	case "checksum256":
		c, err := coerceChecksum256(v, path)
		if err != nil {
			return err
		}
		return c.MarshalBinary(w)
	case "checksum512":
		c, err := coerceChecksum512(v, path)
		if err != nil {
			return err
		}
		return c.MarshalBinary(w)
	case "public_key":
		pub, err := coercePublicKey(v, path)
		if err != nil {
			return err
		}
		return pub.MarshalBinary(w)
	case "signature":
		sig, err := coerceSignature(v, path)
		if err != nil {
			return err
		}
		return sig.MarshalBinary(w)
	case "time_point":
		tp, err := coerceTimePoint(v, path)
		if err != nil {
			return err
		}
		return tp.MarshalBinary(w)
	case "time_point_sec":
		tp, err := coerceTimePointSec(v, path)
		if err != nil {
			return err
		}
		return tp.MarshalBinary(w)
	default:
		return &UnknownTypeError{TypeName: name}
	}
}

func decodeBuiltinBinary(name string, r *codec.Reader, path string) (Value, error) {
	switch name {
	case "string":
		return r.ReadString()
	case "bool":
		return r.ReadBool()
	case "bytes":
		return r.ReadBytes()
	case "int8":
		v, err := r.ReadInt8()
		return int64(v), err
	case "uint8":
		v, err := r.ReadUint8()
		return uint64(v), err
	case "int16":
		v, err := r.ReadInt16()
		return int64(v), err
	case "uint16":
		v, err := r.ReadUint16()
		return uint64(v), err
	case "int32":
		v, err := r.ReadInt32()
		return int64(v), err
	case "uint32":
		v, err := r.ReadUint32()
		return uint64(v), err
	case "int64":
		v, err := r.ReadInt64()
		return int64(v), err
	case "uint64":
		v, err := r.ReadUint64()
		return v, err
	case "varint32":
		v, err := r.ReadVarint32()
		return int64(v), err
	case "varuint32":
		v, err := r.ReadVaruint32()
		return uint64(v), err
	case "float32":
		v, err := r.ReadFloat32()
		return float64(v), err
	case "float64":
		return r.ReadFloat64()
	case "name":
		var n chain.Name
		err := n.UnmarshalBinary(r)
		return n, err
	case "asset":
		var a chain.Asset
		err := a.UnmarshalBinary(r)
		return a, err
	case "extended_asset":
		var ea chain.ExtendedAsset
		err := ea.UnmarshalBinary(r)
		return ea, err
	case "symbol":
		var s chain.Symbol
		err := s.UnmarshalBinary(r)
		return s, err
	case "symbol_code":
		var s chain.SymbolCode
		err := s.UnmarshalBinary(r)
		return s, err
	case "checksum160":
		var c chain.Checksum160
		err := c.UnmarshalBinary(r)
		return c, err
	case "checksum256":
		var c chain.Checksum256
		err := c.UnmarshalBinary(r)
		return c, err
	case "checksum512":
		var c chain.Checksum512
		err := c.UnmarshalBinary(r)
		return c, err
	case "public_key":
		var pub crypto.PublicKey
		err := pub.UnmarshalBinary(r)
		return pub, err
	case "signature":
		var sig crypto.Signature
		err := sig.UnmarshalBinary(r)
		return sig, err
	case "time_point":
		var tp chain.TimePoint
		err := tp.UnmarshalBinary(r)
		return tp, err
	case "time_point_sec":
		var tp chain.TimePointSec
		err := tp.UnmarshalBinary(r)
		return tp, err
	default:
		return nil, &UnknownTypeError{TypeName: name}
	}
}

func invalidValue(typeName string, v Value, path string) error {
	return &InvalidValueError{ExpectedType: typeName, Actual: v, Path: path}
}

func asBytes(v Value, path string) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		b, err := hex.DecodeString(x)
		if err != nil {
			return nil, &InvalidValueError{ExpectedType: "bytes", Actual: v, Path: path}
		}
		return b, nil
	default:
		return nil, invalidValue("bytes", v, path)
	}
}

func asInt(v Value, path string) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case uint64:
		return int64(x), nil
	case int:
		return int64(x), nil
	case float64:
		return int64(x), nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, &InvalidValueError{ExpectedType: "integer", Actual: v, Path: path}
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, &InvalidValueError{ExpectedType: "integer", Actual: v, Path: path}
		}
		return n, nil
	default:
		return 0, invalidValue("integer", v, path)
	}
}

func asFloat(v Value, path string) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case json.Number:
		return x.Float64()
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, &InvalidValueError{ExpectedType: "float", Actual: v, Path: path}
		}
		return f, nil
	default:
		return 0, invalidValue("float", v, path)
	}
}

func coerceName(v Value, path string) (chain.Name, error) {
	switch x := v.(type) {
	case chain.Name:
		return x, nil
	case string:
		return chain.NewName(x), nil
	default:
		return 0, invalidValue("name", v, path)
	}
}

func coerceAsset(v Value, path string) (chain.Asset, error) {
	switch x := v.(type) {
	case chain.Asset:
		return x, nil
	case string:
		return chain.ParseAsset(x)
	default:
		return chain.Asset{}, invalidValue("asset", v, path)
	}
}

func coerceExtendedAsset(v Value, path string) (chain.ExtendedAsset, error) {
	switch x := v.(type) {
	case chain.ExtendedAsset:
		return x, nil
	default:
		return chain.ExtendedAsset{}, invalidValue("extended_asset", v, path)
	}
}

func coerceSymbol(v Value, path string) (chain.Symbol, error) {
	switch x := v.(type) {
	case chain.Symbol:
		return x, nil
	case string:
		return chain.ParseSymbol(x)
	default:
		return 0, invalidValue("symbol", v, path)
	}
}

func coerceSymbolCode(v Value, path string) (chain.SymbolCode, error) {
	switch x := v.(type) {
	case chain.SymbolCode:
		return x, nil
	case string:
		return chain.NewSymbolCode(x)
	default:
		return 0, invalidValue("symbol_code", v, path)
	}
}

func coerceChecksum160(v Value, path string) (chain.Checksum160, error) {
	switch x := v.(type) {
	case chain.Checksum160:
		return x, nil
	case string:
		return chain.ParseChecksum160(x)
	default:
		return chain.Checksum160{}, invalidValue("checksum160", v, path)
	}
}

func coerceChecksum256(v Value, path string) (chain.Checksum256, error) {
	switch x := v.(type) {
	case chain.Checksum256:
		return x, nil
	case string:
		return chain.ParseChecksum256(x)
	default:
		return chain.Checksum256{}, invalidValue("checksum256", v, path)
	}
}

func coerceChecksum512(v Value, path string) (chain.Checksum512, error) {
	switch x := v.(type) {
	case chain.Checksum512:
		return x, nil
	case string:
		return chain.ParseChecksum512(x)
	default:
		return chain.Checksum512{}, invalidValue("checksum512", v, path)
	}
}

func coercePublicKey(v Value, path string) (crypto.PublicKey, error) {
	switch x := v.(type) {
	case crypto.PublicKey:
		return x, nil
	case string:
		return crypto.ParsePublicKey(x)
	default:
		return crypto.PublicKey{}, invalidValue("public_key", v, path)
	}
}

func coerceSignature(v Value, path string) (crypto.Signature, error) {
	switch x := v.(type) {
	case crypto.Signature:
		return x, nil
	case string:
		return crypto.ParseSignature(x)
	default:
		return crypto.Signature{}, invalidValue("signature", v, path)
	}
}

func coerceTimePoint(v Value, path string) (chain.TimePoint, error) {
	switch x := v.(type) {
	case chain.TimePoint:
		return x, nil
	case string:
		return chain.ParseTimePoint(x)
	default:
		return 0, invalidValue("time_point", v, path)
	}
}

func coerceTimePointSec(v Value, path string) (chain.TimePointSec, error) {
	switch x := v.(type) {
	case chain.TimePointSec:
		return x, nil
	case string:
		return chain.ParseTimePointSec(x)
	default:
		return 0, invalidValue("time_point_sec", v, path)
	}
}

func encodeJSON(rt *ResolvedType, v Value, path string) ([]byte, error) {
	if rt.Flags.Optional || rt.Flags.BinaryExt {
		if v == nil {
			return []byte("null"), nil
		}
		return encodeJSON(demote(rt, rt.Flags.Optional, rt.Flags.BinaryExt, false), v, path)
	}
	if rt.Flags.Array {
		arr, ok := v.([]Value)
		if !ok {
			return nil, &InvalidValueError{ExpectedType: rt.Name + " (array)", Actual: v, Path: path}
		}
		elemType := demote(rt, false, false, true)
		parts := make([][]byte, len(arr))
		for i, el := range arr {
			b, err := encodeJSON(elemType, el, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			parts[i] = b
		}
		return joinJSONArray(parts), nil
	}

	switch rt.Kind {
	case KindBuiltin:
		return encodeBuiltinJSON(rt.Builtin, v, path)
	case KindStruct:
		return encodeStructJSON(rt, v, path)
	case KindVariant:
		return encodeVariantJSON(rt, v, path)
	default:
		return nil, &UnknownTypeError{TypeName: rt.Name}
	}
}

func joinJSONArray(parts [][]byte) []byte {
	out := []byte("[")
	for i, p := range parts {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, p...)
	}
	return append(out, ']')
}

func encodeStructJSON(rt *ResolvedType, v Value, path string) ([]byte, error) {
	om, ok := v.(*OrderedMap)
	if !ok {
		return nil, &InvalidValueError{ExpectedType: rt.Name + " (struct)", Actual: v, Path: path}
	}
	out := []byte("{")
	wrote := false
	for _, f := range rt.Fields {
		fv, present := om.Get(f.Name)
		if f.Type.Flags.BinaryExt && !present {
			continue
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := encodeJSON(f.Type, fv, path+"."+f.Name)
		if err != nil {
			return nil, err
		}
		if wrote {
			out = append(out, ',')
		}
		out = append(out, key...)
		out = append(out, ':')
		out = append(out, val...)
		wrote = true
	}
	return append(out, '}'), nil
}

func encodeVariantJSON(rt *ResolvedType, v Value, path string) ([]byte, error) {
	variant, ok := v.(Variant)
	if !ok {
		return nil, &InvalidValueError{ExpectedType: rt.Name + " (variant)", Actual: v, Path: path}
	}
	idx := altIndex(rt, variant.TypeName)
	if idx < 0 {
		return nil, &UnknownVariantError{VariantName: rt.Name, Tag: variant.TypeName}
	}
	name, err := json.Marshal(variant.TypeName)
	if err != nil {
		return nil, err
	}
	val, err := encodeJSON(rt.Alternatives[idx].Type, variant.Value, path)
	if err != nil {
		return nil, err
	}
	return joinJSONArray([][]byte{name, val}), nil
}

func decodeJSON(rt *ResolvedType, raw []byte, path string) (Value, error) {
	if rt.Flags.Optional || rt.Flags.BinaryExt {
		if isJSONNull(raw) {
			return nil, nil
		}
		return decodeJSON(demote(rt, rt.Flags.Optional, rt.Flags.BinaryExt, false), raw, path)
	}
	if rt.Flags.Array {
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, &InvalidValueError{ExpectedType: rt.Name + " (array)", Actual: string(raw), Path: path}
		}
		elemType := demote(rt, false, false, true)
		out := make([]Value, len(elems))
		for i, el := range elems {
			v, err := decodeJSON(elemType, el, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	switch rt.Kind {
	case KindBuiltin:
		return decodeBuiltinJSON(rt.Builtin, raw, path)
	case KindStruct:
		return decodeStructJSON(rt, raw, path)
	case KindVariant:
		return decodeVariantJSON(rt, raw, path)
	default:
		return nil, &UnknownTypeError{TypeName: rt.Name}
	}
}

func isJSONNull(raw []byte) bool {
	trimmed := bytesTrimSpace(raw)
	return string(trimmed) == "null"
}

func bytesTrimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isJSONSpace(b[start]) {
		start++
	}
	for end > start && isJSONSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isJSONSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func decodeStructJSON(rt *ResolvedType, raw []byte, path string) (Value, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &InvalidValueError{ExpectedType: rt.Name + " (struct)", Actual: string(raw), Path: path}
	}
	om := NewOrderedMap()
	for _, f := range rt.Fields {
		fieldPath := path + "." + f.Name
		raw, present := fields[f.Name]
		if !present {
			if f.Type.Flags.BinaryExt || f.Type.Flags.Optional {
				om.Set(f.Name, nil)
				continue
			}
			return nil, &InvalidValueError{ExpectedType: f.Type.Name, Actual: nil, Path: fieldPath}
		}
		v, err := decodeJSON(f.Type, raw, fieldPath)
		if err != nil {
			return nil, err
		}
		om.Set(f.Name, v)
	}
	return om, nil
}

func decodeVariantJSON(rt *ResolvedType, raw []byte, path string) (Value, error) {
	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
		return nil, &InvalidValueError{ExpectedType: rt.Name + " (variant)", Actual: string(raw), Path: path}
	}
	var name string
	if err := json.Unmarshal(pair[0], &name); err != nil {
		return nil, &InvalidValueError{ExpectedType: "variant tag", Actual: string(pair[0]), Path: path}
	}
	idx := altIndex(rt, name)
	if idx < 0 {
		return nil, &UnknownVariantError{VariantName: rt.Name, Tag: name}
	}
	v, err := decodeJSON(rt.Alternatives[idx].Type, pair[1], path)
	if err != nil {
		return nil, err
	}
	return Variant{TypeName: name, Value: v}, nil
}

func encodeBuiltinJSON(name string, v Value, path string) ([]byte, error) {
	switch name {
	case "string":
		s, ok := v.(string)
		if !ok {
			return nil, invalidValue(name, v, path)
		}
		return json.Marshal(s)
	case "bool":
		b, ok := v.(bool)
		if !ok {
			return nil, invalidValue(name, v, path)
		}
		return json.Marshal(b)
	case "bytes":
		b, err := asBytes(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(hex.EncodeToString(b))
	case "int8", "int16", "int32", "int64", "uint8", "uint16", "uint32", "uint64", "varint32", "varuint32":
		n, err := asInt(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(n)
	case "float32", "float64":
		f, err := asFloat(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(f)
	case "name":
		n, err := coerceName(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(n)
	case "asset":
		a, err := coerceAsset(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(a)
	case "extended_asset":
		ea, err := coerceExtendedAsset(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(ea)
	case "symbol":
		s, err := coerceSymbol(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(s)
	case "symbol_code":
		s, err := coerceSymbolCode(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(s)
	case "checksum160":
		c, err := coerceChecksum160(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(c)
	case "checksum256":
		c, err := coerceChecksum256(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(c)
	case "checksum512":
		c, err := coerceChecksum512(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(c)
	case "public_key":
		pub, err := coercePublicKey(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(pub)
	case "signature":
		sig, err := coerceSignature(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(sig)
	case "time_point":
		tp, err := coerceTimePoint(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(tp)
	case "time_point_sec":
		tp, err := coerceTimePointSec(v, path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(tp)
	default:
		return nil, &UnknownTypeError{TypeName: name}
	}
}

func decodeBuiltinJSON(name string, raw []byte, path string) (Value, error) {
	switch name {
	case "string":
		var s string
		err := json.Unmarshal(raw, &s)
		return s, wrapInvalid(err, name, raw, path)
	case "bool":
		b, err := decodeJSONBool(raw)
		return b, wrapInvalid(err, name, raw, path)
	case "bytes":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, wrapInvalid(err, name, raw, path)
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, &InvalidValueError{ExpectedType: name, Actual: s, Path: path}
		}
		return b, nil
	case "int8", "int16", "int32", "int64", "varint32":
		n, err := decodeJSONInt(raw)
		return n, wrapInvalid(err, name, raw, path)
	case "uint8", "uint16", "uint32", "uint64", "varuint32":
		n, err := decodeJSONInt(raw)
		return uint64(n), wrapInvalid(err, name, raw, path)
	case "float32", "float64":
		f, err := asFloat(decodeRawNumberOrString(raw), path)
		return f, err
	case "name":
		var n chain.Name
		err := json.Unmarshal(raw, &n)
		return n, wrapInvalid(err, name, raw, path)
	case "asset":
		var a chain.Asset
		err := json.Unmarshal(raw, &a)
		return a, wrapInvalid(err, name, raw, path)
	case "extended_asset":
		var ea chain.ExtendedAsset
		err := json.Unmarshal(raw, &ea)
		return ea, wrapInvalid(err, name, raw, path)
	case "symbol":
		var s chain.Symbol
		err := json.Unmarshal(raw, &s)
		return s, wrapInvalid(err, name, raw, path)
	case "symbol_code":
		var s chain.SymbolCode
		err := json.Unmarshal(raw, &s)
		return s, wrapInvalid(err, name, raw, path)
	case "checksum160":
		var c chain.Checksum160
		err := json.Unmarshal(raw, &c)
		return c, wrapInvalid(err, name, raw, path)
	case "checksum256":
		var c chain.Checksum256
		err := json.Unmarshal(raw, &c)
		return c, wrapInvalid(err, name, raw, path)
	case "checksum512":
		var c chain.Checksum512
		err := json.Unmarshal(raw, &c)
		return c, wrapInvalid(err, name, raw, path)
	case "public_key":
		var pub crypto.PublicKey
		err := json.Unmarshal(raw, &pub)
		return pub, wrapInvalid(err, name, raw, path)
	case "signature":
		var sig crypto.Signature
		err := json.Unmarshal(raw, &sig)
		return sig, wrapInvalid(err, name, raw, path)
	case "time_point":
		var tp chain.TimePoint
		err := json.Unmarshal(raw, &tp)
		return tp, wrapInvalid(err, name, raw, path)
	case "time_point_sec":
		var tp chain.TimePointSec
		err := json.Unmarshal(raw, &tp)
		return tp, wrapInvalid(err, name, raw, path)
	default:
		return nil, &UnknownTypeError{TypeName: name}
	}
}

func wrapInvalid(err error, typeName string, raw []byte, path string) error {
	if err == nil {
		return nil
	}
	return &InvalidValueError{ExpectedType: typeName, Actual: string(raw), Path: path}
}

// decodeJSONInt accepts either a JSON number or a decimal string, the
// leniency EOSIO's own FC-based JSON accepts for integers that may
// overflow a JSON number's safe range.
func decodeJSONInt(raw []byte) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
			return int64(u), nil
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.ParseInt(s, 10, 64)
	}
	return 0, fmt.Errorf("abi: not a number: %s", raw)
}

// decodeJSONBool accepts JSON true/false and, on the lenient path a
// legacy FC-based server sometimes takes, a numeric 0/1.
func decodeJSONBool(raw []byte) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		switch n {
		case "0":
			return false, nil
		case "1":
			return true, nil
		}
	}
	return false, fmt.Errorf("abi: not a bool: %s", raw)
}

func decodeRawNumberOrString(raw []byte) Value {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return string(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
