package abi

import "strings"

// builtinNames enumerates the type identifiers the resolver recognizes
// without consulting the ABI's own type/struct/variant lists. Bare `int`
// and `uint` are deliberately absent — the original chain software's JSON
// ABIs never emit them unqualified, only sized variants, and the open
// question in §9 resolves that ambiguity by simply not recognizing them.
var builtinNames = map[string]bool{
	"string": true, "bool": true, "bytes": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true,
	"varint32": true, "varuint32": true,
	"name": true, "asset": true, "extended_asset": true,
	"symbol": true, "symbol_code": true,
	"checksum160": true, "checksum256": true, "checksum512": true,
	"public_key": true, "signature": true,
	"time_point": true, "time_point_sec": true,
}

// typeSuffixes holds the three modifier flags a type name can carry,
// stripped from the right in the order $, ?, [].
type typeSuffixes struct {
	BinaryExt bool
	Optional  bool
	Array     bool
}

// stripSuffixes peels off binary-extension, optional and array markers
// from the right of name, in that order, returning the bare name
// underneath and the flags that were present.
func stripSuffixes(name string) (string, typeSuffixes) {
	var flags typeSuffixes
	if strings.HasSuffix(name, "$") {
		flags.BinaryExt = true
		name = strings.TrimSuffix(name, "$")
	}
	if strings.HasSuffix(name, "?") {
		flags.Optional = true
		name = strings.TrimSuffix(name, "?")
	}
	if strings.HasSuffix(name, "[]") {
		flags.Array = true
		name = strings.TrimSuffix(name, "[]")
	}
	return name, flags
}
