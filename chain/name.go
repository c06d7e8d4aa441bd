package chain

import (
	"encoding/json"
	"strings"
	"unicode"

	"eosiogo/codec"
)

// nameCharacters is the base-32 alphabet used by Name: index 0 is '.', 1-5
// are '1'-'5', 6-31 are 'a'-'z'.
const nameCharacters = ".12345abcdefghijklmnopqrstuvwxyz"

// ActorPlaceholder and PermissionPlaceholder are the two reserved Name
// values a signing request template substitutes with the signer's actual
// actor/permission (§4.6).
var (
	ActorPlaceholder      = Name(1)
	PermissionPlaceholder = Name(2)
)

// Name is a 64-bit word encoding up to 13 base-32 characters.
type Name uint64

// charToValue maps a rune to its index in nameCharacters, returning 0
// ('.') for anything outside the accepted alphabet.
func charToValue(c rune) uint64 {
	switch {
	case c == '.':
		return 0
	case c >= '1' && c <= '5':
		return uint64(c-'1') + 1
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 6
	default:
		return 0
	}
}

// NewName builds a Name from its string form. Unlike the chain's own
// parser, this never fails — characters outside the accepted alphabet
// degrade to '.', and input longer than 13 characters is truncated,
// mirroring the chain's own lenient string_to_name behavior. Input is
// walked rune-by-rune rather than byte-by-byte so a single multi-byte
// codepoint degrades to one '.' rather than several; combining marks and
// variation selectors (Unicode category M) are dropped rather than
// consuming a slot of their own, so a base character followed by one
// still counts as a single grapheme without pulling in a full
// grapheme-segmentation library.
func NewName(s string) Name {
	runes := stripMarks([]rune(s))
	var value uint64
	n := len(runes)
	if n > 13 {
		n = 13
	}
	for i := 0; i < n && i < 12; i++ {
		value |= (charToValue(runes[i]) & 0x1f) << uint(64-5*(i+1))
	}
	if n == 13 {
		value |= charToValue(runes[12]) & 0x0f
	}
	return Name(value)
}

// stripMarks drops combining marks and variation selectors from runes,
// so they fold into the preceding base character instead of occupying a
// slot of their own.
func stripMarks(runes []rune) []rune {
	out := runes[:0:0]
	for _, r := range runes {
		if unicode.IsMark(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// String decodes the Name back to its character form, stripping trailing
// dots. The all-zero Name decodes to the empty string (§3, §9 open
// question resolved to the empty-string form).
func (n Name) String() string {
	if n == 0 {
		return ""
	}
	var b [13]byte
	v := uint64(n)
	for i := 0; i < 12; i++ {
		index := (v >> uint(64-5*(i+1))) & 0x1f
		b[i] = nameCharacters[index]
	}
	b[12] = nameCharacters[v&0x0f]
	return strings.TrimRight(string(b[:]), ".")
}

func (n Name) MarshalBinary(w *codec.Writer) error {
	w.WriteUint64(uint64(n))
	return nil
}

func (n *Name) UnmarshalBinary(r *codec.Reader) error {
	v, err := r.ReadUint64()
	if err != nil {
		return err
	}
	*n = Name(v)
	return nil
}

func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

func (n *Name) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*n = NewName(s)
	return nil
}
