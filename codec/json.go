package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
)

// EncodeOptions controls the handful of JSON projection choices spec.md
// §4.2 leaves to the caller — currently just stable key ordering. No
// encoder in this module reads it; output ordering comes from
// encoding/json itself.
type EncodeOptions struct {
	SortedKeys bool
}

// DefaultEncodeOptions matches encoding/json's own behavior (maps are
// already emitted in sorted key order by the stdlib encoder; struct fields
// follow declaration order regardless).
var DefaultEncodeOptions = EncodeOptions{SortedKeys: true}

// MarshalJSONIndent is a thin wrapper kept for symmetry with the stdlib API
// that call sites reach for when pretty-printing fixtures in tests.
func MarshalJSONIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DecodeBase64Padded decodes url-unsafe-stripped or padding-stripped base64
// text, repairing missing trailing '=' before handing off to the stdlib
// decoder — the chain's JSON emitters are not always consistent about
// padding, so Blob decoding (§4.2) tolerates it.
func DecodeBase64Padded(s string) ([]byte, error) {
	if m := len(s) % 4; m != 0 {
		logger.Debugf("codec: repairing missing base64 padding (%d char(s))", 4-m)
		s += string(make([]byte, 4-m))
		padded := []byte(s)
		for i := len(padded) - (4 - m); i < len(padded); i++ {
			padded[i] = '='
		}
		s = string(padded)
	}
	return base64.StdEncoding.DecodeString(s)
}

// EncodeBase64 is the write-side counterpart, always emitting full padding.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
