package crypto

import (
	"encoding/json"
	"fmt"
	"strings"

	"eosiogo/codec"
)

// Signature is the tagged union {K1(65 bytes: recovery header + R||S),
// Other{curve, bytes}}. The 65-byte K1 layout matches the wire form in
// §4.1: a one-byte recovery header (recovery-id + 31) followed by the
// 64-byte compact signature.
type Signature struct {
	curve CurveType
	data  []byte
}

// NewK1Signature builds a Signature from the 65-byte compact layout.
func NewK1Signature(compact []byte) (Signature, error) {
	if len(compact) != 65 {
		return Signature{}, fmt.Errorf("crypto: K1 signature must be 65 bytes, got %d", len(compact))
	}
	out := make([]byte, 65)
	copy(out, compact)
	return Signature{curve: CurveK1, data: out}, nil
}

func NewOtherSignature(curve CurveType, data []byte) Signature {
	out := make([]byte, len(data))
	copy(out, data)
	return Signature{curve: curve, data: out}
}

func (s Signature) Curve() CurveType { return s.curve }
func (s Signature) IsK1() bool       { return s.curve == CurveK1 }

func (s Signature) Bytes() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// RecoveryID returns the K1 recovery id in [0,3] encoded in the header byte.
func (s Signature) RecoveryID() (int, error) {
	if s.curve != CurveK1 {
		return 0, fmt.Errorf("crypto: recovery id only defined for K1 signatures")
	}
	return int(s.data[0]) - 31, nil
}

// CompactRS returns the 64-byte R||S portion of a K1 signature.
func (s Signature) CompactRS() ([]byte, error) {
	if s.curve != CurveK1 {
		return nil, fmt.Errorf("crypto: compact R||S only defined for K1 signatures")
	}
	out := make([]byte, 64)
	copy(out, s.data[1:])
	return out, nil
}

func (s Signature) MarshalBinary(w *codec.Writer) error {
	if err := w.WriteByte(s.curve.wireTag()); err != nil {
		return err
	}
	data := s.data
	if len(data) != 65 {
		padded := make([]byte, 65)
		copy(padded, data)
		data = padded
	}
	w.WriteRawBytes(data)
	return nil
}

func (s *Signature) UnmarshalBinary(r *codec.Reader) error {
	tag, err := r.ReadByte()
	if err != nil {
		return err
	}
	data, err := r.ReadFixedBytes(65)
	if err != nil {
		return err
	}
	s.curve = curveFromWireTag(tag)
	s.data = data
	return nil
}

// String renders the modern SIG_<CURVE>_<base58check> form.
func (s Signature) String() string {
	return "SIG_" + s.curve.String() + "_" + encodeBase58Check(s.data, modernChecksum(s.curve))
}

// ParseSignature accepts the "SIG_<CURVE>_..." string form. Signatures have
// no legacy string form.
func ParseSignature(s string) (Signature, error) {
	if !strings.HasPrefix(s, "SIG_") {
		return Signature{}, fmt.Errorf("crypto: malformed signature string %q", s)
	}
	rest := s[len("SIG_"):]
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return Signature{}, fmt.Errorf("crypto: malformed signature string %q", s)
	}
	curve, err := curveFromName(parts[0])
	if err != nil {
		return Signature{}, err
	}
	payload, err := decodeBase58Check(parts[1], modernChecksum(curve))
	if err != nil {
		return Signature{}, fmt.Errorf("crypto: signature %q: %w", s, err)
	}
	if curve == CurveK1 {
		return NewK1Signature(payload)
	}
	return NewOtherSignature(curve, payload), nil
}

func (s Signature) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Signature) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSignature(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
