package crypto

import (
	"encoding/json"
	"fmt"
	"strings"

	"eosiogo/codec"
)

// legacyPublicKeyMinPrefixLen is the length of the legacy string prefix;
// real traffic uses "EOS" but §6 requires accepting any 3-character prefix
// for forks that renamed it (e.g. "STM", "GLS").
const legacyPublicKeyMinPrefixLen = 3

// PublicKey is the tagged union {K1(33 compressed bytes), Other{curve, bytes}}
// from §9's curve redesign note. Only K1 participates in verify/recover;
// R1 and WA carry their bytes through unchanged.
type PublicKey struct {
	curve CurveType
	data  []byte
}

// NewK1PublicKey builds a PublicKey from 33 compressed secp256k1 bytes.
func NewK1PublicKey(compressed []byte) (PublicKey, error) {
	if len(compressed) != 33 {
		return PublicKey{}, fmt.Errorf("crypto: K1 public key must be 33 bytes, got %d", len(compressed))
	}
	out := make([]byte, 33)
	copy(out, compressed)
	return PublicKey{curve: CurveK1, data: out}, nil
}

// NewOtherPublicKey builds an opaque public key for a curve this library
// does not implement math for.
func NewOtherPublicKey(curve CurveType, data []byte) PublicKey {
	out := make([]byte, len(data))
	copy(out, data)
	return PublicKey{curve: curve, data: out}
}

func (p PublicKey) Curve() CurveType { return p.curve }
func (p PublicKey) IsK1() bool       { return p.curve == CurveK1 }

// Bytes returns the raw key material (33 bytes for K1).
func (p PublicKey) Bytes() []byte {
	out := make([]byte, len(p.data))
	copy(out, p.data)
	return out
}

func (p PublicKey) Equal(o PublicKey) bool {
	if p.curve != o.curve || len(p.data) != len(o.data) {
		return false
	}
	for i := range p.data {
		if p.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// MarshalBinary writes the one-byte curve tag followed by 33 bytes of key
// material, per §4.1. Non-K1 keys must still carry exactly 33 bytes to
// round-trip on the wire; callers constructing an opaque key for an unknown
// curve are responsible for padding/truncating to that width if the source
// format differs.
func (p PublicKey) MarshalBinary(w *codec.Writer) error {
	if err := w.WriteByte(p.curve.wireTag()); err != nil {
		return err
	}
	data := p.data
	if len(data) != 33 {
		padded := make([]byte, 33)
		copy(padded, data)
		data = padded
	}
	w.WriteRawBytes(data)
	return nil
}

func (p *PublicKey) UnmarshalBinary(r *codec.Reader) error {
	tag, err := r.ReadByte()
	if err != nil {
		return err
	}
	data, err := r.ReadFixedBytes(33)
	if err != nil {
		return err
	}
	p.curve = curveFromWireTag(tag)
	p.data = data
	return nil
}

// String renders the modern PUB_<CURVE>_<base58check> form.
func (p PublicKey) String() string {
	return "PUB_" + p.curve.String() + "_" + encodeBase58Check(p.data, modernChecksum(p.curve))
}

// LegacyString renders the legacy "EOS<base58ripemd160>" form. Only
// meaningful for K1 keys; other curves never had a legacy representation.
func (p PublicKey) LegacyString() (string, error) {
	if p.curve != CurveK1 {
		return "", fmt.Errorf("crypto: legacy string form only exists for K1 keys")
	}
	return "EOS" + encodeBase58Check(p.data, legacyPublicChecksum), nil
}

// ParsePublicKey accepts both the modern "PUB_<CURVE>_..." form and the
// legacy "<3+ char prefix>..." form (conventionally "EOS...").
func ParsePublicKey(s string) (PublicKey, error) {
	if strings.HasPrefix(s, "PUB_") {
		rest := s[len("PUB_"):]
		parts := strings.SplitN(rest, "_", 2)
		if len(parts) != 2 {
			return PublicKey{}, fmt.Errorf("crypto: malformed public key string %q", s)
		}
		curve, err := curveFromName(parts[0])
		if err != nil {
			return PublicKey{}, err
		}
		payload, err := decodeBase58Check(parts[1], modernChecksum(curve))
		if err != nil {
			return PublicKey{}, fmt.Errorf("crypto: public key %q: %w", s, err)
		}
		if curve == CurveK1 {
			return NewK1PublicKey(payload)
		}
		return NewOtherPublicKey(curve, payload), nil
	}

	if len(s) < legacyPublicKeyMinPrefixLen {
		return PublicKey{}, fmt.Errorf("crypto: malformed public key string %q", s)
	}
	body := s[legacyPublicKeyMinPrefixLen:]
	payload, err := decodeBase58Check(body, legacyPublicChecksum)
	if err != nil {
		return PublicKey{}, fmt.Errorf("crypto: legacy public key %q: %w", s, err)
	}
	return NewK1PublicKey(payload)
}

func (p PublicKey) MarshalJSON() ([]byte, error) { return json.Marshal(p.String()) }

func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePublicKey(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
