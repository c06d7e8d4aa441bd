package crypto

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec"

	"eosiogo/codec"
)

// PrivateKey is the tagged union {K1(32 bytes), Other{curve, bytes}}.
type PrivateKey struct {
	curve CurveType
	data  []byte
}

// NewK1PrivateKey builds a PrivateKey from a 32-byte scalar.
func NewK1PrivateKey(scalar []byte) (PrivateKey, error) {
	if len(scalar) != 32 {
		return PrivateKey{}, fmt.Errorf("crypto: K1 private key must be 32 bytes, got %d", len(scalar))
	}
	out := make([]byte, 32)
	copy(out, scalar)
	return PrivateKey{curve: CurveK1, data: out}, nil
}

func NewOtherPrivateKey(curve CurveType, data []byte) PrivateKey {
	out := make([]byte, len(data))
	copy(out, data)
	return PrivateKey{curve: curve, data: out}
}

func (p PrivateKey) Curve() CurveType { return p.curve }
func (p PrivateKey) IsK1() bool       { return p.curve == CurveK1 }

func (p PrivateKey) Bytes() []byte {
	out := make([]byte, len(p.data))
	copy(out, p.data)
	return out
}

// PublicKey derives the corresponding public key. Only defined for K1.
func (p PrivateKey) PublicKey() (PublicKey, error) {
	if p.curve != CurveK1 {
		return PublicKey{}, fmt.Errorf("crypto: public key derivation only implemented for K1")
	}
	_, pub := btcec.PrivKeyFromBytes(btcec.S256(), p.data)
	return NewK1PublicKey(pub.SerializeCompressed())
}

func (p PrivateKey) MarshalBinary(w *codec.Writer) error {
	if err := w.WriteByte(p.curve.wireTag()); err != nil {
		return err
	}
	data := p.data
	if len(data) != 32 {
		padded := make([]byte, 32)
		copy(padded, data)
		data = padded
	}
	w.WriteRawBytes(data)
	return nil
}

func (p *PrivateKey) UnmarshalBinary(r *codec.Reader) error {
	tag, err := r.ReadByte()
	if err != nil {
		return err
	}
	data, err := r.ReadFixedBytes(32)
	if err != nil {
		return err
	}
	p.curve = curveFromWireTag(tag)
	p.data = data
	return nil
}

// String renders the modern PVT_<CURVE>_<base58check> form.
func (p PrivateKey) String() string {
	return "PVT_" + p.curve.String() + "_" + encodeBase58Check(p.data, modernChecksum(p.curve))
}

// WIF renders the legacy Wallet Import Format string: version byte 0x80,
// the 32-byte scalar, and a double-SHA256 checksum. Only defined for K1.
func (p PrivateKey) WIF() (string, error) {
	if p.curve != CurveK1 {
		return "", fmt.Errorf("crypto: WIF only exists for K1 keys")
	}
	payload := make([]byte, 1+len(p.data))
	payload[0] = 0x80
	copy(payload[1:], p.data)
	return encodeBase58Check(payload, doubleSHA256Checksum), nil
}

// ParsePrivateKey accepts the legacy WIF form and the modern
// "PVT_<CURVE>_..." form.
func ParsePrivateKey(s string) (PrivateKey, error) {
	if strings.HasPrefix(s, "PVT_") {
		rest := s[len("PVT_"):]
		parts := strings.SplitN(rest, "_", 2)
		if len(parts) != 2 {
			return PrivateKey{}, fmt.Errorf("crypto: malformed private key string %q", s)
		}
		curve, err := curveFromName(parts[0])
		if err != nil {
			return PrivateKey{}, err
		}
		payload, err := decodeBase58Check(parts[1], modernChecksum(curve))
		if err != nil {
			return PrivateKey{}, fmt.Errorf("crypto: private key %q: %w", s, err)
		}
		if curve == CurveK1 {
			return NewK1PrivateKey(payload)
		}
		return NewOtherPrivateKey(curve, payload), nil
	}

	payload, err := decodeBase58Check(s, doubleSHA256Checksum)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("crypto: WIF private key: %w", err)
	}
	if len(payload) != 33 || payload[0] != 0x80 {
		return PrivateKey{}, fmt.Errorf("crypto: malformed WIF payload")
	}
	return NewK1PrivateKey(payload[1:])
}
