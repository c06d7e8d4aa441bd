package chain

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/ripemd160"

	"eosiogo/codec"
)

// Checksum160 is a fixed 20-byte digest, conventionally RIPEMD-160.
type Checksum160 [20]byte

// Checksum256 is a fixed 32-byte digest, conventionally SHA-256.
type Checksum256 [32]byte

// Checksum512 is a fixed 64-byte digest, conventionally SHA-512.
type Checksum512 [64]byte

func HashRipemd160(data []byte) Checksum160 {
	h := ripemd160.New()
	h.Write(data)
	var out Checksum160
	copy(out[:], h.Sum(nil))
	return out
}

func HashSHA256(data []byte) Checksum256 {
	return Checksum256(sha256.Sum256(data))
}

func HashSHA512(data []byte) Checksum512 {
	var out Checksum512
	sum := sha512.Sum512(data)
	copy(out[:], sum[:])
	return out
}

func (c Checksum160) String() string { return hex.EncodeToString(c[:]) }
func (c Checksum256) String() string { return hex.EncodeToString(c[:]) }
func (c Checksum512) String() string { return hex.EncodeToString(c[:]) }

func ParseChecksum160(s string) (Checksum160, error) { return parseFixedHex[Checksum160](s, 20) }
func ParseChecksum256(s string) (Checksum256, error) { return parseFixedHex[Checksum256](s, 32) }
func ParseChecksum512(s string) (Checksum512, error) { return parseFixedHex[Checksum512](s, 64) }

// parseFixedHex decodes s as hex into a fixed-width array type T of the
// given byte length. T must be an N-byte array; callers pick N to match.
func parseFixedHex[T [20]byte | [32]byte | [64]byte](s string, n int) (T, error) {
	var out T
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("chain: malformed checksum hex %q: %w", s, err)
	}
	if len(b) != n {
		return out, fmt.Errorf("chain: checksum %q must decode to %d bytes, got %d", s, n, len(b))
	}
	copy(out[:], b)
	return out, nil
}

func (c Checksum160) MarshalBinary(w *codec.Writer) error { w.WriteRawBytes(c[:]); return nil }
func (c *Checksum160) UnmarshalBinary(r *codec.Reader) error {
	b, err := r.ReadFixedBytes(20)
	if err != nil {
		return err
	}
	copy(c[:], b)
	return nil
}

func (c Checksum256) MarshalBinary(w *codec.Writer) error { w.WriteRawBytes(c[:]); return nil }
func (c *Checksum256) UnmarshalBinary(r *codec.Reader) error {
	b, err := r.ReadFixedBytes(32)
	if err != nil {
		return err
	}
	copy(c[:], b)
	return nil
}

func (c Checksum512) MarshalBinary(w *codec.Writer) error { w.WriteRawBytes(c[:]); return nil }
func (c *Checksum512) UnmarshalBinary(r *codec.Reader) error {
	b, err := r.ReadFixedBytes(64)
	if err != nil {
		return err
	}
	copy(c[:], b)
	return nil
}

func (c Checksum160) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }
func (c *Checksum160) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseChecksum160(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Checksum256) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }
func (c *Checksum256) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseChecksum256(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Checksum512) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }
func (c *Checksum512) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseChecksum512(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
