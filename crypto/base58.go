package crypto

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"
)

// ErrBadChecksum is returned by every base58-check decoder below when the
// trailing checksum bytes don't match the recomputed one.
var ErrBadChecksum = errors.New("crypto: bad checksum")

// ripemd160Checksum hashes payload (optionally with extra bytes appended,
// used by the modern PUB_/PVT_/SIG_ forms to bind the checksum to the
// curve) and returns the first 4 bytes — the legacy and modern EOSIO
// base58-check variant.
func ripemd160Checksum(payload []byte, extra []byte) [4]byte {
	h := ripemd160.New()
	h.Write(payload)
	if len(extra) > 0 {
		h.Write(extra)
	}
	sum := h.Sum(nil)
	var out [4]byte
	copy(out[:], sum[:4])
	return out
}

// doubleSHA256Checksum is the Bitcoin-style checksum used by legacy WIF
// private keys.
func doubleSHA256Checksum(payload []byte) [4]byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	var out [4]byte
	copy(out[:], second[:4])
	return out
}

// encodeBase58Check base58-encodes payload followed by a checksum computed
// by checksumFn.
func encodeBase58Check(payload []byte, checksumFn func([]byte) [4]byte) string {
	sum := checksumFn(payload)
	buf := make([]byte, len(payload)+4)
	copy(buf, payload)
	copy(buf[len(payload):], sum[:])
	return base58.Encode(buf)
}

// decodeBase58Check reverses encodeBase58Check, verifying the trailing 4
// checksum bytes against checksumFn over everything before them.
func decodeBase58Check(s string, checksumFn func([]byte) [4]byte) ([]byte, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("crypto: base58 decode: %w", err)
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("crypto: base58 payload too short")
	}
	payload := raw[:len(raw)-4]
	var gotSum [4]byte
	copy(gotSum[:], raw[len(raw)-4:])
	if checksumFn(payload) != gotSum {
		return nil, ErrBadChecksum
	}
	return payload, nil
}

// modernChecksum builds the ripemd160(payload || curveName) checksum used
// by PUB_<CURVE>_/PVT_<CURVE>_/SIG_<CURVE>_ string forms.
func modernChecksum(curve CurveType) func([]byte) [4]byte {
	extra := []byte(curve.String())
	return func(payload []byte) [4]byte { return ripemd160Checksum(payload, extra) }
}

// legacyPublicChecksum is the plain ripemd160(payload) checksum used by the
// legacy EOS<base58> public key form (no curve binding).
func legacyPublicChecksum(payload []byte) [4]byte { return ripemd160Checksum(payload, nil) }
