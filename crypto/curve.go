// Package crypto implements the chain's public/private key and signature
// tagged unions, secp256k1 (K1) signing/recovery/ECDH, and the base58
// string forms used at the client boundary.
package crypto

import "fmt"

// CurveType tags which elliptic curve a key or signature material belongs
// to. Only K1 is backed by working math; R1 and WA round-trip their raw
// bytes unchanged without the library ever touching the curve itself.
type CurveType uint8

const (
	CurveK1 CurveType = iota
	CurveR1
	CurveWA
)

// curveWireTag is the one-byte tag used on the wire for public keys and
// signatures (§4.1). Unrecognized curves encode as 255.
func (c CurveType) wireTag() byte {
	switch c {
	case CurveK1:
		return 0
	case CurveR1:
		return 1
	case CurveWA:
		return 2
	default:
		return 255
	}
}

func curveFromWireTag(tag byte) CurveType {
	switch tag {
	case 0:
		return CurveK1
	case 1:
		return CurveR1
	case 2:
		return CurveWA
	default:
		return CurveType(tag)
	}
}

// String returns the curve's string-form tag, e.g. "K1", used inside
// PUB_<CURVE>_/PVT_<CURVE>_/SIG_<CURVE>_ string forms.
func (c CurveType) String() string {
	switch c {
	case CurveK1:
		return "K1"
	case CurveR1:
		return "R1"
	case CurveWA:
		return "WA"
	default:
		return fmt.Sprintf("CURVE%d", uint8(c))
	}
}

func curveFromName(name string) (CurveType, error) {
	switch name {
	case "K1":
		return CurveK1, nil
	case "R1":
		return CurveR1, nil
	case "WA":
		return CurveWA, nil
	default:
		return 0, fmt.Errorf("crypto: unknown curve %q", name)
	}
}
