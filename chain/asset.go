package chain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"eosiogo/codec"
)

// Asset pairs signed 64-bit units with a Symbol that fixes how they're
// scaled and labeled. Arithmetic requires both operands to share a Symbol.
type Asset struct {
	Units  int64
	Symbol Symbol
}

// NewAsset builds an Asset directly from raw units and a symbol.
func NewAsset(units int64, symbol Symbol) Asset {
	return Asset{Units: units, Symbol: symbol}
}

// ParseAsset parses the canonical "<units scaled by precision> <SYMBOL>"
// string form, inferring precision from the number of digits after the
// decimal point.
func ParseAsset(s string) (Asset, error) {
	s = strings.TrimSpace(s)
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Asset{}, fmt.Errorf("chain: malformed asset %q", s)
	}
	numberPart, codePart := parts[0], parts[1]

	negative := strings.HasPrefix(numberPart, "-")
	if negative {
		numberPart = numberPart[1:]
	}

	var intPart, fracPart string
	if dot := strings.IndexByte(numberPart, '.'); dot >= 0 {
		intPart, fracPart = numberPart[:dot], numberPart[dot+1:]
	} else {
		intPart = numberPart
	}
	precision := len(fracPart)
	if precision > 18 {
		return Asset{}, fmt.Errorf("chain: asset %q has precision > 18", s)
	}

	symbol, err := NewSymbol(uint8(precision), codePart)
	if err != nil {
		return Asset{}, fmt.Errorf("chain: asset %q: %w", s, err)
	}

	intVal, err := strconv.ParseInt(intPartOrZero(intPart), 10, 64)
	if err != nil {
		return Asset{}, fmt.Errorf("chain: malformed asset %q: %w", s, err)
	}
	fracVal := int64(0)
	if fracPart != "" {
		fracVal, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return Asset{}, fmt.Errorf("chain: malformed asset %q: %w", s, err)
		}
	}

	scale := int64(math.Pow10(precision))
	units := intVal*scale + fracVal
	if negative {
		units = -units
	}
	return NewAsset(units, symbol), nil
}

func intPartOrZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// String renders the canonical "<units scaled by precision> <SYMBOL>" form.
func (a Asset) String() string {
	precision := int(a.Symbol.Precision())
	negative := a.Units < 0
	units := a.Units
	if negative {
		units = -units
	}
	s := strconv.FormatInt(units, 10)
	if precision > 0 {
		for len(s) <= precision {
			s = "0" + s
		}
		s = s[:len(s)-precision] + "." + s[len(s)-precision:]
	}
	if negative {
		s = "-" + s
	}
	return s + " " + a.Symbol.CodeString()
}

// Add returns a+b, erroring if the two assets don't share a Symbol.
func (a Asset) Add(b Asset) (Asset, error) {
	if a.Symbol != b.Symbol {
		return Asset{}, fmt.Errorf("chain: asset symbol mismatch: %s vs %s", a.Symbol, b.Symbol)
	}
	return Asset{Units: a.Units + b.Units, Symbol: a.Symbol}, nil
}

// Sub returns a-b, erroring if the two assets don't share a Symbol.
func (a Asset) Sub(b Asset) (Asset, error) {
	if a.Symbol != b.Symbol {
		return Asset{}, fmt.Errorf("chain: asset symbol mismatch: %s vs %s", a.Symbol, b.Symbol)
	}
	return Asset{Units: a.Units - b.Units, Symbol: a.Symbol}, nil
}

func (a Asset) MarshalBinary(w *codec.Writer) error {
	w.WriteInt64(a.Units)
	return a.Symbol.MarshalBinary(w)
}

func (a *Asset) UnmarshalBinary(r *codec.Reader) error {
	units, err := r.ReadInt64()
	if err != nil {
		return err
	}
	var sym Symbol
	if err := sym.UnmarshalBinary(r); err != nil {
		return err
	}
	a.Units, a.Symbol = units, sym
	return nil
}

func (a Asset) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }
func (a *Asset) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAsset(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ExtendedAsset pairs an Asset with the contract account that issues it —
// the §8 worked example (example 3) exercises this without spec.md ever
// naming it in §3; it's carried as a supplement per SPEC_FULL.md §5.1.
type ExtendedAsset struct {
	Quantity Asset
	Contract Name
}

func (e ExtendedAsset) MarshalBinary(w *codec.Writer) error {
	if err := e.Quantity.MarshalBinary(w); err != nil {
		return err
	}
	return e.Contract.MarshalBinary(w)
}

func (e *ExtendedAsset) UnmarshalBinary(r *codec.Reader) error {
	if err := e.Quantity.UnmarshalBinary(r); err != nil {
		return err
	}
	return e.Contract.UnmarshalBinary(r)
}

type extendedAssetJSON struct {
	Quantity Asset `json:"quantity"`
	Contract Name  `json:"contract"`
}

func (e ExtendedAsset) MarshalJSON() ([]byte, error) {
	return json.Marshal(extendedAssetJSON{Quantity: e.Quantity, Contract: e.Contract})
}

func (e *ExtendedAsset) UnmarshalJSON(data []byte) error {
	var v extendedAssetJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	e.Quantity, e.Contract = v.Quantity, v.Contract
	return nil
}
