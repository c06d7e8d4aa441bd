package chain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"eosiogo/codec"
)

// FCUint64 is the chain's "FC variable-length unsigned int" JSON binding:
// it marshals as a plain JSON number for values up to 0xFFFFFFFF, and as a
// decimal JSON string for anything larger. The wire
// form is always the fixed 8-byte little-endian integer.
type FCUint64 uint64

const fcUint64JSONThreshold = uint64(1) << 32

func (f FCUint64) MarshalBinary(w *codec.Writer) error {
	w.WriteUint64(uint64(f))
	return nil
}

func (f *FCUint64) UnmarshalBinary(r *codec.Reader) error {
	v, err := r.ReadUint64()
	if err != nil {
		return err
	}
	*f = FCUint64(v)
	return nil
}

func (f FCUint64) MarshalJSON() ([]byte, error) {
	if uint64(f) > fcUint64JSONThreshold-1 {
		return json.Marshal(strconv.FormatUint(uint64(f), 10))
	}
	return json.Marshal(uint64(f))
}

func (f *FCUint64) UnmarshalJSON(data []byte) error {
	var asNumber uint64
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*f = FCUint64(asNumber)
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return fmt.Errorf("chain: malformed fc_unsigned_int %s: %w", data, err)
	}
	parsed, err := strconv.ParseUint(asString, 10, 64)
	if err != nil {
		return fmt.Errorf("chain: malformed fc_unsigned_int %q: %w", asString, err)
	}
	*f = FCUint64(parsed)
	return nil
}
