// Package codec implements the EOSIO ABI wire format: a little-endian
// binary codec and its canonical JSON projection, plus the cursor types
// every chain and crypto value reads and writes itself against.
package codec

import (
	"errors"
	"fmt"
)

// Sentinel codec errors. Callers compare with errors.Is; wrapped errors add
// the offending value via fmt.Errorf("...: %w", err) at the call site.
var (
	ErrPrematureEndOfData = errors.New("codec: premature end of data")
	ErrInvalidUTF8         = errors.New("codec: invalid utf-8")
	ErrBoolOutOfRange      = errors.New("codec: bool byte out of range")
	ErrIntOutOfRange       = errors.New("codec: integer out of range")
)

// UnknownVariantError reports a variant tag or name with no matching
// alternative.
type UnknownVariantError struct {
	Tag any
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("codec: unknown variant %v", e.Tag)
}

// TypeNotEncodableError reports a type name the codec has no builtin or
// resolved shape for.
type TypeNotEncodableError struct {
	TypeName string
}

func (e *TypeNotEncodableError) Error() string {
	return fmt.Sprintf("codec: type not encodable: %s", e.TypeName)
}
