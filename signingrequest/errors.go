// Package signingrequest implements the EEP-7 signing-request codec: a
// versioned, self-describing, optionally-deflated, optionally-signed URI
// payload that describes a transaction to be signed by a remote wallet
// (§4.6).
package signingrequest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fixed conditions §7 names.
var (
	ErrUnsupportedVersion  = errors.New("signingrequest: unsupported version")
	ErrMissingTaposSource  = errors.New("signingrequest: missing TaPoS source")
	ErrPayloadTooLarge     = errors.New("signingrequest: payload too large")
	ErrNotSigned           = errors.New("signingrequest: request carries no signature")
	ErrReservedCallbackKey = errors.New("signingrequest: reserved callback key clash")
)

// DecodingFailedError wraps a lower-level failure (malformed base64,
// truncated deflate stream, malformed ABI body) with the "payload too
// large" and similar high-level reasons §7 names as "signing request
// errors".
type DecodingFailedError struct {
	Reason string
	Err    error
}

func (e *DecodingFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("signingrequest: decoding failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("signingrequest: decoding failed: %s", e.Reason)
}

func (e *DecodingFailedError) Unwrap() error { return e.Err }
