package crypto

import (
	"crypto/rand"
	"fmt"
)

// GenerateK1PrivateKey draws 32 bytes of OS randomness and returns them as
// a K1 private key. It does not reject keys outside the curve's valid
// scalar range — with 256 bits of uniform entropy against an order that
// differs from 2^256 by a negligible amount, the chance of landing outside
// [1, n-1] is astronomically small, and btcec's signing functions return
// an error if it ever happens.
func GenerateK1PrivateKey() (PrivateKey, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return PrivateKey{}, fmt.Errorf("crypto: generate private key: %w", err)
	}
	return NewK1PrivateKey(buf[:])
}
