package crypto

import (
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/btcsuite/btcd/btcec"
)

// maxCanonicalRetries bounds the canonical-signature retry loop (§4.5): a
// signer that still hasn't produced a canonical signature after this many
// attempts is treated as broken rather than looping forever.
const maxCanonicalRetries = 255

// ErrRandomizationFailed is returned when seeding or re-seeding the shared
// context can't get entropy from the OS.
var ErrRandomizationFailed = errors.New("crypto: context randomization failed")

// ErrCanonicalRetryExhausted is returned when K1Sign fails to find a
// canonical signature within maxCanonicalRetries attempts.
var ErrCanonicalRetryExhausted = errors.New("crypto: canonical signature retry exhausted")

// Context is the process-wide secp256k1 resource: a random 32-byte seed,
// created once and re-randomized only under explicit exclusion, per §5's
// concurrency model. The underlying curve arithmetic
// (github.com/btcsuite/btcd/btcec) keeps no mutable global state itself.
// K1Sign, K1Verify, K1Recover and K1ECDH do not read the Context; signing
// nonces come from RFC6979 plus the canonical-retry counter alone.
type Context struct {
	mu   sync.Mutex
	seed [32]byte
}

var (
	sharedContextOnce sync.Once
	sharedContext     *Context
	sharedContextErr  error
)

// SharedContext returns the lazily-initialized, process-wide secp256k1
// context, seeded once with 32 bytes of OS randomness. Safe to call
// concurrently; the returned Context's Randomize method is not.
func SharedContext() (*Context, error) {
	sharedContextOnce.Do(func() {
		sharedContext = &Context{}
		sharedContextErr = sharedContext.Randomize()
	})
	return sharedContext, sharedContextErr
}

// Randomize reseeds the context with fresh OS randomness. Per §5, this MUST
// only be called during setup or under external exclusion — it mutates
// shared state without its own lock beyond serializing against other
// Randomize callers.
func (c *Context) Randomize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := rand.Read(c.seed[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrRandomizationFailed, err)
	}
	return nil
}

// K1Sign signs a 32-byte digest with a K1 private key, retrying with an
// incrementing extra-entropy counter (the Go equivalent of libsecp256k1's
// `ndata[0]++` nonce perturbation) until the resulting compact signature
// satisfies the canonical-K1 test from §4.5, or fails after
// maxCanonicalRetries attempts.
func K1Sign(priv PrivateKey, digest [32]byte) (Signature, error) {
	if !priv.IsK1() {
		return Signature{}, fmt.Errorf("crypto: K1Sign requires a K1 private key")
	}
	curve := btcec.S256()
	d := new(big.Int).SetBytes(priv.data)

	extra := make([]byte, 32)
	for attempt := 0; attempt < maxCanonicalRetries; attempt++ {
		sig, recID, err := signOnce(curve, d, digest[:], extra)
		if err != nil {
			return Signature{}, err
		}
		if isCanonicalRS(sig) {
			compact := make([]byte, 65)
			compact[0] = byte(31 + recID)
			copy(compact[1:], sig)
			return NewK1Signature(compact)
		}
		extra[0]++
	}
	return Signature{}, ErrCanonicalRetryExhausted
}

// signOnce performs one deterministic-nonce ECDSA signing attempt, using
// RFC6979 (seeded with extra as additional entropy, exactly as
// libsecp256k1's noncefp/ndata hook is used in the reference
// implementation) to pick k. It returns the 64-byte R||S compact signature
// and the recovery id in [0,3].
func signOnce(curve *btcec.KoblitzCurve, d *big.Int, hash []byte, extra []byte) ([]byte, int, error) {
	n := curve.N
	k := btcec.NonceRFC6979(d, hash, extra, nil)
	if k.Sign() == 0 {
		return nil, 0, fmt.Errorf("crypto: zero nonce")
	}

	rx, ry := curve.ScalarBaseMult(k.Bytes())
	r := new(big.Int).Mod(rx, n)
	if r.Sign() == 0 {
		return nil, 0, fmt.Errorf("crypto: zero r")
	}

	e := hashToInt(hash, curve)
	kInv := new(big.Int).ModInverse(k, n)
	s := new(big.Int).Mul(r, d)
	s.Add(s, e)
	s.Mul(s, kInv)
	s.Mod(s, n)
	if s.Sign() == 0 {
		return nil, 0, fmt.Errorf("crypto: zero s")
	}

	recID := 0
	if ry.Bit(0) != 0 {
		recID = 1
	}
	// Enforce low-S, flipping the recovery id's parity bit to match —
	// the standard compact-signature normalization also used by
	// btcec.SignCompact, kept here since both encodings must agree on
	// which of the two equally valid (s, N-s) pairs recovery returns.
	halfN := new(big.Int).Rsh(n, 1)
	if s.Cmp(halfN) == 1 {
		s.Sub(n, s)
		recID ^= 1
	}
	if rx.Cmp(n) >= 0 {
		recID |= 2
	}

	out := make([]byte, 64)
	r.FillBytes(out[:32])
	s.FillBytes(out[32:])
	return out, recID, nil
}

// isCanonicalRS implements the byte-pattern test from §4.5/§4.6: neither
// half's leading byte may have its high bit set, and a zero leading byte
// must be followed by one that does, so each half has exactly one 32-byte
// unsigned-integer representation.
func isCanonicalRS(rs []byte) bool {
	if len(rs) != 64 {
		return false
	}
	r, s := rs[:32], rs[32:]
	canonicalHalf := func(b []byte) bool {
		if b[0]&0x80 != 0 {
			return false
		}
		if b[0] == 0 && b[1]&0x80 == 0 {
			return false
		}
		return true
	}
	return canonicalHalf(r) && canonicalHalf(s)
}

// hashToInt converts a hash to a big.Int reduced to the bit length of the
// curve order, per FIPS 186-3's ECDSA nonce/e conversion — for secp256k1
// this is a no-op beyond the byte->int conversion since orderBits is 256.
func hashToInt(hash []byte, curve *btcec.KoblitzCurve) *big.Int {
	orderBits := curve.N.BitLen()
	orderBytes := (orderBits + 7) / 8
	if len(hash) > orderBytes {
		hash = hash[:orderBytes]
	}
	ret := new(big.Int).SetBytes(hash)
	excess := len(hash)*8 - orderBits
	if excess > 0 {
		ret.Rsh(ret, uint(excess))
	}
	return ret
}

// K1Recover recovers the 33-byte compressed public key that produced sig
// over digest.
func K1Recover(sig Signature, digest [32]byte) (PublicKey, error) {
	if !sig.IsK1() {
		return PublicKey{}, fmt.Errorf("crypto: K1Recover requires a K1 signature")
	}
	pub, _, err := btcec.RecoverCompact(btcec.S256(), sig.data, digest[:])
	if err != nil {
		return PublicKey{}, fmt.Errorf("crypto: recover failed: %w", err)
	}
	return NewK1PublicKey(pub.SerializeCompressed())
}

// K1Verify checks sig against digest and pub directly (without going
// through recovery), useful when the expected signer is already known.
func K1Verify(pub PublicKey, digest [32]byte, sig Signature) (bool, error) {
	if !pub.IsK1() || !sig.IsK1() {
		return false, fmt.Errorf("crypto: K1Verify requires K1 key and signature")
	}
	parsedPub, err := btcec.ParsePubKey(pub.data, btcec.S256())
	if err != nil {
		return false, fmt.Errorf("crypto: parse public key: %w", err)
	}
	rsBytes, err := sig.CompactRS()
	if err != nil {
		return false, err
	}
	btcSig := &btcec.Signature{
		R: new(big.Int).SetBytes(rsBytes[:32]),
		S: new(big.Int).SetBytes(rsBytes[32:]),
	}
	return btcSig.Verify(digest[:], parsedPub), nil
}

// SharedSecret is the 64-byte result of a K1 ECDH exchange: SHA-512 of the
// shared point's X coordinate alone (§4.5 — Y is discarded).
type SharedSecret [64]byte

// DeriveKey splits the shared secret into a 32-byte symmetric key and
// discards the trailing 32 bytes, the standard way EOSIO memo encryption
// consumes a K1ECDH result (an AES key from the first half; the second
// half is conventionally reserved for a MAC key by callers that need one).
func (s SharedSecret) DeriveKey() [32]byte {
	var out [32]byte
	copy(out[:], s[:32])
	return out
}

// K1ECDH computes the secp256k1 ECDH shared secret between priv and pub.
func K1ECDH(priv PrivateKey, pub PublicKey) (SharedSecret, error) {
	if !priv.IsK1() || !pub.IsK1() {
		return SharedSecret{}, fmt.Errorf("crypto: K1ECDH requires K1 key material")
	}
	curve := btcec.S256()
	parsedPub, err := btcec.ParsePubKey(pub.data, curve)
	if err != nil {
		return SharedSecret{}, fmt.Errorf("crypto: parse public key: %w", err)
	}
	d := new(big.Int).SetBytes(priv.data)
	x, _ := curve.ScalarMult(parsedPub.X, parsedPub.Y, d.Bytes())

	var xBytes [32]byte
	x.FillBytes(xBytes[:])
	return SharedSecret(sha512.Sum512(xBytes[:])), nil
}
