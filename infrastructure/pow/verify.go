// Package pow verifies the proof-of-work stamp carried by a peer's
// handshake payload. This is expensive, floating-point-driven work
// (spec.md §9: "the policy daemon is unconstrained and is where
// floating-point PoW verification lives") and therefore never runs
// in the classifier — only here, from the event consumer.
package pow

import (
	"math"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// DefaultTarget is the daemon's default difficulty, matching the
// CLI's documented default (spec.md §6).
const DefaultTarget = 26.0

// Verify reports whether stamp's Blake2b-512 digest, read as a big
// integer, is numerically below the threshold 2^(256-target).
//
// The comparison is over the digest's leading 32 bytes: a
// 256-bit-wide threshold compared against a 512-bit hash would make
// every target effectively near-impossible to satisfy, so the leading
// half of the digest is the value actually compared (documented as an
// implementer decision in DESIGN.md; the source's own
// crypto::proof_of_work::check_proof_of_work is not part of the
// retrieved sources).
//
// target is a real-valued difficulty, the protocol's native
// representation; the comparison itself is exact integer arithmetic
// on the digest, never float comparison against target.
func Verify(stamp [56]byte, target float64) bool {
	digest := blake2b.Sum512(stamp[:])
	value := new(big.Int).SetBytes(digest[:32])
	return value.Cmp(threshold(target)) < 0
}

// threshold computes floor(2^(256-target)) as a big.Int, using
// big.Float at enough precision to keep the fractional part of a
// non-integer difficulty significant.
func threshold(target float64) *big.Int {
	exp := 256 - target
	if exp <= 0 {
		return big.NewInt(0)
	}
	if exp >= 256 {
		return new(big.Int).Lsh(big.NewInt(1), 256)
	}

	value := new(big.Float).SetPrec(256).SetFloat64(math.Exp2(exp))
	result, _ := value.Int(nil)
	return result
}
