package pow

import (
	"math/big"
	"testing"
)

func TestThresholdMonotonic(t *testing.T) {
	lo := threshold(10.0)
	hi := threshold(26.0)
	if hi.Cmp(lo) >= 0 {
		t.Fatalf("higher difficulty must yield a smaller threshold: lo=%s hi=%s", lo, hi)
	}
}

func TestThresholdMatchesIntegerPower(t *testing.T) {
	got := threshold(26.0)
	want := new(big.Int).Lsh(big.NewInt(1), 256-26)
	if got.Cmp(want) != 0 {
		t.Fatalf("threshold(26.0) = %s, want %s", got, want)
	}
}

func TestVerifyRejectsAtMaximalTarget(t *testing.T) {
	var stamp [56]byte
	if Verify(stamp, 256.0) {
		t.Fatalf("target 256.0 must reject every digest (threshold collapses to 0)")
	}
}
