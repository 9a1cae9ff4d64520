package scramble

import (
	"math/rand"
	"testing"
)

// unhash inverts Hash. x ^= x>>16 is its own inverse on 32 bits.
func unhash(x uint32) uint32 {
	const inv = 0x119de1f3 // multiplicative inverse of mix mod 2^32
	x = (x >> 16) ^ x
	x *= inv
	x = (x >> 16) ^ x
	x *= inv
	return (x >> 16) ^ x
}

func TestHashVectors(t *testing.T) {
	vectors := []struct {
		in, out uint32
	}{
		{0, 0},
		{1, 824515495},
		{2, 1722258072},
		{42, 4147366645},
		{0xffffffff, 539527247},
	}
	for _, v := range vectors {
		if got := Hash(v.in); got != v.out {
			t.Errorf("Hash(%d) = %d, expected %d", v.in, got, v.out)
		}
	}
}

func TestHashIsBijective(t *testing.T) {
	r := rand.New(rand.NewSource(4380))
	for n := 0; n < 10000; n++ {
		x := r.Uint32()
		if y := unhash(Hash(x)); y != x {
			t.Fatalf("unhash(Hash(%d)) = %d", x, y)
		}
	}
}

func TestKeyMixesSeed(t *testing.T) {
	if Key(1, 42) != Hash(43) {
		t.Errorf("expected Key(1,42) to equal Hash(1^42)")
	}
	if Key(0, 42) != SeedKey(42) {
		t.Errorf("expected index 0 to produce the seed key")
	}
}

func TestSeedWrapsNegative(t *testing.T) {
	if Seed(-1) != 0xffffffff {
		t.Errorf("Seed(-1) = %#x, expected 0xffffffff", Seed(-1))
	}
	if Seed(7) != 7 {
		t.Errorf("Seed(7) = %d, expected 7", Seed(7))
	}
}

func TestKeysSequence(t *testing.T) {
	if Keys(0, 1) != nil {
		t.Errorf("expected no keys for count 0")
	}
	keys := Keys(5, 3)
	if len(keys) != 5 {
		t.Fatalf("expected 5 keys, got %d", len(keys))
	}
	if keys[0] != SeedKey(3) {
		t.Errorf("first key should be the seed key")
	}
	seen := make(map[uint32]bool)
	for i, k := range keys {
		if i > 0 && k != Key(uint32(i), 3) {
			t.Errorf("key %d = %d, expected %d", i, k, Key(uint32(i), 3))
		}
		seen[k] = true
	}
	// index 0 is never generated apart from the seed key, so all keys differ
	if len(seen) != 5 {
		t.Errorf("expected 5 distinct keys, got %d", len(seen))
	}
}
