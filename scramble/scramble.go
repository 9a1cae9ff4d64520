/*
Package scramble produces the key sequences for tree builds.

Sequential indices are run through an integer hash so that neighbouring indices
map to widely separated keys. Inserting keys in index order would otherwise
degrade a binary search tree to a list.

_________________________________________________________________________

# BSD 3-Clause License

Copyright (c) Norbert Pillmayer. All rights reserved.

Please refer to the LICENSE file for details.
*/
package scramble

const mix = 0x45d9f3b

// Hash mixes the bits of x. Every step is invertible, therefore Hash is a
// bijection on uint32: different inputs never collide.
func Hash(x uint32) uint32 {
	x = ((x >> 16) ^ x) * mix
	x = ((x >> 16) ^ x) * mix
	x = (x >> 16) ^ x
	return x
}

// Key is the key for index i of a run with the given seed.
func Key(i uint32, seed uint32) uint32 {
	return Hash(i ^ seed)
}

// SeedKey is the key of the seeding insert of a run.
func SeedKey(seed uint32) uint32 {
	return Hash(seed)
}

// Seed converts a (possibly negative) command-line seed to a run seed.
// Negative values wrap around.
func Seed(s int) uint32 {
	return uint32(s)
}

// Keys returns the complete key sequence of a run with count values: the seed
// key first, followed by the keys for indices 1…count-1.
func Keys(count int, seed uint32) []uint32 {
	if count < 1 {
		return nil
	}
	keys := make([]uint32, count)
	keys[0] = SeedKey(seed)
	for i := 1; i < count; i++ {
		keys[i] = Key(uint32(i), seed)
	}
	return keys
}
