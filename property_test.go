package parbst

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/npillmayer/parbst/scramble"
)

// How to run:
//   - Deterministic randomized property test:
//     go test . -run TestBuildRandomizedProperty -count=1 -race
//   - Fuzz test for this file:
//     go test . -run '^$' -fuzz FuzzBuild -fuzztime=30s

// checkBuild builds a tree for cfg and checks ordering, key multiset and count.
func checkBuild(t *testing.T, cfg Config) {
	t.Helper()
	tree, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build(%+v) failed: %v", cfg, err)
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("Build(%+v): %v", cfg, err)
	}
	want := expectedKeys(cfg.Count, cfg.Seed)
	if got := tree.Keys(); !slices.Equal(got, want) {
		t.Fatalf("Build(%+v): tree holds %d keys which differ from the %d expected keys",
			cfg, len(got), len(want))
	}
	n, err := VerifyAndRelease(tree)
	if err != nil {
		t.Fatalf("Build(%+v): %v", cfg, err)
	}
	if n != cfg.Count {
		t.Fatalf("Build(%+v): number of nodes (%d) is not equal to number of values", cfg, n)
	}
}

func randomConfig(r *rand.Rand) Config {
	cfg := Config{
		Count:   r.Intn(5000) + 1,
		Seed:    r.Uint32(),
		Workers: r.Intn(16) + 1,
	}
	if r.Intn(2) == 1 {
		cfg.Schedule = Dynamic
		cfg.BatchSize = r.Intn(300) + 1
	}
	return cfg
}

func TestBuildRandomizedProperty(t *testing.T) {
	teardown := traceTo(t)
	defer teardown()
	//
	r := rand.New(rand.NewSource(5351))
	for i := 0; i < 50; i++ {
		checkBuild(t, randomConfig(r))
	}
}

func TestSingleAndManyWorkersAgree(t *testing.T) {
	teardown := traceTo(t)
	defer teardown()
	//
	const count = 30000
	one, err := Build(Config{Count: count, Seed: 12, Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	many, err := Build(Config{Count: count, Seed: 12, Workers: 12, Schedule: Dynamic, BatchSize: 64})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(one.Keys(), many.Keys()) {
		t.Fatalf("single worker and 12 workers produced different key sets")
	}
	if err := VerifyCount(one, count); err != nil {
		t.Fatal(err)
	}
	if err := VerifyCount(many, count); err != nil {
		t.Fatal(err)
	}
}

func FuzzBuild(f *testing.F) {
	f.Add(uint16(1), uint32(0), uint8(1), false)
	f.Add(uint16(1000), uint32(42), uint8(8), false)
	f.Add(uint16(777), uint32(scramble.Seed(-1)), uint8(3), true)
	f.Fuzz(func(t *testing.T, count uint16, seed uint32, workers uint8, dynamic bool) {
		teardown := traceTo(t)
		defer teardown()
		//
		cfg := Config{
			Count:   int(count)%4096 + 1,
			Seed:    seed,
			Workers: int(workers)%32 + 1,
		}
		if dynamic {
			cfg.Schedule, cfg.BatchSize = Dynamic, 17
		}
		checkBuild(t, cfg)
	})
}
