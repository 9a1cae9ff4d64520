package parbst

import (
	"fmt"

	"github.com/guiguan/caster"
	"github.com/npillmayer/parbst/scramble"
)

const (
	// DefaultBatchSize is the number of indices a worker claims at once with the
	// dynamic schedule.
	DefaultBatchSize = 1024
	// maxCount is the largest number of values: indices have to fit into 32 bits.
	maxCount = 1 << 32
)

// Schedule selects how the index range is split between workers.
type Schedule int

const (
	// Static hands every worker one contiguous block of indices.
	Static Schedule = iota
	// Dynamic lets workers claim batches of indices until the range is exhausted.
	Dynamic
)

func (s Schedule) String() string {
	switch s {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	}
	return fmt.Sprintf("schedule(%d)", int(s))
}

// ParseSchedule converts a schedule name ("static" or "dynamic") to a Schedule.
func ParseSchedule(name string) (Schedule, error) {
	switch name {
	case "", "static":
		return Static, nil
	case "dynamic":
		return Dynamic, nil
	}
	return Static, fmt.Errorf("%w: unknown schedule %q", ErrInvalidConfig, name)
}

// KeyFunc produces the key for index i of a run with a given seed.
// It must be a pure function, as it is called from many goroutines concurrently.
type KeyFunc func(i uint32, seed uint32) uint32

// Config configures a tree build.
type Config struct {
	// Count is the number of values to insert, including the seeding value.
	Count int
	// Seed varies the key sequence between runs.
	Seed uint32
	// Workers is the number of goroutines inserting concurrently.
	Workers int
	// Schedule selects how indices are distributed among workers.
	Schedule Schedule
	// BatchSize is the number of indices per claim for the Dynamic schedule.
	// 0 selects DefaultBatchSize.
	BatchSize int
	// Keys overrides the key generator for indices 1…Count-1.
	// Nil selects scramble.Key.
	Keys KeyFunc
	// SeedKey overrides the key for the seeding insert. Nil selects
	// scramble.SeedKey.
	SeedKey func(seed uint32) uint32
	// Progress, if set, receives a Progress message for every finished block of
	// indices. Build does not close it.
	Progress *caster.Caster
}

func (cfg Config) normalized() Config {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Keys == nil {
		cfg.Keys = scramble.Key
	}
	if cfg.SeedKey == nil {
		cfg.SeedKey = scramble.SeedKey
	}
	return cfg
}

// Validate checks cfg without building a tree. Build validates its configuration
// as well.
func (cfg Config) Validate() error {
	return cfg.validate()
}

func (cfg Config) validate() error {
	if cfg.Count < 1 {
		return fmt.Errorf("%w: number of values must be at least 1, is %d", ErrInvalidConfig, cfg.Count)
	}
	if uint64(cfg.Count) > maxCount {
		return fmt.Errorf("%w: number of values must not exceed %d", ErrInvalidConfig, uint64(maxCount))
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("%w: number of workers must be at least 1, is %d", ErrInvalidConfig, cfg.Workers)
	}
	if cfg.BatchSize < 0 {
		return fmt.Errorf("%w: batch size must not be negative", ErrInvalidConfig)
	}
	switch cfg.Schedule {
	case Static, Dynamic:
	default:
		return fmt.Errorf("%w: unknown schedule %s", ErrInvalidConfig, cfg.Schedule)
	}
	return nil
}
