package accumulator

import (
	"runtime"

	"github.com/dapol-go/dapol/bintree"
	"github.com/dapol-go/dapol/log"
)

// DefaultMaxThreadCount is used when the host's hardware parallelism
// cannot be determined. Grounded on
// original_source/src/max_thread_count.rs's DEFAULT_MAX_THREAD_COUNT: most
// architectures since ~2023 have at least 4 cores.
const DefaultMaxThreadCount = 4

var configLog = log.Default().Module("accumulator")

// MaxThreadCount bounds how many goroutines the tree builder may have in
// flight at once. Grounded on original_source/src/max_thread_count.rs's
// MaxThreadCount: its Default resolves to the host's available
// parallelism, falling back to DefaultMaxThreadCount when that cannot be
// determined (runtime.NumCPU() never reports less than 1, so in practice
// the fallback is not reached; a zero Config.MaxThreadCount resolves to
// this default).
type MaxThreadCount uint8

// DefaultMaxThreadCountValue resolves to runtime.NumCPU(), clamped to
// uint8 range, falling back to DefaultMaxThreadCount if that is somehow
// zero.
func DefaultMaxThreadCountValue() MaxThreadCount {
	n := runtime.NumCPU()
	if n <= 0 {
		configLog.Warn("machine parallelism unavailable, using default", "default", DefaultMaxThreadCount)
		return DefaultMaxThreadCount
	}
	if n > 255 {
		n = 255
	}
	return MaxThreadCount(n)
}

// Config holds the parameters needed to build an Accumulator.
type Config struct {
	// Height is the tree height H in [bintree.MinHeight, bintree.MaxHeight].
	Height uint8
	// StoreDepth controls how many top layers (plus all real bottom-layer
	// leaves) are retained for fast path generation; see spec §4.3. Zero
	// means "retain the full tree" (StoreDepth = Height).
	StoreDepth uint8
	// MaxThreadCount bounds build-time goroutine fan-out. Zero means
	// DefaultMaxThreadCountValue().
	MaxThreadCount MaxThreadCount
}

func (c Config) resolve() Config {
	if c.StoreDepth == 0 {
		c.StoreDepth = c.Height
	}
	if c.MaxThreadCount == 0 {
		c.MaxThreadCount = DefaultMaxThreadCountValue()
	}
	return c
}

func (c Config) validate() error {
	if err := bintree.ValidateHeight(c.Height); err != nil {
		return err
	}
	if c.StoreDepth < 1 || c.StoreDepth > c.Height {
		return &ErrInvalidStoreDepth{StoreDepth: c.StoreDepth, Height: c.Height}
	}
	return nil
}
