package mysort

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

const (
	// CoordinatorID is the topology id reserved for the coordinator.
	// Workers are numbered 1..Workers.
	CoordinatorID = 0

	DefaultBase    = 10
	DefaultMaxKey  = 1000
	DefaultWorkers = 4
	DefaultTimeout = 30 * time.Second
)

// Tag distinguishes the two message kinds on a Transport.
type Tag int

const (
	TagResult    Tag = 0 // worker -> coordinator
	TagPartition Tag = 1 // coordinator -> worker
)

func (t Tag) String() string {
	switch t {
	case TagResult:
		return "result"
	case TagPartition:
		return "partition"
	}
	return fmt.Sprintf("tag(%d)", int(t))
}

func (t Tag) valid() bool {
	return t == TagResult || t == TagPartition
}

// Sorter sorts a whole dataset of bounded non-negative integers.
type Sorter interface {
	Sort(ctx context.Context, data []int) ([]int, error)
}

// Partition is a contiguous slice of the dataset owned by worker ID.
type Partition struct {
	ID    int
	Start int // offset of Data[0] in the original dataset
	Data  []int
}

// Config is shared by the coordinator and every worker of a run.
type Config struct {
	Workers int
	Base    int
	MaxKey  int

	// Timeout bounds each individual transport operation. Zero disables it.
	Timeout time.Duration

	// Strategy selects the aggregation used by InMemSorter: "tournament"
	// (default) or "fold".
	Strategy string

	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		Workers: DefaultWorkers,
		Base:    DefaultBase,
		MaxKey:  DefaultMaxKey,
		Timeout: DefaultTimeout,
	}
}

// Validate reports the first configuration field that cannot run.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return &ConfigurationError{Field: "workers", Reason: fmt.Sprintf("need at least one worker, got %d", c.Workers)}
	case c.Base < 2:
		return &ConfigurationError{Field: "base", Reason: fmt.Sprintf("base must be >= 2, got %d", c.Base)}
	case c.MaxKey < 0:
		return &ConfigurationError{Field: "max", Reason: fmt.Sprintf("max key must be non-negative, got %d", c.MaxKey)}
	case c.Timeout < 0:
		return &ConfigurationError{Field: "timeout", Reason: "timeout must not be negative"}
	}
	switch c.Strategy {
	case "", "tournament", "fold":
	default:
		return &ConfigurationError{Field: "strategy", Reason: "unknown strategy " + c.Strategy}
	}
	return nil
}

// Passes returns the digit pass count for this config.
func (c Config) Passes() int {
	return Passes(c.MaxKey, c.Base)
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// Passes returns ceil(log_base(maxKey+1)): the number of base-digit
// positions needed to represent every key in [0, maxKey].
func Passes(maxKey, base int) int {
	p := 0
	for v := maxKey; v > 0; v /= base {
		p++
	}
	return p
}
