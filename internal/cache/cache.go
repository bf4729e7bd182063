// Package cache memoizes per-index representations of solution sets.
//
// A Cache owns one write-once slot per canonical index. The first
// Materialize call for an index reads the solution set from its Source,
// converts it and stores the result; every later call returns the stored
// value unchanged. Slots are never evicted or rewritten.
//
// All slot access goes through a single mutex. Conversion runs while the
// mutex is held, so concurrent first callers for the same index trigger
// exactly one read and one conversion. If a conversion panics the cache is
// poisoned and refuses to serve anything afterwards.
package cache

import (
	"errors"
	"fmt"
	"sync"

	"make10/internal/digits"
	"make10/internal/table"
)

var (
	// ErrPoisoned is returned by every call made after a conversion panicked
	// while holding the cache lock.
	ErrPoisoned = errors.New("result cache poisoned by an aborted conversion")

	// ErrIndexOutOfRange is returned for indices outside [0, digits.Slots).
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ConversionError reports that a solution set could not be converted. The
// slot for Index stays empty.
type ConversionError struct {
	Index int
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to materialize index %04d: %v", e.Index, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ConvertFunc turns the solution set of idx into a representation.
type ConvertFunc[V any] func(idx int, solutions []string) (V, error)

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Populated uint64
}

type slot[V any] struct {
	value     V
	populated bool
}

// Cache is a write-once memo table sized to the index domain.
type Cache[V any] struct {
	mu       sync.Mutex
	source   table.Source
	convert  ConvertFunc[V]
	slots    []slot[V] // allocated on first Materialize
	poisoned bool
	stats    Stats
}

// New returns an empty cache reading from src and converting with convert.
// No slot storage is allocated until the first Materialize call.
func New[V any](src table.Source, convert ConvertFunc[V]) *Cache[V] {
	return &Cache[V]{
		source:  src,
		convert: convert,
	}
}

// Materialize returns the representation for idx, building and storing it
// on first request.
func (c *Cache[V]) Materialize(idx int) (V, error) {
	var zero V
	if idx < 0 || idx >= digits.Slots {
		return zero, fmt.Errorf("materialize %d: %w", idx, ErrIndexOutOfRange)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.poisoned {
		return zero, ErrPoisoned
	}
	if c.slots == nil {
		c.slots = make([]slot[V], digits.Slots)
	}

	s := &c.slots[idx]
	if s.populated {
		c.stats.Hits++
		return s.value, nil
	}
	c.stats.Misses++

	v, err := c.populate(idx)
	if err != nil {
		return zero, err
	}
	s.value = v
	s.populated = true
	c.stats.Populated++
	return v, nil
}

// populate runs the conversion for idx. c.mu must be held. A conversion that
// does not return normally marks the cache poisoned.
func (c *Cache[V]) populate(idx int) (v V, err error) {
	completed := false
	defer func() {
		if !completed {
			c.poisoned = true
		}
	}()

	v, err = c.convert(idx, c.source.Lookup(idx))
	completed = true
	if err != nil {
		return v, &ConversionError{Index: idx, Err: err}
	}
	return v, nil
}

// Stats returns a snapshot of hit, miss and population counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Poisoned reports whether the cache has been poisoned.
func (c *Cache[V]) Poisoned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.poisoned
}
