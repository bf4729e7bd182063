// Package bridge adapts table entries into representations handed across the
// service boundary.
//
// Two interchangeable strategies produce a Payload for an index:
//
//   - Cached materializes each payload once through a cache.Cache and returns
//     the same *Payload to every later caller.
//   - Transient encodes a fresh, independently owned payload on every call
//     and never touches the cache.
//
// Both produce byte-identical bodies for the same index. Native skips
// encoding altogether and returns the table's own slices.
package bridge

import (
	"fmt"

	"make10/internal/cache"
	"make10/internal/digits"
	"make10/internal/table"
)

// Strategy names accepted by NewStrategy.
const (
	StrategyCached    = "cached"
	StrategyTransient = "transient"
)

// Strategy produces the representation of a canonical index.
type Strategy interface {
	Represent(idx int) (*Payload, error)
	Name() string
}

// Cached serves payloads from a write-once result cache.
type Cached struct {
	cache *cache.Cache[*Payload]
}

// NewCached returns a cached strategy over src. A nil enc selects JSONEncoder.
func NewCached(src table.Source, enc Encoder) *Cached {
	if enc == nil {
		enc = JSONEncoder
	}
	return &Cached{
		cache: cache.New(src, func(idx int, solutions []string) (*Payload, error) {
			cachePopulations.Inc()
			return newPayload(enc, idx, solutions)
		}),
	}
}

func (s *Cached) Represent(idx int) (*Payload, error) {
	cacheLookups.Inc()
	p, err := s.cache.Materialize(idx)
	if err != nil {
		representErrors.WithLabelValues(StrategyCached).Inc()
		return nil, err
	}
	return p, nil
}

func (s *Cached) Name() string { return StrategyCached }

// Stats exposes the underlying cache counters.
func (s *Cached) Stats() cache.Stats {
	return s.cache.Stats()
}

// Transient encodes a new payload straight from the table on every call.
type Transient struct {
	src table.Source
	enc Encoder
}

// NewTransient returns a transient strategy over src. A nil enc selects
// JSONEncoder.
func NewTransient(src table.Source, enc Encoder) *Transient {
	if enc == nil {
		enc = JSONEncoder
	}
	return &Transient{src: src, enc: enc}
}

func (s *Transient) Represent(idx int) (*Payload, error) {
	if idx < 0 || idx >= digits.Slots {
		representErrors.WithLabelValues(StrategyTransient).Inc()
		return nil, fmt.Errorf("represent %d: %w", idx, cache.ErrIndexOutOfRange)
	}
	transientEncodes.Inc()
	p, err := newPayload(s.enc, idx, s.src.Lookup(idx))
	if err != nil {
		representErrors.WithLabelValues(StrategyTransient).Inc()
		return nil, err
	}
	return p, nil
}

func (s *Transient) Name() string { return StrategyTransient }

// NewStrategy builds the strategy registered under name.
func NewStrategy(name string, src table.Source, enc Encoder) (Strategy, error) {
	switch name {
	case StrategyCached:
		return NewCached(src, enc), nil
	case StrategyTransient:
		return NewTransient(src, enc), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want %q or %q)", name, StrategyCached, StrategyTransient)
	}
}
