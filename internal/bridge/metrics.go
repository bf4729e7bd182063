package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheLookups counts every cached-strategy request
	cacheLookups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "make10_cache_lookups_total",
		Help: "Requests served through the result cache",
	})

	// cachePopulations counts slot conversions (cache misses)
	cachePopulations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "make10_cache_populations_total",
		Help: "Solution sets converted and stored in the result cache",
	})

	// representErrors counts failed representations by strategy
	representErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "make10_represent_errors_total",
		Help: "Failed representations by strategy",
	}, []string{"strategy"})

	// transientEncodes counts payloads built by the transient strategy
	transientEncodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "make10_transient_encodes_total",
		Help: "Payloads encoded by the transient strategy",
	})

	// invalidDigits counts solve calls rejected by the indexer
	invalidDigits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "make10_invalid_digits_total",
		Help: "Solve calls with a digit outside 0-9",
	})
)
