package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"make10/internal/bridge"
	digitconv "make10/internal/digits"
)

const (
	defaultLookupLimit = 20
	maxLookupLimit     = 100
)

// Server answers solution queries and exposes the lookup log.
type Server struct {
	solver *bridge.Solver
	db     *sql.DB // nil disables the lookup log
	logger *zap.Logger
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a new server. db may be nil.
func NewServer(solver *bridge.Solver, db *sql.DB, logger *zap.Logger) ServerInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		solver: solver,
		db:     db,
		logger: logger,
	}
}

// GetSolutions returns the solution set for a four character digit string.
// Characters outside '0'-'9' yield an empty array rather than an error.
func (s *Server) GetSolutions(w http.ResponseWriter, r *http.Request, digits string) {
	if len(digits) != 4 {
		writeError(w, http.StatusBadRequest, "Digits must be exactly 4 characters")
		return
	}

	n1, n2, n3, n4 := digitconv.FromASCII(digits)
	p, err := s.solver.Solve(n1, n2, n3, n4)
	if err != nil {
		s.logger.Error("failed to solve",
			zap.String("digits", digits),
			zap.String("strategy", s.solver.Strategy().Name()),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to build solutions")
		return
	}

	if p.Index >= 0 && s.db != nil {
		id, err := RecordLookup(s.db, digits, p.Index, p.Count, s.solver.Strategy().Name())
		if err != nil {
			s.logger.Warn("failed to record lookup", zap.String("digits", digits), zap.Error(err))
		} else {
			w.Header().Set("X-Lookup-Id", id)
		}
	}

	s.logger.Debug("solved",
		zap.String("digits", digits),
		zap.Int("index", p.Index),
		zap.Int("solutions", p.Count))

	w.Header().Set("ETag", p.ETag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == p.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(p.Body)
}

// ListLookups returns the most recent lookups.
func (s *Server) ListLookups(w http.ResponseWriter, r *http.Request, params ListLookupsParams) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "Lookup log is disabled")
		return
	}

	limit := defaultLookupLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	if limit <= 0 || limit > maxLookupLimit {
		writeError(w, http.StatusBadRequest, "Limit must be between 1 and 100")
		return
	}

	lookups, err := RecentLookups(s.db, limit)
	if err != nil {
		s.logger.Error("failed to list lookups", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch lookups")
		return
	}

	writeJSON(w, http.StatusOK, lookups)
}

// GetLookup returns a single recorded lookup.
func (s *Server) GetLookup(w http.ResponseWriter, r *http.Request, lookupID string) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "Lookup log is disabled")
		return
	}

	lookup, err := GetLookupByID(s.db, lookupID)
	if err != nil {
		s.logger.Error("failed to fetch lookup", zap.String("id", lookupID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch lookup")
		return
	}
	if lookup == nil {
		writeError(w, http.StatusNotFound, "Lookup not found")
		return
	}

	writeJSON(w, http.StatusOK, lookup)
}

// Healthz reports liveness.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
