package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ListLookupsParams defines parameters for ListLookups.
type ListLookupsParams struct {
	// Limit Maximum number of lookups to return
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Solutions for four digits
	// (GET /solutions/{digits})
	GetSolutions(w http.ResponseWriter, r *http.Request, digits string)
	// Recent lookups
	// (GET /lookups)
	ListLookups(w http.ResponseWriter, r *http.Request, params ListLookupsParams)
	// One recorded lookup
	// (GET /lookups/{lookupId})
	GetLookup(w http.ResponseWriter, r *http.Request, lookupID string)
	// Liveness probe
	// (GET /healthz)
	Healthz(w http.ResponseWriter, r *http.Request)
}

// ServerInterfaceWrapper converts request parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetSolutions operation middleware
func (siw *ServerInterfaceWrapper) GetSolutions(w http.ResponseWriter, r *http.Request) {
	var digits string

	err := runtime.BindStyledParameterWithOptions("simple", "digits", chi.URLParam(r, "digits"), &digits,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter digits: %s", err))
		return
	}

	siw.Handler.GetSolutions(w, r, digits)
}

// ListLookups operation middleware
func (siw *ServerInterfaceWrapper) ListLookups(w http.ResponseWriter, r *http.Request) {
	var params ListLookupsParams

	err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
		return
	}

	siw.Handler.ListLookups(w, r, params)
}

// GetLookup operation middleware
func (siw *ServerInterfaceWrapper) GetLookup(w http.ResponseWriter, r *http.Request) {
	var lookupID string

	err := runtime.BindStyledParameterWithOptions("simple", "lookupId", chi.URLParam(r, "lookupId"), &lookupID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter lookupId: %s", err))
		return
	}

	siw.Handler.GetLookup(w, r, lookupID)
}

// Healthz operation middleware
func (siw *ServerInterfaceWrapper) Healthz(w http.ResponseWriter, r *http.Request) {
	siw.Handler.Healthz(w, r)
}

// HandlerFromMux registers every route of si on r and adds /metrics.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	wrapper := ServerInterfaceWrapper{Handler: si}

	r.Group(func(r chi.Router) {
		r.Get("/solutions/{digits}", wrapper.GetSolutions)
	})
	r.Group(func(r chi.Router) {
		r.Get("/lookups", wrapper.ListLookups)
	})
	r.Group(func(r chi.Router) {
		r.Get("/lookups/{lookupId}", wrapper.GetLookup)
	})
	r.Group(func(r chi.Router) {
		r.Get("/healthz", wrapper.Healthz)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
