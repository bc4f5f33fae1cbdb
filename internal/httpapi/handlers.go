// Package httpapi exposes the authorization engine as an advisory HTTP
// facade. Every decision endpoint takes the full user snapshot in the
// request body and returns a verdict; nothing here mutates principals
// or grants.
package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"openconext.org/invite/internal/manage"
	"openconext.org/invite/internal/obs"
)

// ReadyProbe reports whether downstream dependencies answer. Without a
// configured catalog database it always succeeds.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer of the decision service.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	catalog    manage.Catalog
	locale     string
	version    string
}

// New wires all routes. catalog may be nil; the catalog endpoint then
// answers 503 while the decision endpoints keep working.
func New(rp ReadyProbe, catalog manage.Catalog, defaultLocale, version string) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: rp,
		catalog:    catalog,
		locale:     defaultLocale,
		version:    version,
	}

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	a.mux.HandleFunc("/v1/auth/token", a.handleAuthToken)

	a.mux.HandleFunc("/v1/decisions/highest-authority", a.handleHighestAuthority)
	a.mux.HandleFunc("/v1/decisions/user-allowed", a.handleUserAllowed)
	a.mux.HandleFunc("/v1/decisions/invitation-authorities", a.handleInvitationAuthorities)
	a.mux.HandleFunc("/v1/decisions/user-role", a.handleUserRoleDecision)
	a.mux.HandleFunc("/v1/decisions/invitation-delete", a.handleInvitationDelete)
	a.mux.HandleFunc("/v1/decisions/role-edit", a.handleRoleEdit)

	a.mux.HandleFunc("/v1/roles/options", a.handleRoleOptions)
	a.mux.HandleFunc("/v1/catalog/applications/", a.handleCatalogApplication)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped http.Handler for the server.
func (a *API) Handler() http.Handler {
	return obs.Instrument(a.mux)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "invite-decisions",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		obs.SetReady(false)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	obs.SetReady(true)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "invite-decisions",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}
