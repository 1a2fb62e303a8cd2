/*
Package status serves a small read-only HTTP view of the running monitor.
*/
package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shanehull/auctionwatch/internal/logging"
	"github.com/shanehull/auctionwatch/internal/monitor"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
)

const service = "auctionwatch"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SnapshotFunc returns the current monitor stats.
type SnapshotFunc func() monitor.Stats

type Handler struct {
	snapshot   SnapshotFunc
	staleAfter time.Duration
	startedAt  time.Time
	now        func() time.Time
}

// NewHandler returns a Handler reporting snapshot. The monitor is considered
// stale when its last successful poll is older than staleAfter; zero disables
// the check.
func NewHandler(snapshot SnapshotFunc, staleAfter time.Duration) *Handler {
	return &Handler{
		snapshot:   snapshot,
		staleAfter: staleAfter,
		startedAt:  time.Now(),
		now:        time.Now,
	}
}

type StatusResponse struct {
	Service       string        `json:"service"`
	Status        string        `json:"status"`
	Timestamp     string        `json:"timestamp"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	Monitor       monitor.Stats `json:"monitor"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type ReadyResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Status handles GET /api/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	stats := h.snapshot()
	_, reason := h.ready(stats)

	state := "ok"
	if reason != "" {
		state = "degraded"
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	writeJSON(w, http.StatusOK, StatusResponse{
		Service:       service,
		Status:        state,
		Timestamp:     h.now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(h.now().Sub(h.startedAt).Seconds()),
		Monitor:       stats,
	})
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Timestamp: h.now().UTC()})
}

// Ready handles GET /api/v1/ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ok, reason := h.ready(h.snapshot())
	code := http.StatusOK
	if !ok {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, ReadyResponse{Ready: ok, Reason: reason})
}

func (h *Handler) ready(stats monitor.Stats) (bool, string) {
	if stats.State != monitor.Steady.String() {
		return false, "bootstrap not complete"
	}
	if h.staleAfter > 0 && h.now().Sub(stats.LastSuccessAt) > h.staleAfter {
		return false, fmt.Sprintf("no successful poll for %s", h.staleAfter)
	}
	return true, ""
}

// NewRouter mounts the status handlers.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(recovery)
	r.Use(requestLog)

	r.Get("/api/status", h.Status)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/ready", h.Ready)
	})
	return r
}

// Serve runs an HTTP server on addr until ctx is canceled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("status server listening", map[string]any{"addr": addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("status server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("status server shutdown: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
