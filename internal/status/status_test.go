package status

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shanehull/auctionwatch/internal/monitor"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func newTestHandler(stats monitor.Stats, staleAfter time.Duration) *Handler {
	h := NewHandler(func() monitor.Stats { return stats }, staleAfter)
	h.now = func() time.Time { return fixedNow }
	h.startedAt = fixedNow.Add(-90 * time.Second)
	return h
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStatus(t *testing.T) {
	stats := monitor.Stats{
		State:             "steady",
		Cycles:            12,
		FailedCycles:      1,
		KnownAuctions:     40,
		TrackedBids:       3,
		NotificationsSent: 7,
		LastSuccessAt:     fixedNow.Add(-time.Minute),
	}
	r := NewRouter(newTestHandler(stats, 5*time.Minute))

	rec := get(t, r, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NotEmpty(t, rec.Header().Get("Cache-Control"))

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "auctionwatch", resp.Service)
	require.Equal(t, "ok", resp.Status)
	require.Equal(t, int64(90), resp.UptimeSeconds)
	require.Equal(t, 12, resp.Monitor.Cycles)
	require.Equal(t, 40, resp.Monitor.KnownAuctions)
	require.Equal(t, 7, resp.Monitor.NotificationsSent)
}

func TestStatus_DegradedWhenStale(t *testing.T) {
	stats := monitor.Stats{State: "steady", LastSuccessAt: fixedNow.Add(-time.Hour), LastError: "timeout"}
	r := NewRouter(newTestHandler(stats, 5*time.Minute))

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(get(t, r, "/api/status").Body.Bytes(), &resp))
	require.Equal(t, "degraded", resp.Status)
	require.Equal(t, "timeout", resp.Monitor.LastError)
}

func TestHealth(t *testing.T) {
	r := NewRouter(newTestHandler(monitor.Stats{State: "bootstrapping"}, 0))

	rec := get(t, r, "/api/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "healthy", resp.Status)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name     string
		stats    monitor.Stats
		wantCode int
	}{
		{name: "bootstrapping", stats: monitor.Stats{State: "bootstrapping"}, wantCode: http.StatusServiceUnavailable},
		{name: "steady", stats: monitor.Stats{State: "steady", LastSuccessAt: fixedNow}, wantCode: http.StatusOK},
		{name: "stale", stats: monitor.Stats{State: "steady", LastSuccessAt: fixedNow.Add(-10 * time.Minute)}, wantCode: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRouter(newTestHandler(tc.stats, 5*time.Minute))
			rec := get(t, r, "/api/v1/ready")
			require.Equal(t, tc.wantCode, rec.Code)

			var resp ReadyResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, tc.wantCode == http.StatusOK, resp.Ready)
		})
	}
}

func TestRouter_UnknownPath(t *testing.T) {
	r := NewRouter(newTestHandler(monitor.Stats{}, 0))
	require.Equal(t, http.StatusNotFound, get(t, r, "/admin").Code)
}

func TestRouter_RecoversPanics(t *testing.T) {
	h := NewHandler(func() monitor.Stats { panic("snapshot") }, 0)
	rec := get(t, NewRouter(h), "/api/status")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- Serve(ctx, addr, NewRouter(newTestHandler(monitor.Stats{State: "steady"}, 0)))
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/v1/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServe_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = Serve(context.Background(), ln.Addr().String(), http.NotFoundHandler())
	require.Error(t, err)
}
