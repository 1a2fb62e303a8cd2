package status

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/shanehull/auctionwatch/internal/logging"

	"github.com/go-chi/chi/v5/middleware"
)

func recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logging.Error("status handler panicked", map[string]any{
					"panic":      err,
					"stack":      string(debug.Stack()),
					"request_id": middleware.GetReqID(r.Context()),
				})
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.Debug("status request", map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"remote":     r.RemoteAddr,
			"code":       ww.Status(),
			"took":       time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		})
	})
}
