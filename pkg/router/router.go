package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/qwertyexchange/cryptopawn/internal/dispatch"
)

// Router exposes the notifier daemon's ops surface.
type Router struct {
	startedAt  time.Time
	dispatcher *dispatch.Dispatcher
}

type statusResponse struct {
	UptimeSeconds  int64 `json:"uptime_seconds"`
	EventsSeen     int64 `json:"events_seen"`
	SendsAttempted int64 `json:"sends_attempted"`
	SendsFailed    int64 `json:"sends_failed"`
}

func NewServer(dispatcher *dispatch.Dispatcher) *Router {
	return &Router{
		startedAt:  time.Now(),
		dispatcher: dispatcher,
	}
}

func (r *Router) Start(port int) error {
	cr := chi.NewRouter()

	// configure middleware
	cr.Use(middleware.RequestID)
	cr.Use(middleware.Logger)
	cr.Use(HealthMiddleware)
	cr.Use(middleware.Compress(9))

	cr.Get("/status", r.status)

	return http.ListenAndServe(fmt.Sprintf(":%v", port), cr)
}

func (r *Router) status(w http.ResponseWriter, req *http.Request) {
	stats := r.dispatcher.Stats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statusResponse{
		UptimeSeconds:  int64(time.Since(r.startedAt).Seconds()),
		EventsSeen:     stats.EventsSeen,
		SendsAttempted: stats.SendsAttempted,
		SendsFailed:    stats.SendsFailed,
	})
}

// HealthMiddleware is a middleware that responds to health checks
func HealthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
