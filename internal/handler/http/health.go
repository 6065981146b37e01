package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"copydesk/internal/handler/http/respond"
)

// LiveHandler reports process liveness. It never touches dependencies.
func LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyHandler reports readiness to serve traffic: the database must answer a
// ping within two seconds.
func ReadyHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"reason": "database unreachable",
			})
			return
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// HealthHandler reports liveness plus connection pool detail for operators.
func HealthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		code := http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			dbStatus = "unreachable"
			code = http.StatusServiceUnavailable
		}

		stats := db.Stats()
		respond.JSON(w, code, map[string]any{
			"status":   dbStatus,
			"database": map[string]any{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
				"wait_count":       stats.WaitCount,
			},
		})
	}
}
