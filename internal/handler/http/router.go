package http

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"copydesk/internal/handler/http/article"
	"copydesk/internal/handler/http/requestid"
)

// maxRequestBodyBytes caps incoming request bodies. Bulk requests with a
// hundred IDs fit comfortably; article content never travels inbound.
const maxRequestBodyBytes = 1 << 20

// requestTimeout leaves headroom over the generation deadline (120s default)
// so a slow model call fails with its own taxonomy, not a cut request.
const requestTimeout = 3 * time.Minute

// NewRouter assembles the full HTTP handler: article routes, health probes
// and metrics behind the shared middleware stack.
func NewRouter(logger *slog.Logger, db *sql.DB, articles *article.Handler) http.Handler {
	mux := http.NewServeMux()

	articles.Register(mux, LoadGenerateLimiter().Middleware)
	mux.HandleFunc("GET /healthz", LiveHandler())
	mux.HandleFunc("GET /health", HealthHandler(db))
	mux.HandleFunc("GET /health/live", LiveHandler())
	mux.HandleFunc("GET /health/ready", ReadyHandler(db))
	mux.Handle("GET /metrics", promhttp.Handler())

	// Outermost first: request IDs exist before anything logs.
	var handler http.Handler = mux
	handler = RequestTimeout(requestTimeout)(handler)
	handler = LimitRequestBody(maxRequestBodyBytes)(handler)
	handler = Metrics(handler)
	handler = Recover(logger)(handler)
	handler = Logging(logger)(handler)
	handler = requestid.Middleware(handler)
	return handler
}
