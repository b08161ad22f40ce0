package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/question-bank/internal/auth"
	"github.com/gokatarajesh/question-bank/internal/config"
	"github.com/gokatarajesh/question-bank/internal/metrics"
	"github.com/gokatarajesh/question-bank/internal/question"
)

// Deps bundles what the router needs.
type Deps struct {
	AuthSvc          *auth.Service
	AuthHandlers     *auth.HTTPHandlers
	QuestionHandlers *question.HTTPHandlers
	Metrics          *metrics.Metrics
	Gatherer         prometheus.Gatherer
}

// NewHTTPServer wires the API routes behind CORS and request logging.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, deps Deps) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewRouter(cfg.CORS, logger, deps),
	}
}

// NewRouter builds the full handler chain; exported for tests.
func NewRouter(corsCfg config.CORS, logger zerolog.Logger, deps Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Auth endpoints
	mux.HandleFunc("POST /api/admin/login", deps.AuthHandlers.Login)
	mux.HandleFunc("POST /api/admin/logout", deps.AuthHandlers.Logout)
	mux.HandleFunc("GET /api/admin/verify", deps.AuthHandlers.Verify)

	// Public read
	qh := deps.QuestionHandlers
	mux.HandleFunc("GET /api/questions", qh.HandleList)

	// Admin question management
	protect := auth.RequireSession(deps.AuthSvc, logger)
	mux.Handle("GET /api/admin/questions", protect(http.HandlerFunc(qh.HandleList)))
	mux.Handle("POST /api/admin/questions", protect(http.HandlerFunc(qh.HandleCreate)))
	mux.Handle("PUT /api/admin/questions/{id}", protect(http.HandlerFunc(qh.HandleUpdate)))
	mux.Handle("DELETE /api/admin/questions/{id}", protect(http.HandlerFunc(qh.HandleDelete)))
	mux.Handle("POST /api/admin/questions/bulk-delete", protect(http.HandlerFunc(qh.HandleBulkDelete)))
	mux.Handle("POST /api/admin/questions/upload-csv", protect(http.HandlerFunc(qh.HandleUploadCSV)))
	mux.Handle("GET /api/admin/questions/export-csv", protect(http.HandlerFunc(qh.HandleExportCSV)))

	var handler http.Handler = mux
	handler = withCORS(corsCfg, handler)
	handler = withRequestLogging(logger, deps.Metrics, handler)
	return handler
}
