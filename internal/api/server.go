package api

import (
	"net/http"
	"time"

	adminapi "github.com/futig/proposal-backend/internal/api/admin"
	authapi "github.com/futig/proposal-backend/internal/api/auth"
	comparisonapi "github.com/futig/proposal-backend/internal/api/comparison"
	"github.com/futig/proposal-backend/internal/api/docs"
	intakeapi "github.com/futig/proposal-backend/internal/api/intake"
	"github.com/futig/proposal-backend/internal/api/middleware"
	proposalapi "github.com/futig/proposal-backend/internal/api/proposal"
	"github.com/futig/proposal-backend/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler mounted by the router
type Handlers struct {
	Auth       *authapi.Handler
	Intake     *intakeapi.Handler
	Proposal   *proposalapi.Handler
	Comparison *comparisonapi.Handler
	Admin      *adminapi.Handler
}

type RouterConfig struct {
	AllowedOrigins []string
	// RequestTimeout bounds a whole request, generation included
	RequestTimeout time.Duration
	SwaggerPath    string
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	h Handlers,
	verifier middleware.TokenVerifier,
	m *metrics.Metrics,
	cfg RouterConfig,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                   // Recover from panics
	r.Use(chimiddleware.RequestID)                   // Add request ID
	r.Use(middleware.Logger(logger))                 // Log requests
	r.Use(middleware.CORS(cfg.AllowedOrigins))       // Handle CORS
	r.Use(m.Middleware)                              // Count and time requests
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Handle("/metrics", m.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r, cfg.SwaggerPath)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(verifier))

		authapi.RegisterRoutes(r, h.Auth)
		intakeapi.RegisterRoutes(r, h.Intake)
		proposalapi.RegisterRoutes(r, h.Proposal)
		comparisonapi.RegisterRoutes(r, h.Comparison)
		adminapi.RegisterRoutes(r, h.Admin)
	})

	return r
}
