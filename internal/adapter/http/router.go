package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/counterbook/counterbook/internal/adapter/http/handler"
	"github.com/counterbook/counterbook/internal/adapter/http/middleware"
	"github.com/counterbook/counterbook/internal/infrastructure/auth"
	"github.com/counterbook/counterbook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	JournalHandler *handler.JournalHandler
	VoucherHandler *handler.VoucherHandler
	InvoiceHandler *handler.InvoiceHandler
	PaymentHandler *handler.PaymentHandler
	ReportHandler  *handler.ReportHandler
	AccountHandler *handler.AccountHandler
	AuditHandler   *handler.AuditHandler
	HealthHandler  *handler.HealthHandler

	Logger           *zerolog.Logger
	JWTManager       *auth.JWTManager
	AuthEnabled      bool
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router. Posting routes require a role
// that may post, cancellation a role that may cancel, and report reads
// any authenticated role. With AuthEnabled false the role gates are
// not mounted and the body-supplied posting context is trusted as-is.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(*cfg.Logger).Wrap)
	} else {
		r.Use(chimiddleware.Logger)
	}
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	guard := func(gate func(http.Handler) http.Handler) []func(http.Handler) http.Handler {
		if !cfg.AuthEnabled || cfg.JWTManager == nil {
			return nil
		}

		return []func(http.Handler) http.Handler{
			middleware.AuthMiddleware(cfg.JWTManager),
			gate,
		}
	}

	// Health and telemetry endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		// Posting surface
		r.Group(func(r chi.Router) {
			r.Use(guard(middleware.RequirePoster)...)

			r.Post("/journals/validate", cfg.JournalHandler.Validate)
			r.Post("/vouchers/validate", cfg.VoucherHandler.Validate)
			r.Post("/vouchers", cfg.VoucherHandler.Submit)
			r.Post("/invoices", cfg.InvoiceHandler.Post)
			r.Post("/invoices/preview", cfg.InvoiceHandler.Preview)
			r.Post("/payments", cfg.PaymentHandler.Post)
			r.Post("/payments/preview", cfg.PaymentHandler.Preview)
		})

		// Cancellation needs manager authority
		r.Group(func(r chi.Router) {
			r.Use(guard(middleware.RequireCanceller)...)

			r.Post("/vouchers/{type}/{number}/cancel", cfg.VoucherHandler.Cancel)
		})

		// Read surface
		r.Group(func(r chi.Router) {
			r.Use(guard(middleware.RequireReader)...)

			r.Get("/accounts/{id}", cfg.AccountHandler.Get)
			r.Get("/accounts/{id}/balance", cfg.AccountHandler.Balance)
			r.Get("/accounts/{id}/entries", cfg.AccountHandler.Entries)

			r.Route("/companies/{companyID}", func(r chi.Router) {
				r.Get("/accounts", cfg.AccountHandler.ListByCompany)
				r.Get("/reports/trial-balance", cfg.ReportHandler.TrialBalance)
				r.Get("/reports/balance-sheet", cfg.ReportHandler.BalanceSheet)
				r.Get("/ledger/consistency", cfg.ReportHandler.Consistency)
			})

			r.Get("/audit", cfg.AuditHandler.List)
			r.Get("/audit/{resourceType}/{resourceID}", cfg.AuditHandler.ByResource)
		})
	})

	return r
}
