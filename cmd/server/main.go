package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/counterbook/counterbook/internal/adapter/http"
	"github.com/counterbook/counterbook/internal/adapter/http/handler"
	"github.com/counterbook/counterbook/internal/adapter/http/middleware"
	postgresRepo "github.com/counterbook/counterbook/internal/adapter/repository/postgres"
	redisRepo "github.com/counterbook/counterbook/internal/adapter/repository/redis"
	"github.com/counterbook/counterbook/internal/infrastructure/auth"
	"github.com/counterbook/counterbook/internal/infrastructure/config"
	"github.com/counterbook/counterbook/internal/infrastructure/logger"
	"github.com/counterbook/counterbook/internal/infrastructure/logging"
	"github.com/counterbook/counterbook/internal/infrastructure/metrics"
	"github.com/counterbook/counterbook/internal/infrastructure/postgres"
	"github.com/counterbook/counterbook/internal/infrastructure/redis"
	"github.com/counterbook/counterbook/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup loggers. The zerolog logger carries request-scoped fields;
	// packages that log through slog (migrator, retrier) share the
	// installed default.
	log := logger.New("counterbook-server", logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat).Install()

	ctx := context.Background()

	// Run migrations before opening the pool so the schema is in place
	// when the first connection is handed out.
	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		log.Info().Str("path", cfg.MigrationsPath).Msg("migrations applied")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, cfg.DatabaseTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accounts := postgresRepo.NewAccountDirectory(pool)
	companies := postgresRepo.NewCompanyFacts(pool)
	ledger := postgresRepo.NewLedgerQuery(pool)
	writer := postgresRepo.NewLedgerWriter(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	reportCache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	authz := auth.NewSoDPolicy()
	m := metrics.New()

	// Initialize use cases
	journalValidator := usecase.NewJournalValidator(accounts, authz, cfg.MetadataCacheTTL).
		WithMetrics(m)
	voucherValidator := usecase.NewVoucherValidator(journalValidator, accounts, companies, ledger, authz, cfg.MetadataCacheTTL).
		WithMetrics(m)
	invoicePosting := usecase.NewInvoicePosting(journalValidator, companies)
	paymentPosting := usecase.NewPaymentPosting(journalValidator, accounts, companies, cfg.MetadataCacheTTL)
	postingService := usecase.NewPostingService(txManager, voucherValidator, invoicePosting, paymentPosting, writer, ledger, auditRepo, authz, idGen).
		WithRetrier(postgresRepo.NewRetrier()).
		WithMetrics(m)
	trialBalance := usecase.NewTrialBalanceUseCase(accounts, companies, ledger, reportCache, cfg.ReportCacheTTL).
		WithMetrics(m)
	balanceSheet := usecase.NewBalanceSheetUseCase(trialBalance, accounts, reportCache, cfg.ReportCacheTTL).
		WithMetrics(m)
	consistency := usecase.NewConsistencyUseCase(ledger).WithMetrics(m)
	accountQuery := usecase.NewAccountQueryUseCase(accounts, ledger)

	// Initialize handlers
	journalHandler := handler.NewJournalHandler(journalValidator)
	voucherHandler := handler.NewVoucherHandler(voucherValidator, postingService)
	invoiceHandler := handler.NewInvoiceHandler(postingService)
	paymentHandler := handler.NewPaymentHandler(postingService)
	reportHandler := handler.NewReportHandler(trialBalance, balanceSheet, consistency)
	accountHandler := handler.NewAccountHandler(accountQuery)
	auditHandler := handler.NewAuditHandler(auditRepo)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	jwtManager, err := newJWTManager(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid auth configuration")
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.Cleanup(10 * time.Minute)
		}
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		JournalHandler: journalHandler,
		VoucherHandler: voucherHandler,
		InvoiceHandler: invoiceHandler,
		PaymentHandler: paymentHandler,
		ReportHandler:  reportHandler,
		AccountHandler: accountHandler,
		AuditHandler:   auditHandler,
		HealthHandler:  healthHandler,

		Logger:           &log,
		JWTManager:       jwtManager,
		AuthEnabled:      cfg.AuthEnabled,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Bool("auth", cfg.AuthEnabled).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// newJWTManager builds the token verifier when a secret is configured.
// Enforcing auth without a secret is a misconfiguration, not a silent
// fallback to open access.
func newJWTManager(cfg *config.Config) (*auth.JWTManager, error) {
	if cfg.JWTSecret == "" {
		if cfg.AuthEnabled {
			return nil, errors.New("AUTH_ENABLED requires JWT_SECRET to be set")
		}

		return nil, nil
	}

	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration), nil
}
