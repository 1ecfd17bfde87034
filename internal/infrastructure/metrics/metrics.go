package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Validation metrics
	JournalsValidated  *prometheus.CounterVec
	VouchersValidated  *prometheus.CounterVec
	ValidationFindings *prometheus.CounterVec
	ValidationDuration prometheus.Histogram

	// Posting metrics
	VouchersSubmitted *prometheus.CounterVec
	VouchersCancelled prometheus.Counter
	InvoicesPosted    *prometheus.CounterVec
	PaymentsPosted    prometheus.Counter
	PostingDuration   prometheus.Histogram
	PostedAmount      prometheus.Histogram

	// Report metrics
	ReportsGenerated *prometheus.CounterVec
	ReportDuration   *prometheus.HistogramVec
	ReportCacheHits  *prometheus.CounterVec

	// Consistency metrics
	ConsistencyChecks     prometheus.Counter
	UnbalancedVouchers    prometheus.Gauge
	ConsistencyCheckScans prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisDuration   *prometheus.HistogramVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Validation metrics
		JournalsValidated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_journals_validated_total",
				Help: "Total journal validations by outcome",
			},
			[]string{"outcome"},
		),
		VouchersValidated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_vouchers_validated_total",
				Help: "Total voucher validations by type and outcome",
			},
			[]string{"voucher_type", "outcome"},
		),
		ValidationFindings: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_validation_findings_total",
				Help: "Total validation findings by code and severity",
			},
			[]string{"code", "severity"},
		),
		ValidationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "counterbook_validation_duration_seconds",
			Help:    "Duration of validation passes",
			Buckets: prometheus.DefBuckets,
		}),

		// Posting metrics
		VouchersSubmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_vouchers_submitted_total",
				Help: "Total vouchers submitted by type and outcome",
			},
			[]string{"voucher_type", "outcome"},
		),
		VouchersCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "counterbook_vouchers_cancelled_total",
			Help: "Total vouchers cancelled",
		}),
		InvoicesPosted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_invoices_posted_total",
				Help: "Total invoices posted by kind",
			},
			[]string{"kind"},
		),
		PaymentsPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "counterbook_payments_posted_total",
			Help: "Total payments posted",
		}),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "counterbook_posting_duration_seconds",
			Help:    "Duration of posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		PostedAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "counterbook_posted_amount",
			Help:    "Posted voucher control totals in company base currency",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Report metrics
		ReportsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_reports_generated_total",
				Help: "Total reports generated by kind",
			},
			[]string{"report"},
		),
		ReportDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "counterbook_report_duration_seconds",
				Help:    "Report generation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report"},
		),
		ReportCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_report_cache_hits_total",
				Help: "Report cache lookups by result",
			},
			[]string{"result"},
		),

		// Consistency metrics
		ConsistencyChecks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "counterbook_consistency_checks_total",
			Help: "Total ledger consistency checks run",
		}),
		UnbalancedVouchers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "counterbook_unbalanced_vouchers",
			Help: "Unbalanced vouchers found by the latest consistency check",
		}),
		ConsistencyCheckScans: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "counterbook_consistency_check_vouchers",
			Help:    "Vouchers scanned per consistency check",
			Buckets: []float64{10, 100, 1000, 10000, 100000},
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "counterbook_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "counterbook_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "counterbook_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "counterbook_redis_duration_seconds",
				Help:    "Redis operation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counterbook_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
