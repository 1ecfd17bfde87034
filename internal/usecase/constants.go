package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultMetadataTTL bounds account and company facts memoized during
	// a single validation pass
	DefaultMetadataTTL = 5 * time.Minute

	// DefaultReportTTL is how long computed reports stay cached
	DefaultReportTTL = 30 * time.Second

	// LongJournalThreshold is the entry count above which a journal entry
	// voucher draws a length warning
	LongJournalThreshold = 10
)
