package usecase

import (
	"context"
	"time"

	"github.com/counterbook/counterbook/internal/domain"
)

// AccountDirectory defines read-only access to chart-of-accounts metadata.
// This engine never mutates accounts.
type AccountDirectory interface {
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetAccounts(ctx context.Context, ids []string) (map[string]*domain.Account, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.Account, error)
}

// CompanyFacts defines read-only access to company-level configuration.
type CompanyFacts interface {
	BaseCurrency(ctx context.Context, companyID string) (string, error)
	PolicyFlags(ctx context.Context, companyID string) (domain.PolicyFlags, error)
}

// LedgerQuery defines read access to posted ledger rows and voucher headers.
type LedgerQuery interface {
	// OpeningTotals aggregates non-cancelled entries posted strictly before
	// the given date, per account.
	OpeningTotals(ctx context.Context, companyID string, before time.Time) ([]domain.AccountTotal, error)
	// PeriodTotals aggregates non-cancelled entries posted within [from, to].
	PeriodTotals(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountTotal, error)
	// AccountTotals aggregates non-cancelled entries for one account
	// posted up to and including the given date.
	AccountTotals(ctx context.Context, companyID, accountID string, upTo time.Time) (domain.AccountTotal, error)
	// EntriesForAccount lists non-cancelled entries for one account up to a date.
	EntriesForAccount(ctx context.Context, companyID, accountID string, upTo time.Time, limit, offset int) ([]*domain.LedgerEntry, error)
	VoucherExists(ctx context.Context, companyID string, vtype domain.VoucherType, number string, excludeCancelled bool) (bool, error)
	FindVoucher(ctx context.Context, companyID string, vtype domain.VoucherType, number string) (*domain.VoucherRecord, error)
	// LatestClosedPeriodEnd returns nil when no period has been closed.
	LatestClosedPeriodEnd(ctx context.Context, companyID string) (*time.Time, error)
	// VoucherSums aggregates debit and credit per non-cancelled voucher.
	VoucherSums(ctx context.Context, companyID string, limit, offset int) ([]domain.VoucherCheck, error)
}

// AuthorizationPolicy decides segregation-of-duties outcomes for posting actions.
type AuthorizationPolicy interface {
	CheckSegregationOfDuties(ctx context.Context, action domain.Action, role domain.Role) (domain.SoDDecision, error)
}

// LedgerWriter defines write access for accepted vouchers.
type LedgerWriter interface {
	InsertVoucher(ctx context.Context, tx Transaction, record *domain.VoucherRecord, entries []*domain.LedgerEntry) error
	CancelVoucher(ctx context.Context, tx Transaction, companyID string, vtype domain.VoucherType, number, cancelledBy string, cancelledAt time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation when it fails with a transient storage
// conflict such as a deadlock or serialization failure.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
