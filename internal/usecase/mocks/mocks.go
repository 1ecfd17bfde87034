package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/usecase"
)

// MockAccountDirectory is a mock implementation of AccountDirectory.
type MockAccountDirectory struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	GetAccountFunc    func(ctx context.Context, id string) (*domain.Account, error)
	GetAccountsFunc   func(ctx context.Context, ids []string) (map[string]*domain.Account, error)
	ListByCompanyFunc func(ctx context.Context, companyID string, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountDirectory() *MockAccountDirectory {
	return &MockAccountDirectory{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed loads accounts into the directory's backing map.
func (m *MockAccountDirectory) Seed(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range accounts {
		m.accounts[acc.ID] = acc
	}
}

func (m *MockAccountDirectory) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountDirectory) GetAccounts(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
	if m.GetAccountsFunc != nil {
		return m.GetAccountsFunc(ctx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	found := make(map[string]*domain.Account)
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			found[id] = acc
		}
	}
	return found, nil
}

func (m *MockAccountDirectory) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.Account, error) {
	if m.ListByCompanyFunc != nil {
		return m.ListByCompanyFunc(ctx, companyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.CompanyID == companyID {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

// MockCompanyFacts is a mock implementation of CompanyFacts.
type MockCompanyFacts struct {
	mu         sync.RWMutex
	currencies map[string]string
	flags      map[string]domain.PolicyFlags

	BaseCurrencyFunc func(ctx context.Context, companyID string) (string, error)
	PolicyFlagsFunc  func(ctx context.Context, companyID string) (domain.PolicyFlags, error)
}

func NewMockCompanyFacts() *MockCompanyFacts {
	return &MockCompanyFacts{
		currencies: make(map[string]string),
		flags:      make(map[string]domain.PolicyFlags),
	}
}

// SetBaseCurrency seeds the base currency for a company.
func (m *MockCompanyFacts) SetBaseCurrency(companyID, currency string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currencies[companyID] = currency
}

// SetPolicyFlags seeds the policy flags for a company.
func (m *MockCompanyFacts) SetPolicyFlags(companyID string, flags domain.PolicyFlags) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[companyID] = flags
}

func (m *MockCompanyFacts) BaseCurrency(ctx context.Context, companyID string) (string, error) {
	if m.BaseCurrencyFunc != nil {
		return m.BaseCurrencyFunc(ctx, companyID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.currencies[companyID]; ok {
		return c, nil
	}
	return "USD", nil
}

func (m *MockCompanyFacts) PolicyFlags(ctx context.Context, companyID string) (domain.PolicyFlags, error) {
	if m.PolicyFlagsFunc != nil {
		return m.PolicyFlagsFunc(ctx, companyID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[companyID], nil
}

// MockLedgerQuery is a mock implementation of LedgerQuery.
type MockLedgerQuery struct {
	mu            sync.RWMutex
	vouchers      map[string]*domain.VoucherRecord
	entries       []*domain.LedgerEntry
	openings      []domain.AccountTotal
	periods       []domain.AccountTotal
	voucherSums   []domain.VoucherCheck
	closedPeriod  *time.Time

	OpeningTotalsFunc         func(ctx context.Context, companyID string, before time.Time) ([]domain.AccountTotal, error)
	PeriodTotalsFunc          func(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountTotal, error)
	AccountTotalsFunc         func(ctx context.Context, companyID, accountID string, upTo time.Time) (domain.AccountTotal, error)
	EntriesForAccountFunc     func(ctx context.Context, companyID, accountID string, upTo time.Time, limit, offset int) ([]*domain.LedgerEntry, error)
	VoucherExistsFunc         func(ctx context.Context, companyID string, vtype domain.VoucherType, number string, excludeCancelled bool) (bool, error)
	FindVoucherFunc           func(ctx context.Context, companyID string, vtype domain.VoucherType, number string) (*domain.VoucherRecord, error)
	LatestClosedPeriodEndFunc func(ctx context.Context, companyID string) (*time.Time, error)
	VoucherSumsFunc           func(ctx context.Context, companyID string, limit, offset int) ([]domain.VoucherCheck, error)
}

func NewMockLedgerQuery() *MockLedgerQuery {
	return &MockLedgerQuery{
		vouchers: make(map[string]*domain.VoucherRecord),
	}
}

func voucherKey(companyID string, vtype domain.VoucherType, number string) string {
	return fmt.Sprintf("%s/%s/%s", companyID, vtype, number)
}

// SeedVoucher loads a voucher header into the backing map.
func (m *MockLedgerQuery) SeedVoucher(rec *domain.VoucherRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vouchers[voucherKey(rec.CompanyID, rec.Type, rec.Number)] = rec
}

// SeedEntries loads ledger entries used by EntriesForAccount.
func (m *MockLedgerQuery) SeedEntries(entries ...*domain.LedgerEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
}

// SeedTotals sets the opening and period aggregates.
func (m *MockLedgerQuery) SeedTotals(openings, periods []domain.AccountTotal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openings = openings
	m.periods = periods
}

// SeedVoucherSums sets the per-voucher aggregates.
func (m *MockLedgerQuery) SeedVoucherSums(sums []domain.VoucherCheck) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voucherSums = sums
}

// SetClosedPeriodEnd sets the latest closed period end.
func (m *MockLedgerQuery) SetClosedPeriodEnd(end *time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closedPeriod = end
}

func (m *MockLedgerQuery) OpeningTotals(ctx context.Context, companyID string, before time.Time) ([]domain.AccountTotal, error) {
	if m.OpeningTotalsFunc != nil {
		return m.OpeningTotalsFunc(ctx, companyID, before)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.openings, nil
}

func (m *MockLedgerQuery) PeriodTotals(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountTotal, error) {
	if m.PeriodTotalsFunc != nil {
		return m.PeriodTotalsFunc(ctx, companyID, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.periods, nil
}

func (m *MockLedgerQuery) AccountTotals(ctx context.Context, companyID, accountID string, upTo time.Time) (domain.AccountTotal, error) {
	if m.AccountTotalsFunc != nil {
		return m.AccountTotalsFunc(ctx, companyID, accountID, upTo)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := domain.AccountTotal{AccountID: accountID, Debit: decimal.Zero, Credit: decimal.Zero}
	for _, e := range m.entries {
		if e.CompanyID == companyID && e.AccountID == accountID && !e.PostingDate.After(upTo) && !e.IsCancelled {
			total.Debit = total.Debit.Add(e.Debit)
			total.Credit = total.Credit.Add(e.Credit)
		}
	}
	return total, nil
}

func (m *MockLedgerQuery) EntriesForAccount(ctx context.Context, companyID, accountID string, upTo time.Time, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.EntriesForAccountFunc != nil {
		return m.EntriesForAccountFunc(ctx, companyID, accountID, upTo, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.CompanyID == companyID && e.AccountID == accountID && !e.PostingDate.After(upTo) && !e.IsCancelled {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockLedgerQuery) VoucherExists(ctx context.Context, companyID string, vtype domain.VoucherType, number string, excludeCancelled bool) (bool, error) {
	if m.VoucherExistsFunc != nil {
		return m.VoucherExistsFunc(ctx, companyID, vtype, number, excludeCancelled)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.vouchers[voucherKey(companyID, vtype, number)]
	if !ok {
		return false, nil
	}
	if excludeCancelled && rec.IsCancelled {
		return false, nil
	}
	return true, nil
}

func (m *MockLedgerQuery) FindVoucher(ctx context.Context, companyID string, vtype domain.VoucherType, number string) (*domain.VoucherRecord, error) {
	if m.FindVoucherFunc != nil {
		return m.FindVoucherFunc(ctx, companyID, vtype, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.vouchers[voucherKey(companyID, vtype, number)]; ok {
		return rec, nil
	}
	return nil, domain.ErrVoucherNotFound
}

func (m *MockLedgerQuery) LatestClosedPeriodEnd(ctx context.Context, companyID string) (*time.Time, error) {
	if m.LatestClosedPeriodEndFunc != nil {
		return m.LatestClosedPeriodEndFunc(ctx, companyID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closedPeriod, nil
}

func (m *MockLedgerQuery) VoucherSums(ctx context.Context, companyID string, limit, offset int) ([]domain.VoucherCheck, error) {
	if m.VoucherSumsFunc != nil {
		return m.VoucherSumsFunc(ctx, companyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.voucherSums, nil
}

// MockAuthorizationPolicy is a mock implementation of AuthorizationPolicy.
// The default decision mirrors role capabilities with no escalation.
type MockAuthorizationPolicy struct {
	CheckSegregationOfDutiesFunc func(ctx context.Context, action domain.Action, role domain.Role) (domain.SoDDecision, error)
}

func NewMockAuthorizationPolicy() *MockAuthorizationPolicy {
	return &MockAuthorizationPolicy{}
}

func (m *MockAuthorizationPolicy) CheckSegregationOfDuties(ctx context.Context, action domain.Action, role domain.Role) (domain.SoDDecision, error) {
	if m.CheckSegregationOfDutiesFunc != nil {
		return m.CheckSegregationOfDutiesFunc(ctx, action, role)
	}
	allowed := role.CanPost()
	if action == domain.ActionCancelVoucher {
		allowed = role.CanCancel()
	}
	decision := domain.SoDDecision{Allowed: allowed}
	if !allowed {
		decision.Reason = fmt.Sprintf("role %s may not perform %s", role, action)
	}
	return decision, nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc          func(ctx context.Context, log *domain.AuditLog) error
	CreateTxFunc        func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
	ListFunc            func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceIDFunc func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

// Logs returns everything recorded so far.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var logs []*domain.AuditLog
	for _, l := range m.logs {
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	if m.GetByResourceIDFunc != nil {
		return m.GetByResourceIDFunc(ctx, resourceType, resourceID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var logs []*domain.AuditLog
	for _, l := range m.logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockRetrier is a mock implementation of Retrier. By default it runs
// the operation once without retrying.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
	Calls     int
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	m.Calls++
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
