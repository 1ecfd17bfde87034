package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/counterbook/counterbook/internal/adapter/http"
	"github.com/counterbook/counterbook/internal/adapter/http/handler"
	"github.com/counterbook/counterbook/internal/adapter/repository/postgres"
	redisrepo "github.com/counterbook/counterbook/internal/adapter/repository/redis"
	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/auth"
	infraredis "github.com/counterbook/counterbook/internal/infrastructure/redis"
	"github.com/counterbook/counterbook/internal/usecase"
	"github.com/counterbook/counterbook/tests/testutil"
)

// newTestRouter wires the posting and reporting stack the same way
// cmd/server does, minus auth and metrics. Report caching is disabled
// so assertions always see the current ledger.
func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	ctx := context.Background()
	pool := testDB.Pool

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL, 5*time.Second)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	txManager := postgres.NewTxManager(pool)
	accounts := postgres.NewAccountDirectory(pool)
	companies := postgres.NewCompanyFacts(pool)
	ledger := postgres.NewLedgerQuery(pool)
	writer := postgres.NewLedgerWriter(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	idGen := postgres.NewULIDGenerator()
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)
	authz := auth.NewSoDPolicy()

	journalValidator := usecase.NewJournalValidator(accounts, authz, time.Minute)
	voucherValidator := usecase.NewVoucherValidator(journalValidator, accounts, companies, ledger, authz, time.Minute)
	invoicePosting := usecase.NewInvoicePosting(journalValidator, companies)
	paymentPosting := usecase.NewPaymentPosting(journalValidator, accounts, companies, time.Minute)
	postingService := usecase.NewPostingService(txManager, voucherValidator, invoicePosting, paymentPosting, writer, ledger, auditRepo, authz, idGen).
		WithRetrier(postgres.NewRetrier())
	trialBalance := usecase.NewTrialBalanceUseCase(accounts, companies, ledger, nil, 0)
	balanceSheet := usecase.NewBalanceSheetUseCase(trialBalance, accounts, nil, 0)
	consistency := usecase.NewConsistencyUseCase(ledger)
	accountQuery := usecase.NewAccountQueryUseCase(accounts, ledger)

	return httpadapter.NewRouter(httpadapter.RouterConfig{
		JournalHandler: handler.NewJournalHandler(journalValidator),
		VoucherHandler: handler.NewVoucherHandler(voucherValidator, postingService),
		InvoiceHandler: handler.NewInvoiceHandler(postingService),
		PaymentHandler: handler.NewPaymentHandler(postingService),
		ReportHandler:  handler.NewReportHandler(trialBalance, balanceSheet, consistency),
		AccountHandler: handler.NewAccountHandler(accountQuery),
		AuditHandler:   handler.NewAuditHandler(auditRepo),
		HealthHandler:  handler.NewHealthHandler(pool, redisClient),

		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   time.Minute,
	})
}

// chart is the minimal chart of accounts the posting tests use. All
// accounts are active, posting-capable and USD unless a test says
// otherwise.
type chart struct {
	CompanyID string
	Bank      *domain.Account
	Debtors   *domain.Account
	Creditors *domain.Account
	Sales     *domain.Account
	Rent      *domain.Account
}

func seedChart(ctx context.Context, testDB *testutil.TestDB) *chart {
	companyID := testDB.CreateTestCompany(ctx, "Acme Trading Ltd", "USD")

	return &chart{
		CompanyID: companyID,
		Bank: testDB.CreateTestAccount(ctx, companyID, testutil.AccountSpec{
			Code:     "1100",
			Name:     "Cash at Bank",
			RootType: domain.RootAsset,
			Kind:     domain.KindBank,
			Category: domain.CategoryBank,
			Currency: "USD",
		}),
		Debtors: testDB.CreateTestAccount(ctx, companyID, testutil.AccountSpec{
			Code:     "1300",
			Name:     "Trade Debtors",
			RootType: domain.RootAsset,
			Kind:     domain.KindReceivable,
			Category: domain.CategoryReceivable,
			Currency: "USD",
		}),
		Creditors: testDB.CreateTestAccount(ctx, companyID, testutil.AccountSpec{
			Code:     "2100",
			Name:     "Trade Creditors",
			RootType: domain.RootLiability,
			Kind:     domain.KindPayable,
			Category: domain.CategoryPayable,
			Currency: "USD",
		}),
		Sales: testDB.CreateTestAccount(ctx, companyID, testutil.AccountSpec{
			Code:     "4100",
			Name:     "Sales Revenue",
			RootType: domain.RootRevenue,
			Kind:     domain.KindIncome,
			Currency: "USD",
		}),
		Rent: testDB.CreateTestAccount(ctx, companyID, testutil.AccountSpec{
			Code:     "5200",
			Name:     "Rent Expense",
			RootType: domain.RootExpense,
			Kind:     domain.KindExpense,
			Currency: "USD",
		}),
	}
}

// doJSON performs a request against the router with an optional JSON
// payload and returns the recorded response.
func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	r := httptest.NewRequest(method, path, body)
	if payload != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	return w
}

// decodeBody unmarshals a recorded response, failing with the raw body
// so a broken response is readable in the test output.
func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) *T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())

	return &out
}

// countVouchers reports how many voucher headers exist, cancelled ones
// included.
func countVouchers(ctx context.Context, t *testing.T, testDB *testutil.TestDB) int {
	t.Helper()

	var n int
	err := testDB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM vouchers").Scan(&n)
	require.NoError(t, err)

	return n
}

// findRow returns the trial balance row for an account code, or nil.
func findRow(tb *domain.TrialBalance, code string) *domain.TrialBalanceRow {
	for i := range tb.Rows {
		if tb.Rows[i].AccountCode == code {
			return &tb.Rows[i]
		}
	}

	return nil
}

// journalVoucher builds a balanced two-line journal entry debiting the
// bank and crediting sales, dated yesterday so it can never trip the
// future-date rule.
func journalVoucher(ch *chart, number string, amount int64) *domain.Voucher {
	amt := decimal.NewFromInt(amount)

	return &domain.Voucher{
		Type:        domain.VoucherJournalEntry,
		Number:      number,
		CompanyID:   ch.CompanyID,
		PostingDate: yesterday(),
		Currency:    "USD",
		Entries: []domain.VoucherEntry{
			{AccountID: ch.Bank.ID, Debit: amt},
			{AccountID: ch.Sales.ID, Credit: amt},
		},
		Context: domain.PostingContext{
			CompanyID: ch.CompanyID,
			UserID:    "u-accountant",
			Role:      domain.RoleAccountant,
		},
	}
}

func yesterday() time.Time {
	return time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
}

func dateParam(t time.Time) string {
	return t.Format("2006-01-02")
}
