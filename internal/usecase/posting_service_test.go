package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/usecase"
	"github.com/counterbook/counterbook/internal/usecase/mocks"
)

type serviceFixture struct {
	dir       *mocks.MockAccountDirectory
	companies *mocks.MockCompanyFacts
	ledger    *mocks.MockLedgerQuery
	authz     *mocks.MockAuthorizationPolicy
	audit     *mocks.MockAuditRepository
	txMgr     *mocks.MockTransactionManager
	writer    *mocks.MockLedgerWriter
	svc       *usecase.PostingService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	ctrl := gomock.NewController(t)

	dir := mocks.NewMockAccountDirectory()
	dir.Seed(
		&domain.Account{ID: "acc-cash", CompanyID: "co-1", Code: "1100", RootType: domain.RootAsset, Kind: domain.KindCash, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-bank", CompanyID: "co-1", Code: "1110", RootType: domain.RootAsset, Kind: domain.KindBank, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-ar", CompanyID: "co-1", Code: "1200", RootType: domain.RootAsset, Kind: domain.KindReceivable, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-ap", CompanyID: "co-1", Code: "2100", RootType: domain.RootLiability, Kind: domain.KindPayable, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-rev", CompanyID: "co-1", Code: "4100", RootType: domain.RootRevenue, Kind: domain.KindIncome, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-exp", CompanyID: "co-1", Code: "5100", RootType: domain.RootExpense, Kind: domain.KindExpense, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-charges", CompanyID: "co-1", Code: "5200", RootType: domain.RootExpense, Kind: domain.KindExpense, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-tax", CompanyID: "co-1", Code: "2300", RootType: domain.RootLiability, Kind: domain.KindTax, Currency: "USD", IsActive: true},
	)

	companies := mocks.NewMockCompanyFacts()
	ledger := mocks.NewMockLedgerQuery()
	authz := mocks.NewMockAuthorizationPolicy()
	audit := mocks.NewMockAuditRepository()
	txMgr := mocks.NewMockTransactionManager()
	writer := mocks.NewMockLedgerWriter(ctrl)

	jv := usecase.NewJournalValidator(dir, authz, 0)
	vv := usecase.NewVoucherValidator(jv, dir, companies, ledger, authz, 0)
	ip := usecase.NewInvoicePosting(jv, companies)
	pp := usecase.NewPaymentPosting(jv, dir, companies, 0)

	svc := usecase.NewPostingService(txMgr, vv, ip, pp, writer, ledger, audit, authz, mocks.NewMockIDGenerator())

	return &serviceFixture{
		dir:       dir,
		companies: companies,
		ledger:    ledger,
		authz:     authz,
		audit:     audit,
		txMgr:     txMgr,
		writer:    writer,
		svc:       svc,
	}
}

func submittableVoucher() *domain.Voucher {
	return &domain.Voucher{
		Type:        domain.VoucherJournalEntry,
		Number:      "JV-100",
		CompanyID:   "co-1",
		PostingDate: time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		Currency:    "USD",
		Entries: []domain.VoucherEntry{
			{AccountID: "acc-cash", Debit: d("500.00"), Remarks: "cash in"},
			{AccountID: "acc-rev", Credit: d("500.00"), CostCenter: "cc-main"},
		},
		Context: domain.PostingContext{
			CompanyID: "co-1",
			UserID:    "user-1",
			Role:      domain.RoleAccountant,
		},
	}
}

func TestPostingService_SubmitVoucher(t *testing.T) {
	fx := newServiceFixture(t)

	var gotRecord *domain.VoucherRecord
	var gotEntries []*domain.LedgerEntry
	fx.writer.EXPECT().
		InsertVoucher(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, tx usecase.Transaction, record *domain.VoucherRecord, entries []*domain.LedgerEntry) error {
			gotRecord = record
			gotEntries = entries
			return nil
		})

	result, err := fx.svc.SubmitVoucher(context.Background(), submittableVoucher())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Posted {
		t.Fatalf("expected voucher to post, validation %+v", result.Validation)
	}
	if result.Record == nil {
		t.Fatal("expected a voucher record")
	}

	if gotRecord.Number != "JV-100" || gotRecord.Type != domain.VoucherJournalEntry {
		t.Errorf("unexpected record %+v", gotRecord)
	}
	if gotRecord.FiscalYear != 2026 {
		t.Errorf("expected fiscal year 2026, got %d", gotRecord.FiscalYear)
	}
	if !gotRecord.TotalDebit.Equal(d("500.00")) || !gotRecord.TotalCredit.Equal(d("500.00")) {
		t.Errorf("unexpected totals %s / %s", gotRecord.TotalDebit, gotRecord.TotalCredit)
	}

	if len(gotEntries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(gotEntries))
	}
	for _, e := range gotEntries {
		if e.VoucherNumber != "JV-100" || e.VoucherType != domain.VoucherJournalEntry {
			t.Errorf("entry not tied to its voucher: %+v", e)
		}
		if e.IsCancelled {
			t.Error("fresh entries must not be cancelled")
		}
		if e.FiscalYear != 2026 {
			t.Errorf("expected fiscal year 2026, got %d", e.FiscalYear)
		}
	}
	if gotEntries[1].CostCenter != "cc-main" {
		t.Errorf("expected cost center carried onto the entry, got %q", gotEntries[1].CostCenter)
	}

	logs := fx.audit.Logs()
	if len(logs) != 1 {
		t.Fatalf("expected 1 audit log, got %d", len(logs))
	}
	if logs[0].Action != string(domain.AuditActionVoucherSubmit) || logs[0].ResourceType != "voucher" {
		t.Errorf("unexpected audit log %+v", logs[0])
	}
	if logs[0].AfterState == nil {
		t.Error("expected the posted record in the audit state")
	}
}

func TestPostingService_SubmitVoucher_ValidationFailure(t *testing.T) {
	fx := newServiceFixture(t)

	vch := submittableVoucher()
	vch.Entries[1].Credit = d("400.00")

	result, err := fx.svc.SubmitVoucher(context.Background(), vch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Posted {
		t.Fatal("expected voucher not to post")
	}
	if result.Validation == nil || result.Validation.Valid {
		t.Fatal("expected validation errors")
	}
	if !result.Validation.HasCode(domain.CodeUnbalancedJournal) {
		t.Errorf("expected %s, got %v", domain.CodeUnbalancedJournal, result.Validation.Errors)
	}
	if len(fx.audit.Logs()) != 0 {
		t.Error("rejected vouchers must not be audited as submitted")
	}
}

func TestPostingService_SubmitVoucher_GeneratesNumber(t *testing.T) {
	fx := newServiceFixture(t)

	var gotRecord *domain.VoucherRecord
	fx.writer.EXPECT().
		InsertVoucher(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, tx usecase.Transaction, record *domain.VoucherRecord, entries []*domain.LedgerEntry) error {
			gotRecord = record
			return nil
		})

	vch := submittableVoucher()
	vch.Number = ""

	result, err := fx.svc.SubmitVoucher(context.Background(), vch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Posted {
		t.Fatalf("expected voucher to post, validation %+v", result.Validation)
	}
	if !strings.HasPrefix(gotRecord.Number, "JV-") {
		t.Errorf("expected a generated JV number, got %q", gotRecord.Number)
	}
	if result.Record.Number != gotRecord.Number {
		t.Errorf("result record must carry the generated number")
	}
}

func TestPostingService_SubmitVoucher_StorageConflict(t *testing.T) {
	fx := newServiceFixture(t)

	fx.writer.EXPECT().
		InsertVoucher(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ErrDuplicateVoucher)

	_, err := fx.svc.SubmitVoucher(context.Background(), submittableVoucher())
	if !errors.Is(err, domain.ErrDuplicateVoucher) {
		t.Fatalf("expected ErrDuplicateVoucher, got %v", err)
	}
}

func TestPostingService_SubmitVoucher_Escalation(t *testing.T) {
	fx := newServiceFixture(t)
	fx.authz.CheckSegregationOfDutiesFunc = func(ctx context.Context, action domain.Action, role domain.Role) (domain.SoDDecision, error) {
		return domain.SoDDecision{
			Allowed:          true,
			RequiresApproval: true,
			ApproverRoles:    []domain.Role{domain.RoleManager},
		}, nil
	}

	fx.writer.EXPECT().
		InsertVoucher(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	result, err := fx.svc.SubmitVoucher(context.Background(), submittableVoucher())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Posted {
		t.Fatalf("expected voucher to post, validation %+v", result.Validation)
	}
	if !result.RequiresApproval || len(result.ApproverRoles) != 1 {
		t.Errorf("expected approval escalation, got %+v", result)
	}
}

func TestPostingService_SubmitVoucher_AuditFailureRollsBack(t *testing.T) {
	fx := newServiceFixture(t)

	var rolledBack, committed bool
	fx.txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return &mocks.MockTransaction{
			CommitFunc:   func(ctx context.Context) error { committed = true; return nil },
			RollbackFunc: func(ctx context.Context) error { rolledBack = true; return nil },
		}, nil
	}
	fx.audit.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
		return errors.New("audit store down")
	}

	fx.writer.EXPECT().
		InsertVoucher(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	if _, err := fx.svc.SubmitVoucher(context.Background(), submittableVoucher()); err == nil {
		t.Fatal("expected error, got nil")
	}

	if committed {
		t.Error("transaction must not commit after an audit failure")
	}
	if !rolledBack {
		t.Error("transaction must roll back after an audit failure")
	}
}

func TestPostingService_CancelVoucher(t *testing.T) {
	fx := newServiceFixture(t)
	fx.ledger.SeedVoucher(&domain.VoucherRecord{
		ID:        "v-1",
		CompanyID: "co-1",
		Type:      domain.VoucherJournalEntry,
		Number:    "JV-100",
	})

	fx.writer.EXPECT().
		CancelVoucher(gomock.Any(), gomock.Any(), "co-1", domain.VoucherJournalEntry, "JV-100", "mgr-1", gomock.Any()).
		Return(nil)

	pctx := domain.PostingContext{CompanyID: "co-1", UserID: "mgr-1", Role: domain.RoleManager}

	record, err := fx.svc.CancelVoucher(context.Background(), pctx, domain.VoucherJournalEntry, "JV-100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !record.IsCancelled || record.CancelledBy != "mgr-1" || record.CancelledAt == nil {
		t.Errorf("expected a cancelled record, got %+v", record)
	}

	logs := fx.audit.Logs()
	if len(logs) != 1 || logs[0].Action != string(domain.AuditActionVoucherCancel) {
		t.Fatalf("expected a cancel audit log, got %+v", logs)
	}
	if logs[0].BeforeState == nil {
		t.Error("expected the prior record in the audit state")
	}
}

func TestPostingService_CancelVoucher_Forbidden(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAccountant, domain.RoleAuditor} {
		t.Run(string(role), func(t *testing.T) {
			fx := newServiceFixture(t)
			fx.ledger.SeedVoucher(&domain.VoucherRecord{
				ID:        "v-1",
				CompanyID: "co-1",
				Type:      domain.VoucherJournalEntry,
				Number:    "JV-100",
			})

			pctx := domain.PostingContext{CompanyID: "co-1", UserID: "user-1", Role: role}

			_, err := fx.svc.CancelVoucher(context.Background(), pctx, domain.VoucherJournalEntry, "JV-100")
			if !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestPostingService_CancelVoucher_AlreadyCancelled(t *testing.T) {
	fx := newServiceFixture(t)
	fx.ledger.SeedVoucher(&domain.VoucherRecord{
		ID:          "v-1",
		CompanyID:   "co-1",
		Type:        domain.VoucherJournalEntry,
		Number:      "JV-100",
		IsCancelled: true,
	})

	pctx := domain.PostingContext{CompanyID: "co-1", UserID: "mgr-1", Role: domain.RoleManager}

	_, err := fx.svc.CancelVoucher(context.Background(), pctx, domain.VoucherJournalEntry, "JV-100")
	if !errors.Is(err, domain.ErrVoucherCancelled) {
		t.Fatalf("expected ErrVoucherCancelled, got %v", err)
	}
}

func TestPostingService_CancelVoucher_NotFound(t *testing.T) {
	fx := newServiceFixture(t)

	pctx := domain.PostingContext{CompanyID: "co-1", UserID: "mgr-1", Role: domain.RoleManager}

	_, err := fx.svc.CancelVoucher(context.Background(), pctx, domain.VoucherJournalEntry, "JV-404")
	if !errors.Is(err, domain.ErrVoucherNotFound) {
		t.Fatalf("expected ErrVoucherNotFound, got %v", err)
	}
}

func TestPostingService_PostInvoice(t *testing.T) {
	fx := newServiceFixture(t)

	var gotRecord *domain.VoucherRecord
	var gotEntries []*domain.LedgerEntry
	fx.writer.EXPECT().
		InsertVoucher(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, tx usecase.Transaction, record *domain.VoucherRecord, entries []*domain.LedgerEntry) error {
			gotRecord = record
			gotEntries = entries
			return nil
		})

	inv := &domain.Invoice{
		Kind:             domain.InvoiceSales,
		Number:           "SINV-001",
		CompanyID:        "co-1",
		PartyType:        domain.PartyCustomer,
		PartyID:          "cust-1",
		PostingDate:      time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		Currency:         "USD",
		ExchangeRate:     d("1"),
		ControlAccountID: "acc-ar",
		Lines: []domain.InvoiceLine{
			{AccountID: "acc-rev", Quantity: d("2"), UnitPrice: d("50"), Amount: d("100"), TaxRate: d("0.06"), TaxAmount: d("6"), TaxAccountID: "acc-tax", CostCenter: "cc-main"},
		},
		Context: domain.PostingContext{CompanyID: "co-1", UserID: "user-1", Role: domain.RoleAccountant},
	}

	result, err := fx.svc.PostInvoice(context.Background(), inv, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Build.Success {
		t.Fatalf("expected build success, got %s: %s", result.Build.Code, result.Build.Message)
	}
	if result.Submit == nil || !result.Submit.Posted {
		t.Fatalf("expected voucher to post, got %+v", result.Submit)
	}

	if gotRecord.Type != domain.VoucherSalesInvoice {
		t.Errorf("expected a sales invoice voucher, got %s", gotRecord.Type)
	}
	if gotRecord.PartyID != "cust-1" || gotRecord.PartyType != domain.PartyCustomer {
		t.Errorf("expected the customer on the record, got %+v", gotRecord)
	}

	if len(gotEntries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(gotEntries))
	}
	if gotEntries[0].AccountID != "acc-ar" || gotEntries[0].PartyID != "cust-1" {
		t.Errorf("expected the control entry to carry the party, got %+v", gotEntries[0])
	}
	if gotEntries[1].AccountID != "acc-rev" || gotEntries[1].CostCenter != "cc-main" {
		t.Errorf("expected the revenue entry to carry its cost center, got %+v", gotEntries[1])
	}
}

func TestPostingService_PostInvoice_Preview(t *testing.T) {
	fx := newServiceFixture(t)

	inv := &domain.Invoice{
		Kind:             domain.InvoiceSales,
		Number:           "SINV-002",
		CompanyID:        "co-1",
		PartyType:        domain.PartyCustomer,
		PartyID:          "cust-1",
		PostingDate:      time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		Currency:         "USD",
		ExchangeRate:     d("1"),
		ControlAccountID: "acc-ar",
		Lines: []domain.InvoiceLine{
			{AccountID: "acc-rev", Quantity: d("1"), UnitPrice: d("100"), Amount: d("100"), CostCenter: "cc-main"},
		},
		Context: domain.PostingContext{CompanyID: "co-1", UserID: "user-1", Role: domain.RoleAccountant},
	}

	result, err := fx.svc.PostInvoice(context.Background(), inv, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Build.Success {
		t.Fatalf("expected build success, got %s", result.Build.Code)
	}
	if result.Submit != nil {
		t.Error("a preview must not submit")
	}
}

func TestPostingService_PostInvoice_BuildFailure(t *testing.T) {
	fx := newServiceFixture(t)

	inv := &domain.Invoice{
		Kind:             domain.InvoiceSales,
		Number:           "SINV-003",
		CompanyID:        "co-1",
		PartyType:        domain.PartyCustomer,
		PartyID:          "cust-1",
		PostingDate:      time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		Currency:         "USD",
		ExchangeRate:     d("1"),
		ControlAccountID: "acc-ar",
		Lines: []domain.InvoiceLine{
			{AccountID: "acc-rev", Quantity: d("2"), UnitPrice: d("50"), Amount: d("90")},
		},
		Context: domain.PostingContext{CompanyID: "co-1", UserID: "user-1", Role: domain.RoleAccountant},
	}

	result, err := fx.svc.PostInvoice(context.Background(), inv, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Build.Success {
		t.Fatal("expected build failure")
	}
	if result.Build.Code != domain.CodeInvalidAmounts {
		t.Errorf("expected %s, got %s", domain.CodeInvalidAmounts, result.Build.Code)
	}
	if result.Submit != nil {
		t.Error("a failed build must not submit")
	}
}

func TestPostingService_PostPayment(t *testing.T) {
	fx := newServiceFixture(t)
	fx.ledger.SeedVoucher(&domain.VoucherRecord{
		ID:        "v-pinv",
		CompanyID: "co-1",
		Type:      domain.VoucherPurchaseInvoice,
		Number:    "PINV-010",
		PartyType: domain.PartySupplier,
		PartyID:   "supp-1",
	})

	var gotEntries []*domain.LedgerEntry
	fx.writer.EXPECT().
		InsertVoucher(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, tx usecase.Transaction, record *domain.VoucherRecord, entries []*domain.LedgerEntry) error {
			gotEntries = entries
			return nil
		})

	pay := &domain.Payment{
		Number:               "PAY-001",
		CompanyID:            "co-1",
		PostingDate:          time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		BankAccountID:        "acc-bank",
		Method:               domain.MethodBankTransfer,
		Currency:             "USD",
		ExchangeRate:         d("1"),
		Amount:               d("550.00"),
		BankCharges:          d("50.00"),
		BankChargesAccountID: "acc-charges",
		CostCenter:           "cc-ops",
		Allocations: []domain.PaymentAllocation{
			{
				Kind:          domain.AllocationBill,
				VoucherType:   domain.VoucherPurchaseInvoice,
				VoucherNumber: "PINV-010",
				AccountID:     "acc-ap",
				PartyType:     domain.PartySupplier,
				PartyID:       "supp-1",
				Amount:        d("500.00"),
			},
		},
		Context: domain.PostingContext{CompanyID: "co-1", UserID: "user-1", Role: domain.RoleAccountant},
	}

	result, err := fx.svc.PostPayment(context.Background(), pay, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Build.Success {
		t.Fatalf("expected build success, got %s: %s", result.Build.Code, result.Build.Message)
	}
	if result.Submit == nil || !result.Submit.Posted {
		t.Fatalf("expected voucher to post, got %+v", result.Submit)
	}

	if len(gotEntries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(gotEntries))
	}

	payable := gotEntries[0]
	if payable.AccountID != "acc-ap" || payable.PartyID != "supp-1" {
		t.Errorf("expected the payable entry to carry the supplier, got %+v", payable)
	}
	if payable.AgainstType != domain.VoucherPurchaseInvoice || payable.AgainstNumber != "PINV-010" {
		t.Errorf("expected the payable entry to settle PINV-010, got %+v", payable)
	}

	charges := gotEntries[2]
	if charges.AccountID != "acc-charges" || charges.CostCenter != "cc-ops" {
		t.Errorf("expected the charges entry to carry the payment cost center, got %+v", charges)
	}
}

func TestPostingService_SubmitVoucher_BeginError(t *testing.T) {
	fx := newServiceFixture(t)
	fx.txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return nil, errors.New("pool exhausted")
	}

	if _, err := fx.svc.SubmitVoucher(context.Background(), submittableVoucher()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestPostingService_SubmitVoucher_CommitError(t *testing.T) {
	fx := newServiceFixture(t)
	fx.txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return &mocks.MockTransaction{
			CommitFunc: func(ctx context.Context) error { return errors.New("commit failed") },
		}, nil
	}

	fx.writer.EXPECT().
		InsertVoucher(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	if _, err := fx.svc.SubmitVoucher(context.Background(), submittableVoucher()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestPostingService_SubmitVoucher_RetriesTransaction(t *testing.T) {
	fx := newServiceFixture(t)

	retrier := mocks.NewMockRetrier()
	retrier.RetryFunc = func(ctx context.Context, operation func() error) error {
		// Replay the transaction once, the way a real retrier would
		// after a serialization failure.
		if err := operation(); err != nil {
			return operation()
		}
		return nil
	}
	fx.svc.WithRetrier(retrier)

	attempts := 0
	fx.writer.EXPECT().
		InsertVoucher(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, tx usecase.Transaction, record *domain.VoucherRecord, entries []*domain.LedgerEntry) error {
			attempts++
			if attempts == 1 {
				return errors.New("deadlock detected")
			}
			return nil
		}).
		Times(2)

	result, err := fx.svc.SubmitVoucher(context.Background(), submittableVoucher())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Posted {
		t.Fatal("expected voucher to post on the second attempt")
	}

	if retrier.Calls != 1 {
		t.Fatalf("expected the retrier to wrap persistence once, got %d calls", retrier.Calls)
	}

	if attempts != 2 {
		t.Fatalf("expected two insert attempts, got %d", attempts)
	}
}
