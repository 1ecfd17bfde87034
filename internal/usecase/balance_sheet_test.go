package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/usecase"
	"github.com/counterbook/counterbook/internal/usecase/mocks"
)

type bsFixture struct {
	dir    *mocks.MockAccountDirectory
	ledger *mocks.MockLedgerQuery
	uc     *usecase.BalanceSheetUseCase
}

func newBalanceSheetFixture() *bsFixture {
	dir := mocks.NewMockAccountDirectory()
	dir.Seed(
		&domain.Account{ID: "acc-cash", CompanyID: "co-1", Code: "1100", Name: "Cash", RootType: domain.RootAsset, Category: domain.CategoryCash, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-fixed", CompanyID: "co-1", Code: "1500", Name: "Equipment", RootType: domain.RootAsset, Category: domain.CategoryFixedAsset, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-ap", CompanyID: "co-1", Code: "2100", Name: "Accounts Payable", RootType: domain.RootLiability, Category: domain.CategoryPayable, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-loan", CompanyID: "co-1", Code: "2500", Name: "Term Loan", RootType: domain.RootLiability, Category: domain.CategoryLongTermLoan, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-cap", CompanyID: "co-1", Code: "3100", Name: "Share Capital", RootType: domain.RootEquity, Category: domain.CategoryShareCapital, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-rev", CompanyID: "co-1", Code: "4100", Name: "Sales", RootType: domain.RootRevenue, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-exp", CompanyID: "co-1", Code: "5100", Name: "Rent", RootType: domain.RootExpense, Currency: "USD", IsActive: true},
		&domain.Account{ID: "acc-misc", CompanyID: "co-1", Code: "1900", Name: "Sundry Asset", RootType: domain.RootAsset, Category: "unclassified", Currency: "USD", IsActive: true},
	)

	ledger := mocks.NewMockLedgerQuery()
	tb := usecase.NewTrialBalanceUseCase(dir, mocks.NewMockCompanyFacts(), ledger, nil, 0)

	return &bsFixture{
		dir:    dir,
		ledger: ledger,
		uc:     usecase.NewBalanceSheetUseCase(tb, dir, nil, 0),
	}
}

func bsInput() usecase.BalanceSheetInput {
	return usecase.BalanceSheetInput{
		CompanyID: "co-1",
		AsOf:      time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func lineFor(t *testing.T, bs *domain.BalanceSheet, section domain.BalanceSheetSection, accountID string) domain.BalanceSheetLine {
	t.Helper()
	for _, line := range bs.Sections[section] {
		if line.AccountID == accountID {
			return line
		}
	}
	t.Fatalf("no line for account %s in section %s", accountID, section)
	return domain.BalanceSheetLine{}
}

func TestBalanceSheetUseCase_Compute(t *testing.T) {
	fx := newBalanceSheetFixture()
	fx.ledger.SeedTotals(
		[]domain.AccountTotal{
			{AccountID: "acc-cash", Debit: d("800.00")},
			{AccountID: "acc-fixed", Debit: d("700.00")},
			{AccountID: "acc-ap", Credit: d("300.00")},
			{AccountID: "acc-loan", Credit: d("200.00")},
			{AccountID: "acc-cap", Credit: d("500.00")},
			{AccountID: "acc-rev", Credit: d("900.00")},
			{AccountID: "acc-exp", Debit: d("400.00")},
		},
		nil,
	)

	bs, err := fx.uc.Compute(context.Background(), bsInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cash := lineFor(t, bs, domain.SectionCurrentAssets, "acc-cash"); !cash.Amount.Equal(d("800.00")) {
		t.Errorf("expected cash 800.00, got %s", cash.Amount)
	}
	if fixed := lineFor(t, bs, domain.SectionNonCurrentAssets, "acc-fixed"); !fixed.Amount.Equal(d("700.00")) {
		t.Errorf("expected equipment 700.00, got %s", fixed.Amount)
	}
	if ap := lineFor(t, bs, domain.SectionCurrentLiabilities, "acc-ap"); !ap.Amount.Equal(d("300.00")) {
		t.Errorf("expected payables 300.00, got %s", ap.Amount)
	}
	if loan := lineFor(t, bs, domain.SectionNonCurrentLiabilities, "acc-loan"); !loan.Amount.Equal(d("200.00")) {
		t.Errorf("expected loan 200.00, got %s", loan.Amount)
	}
	if capital := lineFor(t, bs, domain.SectionEquity, "acc-cap"); !capital.Amount.Equal(d("500.00")) {
		t.Errorf("expected share capital 500.00, got %s", capital.Amount)
	}

	// Revenue minus expense lands as a synthetic equity line.
	var retained *domain.BalanceSheetLine
	for i := range bs.Sections[domain.SectionEquity] {
		if bs.Sections[domain.SectionEquity][i].Category == domain.CategoryRetainedEarnings {
			retained = &bs.Sections[domain.SectionEquity][i]
		}
	}
	if retained == nil {
		t.Fatal("expected a retained earnings line")
	}
	if retained.Label != "Retained Earnings" || retained.AccountID != "" {
		t.Errorf("unexpected retained earnings line %+v", retained)
	}
	if !retained.Amount.Equal(d("500.00")) {
		t.Errorf("expected retained earnings 500.00, got %s", retained.Amount)
	}

	totals := bs.Totals
	if !totals.CurrentAssets.Equal(d("800.00")) || !totals.NonCurrentAssets.Equal(d("700.00")) || !totals.TotalAssets.Equal(d("1500.00")) {
		t.Errorf("unexpected asset totals %+v", totals)
	}
	if !totals.CurrentLiabilities.Equal(d("300.00")) || !totals.NonCurrentLiabilities.Equal(d("200.00")) || !totals.TotalLiabilities.Equal(d("500.00")) {
		t.Errorf("unexpected liability totals %+v", totals)
	}
	if !totals.TotalEquity.Equal(d("1000.00")) || !totals.LiabilitiesAndEquity.Equal(d("1500.00")) {
		t.Errorf("unexpected equity totals %+v", totals)
	}
	if !totals.Difference.IsZero() {
		t.Errorf("expected zero difference, got %s", totals.Difference)
	}
	if !bs.IsBalanced() {
		t.Error("expected a balanced sheet")
	}
}

func TestBalanceSheetUseCase_Compute_ReportsSignedDrift(t *testing.T) {
	fx := newBalanceSheetFixture()

	// Capital is missing, so assets exceed liabilities plus equity.
	fx.ledger.SeedTotals(
		[]domain.AccountTotal{
			{AccountID: "acc-cash", Debit: d("800.00")},
			{AccountID: "acc-fixed", Debit: d("700.00")},
			{AccountID: "acc-ap", Credit: d("300.00")},
			{AccountID: "acc-loan", Credit: d("200.00")},
			{AccountID: "acc-rev", Credit: d("900.00")},
			{AccountID: "acc-exp", Debit: d("400.00")},
		},
		nil,
	)

	bs, err := fx.uc.Compute(context.Background(), bsInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bs.IsBalanced() {
		t.Error("expected an unbalanced sheet")
	}
	if !bs.Totals.Difference.Equal(d("500.00")) {
		t.Errorf("expected signed difference 500.00, got %s", bs.Totals.Difference)
	}
}

func TestBalanceSheetUseCase_Compute_FallbackClassification(t *testing.T) {
	fx := newBalanceSheetFixture()

	// An asset category outside the taxonomy lands in non-current assets.
	fx.ledger.SeedTotals(
		[]domain.AccountTotal{
			{AccountID: "acc-misc", Debit: d("120.00")},
			{AccountID: "acc-cap", Credit: d("120.00")},
		},
		nil,
	)

	bs, err := fx.uc.Compute(context.Background(), bsInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if misc := lineFor(t, bs, domain.SectionNonCurrentAssets, "acc-misc"); !misc.Amount.Equal(d("120.00")) {
		t.Errorf("expected sundry asset 120.00, got %s", misc.Amount)
	}
	if !bs.IsBalanced() {
		t.Errorf("expected a balanced sheet, difference %s", bs.Totals.Difference)
	}
}

func TestBalanceSheetUseCase_Compute_PeriodActivityCounts(t *testing.T) {
	fx := newBalanceSheetFixture()

	// Entries posted on the as-of day itself belong to the closing figure.
	fx.ledger.SeedTotals(
		[]domain.AccountTotal{
			{AccountID: "acc-cash", Debit: d("100.00")},
			{AccountID: "acc-cap", Credit: d("100.00")},
		},
		[]domain.AccountTotal{
			{AccountID: "acc-cash", Debit: d("50.00")},
			{AccountID: "acc-rev", Credit: d("50.00")},
		},
	)

	bs, err := fx.uc.Compute(context.Background(), bsInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cash := lineFor(t, bs, domain.SectionCurrentAssets, "acc-cash"); !cash.Amount.Equal(d("150.00")) {
		t.Errorf("expected cash 150.00, got %s", cash.Amount)
	}
	if !bs.Totals.RetainedEarnings.Equal(d("50.00")) {
		t.Errorf("expected retained earnings 50.00, got %s", bs.Totals.RetainedEarnings)
	}
	if !bs.IsBalanced() {
		t.Errorf("expected a balanced sheet, difference %s", bs.Totals.Difference)
	}
}

func TestBalanceSheetUseCase_Compute_InputValidation(t *testing.T) {
	fx := newBalanceSheetFixture()

	input := bsInput()
	input.CompanyID = ""

	if _, err := fx.uc.Compute(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBalanceSheetUseCase_Compute_DirectoryError(t *testing.T) {
	fx := newBalanceSheetFixture()
	fx.ledger.SeedTotals(
		[]domain.AccountTotal{{AccountID: "acc-cash", Debit: d("10.00")}},
		nil,
	)
	fx.dir.GetAccountsFunc = func(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
		return nil, errors.New("directory unavailable")
	}

	if _, err := fx.uc.Compute(context.Background(), bsInput()); err == nil {
		t.Fatal("expected error, got nil")
	}
}
