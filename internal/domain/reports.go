package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTotal is an aggregated debit/credit sum for one account,
// produced by the ledger store.
type AccountTotal struct {
	AccountID string          `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// TrialBalanceRow aggregates one account over a reporting window.
// Opening covers everything before From, Period covers [From, To],
// Closing is their sum collapsed to a single side.
type TrialBalanceRow struct {
	AccountID     string          `json:"account_id"`
	AccountCode   string          `json:"account_code"`
	AccountName   string          `json:"account_name"`
	RootType      RootType        `json:"root_type"`
	OpeningDebit  decimal.Decimal `json:"opening_debit"`
	OpeningCredit decimal.Decimal `json:"opening_credit"`
	PeriodDebit   decimal.Decimal `json:"period_debit"`
	PeriodCredit  decimal.Decimal `json:"period_credit"`
	ClosingDebit  decimal.Decimal `json:"closing_debit"`
	ClosingCredit decimal.Decimal `json:"closing_credit"`
}

// OpeningNet is opening debit minus opening credit.
func (r *TrialBalanceRow) OpeningNet() decimal.Decimal {
	return r.OpeningDebit.Sub(r.OpeningCredit)
}

// PeriodNet is period debit minus period credit.
func (r *TrialBalanceRow) PeriodNet() decimal.Decimal {
	return r.PeriodDebit.Sub(r.PeriodCredit)
}

// ClosingNet is closing debit minus closing credit.
func (r *TrialBalanceRow) ClosingNet() decimal.Decimal {
	return r.ClosingDebit.Sub(r.ClosingCredit)
}

// TrialBalanceTotals sums every column across the report.
type TrialBalanceTotals struct {
	OpeningDebit  decimal.Decimal `json:"opening_debit"`
	OpeningCredit decimal.Decimal `json:"opening_credit"`
	PeriodDebit   decimal.Decimal `json:"period_debit"`
	PeriodCredit  decimal.Decimal `json:"period_credit"`
	ClosingDebit  decimal.Decimal `json:"closing_debit"`
	ClosingCredit decimal.Decimal `json:"closing_credit"`
}

// TrialBalance is the per-account aggregation for a company window.
type TrialBalance struct {
	CompanyID   string             `json:"company_id"`
	Currency    string             `json:"currency"`
	FromDate    time.Time          `json:"from_date"`
	ToDate      time.Time          `json:"to_date"`
	Rows        []TrialBalanceRow  `json:"rows"`
	Totals      TrialBalanceTotals `json:"totals"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// Reconciled reports whether every row satisfies opening + period =
// closing within BalanceTolerance.
func (tb *TrialBalance) Reconciled() bool {
	for i := range tb.Rows {
		r := &tb.Rows[i]
		expected := r.OpeningNet().Add(r.PeriodNet())
		if !WithinTolerance(expected, r.ClosingNet()) {
			return false
		}
	}

	return true
}

// BalanceSheetSection names a grouping on the statement.
type BalanceSheetSection string

const (
	SectionCurrentAssets         BalanceSheetSection = "current_assets"
	SectionNonCurrentAssets      BalanceSheetSection = "non_current_assets"
	SectionCurrentLiabilities    BalanceSheetSection = "current_liabilities"
	SectionNonCurrentLiabilities BalanceSheetSection = "non_current_liabilities"
	SectionEquity                BalanceSheetSection = "equity"
)

var categorySections = map[string]BalanceSheetSection{
	CategoryCash:             SectionCurrentAssets,
	CategoryBank:             SectionCurrentAssets,
	CategoryReceivable:       SectionCurrentAssets,
	CategoryInventory:        SectionCurrentAssets,
	CategoryPrepaidExpenses:  SectionCurrentAssets,
	CategoryFixedAsset:       SectionNonCurrentAssets,
	CategoryInvestment:       SectionNonCurrentAssets,
	CategoryIntangible:       SectionNonCurrentAssets,
	CategoryPayable:          SectionCurrentLiabilities,
	CategoryShortTermLoan:    SectionCurrentLiabilities,
	CategoryAccruedLiability: SectionCurrentLiabilities,
	CategoryTaxesPayable:     SectionCurrentLiabilities,
	CategoryLongTermLoan:     SectionNonCurrentLiabilities,
	CategoryShareCapital:     SectionEquity,
	CategoryRetainedEarnings: SectionEquity,
	CategoryReserves:         SectionEquity,
}

// SectionForCategory maps an account category to its statement
// section. The second return is false for categories that do not
// appear on the balance sheet.
func SectionForCategory(c string) (BalanceSheetSection, bool) {
	s, ok := categorySections[c]
	return s, ok
}

// BalanceSheetLine is one classified line on the statement. Asset
// lines carry debit-positive amounts, liability and equity lines
// credit-positive.
type BalanceSheetLine struct {
	Category    string          `json:"category"`
	AccountID   string          `json:"account_id,omitempty"`
	AccountCode string          `json:"account_code,omitempty"`
	Label       string          `json:"label"`
	Amount      decimal.Decimal `json:"amount"`
}

// BalanceSheetTotals carries the section and statement sums.
// Difference is total assets minus liabilities and equity, reported
// signed whether or not the sheet balances.
type BalanceSheetTotals struct {
	CurrentAssets         decimal.Decimal `json:"current_assets"`
	NonCurrentAssets      decimal.Decimal `json:"non_current_assets"`
	TotalAssets           decimal.Decimal `json:"total_assets"`
	CurrentLiabilities    decimal.Decimal `json:"current_liabilities"`
	NonCurrentLiabilities decimal.Decimal `json:"non_current_liabilities"`
	TotalLiabilities      decimal.Decimal `json:"total_liabilities"`
	RetainedEarnings      decimal.Decimal `json:"retained_earnings"`
	TotalEquity           decimal.Decimal `json:"total_equity"`
	LiabilitiesAndEquity  decimal.Decimal `json:"liabilities_and_equity"`
	Difference            decimal.Decimal `json:"difference"`
}

// BalanceSheet is the classified statement of position as of a date.
type BalanceSheet struct {
	CompanyID   string                                     `json:"company_id"`
	Currency    string                                     `json:"currency"`
	AsOf        time.Time                                  `json:"as_of"`
	Sections    map[BalanceSheetSection][]BalanceSheetLine `json:"sections"`
	Totals      BalanceSheetTotals                         `json:"totals"`
	GeneratedAt time.Time                                  `json:"generated_at"`
}

// IsBalanced reports assets = liabilities + equity within
// BalanceTolerance. It is always computed from Totals, never stored.
func (bs *BalanceSheet) IsBalanced() bool {
	return WithinTolerance(bs.Totals.TotalAssets, bs.Totals.LiabilitiesAndEquity)
}

// VoucherCheck is a per-voucher result from the consistency checker.
type VoucherCheck struct {
	VoucherType   VoucherType     `json:"voucher_type"`
	VoucherNumber string          `json:"voucher_number"`
	TotalDebit    decimal.Decimal `json:"total_debit"`
	TotalCredit   decimal.Decimal `json:"total_credit"`
	Difference    decimal.Decimal `json:"difference"`
}

// ConsistencyReport lists vouchers whose sides do not net to zero
// within BalanceTolerance.
type ConsistencyReport struct {
	CompanyID       string         `json:"company_id"`
	VouchersChecked int            `json:"vouchers_checked"`
	Unbalanced      []VoucherCheck `json:"unbalanced"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// Clean reports whether no unbalanced vouchers were found.
func (cr *ConsistencyReport) Clean() bool {
	return len(cr.Unbalanced) == 0
}
