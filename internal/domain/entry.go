package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a posted ledger row. Once written it is immutable;
// cancellation flags rows rather than deleting them.
type LedgerEntry struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	AccountID     string          `json:"account_id"`
	VoucherType   VoucherType     `json:"voucher_type"`
	VoucherNumber string          `json:"voucher_number"`
	PostingDate   time.Time       `json:"posting_date"`
	FiscalYear    int             `json:"fiscal_year"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Currency      string          `json:"currency"`
	PartyType     PartyType       `json:"party_type,omitempty"`
	PartyID       string          `json:"party_id,omitempty"`
	CostCenter    string          `json:"cost_center,omitempty"`
	Project       string          `json:"project,omitempty"`
	AgainstType   VoucherType     `json:"against_voucher_type,omitempty"`
	AgainstNumber string          `json:"against_voucher_number,omitempty"`
	Remarks       string          `json:"remarks,omitempty"`
	IsCancelled   bool            `json:"is_cancelled"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Net returns debit minus credit for the entry.
func (e *LedgerEntry) Net() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// VoucherRecord is the posted voucher header. The (company, type,
// number) triple is unique among non-cancelled vouchers.
type VoucherRecord struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Type        VoucherType     `json:"type"`
	Number      string          `json:"number"`
	PostingDate time.Time       `json:"posting_date"`
	FiscalYear  int             `json:"fiscal_year"`
	Currency    string          `json:"currency"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	PartyType   PartyType       `json:"party_type,omitempty"`
	PartyID     string          `json:"party_id,omitempty"`
	IsCancelled bool            `json:"is_cancelled"`
	CancelledBy string          `json:"cancelled_by,omitempty"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FiscalYearOf derives the fiscal year from a posting date. Fiscal
// years follow the calendar year.
func FiscalYearOf(postingDate time.Time) int {
	return postingDate.Year()
}
