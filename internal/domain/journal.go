package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the absolute tolerance for all balance comparisons.
var BalanceTolerance = decimal.RequireFromString("0.01")

// LedgerLine is one side of a proposed transaction. Exactly one of Debit
// and Credit must be positive. Immutable once constructed.
type LedgerLine struct {
	AccountID   string          `json:"account_id"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	Reference   string          `json:"reference,omitempty"`
}

// HasDebit reports whether the line carries a positive debit.
func (l LedgerLine) HasDebit() bool {
	return l.Debit.IsPositive()
}

// HasCredit reports whether the line carries a positive credit.
func (l LedgerLine) HasCredit() bool {
	return l.Credit.IsPositive()
}

// WellFormed reports whether exactly one side is positive and neither
// side is negative.
func (l LedgerLine) WellFormed() bool {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return false
	}

	return l.HasDebit() != l.HasCredit()
}

// PostingContext identifies who is posting, where.
type PostingContext struct {
	TenantID  string `json:"tenant_id,omitempty"`
	CompanyID string `json:"company_id"`
	UserID    string `json:"user_id"`
	Role      Role   `json:"role"`
}

// Journal is a proposed, ordered set of ledger lines to post together.
type Journal struct {
	Number      string         `json:"number"`
	PostingDate time.Time      `json:"posting_date"`
	Currency    string         `json:"currency"`
	Lines       []LedgerLine   `json:"lines"`
	Context     PostingContext `json:"context"`
}

// TotalDebit sums the debit side of all lines.
func (j *Journal) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Debit)
	}

	return total
}

// TotalCredit sums the credit side of all lines.
func (j *Journal) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Credit)
	}

	return total
}

// Difference returns total debit minus total credit.
func (j *Journal) Difference() decimal.Decimal {
	return j.TotalDebit().Sub(j.TotalCredit())
}

// Balanced reports whether the journal balances within BalanceTolerance.
func (j *Journal) Balanced() bool {
	return j.Difference().Abs().LessThanOrEqual(BalanceTolerance)
}

// AccountIDs returns the distinct account ids referenced by the lines,
// in first-appearance order.
func (j *Journal) AccountIDs() []string {
	seen := make(map[string]bool, len(j.Lines))

	var ids []string
	for _, l := range j.Lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}

	return ids
}

// WithinTolerance reports whether |a - b| <= BalanceTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(BalanceTolerance)
}
