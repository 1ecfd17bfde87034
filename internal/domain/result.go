package domain

import (
	"github.com/shopspring/decimal"
)

// Severity grades a validation finding.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Finding codes. Structural codes short-circuit; the rest accumulate.
const (
	CodeNoLines            = "NO_LINES"
	CodeTooManyLines       = "TOO_MANY_LINES"
	CodeInvalidLineAmounts = "INVALID_LINE_AMOUNTS"
	CodeZeroAmounts        = "ZERO_AMOUNTS"
	CodeUnbalancedJournal  = "UNBALANCED_JOURNAL"
	CodeInvalidCurrency    = "INVALID_CURRENCY"
	CodeFutureDate         = "FUTURE_DATE"
	CodeNotAuthorized      = "NOT_AUTHORIZED"
	CodeDescriptionTooLong = "DESCRIPTION_TOO_LONG"

	CodeAccountNotFound  = "ACCOUNT_NOT_FOUND"
	CodeAccountInactive  = "ACCOUNT_INACTIVE"
	CodeAccountFrozen    = "ACCOUNT_FROZEN"
	CodeGroupAccountTxn  = "GROUP_ACCOUNT_TRANSACTION"
	CodeGroupAccount     = "GROUP_ACCOUNT_SELECTED"
	CodeCurrencyMismatch = "CURRENCY_MISMATCH"
	CodeBalanceSign      = "BALANCE_SIGN"

	CodeMinEntries              = "MIN_ENTRIES"
	CodeDuplicateVoucher        = "DUPLICATE_VOUCHER"
	CodeClosedPeriod            = "CLOSED_PERIOD"
	CodeMissingParty            = "MISSING_PARTY"
	CodeMissingCostCenter       = "MISSING_COST_CENTER"
	CodeAccountCurrencyRequired = "ACCOUNT_CURRENCY_AMOUNT_REQUIRED"
	CodeExchangeRateRequired    = "EXCHANGE_RATE_REQUIRED"
	CodeMissingReceivable       = "MISSING_RECEIVABLE"
	CodeMissingPayable          = "MISSING_PAYABLE"
	CodeMissingBankCash         = "MISSING_BANK_CASH"
	CodeNoIncomeEntry           = "NO_INCOME_ENTRY"
	CodeNoExpenseEntry          = "NO_EXPENSE_ENTRY"
	CodeLongJournal             = "LONG_JOURNAL"
	CodeRoundingDrift           = "ROUNDING_DRIFT"
	CodeAgainstVoucherNotFound  = "AGAINST_VOUCHER_NOT_FOUND"
	CodeAgainstVoucherCancelled = "AGAINST_VOUCHER_CANCELLED"
	CodePartyMismatch           = "PARTY_MISMATCH"

	CodeInvalidAmounts        = "INVALID_AMOUNTS"
	CodeBusinessRuleViolation = "BUSINESS_RULE_VIOLATION"
)

// Finding is a single validation outcome tied to a code and severity.
// Line is 1-based; zero means the finding is not line-specific. Amount
// carries the numeric discrepancy where one exists (e.g. the journal
// imbalance).
type Finding struct {
	Code      string          `json:"code"`
	Severity  Severity        `json:"severity"`
	Message   string          `json:"message"`
	Line      int             `json:"line,omitempty"`
	AccountID string          `json:"account_id,omitempty"`
	Amount    decimal.Decimal `json:"amount,omitempty"`
}

// JournalValidation is the Journal Validator's result. Business failures
// are carried here as findings, never as Go errors.
type JournalValidation struct {
	Validated        bool            `json:"validated"`
	TotalDebit       decimal.Decimal `json:"total_debit"`
	TotalCredit      decimal.Decimal `json:"total_credit"`
	RequiresApproval bool            `json:"requires_approval"`
	ApproverRoles    []Role          `json:"approver_roles,omitempty"`
	Errors           []Finding       `json:"errors,omitempty"`
	Warnings         []Finding       `json:"warnings,omitempty"`
}

// HasCode reports whether any error finding carries the given code.
func (v *JournalValidation) HasCode(code string) bool {
	for _, f := range v.Errors {
		if f.Code == code {
			return true
		}
	}

	return false
}

// FirstError returns the first error finding, or nil.
func (v *JournalValidation) FirstError() *Finding {
	if len(v.Errors) == 0 {
		return nil
	}

	return &v.Errors[0]
}

// VoucherValidation aggregates voucher findings by severity. Valid is
// true iff no finding has severity error.
type VoucherValidation struct {
	Valid       bool      `json:"valid"`
	Errors      []Finding `json:"errors,omitempty"`
	Warnings    []Finding `json:"warnings,omitempty"`
	Suggestions []Finding `json:"suggestions,omitempty"`
}

// HasCode reports whether any error finding carries the given code.
func (v *VoucherValidation) HasCode(code string) bool {
	for _, f := range v.Errors {
		if f.Code == code {
			return true
		}
	}

	return false
}

// Add files a finding under the severity it carries and keeps Valid in
// sync.
func (v *VoucherValidation) Add(f Finding) {
	switch f.Severity {
	case SeverityWarning:
		v.Warnings = append(v.Warnings, f)
	case SeveritySuggestion:
		v.Suggestions = append(v.Suggestions, f)
	default:
		v.Errors = append(v.Errors, f)
		v.Valid = false
	}
}

// PostingResult is a document posting builder's outcome. On success the
// built journal and its validation are attached; on failure Code and
// Message describe the first structural problem found.
type PostingResult struct {
	Success    bool               `json:"success"`
	Code       string             `json:"code,omitempty"`
	Message    string             `json:"message,omitempty"`
	Line       int                `json:"line,omitempty"`
	Journal    *Journal           `json:"journal,omitempty"`
	Validation *JournalValidation `json:"validation,omitempty"`
}

// PolicyFlags are company-level validation policy switches.
type PolicyFlags struct {
	RequireCostCenterOnPL bool `json:"require_cost_center_on_pl"`
}
