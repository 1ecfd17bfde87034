package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType tags the business transaction a set of entries belongs to.
type VoucherType string

const (
	VoucherSalesInvoice    VoucherType = "sales_invoice"
	VoucherPurchaseInvoice VoucherType = "purchase_invoice"
	VoucherPaymentEntry    VoucherType = "payment_entry"
	VoucherJournalEntry    VoucherType = "journal_entry"
)

var validVoucherTypes = map[VoucherType]bool{
	VoucherSalesInvoice:    true,
	VoucherPurchaseInvoice: true,
	VoucherPaymentEntry:    true,
	VoucherJournalEntry:    true,
}

// IsValid checks if the voucher type is known.
func (t VoucherType) IsValid() bool {
	return validVoucherTypes[t]
}

// PartyType distinguishes the counterparty kind on an entry.
type PartyType string

const (
	PartyCustomer PartyType = "customer"
	PartySupplier PartyType = "supplier"
)

// VoucherEntry is one line of a voucher: a ledger line enriched with
// party, dimension, and currency detail.
type VoucherEntry struct {
	AccountID            string          `json:"account_id"`
	Debit                decimal.Decimal `json:"debit"`
	Credit               decimal.Decimal `json:"credit"`
	PartyType            PartyType       `json:"party_type,omitempty"`
	PartyID              string          `json:"party_id,omitempty"`
	CostCenter           string          `json:"cost_center,omitempty"`
	Project              string          `json:"project,omitempty"`
	AccountCurrency      string          `json:"account_currency,omitempty"`
	AmountInAccountCcy   decimal.Decimal `json:"amount_in_account_currency,omitempty"`
	ExchangeRate         decimal.Decimal `json:"exchange_rate,omitempty"`
	AgainstVoucherType   VoucherType     `json:"against_voucher_type,omitempty"`
	AgainstVoucherNumber string          `json:"against_voucher_number,omitempty"`
	Remarks              string          `json:"remarks,omitempty"`
}

// Line projects the entry onto its plain ledger line.
func (e VoucherEntry) Line() LedgerLine {
	return LedgerLine{
		AccountID:   e.AccountID,
		Debit:       e.Debit,
		Credit:      e.Credit,
		Description: e.Remarks,
	}
}

// HasAgainstVoucher reports whether the entry settles a prior voucher.
func (e VoucherEntry) HasAgainstVoucher() bool {
	return e.AgainstVoucherNumber != ""
}

// Voucher is a typed transaction: a named voucher type plus its entries.
type Voucher struct {
	Type        VoucherType    `json:"type"`
	Number      string         `json:"number"`
	CompanyID   string         `json:"company_id"`
	PostingDate time.Time      `json:"posting_date"`
	Currency    string         `json:"currency"`
	Entries     []VoucherEntry `json:"entries"`
	Context     PostingContext `json:"context"`
}

// Journal projects the voucher onto a plain journal for balance and
// shape validation.
func (v *Voucher) Journal() *Journal {
	lines := make([]LedgerLine, len(v.Entries))
	for i, e := range v.Entries {
		lines[i] = e.Line()
	}

	ctx := v.Context
	if ctx.CompanyID == "" {
		ctx.CompanyID = v.CompanyID
	}

	return &Journal{
		Number:      v.Number,
		PostingDate: v.PostingDate,
		Currency:    v.Currency,
		Lines:       lines,
		Context:     ctx,
	}
}

// AccountIDs returns the distinct account ids referenced by the entries,
// in first-appearance order.
func (v *Voucher) AccountIDs() []string {
	seen := make(map[string]bool, len(v.Entries))

	var ids []string
	for _, e := range v.Entries {
		if !seen[e.AccountID] {
			seen[e.AccountID] = true
			ids = append(ids, e.AccountID)
		}
	}

	return ids
}

// Action maps the voucher type to its segregation-of-duties action.
func (v *Voucher) Action() Action {
	switch v.Type {
	case VoucherSalesInvoice, VoucherPurchaseInvoice:
		return ActionPostInvoice
	case VoucherPaymentEntry:
		return ActionPostPayment
	default:
		return ActionPostJournal
	}
}
