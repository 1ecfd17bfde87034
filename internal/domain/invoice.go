package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceKind distinguishes sales from purchase invoices.
type InvoiceKind string

const (
	InvoiceSales    InvoiceKind = "sales"
	InvoicePurchase InvoiceKind = "purchase"
)

// VoucherType returns the voucher type an invoice posts as.
func (k InvoiceKind) VoucherType() VoucherType {
	if k == InvoicePurchase {
		return VoucherPurchaseInvoice
	}

	return VoucherSalesInvoice
}

// InvoiceLine is one billed item. Amount must equal Quantity times
// UnitPrice and TaxAmount must equal Amount times TaxRate, both within
// BalanceTolerance. AccountID is the income account on a sales invoice
// and the expense account on a purchase invoice.
type InvoiceLine struct {
	AccountID    string          `json:"account_id"`
	Description  string          `json:"description,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Amount       decimal.Decimal `json:"amount"`
	TaxRate      decimal.Decimal `json:"tax_rate,omitempty"`
	TaxAmount    decimal.Decimal `json:"tax_amount,omitempty"`
	TaxAccountID string          `json:"tax_account_id,omitempty"`
	CostCenter   string          `json:"cost_center,omitempty"`
}

// Total returns the line amount including tax.
func (l InvoiceLine) Total() decimal.Decimal {
	return l.Amount.Add(l.TaxAmount)
}

// Invoice is a billing document to be translated into a balanced
// journal. ControlAccountID is the receivable account on a sales
// invoice and the payable account on a purchase invoice.
type Invoice struct {
	Kind             InvoiceKind     `json:"kind"`
	Number           string          `json:"number,omitempty"`
	CompanyID        string          `json:"company_id"`
	PartyType        PartyType       `json:"party_type"`
	PartyID          string          `json:"party_id"`
	PostingDate      time.Time       `json:"posting_date"`
	Currency         string          `json:"currency"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate"`
	ControlAccountID string          `json:"control_account_id"`
	Lines            []InvoiceLine   `json:"lines"`
	Context          PostingContext  `json:"context"`
}

// GrandTotal is the sum of all line totals in invoice currency.
func (inv *Invoice) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range inv.Lines {
		total = total.Add(l.Total())
	}

	return total
}
