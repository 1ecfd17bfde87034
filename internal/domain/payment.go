package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates accepted payment instruments.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCheque       PaymentMethod = "cheque"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCard         PaymentMethod = "card"
	MethodOther        PaymentMethod = "other"
)

var validPaymentMethods = map[PaymentMethod]bool{
	MethodCash:         true,
	MethodCheque:       true,
	MethodBankTransfer: true,
	MethodCard:         true,
	MethodOther:        true,
}

// IsValid checks if the payment method is known.
func (m PaymentMethod) IsValid() bool {
	return validPaymentMethods[m]
}

// AllocationKind says what a payment allocation settles.
type AllocationKind string

const (
	AllocationBill    AllocationKind = "bill"
	AllocationInvoice AllocationKind = "invoice"
)

// PaymentAllocation applies part of a payment against a prior voucher.
// Bill allocations settle payables, invoice allocations settle
// receivables; AccountID names the matching control account.
type PaymentAllocation struct {
	Kind          AllocationKind  `json:"kind"`
	VoucherType   VoucherType     `json:"voucher_type,omitempty"`
	VoucherNumber string          `json:"voucher_number,omitempty"`
	AccountID     string          `json:"account_id"`
	PartyType     PartyType       `json:"party_type"`
	PartyID       string          `json:"party_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// Payment is a money movement with allocations, optional bank charges,
// and optional withholding tax. Allocated plus charges plus withholding
// must reconcile against Amount within BalanceTolerance.
type Payment struct {
	Number               string              `json:"number,omitempty"`
	CompanyID            string              `json:"company_id"`
	PostingDate          time.Time           `json:"posting_date"`
	BankAccountID        string              `json:"bank_account_id"`
	Method               PaymentMethod       `json:"method"`
	Currency             string              `json:"currency"`
	ExchangeRate         decimal.Decimal     `json:"exchange_rate"`
	Amount               decimal.Decimal     `json:"amount"`
	Allocations          []PaymentAllocation `json:"allocations"`
	BankCharges          decimal.Decimal     `json:"bank_charges,omitempty"`
	BankChargesAccountID string              `json:"bank_charges_account_id,omitempty"`
	WithholdingTax       decimal.Decimal     `json:"withholding_tax,omitempty"`
	WithholdingAccountID string              `json:"withholding_account_id,omitempty"`
	CostCenter           string              `json:"cost_center,omitempty"`
	Context              PostingContext      `json:"context"`
}

// AllocatedTotal sums all allocation amounts.
func (p *Payment) AllocatedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Allocations {
		total = total.Add(a.Amount)
	}

	return total
}
