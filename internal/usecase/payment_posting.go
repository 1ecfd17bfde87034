package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/counterbook/counterbook/internal/domain"
)

// PaymentPosting translates a payment with its allocations, bank
// charges, and withholding tax into a balanced journal. Bill
// allocations group against one bank credit, invoice allocations
// against one bank debit, and charges and withholding each post as a
// symmetric pair against the bank account.
type PaymentPosting struct {
	validator *JournalValidator
	accounts  AccountDirectory
	companies CompanyFacts
	metaTTL   time.Duration
}

// NewPaymentPosting creates a new PaymentPosting builder.
func NewPaymentPosting(validator *JournalValidator, accounts AccountDirectory, companies CompanyFacts, metaTTL time.Duration) *PaymentPosting {
	if metaTTL <= 0 {
		metaTTL = DefaultMetadataTTL
	}

	return &PaymentPosting{
		validator: validator,
		accounts:  accounts,
		companies: companies,
		metaTTL:   metaTTL,
	}
}

// Build validates the payment, constructs the journal, and delegates to
// the journal validator. Business failures come back as an unsuccessful
// PostingResult; the error return is reserved for lookup infrastructure
// failures.
func (p *PaymentPosting) Build(ctx context.Context, pay *domain.Payment) (*domain.PostingResult, error) {
	if fail := checkPaymentDocument(pay); fail != nil {
		return fail, nil
	}

	if fail, err := p.checkAllocations(ctx, pay); err != nil {
		return nil, err
	} else if fail != nil {
		return fail, nil
	}

	if fail := checkReconciliation(pay); fail != nil {
		return fail, nil
	}

	base, err := p.companies.BaseCurrency(ctx, pay.CompanyID)
	if err != nil {
		return nil, err
	}

	journal := buildPaymentJournal(pay, base)

	validation, err := p.validator.Validate(ctx, journal)
	if err != nil {
		return nil, err
	}

	result := &domain.PostingResult{
		Success:    validation.Validated,
		Journal:    journal,
		Validation: validation,
	}

	if !validation.Validated {
		if first := validation.FirstError(); first != nil {
			result.Code = first.Code
			result.Message = first.Message
			result.Line = first.Line
		}
	}

	return result, nil
}

func checkPaymentDocument(pay *domain.Payment) *domain.PostingResult {
	if !pay.Amount.IsPositive() {
		return buildFailure(domain.CodeInvalidAmounts, "payment amount must be positive", 0)
	}

	if !pay.Method.IsValid() {
		return buildFailure(domain.CodeBusinessRuleViolation,
			fmt.Sprintf("invalid payment method %q", pay.Method), 0)
	}

	if !domain.ValidCurrencyCode(pay.Currency) {
		return buildFailure(domain.CodeInvalidCurrency,
			fmt.Sprintf("currency %q is not a three-letter code", pay.Currency), 0)
	}

	if !pay.ExchangeRate.IsPositive() {
		return buildFailure(domain.CodeBusinessRuleViolation, "exchange rate must be positive", 0)
	}

	if pay.BankAccountID == "" {
		return buildFailure(domain.CodeBusinessRuleViolation, "payment has no bank account", 0)
	}

	if len(pay.Allocations) == 0 {
		return buildFailure(domain.CodeBusinessRuleViolation, "payment has no allocations", 0)
	}

	if pay.BankCharges.IsNegative() || pay.WithholdingTax.IsNegative() {
		return buildFailure(domain.CodeInvalidAmounts, "charges and withholding cannot be negative", 0)
	}

	if pay.BankCharges.IsPositive() && pay.BankChargesAccountID == "" {
		return buildFailure(domain.CodeBusinessRuleViolation, "payment has bank charges but no charges account", 0)
	}

	if pay.WithholdingTax.IsPositive() && pay.WithholdingAccountID == "" {
		return buildFailure(domain.CodeBusinessRuleViolation, "payment has withholding tax but no withholding account", 0)
	}

	return nil
}

// checkAllocations verifies each allocation names a party and the right
// control-account kind: payable for bills, receivable for invoices.
func (p *PaymentPosting) checkAllocations(ctx context.Context, pay *domain.Payment) (*domain.PostingResult, error) {
	ids := make([]string, 0, len(pay.Allocations))
	seen := make(map[string]bool, len(pay.Allocations))
	for _, a := range pay.Allocations {
		if a.AccountID != "" && !seen[a.AccountID] {
			seen[a.AccountID] = true
			ids = append(ids, a.AccountID)
		}
	}

	cache := newMetaCache(p.metaTTL)

	accounts, err := cache.Prefetch(ctx, p.accounts, ids)
	if err != nil {
		return nil, err
	}

	for i, a := range pay.Allocations {
		n := i + 1

		if a.Kind != domain.AllocationBill && a.Kind != domain.AllocationInvoice {
			return buildFailure(domain.CodeBusinessRuleViolation,
				fmt.Sprintf("allocation %d has unknown kind %q", n, a.Kind), n), nil
		}

		if !a.Amount.IsPositive() {
			return buildFailure(domain.CodeInvalidAmounts,
				fmt.Sprintf("allocation %d amount must be positive", n), n), nil
		}

		if a.AccountID == "" {
			return buildFailure(domain.CodeBusinessRuleViolation,
				fmt.Sprintf("allocation %d has no account", n), n), nil
		}

		if a.PartyType == "" || a.PartyID == "" {
			return buildFailure(domain.CodeBusinessRuleViolation,
				fmt.Sprintf("allocation %d has no party", n), n), nil
		}

		acc, ok := accounts[a.AccountID]
		if !ok {
			// Leave existence to the journal validator's batched check.
			continue
		}

		if a.Kind == domain.AllocationBill && acc.Kind != domain.KindPayable {
			return buildFailure(domain.CodeBusinessRuleViolation,
				fmt.Sprintf("allocation %d settles a bill and must reference a payable account", n), n), nil
		}

		if a.Kind == domain.AllocationInvoice && acc.Kind != domain.KindReceivable {
			return buildFailure(domain.CodeBusinessRuleViolation,
				fmt.Sprintf("allocation %d settles an invoice and must reference a receivable account", n), n), nil
		}
	}

	return nil, nil
}

// checkReconciliation enforces allocated + charges + withholding =
// amount within tolerance. Overallocation gets its own message because
// the excess belongs in an advance account, not in silent acceptance.
func checkReconciliation(pay *domain.Payment) *domain.PostingResult {
	allocated := pay.AllocatedTotal()

	if allocated.Sub(pay.Amount).GreaterThan(domain.BalanceTolerance) {
		return buildFailure(domain.CodeInvalidAmounts,
			fmt.Sprintf("allocated amount (%s) exceeds payment amount (%s); route the excess to an advance account",
				allocated.StringFixed(2), pay.Amount.StringFixed(2)), 0)
	}

	covered := allocated.Add(pay.BankCharges).Add(pay.WithholdingTax)
	if !domain.WithinTolerance(covered, pay.Amount) {
		return buildFailure(domain.CodeInvalidAmounts,
			fmt.Sprintf("allocated %s plus charges %s and withholding %s does not reconcile with payment amount %s",
				allocated.StringFixed(2), pay.BankCharges.StringFixed(2),
				pay.WithholdingTax.StringFixed(2), pay.Amount.StringFixed(2)), 0)
	}

	return nil
}

func buildPaymentJournal(pay *domain.Payment, baseCurrency string) *domain.Journal {
	convert := func(d decimal.Decimal) decimal.Decimal {
		return d.Mul(pay.ExchangeRate).Round(2)
	}

	var lines []domain.LedgerLine

	// Bill allocations: debit each payable, one bank credit for the group.
	billsTotal := decimal.Zero
	for _, a := range pay.Allocations {
		if a.Kind != domain.AllocationBill {
			continue
		}

		amount := convert(a.Amount)
		billsTotal = billsTotal.Add(amount)
		lines = append(lines, domain.LedgerLine{
			AccountID:   a.AccountID,
			Debit:       amount,
			Description: allocationDescription(a),
		})
	}

	if billsTotal.IsPositive() {
		lines = append(lines, domain.LedgerLine{
			AccountID:   pay.BankAccountID,
			Credit:      billsTotal,
			Description: "payment out",
		})
	}

	// Invoice allocations: one bank debit for the group, credit each receivable.
	invoicesTotal := decimal.Zero
	var receivableLines []domain.LedgerLine
	for _, a := range pay.Allocations {
		if a.Kind != domain.AllocationInvoice {
			continue
		}

		amount := convert(a.Amount)
		invoicesTotal = invoicesTotal.Add(amount)
		receivableLines = append(receivableLines, domain.LedgerLine{
			AccountID:   a.AccountID,
			Credit:      amount,
			Description: allocationDescription(a),
		})
	}

	if invoicesTotal.IsPositive() {
		lines = append(lines, domain.LedgerLine{
			AccountID:   pay.BankAccountID,
			Debit:       invoicesTotal,
			Description: "payment in",
		})
		lines = append(lines, receivableLines...)
	}

	if pay.BankCharges.IsPositive() {
		amount := convert(pay.BankCharges)
		lines = append(lines,
			domain.LedgerLine{AccountID: pay.BankChargesAccountID, Debit: amount, Description: "bank charges"},
			domain.LedgerLine{AccountID: pay.BankAccountID, Credit: amount, Description: "bank charges"},
		)
	}

	if pay.WithholdingTax.IsPositive() {
		amount := convert(pay.WithholdingTax)
		lines = append(lines,
			domain.LedgerLine{AccountID: pay.WithholdingAccountID, Debit: amount, Description: "withholding tax"},
			domain.LedgerLine{AccountID: pay.BankAccountID, Credit: amount, Description: "withholding tax"},
		)
	}

	ctx := pay.Context
	if ctx.CompanyID == "" {
		ctx.CompanyID = pay.CompanyID
	}

	return &domain.Journal{
		Number:      pay.Number,
		PostingDate: pay.PostingDate,
		Currency:    baseCurrency,
		Lines:       lines,
		Context:     ctx,
	}
}

func allocationDescription(a domain.PaymentAllocation) string {
	if a.VoucherNumber == "" {
		return ""
	}

	return fmt.Sprintf("settles %s %s", a.VoucherType, a.VoucherNumber)
}
