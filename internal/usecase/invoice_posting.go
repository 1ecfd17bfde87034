package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/counterbook/counterbook/internal/domain"
)

// InvoicePosting translates an invoice into a balanced journal: the
// control account carries the converted grand total on one side, each
// line's account and tax account the converted pieces on the other.
// Structural failures are reported before any journal is built; the
// built journal is handed to the JournalValidator.
type InvoicePosting struct {
	validator *JournalValidator
	companies CompanyFacts
}

// NewInvoicePosting creates a new InvoicePosting builder.
func NewInvoicePosting(validator *JournalValidator, companies CompanyFacts) *InvoicePosting {
	return &InvoicePosting{
		validator: validator,
		companies: companies,
	}
}

// Build validates the invoice arithmetic, constructs the journal, and
// delegates to the journal validator. Business failures come back as an
// unsuccessful PostingResult; the error return is reserved for lookup
// infrastructure failures.
func (p *InvoicePosting) Build(ctx context.Context, inv *domain.Invoice) (*domain.PostingResult, error) {
	if fail := p.checkDocument(inv); fail != nil {
		return fail, nil
	}

	for i, line := range inv.Lines {
		if fail := checkInvoiceLine(i+1, line); fail != nil {
			return fail, nil
		}
	}

	base, err := p.companies.BaseCurrency(ctx, inv.CompanyID)
	if err != nil {
		return nil, err
	}

	journal := p.buildJournal(inv, base)

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

func (p *InvoicePosting) checkDocument(inv *domain.Invoice) *domain.PostingResult {
	if !domain.ValidCurrencyCode(inv.Currency) {
		return buildFailure(domain.CodeInvalidCurrency,
			fmt.Sprintf("currency %q is not a three-letter code", inv.Currency), 0)
	}

	if !inv.ExchangeRate.IsPositive() {
		return buildFailure(domain.CodeBusinessRuleViolation, "exchange rate must be positive", 0)
	}

	if len(inv.Lines) == 0 {
		return buildFailure(domain.CodeBusinessRuleViolation, "invoice has no lines", 0)
	}

	if inv.ControlAccountID == "" {
		side := "receivable"
		if inv.Kind == domain.InvoicePurchase {
			side = "payable"
		}

		return buildFailure(domain.CodeBusinessRuleViolation,
			fmt.Sprintf("invoice has no %s account", side), 0)
	}

	if inv.PartyID == "" {
		return buildFailure(domain.CodeBusinessRuleViolation, "invoice has no party", 0)
	}

	return nil
}

func checkInvoiceLine(n int, line domain.InvoiceLine) *domain.PostingResult {
	if line.AccountID == "" {
		return buildFailure(domain.CodeBusinessRuleViolation,
			fmt.Sprintf("line %d has no account", n), n)
	}

	if !line.Amount.IsPositive() {
		return buildFailure(domain.CodeInvalidAmounts,
			fmt.Sprintf("line %d amount must be positive", n), n)
	}

	expected := line.Quantity.Mul(line.UnitPrice)
	if !domain.WithinTolerance(expected, line.Amount) {
		return buildFailure(domain.CodeInvalidAmounts,
			fmt.Sprintf("line %d amount %s does not equal quantity %s x unit price %s (%s)",
				n, line.Amount, line.Quantity, line.UnitPrice, expected), n)
	}

	if !line.TaxRate.IsZero() {
		expectedTax := line.Amount.Mul(line.TaxRate)
		if !domain.WithinTolerance(expectedTax, line.TaxAmount) {
			return buildFailure(domain.CodeInvalidAmounts,
				fmt.Sprintf("line %d tax amount %s does not equal amount %s x tax rate %s (%s)",
					n, line.TaxAmount, line.Amount, line.TaxRate, expectedTax), n)
		}
	}

	if line.TaxAmount.IsPositive() && line.TaxAccountID == "" {
		return buildFailure(domain.CodeBusinessRuleViolation,
			fmt.Sprintf("line %d has tax but no tax account", n), n)
	}

	return nil
}

// buildJournal converts every piece through the exchange rate and puts
// the control total on the opposite side. The control amount is the sum
// of the converted pieces, so per-piece rounding can never unbalance
// the journal.
func (p *InvoicePosting) buildJournal(inv *domain.Invoice, baseCurrency string) *domain.Journal {
	convert := func(d decimal.Decimal) decimal.Decimal {
		return d.Mul(inv.ExchangeRate).Round(2)
	}

	type piece struct {
		accountID   string
		amount      decimal.Decimal
		description string
	}

	var pieces []piece
	for _, line := range inv.Lines {
		pieces = append(pieces, piece{
			accountID:   line.AccountID,
			amount:      convert(line.Amount),
			description: line.Description,
		})
	}

	// Tax credits grouped per tax account, in first-appearance order.
	taxIdx := make(map[string]int)
	var taxes []piece
	for _, line := range inv.Lines {
		if !line.TaxAmount.IsPositive() {
			continue
		}

		if i, ok := taxIdx[line.TaxAccountID]; ok {
			taxes[i].amount = taxes[i].amount.Add(convert(line.TaxAmount))
			continue
		}

		taxIdx[line.TaxAccountID] = len(taxes)
		taxes = append(taxes, piece{accountID: line.TaxAccountID, amount: convert(line.TaxAmount)})
	}

	pieces = append(pieces, taxes...)

	controlTotal := decimal.Zero
	for _, pc := range pieces {
		controlTotal = controlTotal.Add(pc.amount)
	}

	var lines []domain.LedgerLine
	switch inv.Kind {
	case domain.InvoicePurchase:
		for _, pc := range pieces {
			lines = append(lines, domain.LedgerLine{
				AccountID:   pc.accountID,
				Debit:       pc.amount,
				Description: pc.description,
			})
		}

		lines = append(lines, domain.LedgerLine{
			AccountID:   inv.ControlAccountID,
			Credit:      controlTotal,
			Description: fmt.Sprintf("payable to %s", inv.PartyID),
		})
	default:
		lines = append(lines, domain.LedgerLine{
			AccountID:   inv.ControlAccountID,
			Debit:       controlTotal,
			Description: fmt.Sprintf("receivable from %s", inv.PartyID),
		})

		for _, pc := range pieces {
			lines = append(lines, domain.LedgerLine{
				AccountID:   pc.accountID,
				Credit:      pc.amount,
				Description: pc.description,
			})
		}
	}

	ctx := inv.Context
	if ctx.CompanyID == "" {
		ctx.CompanyID = inv.CompanyID
	}

	return &domain.Journal{
		Number:      inv.Number,
		PostingDate: inv.PostingDate,
		Currency:    baseCurrency,
		Lines:       lines,
		Context:     ctx,
	}
}

func buildFailure(code, message string, line int) *domain.PostingResult {
	return &domain.PostingResult{
		Success: false,
		Code:    code,
		Message: message,
		Line:    line,
	}
}
