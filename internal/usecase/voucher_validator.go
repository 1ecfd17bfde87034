package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/metrics"
)

// VoucherValidator layers business rules on top of the journal checks:
// duplicate numbers, closed periods, party and cost-center requirements,
// multi-currency amounts, voucher-type composition, and against-voucher
// linkage. Unlike the structural stages it accumulates every finding,
// so a caller sees all problems in one pass.
type VoucherValidator struct {
	journal   *JournalValidator
	accounts  AccountDirectory
	companies CompanyFacts
	ledger    LedgerQuery
	authz     AuthorizationPolicy
	metaTTL   time.Duration
	metrics   *metrics.Metrics
}

// NewVoucherValidator creates a new VoucherValidator.
func NewVoucherValidator(
	journal *JournalValidator,
	accounts AccountDirectory,
	companies CompanyFacts,
	ledger LedgerQuery,
	authz AuthorizationPolicy,
	metaTTL time.Duration,
) *VoucherValidator {
	if metaTTL <= 0 {
		metaTTL = DefaultMetadataTTL
	}

	return &VoucherValidator{
		journal:   journal,
		accounts:  accounts,
		companies: companies,
		ledger:    ledger,
		authz:     authz,
		metaTTL:   metaTTL,
	}
}

// WithMetrics enables validation instrumentation. m may be nil.
func (v *VoucherValidator) WithMetrics(m *metrics.Metrics) *VoucherValidator {
	v.metrics = m
	return v
}

// Validate checks the voucher and reports every finding grouped by
// severity. Valid is true iff no finding is an error. The error return
// is reserved for lookup infrastructure failures.
func (v *VoucherValidator) Validate(ctx context.Context, vch *domain.Voucher) (*domain.VoucherValidation, error) {
	result, err := v.validate(ctx, vch)
	if err != nil {
		return nil, err
	}

	if v.metrics != nil {
		outcome := "validated"
		if !result.Valid {
			outcome = "rejected"
		}

		v.metrics.VouchersValidated.WithLabelValues(string(vch.Type), outcome).Inc()
	}

	return result, nil
}

func (v *VoucherValidator) validate(ctx context.Context, vch *domain.Voucher) (*domain.VoucherValidation, error) {
	result := &domain.VoucherValidation{Valid: true}

	if !vch.Type.IsValid() {
		result.Add(domain.Finding{
			Code:     domain.CodeBusinessRuleViolation,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("unknown voucher type %q", vch.Type),
		})

		return result, nil
	}

	// 1. Authorization for the voucher's action.
	decision, err := v.authz.CheckSegregationOfDuties(ctx, vch.Action(), vch.Context.Role)
	if err != nil {
		return nil, err
	}

	if !decision.Allowed {
		reason := decision.Reason
		if reason == "" {
			reason = fmt.Sprintf("role %s may not post %s vouchers", vch.Context.Role, vch.Type)
		}

		result.Add(domain.Finding{
			Code:     domain.CodeNotAuthorized,
			Severity: domain.SeverityError,
			Message:  reason,
		})
	}

	// 2. Structural checks on the journal projection.
	projection := vch.Journal()
	for _, f := range v.journal.ValidateStructure(projection) {
		result.Add(f)
	}

	cache := newMetaCache(v.metaTTL)

	// 3. Voucher-level rules.
	if err := v.checkVoucherLevel(ctx, cache, vch, result); err != nil {
		return nil, err
	}

	// 4. Batched account resolution, then per-entry rules.
	accounts, err := cache.Prefetch(ctx, v.accounts, vch.AccountIDs())
	if err != nil {
		return nil, err
	}

	base, err := cache.BaseCurrency(ctx, v.companies, vch.CompanyID)
	if err != nil {
		return nil, err
	}

	policy, err := cache.PolicyFlags(ctx, v.companies, vch.CompanyID)
	if err != nil {
		return nil, err
	}

	for i, entry := range vch.Entries {
		if err := v.checkEntry(ctx, vch, i+1, entry, accounts, base, policy, result); err != nil {
			return nil, err
		}
	}

	// 5. Cross-entry composition per voucher type.
	v.checkComposition(vch, accounts, result)

	// 6. Sub-tolerance imbalance is accepted but worth pointing out.
	if diff := projection.Difference(); !diff.IsZero() && diff.Abs().LessThanOrEqual(domain.BalanceTolerance) {
		result.Add(domain.Finding{
			Code:     domain.CodeRoundingDrift,
			Severity: domain.SeveritySuggestion,
			Message:  fmt.Sprintf("debits and credits differ by %s; consider a rounding adjustment line", diff.Abs().StringFixed(2)),
			Amount:   diff,
		})
	}

	return result, nil
}

func (v *VoucherValidator) checkVoucherLevel(ctx context.Context, cache *metaCache, vch *domain.Voucher, result *domain.VoucherValidation) error {
	if len(vch.Entries) < domain.MinVoucherEntries {
		result.Add(domain.Finding{
			Code:     domain.CodeMinEntries,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("voucher has %d entries, minimum is %d", len(vch.Entries), domain.MinVoucherEntries),
		})
	}

	// Advisory duplicate check; the store's uniqueness constraint is
	// the real guard under concurrent submission.
	if vch.Number != "" {
		exists, err := v.ledger.VoucherExists(ctx, vch.CompanyID, vch.Type, vch.Number, true)
		if err != nil {
			return err
		}

		if exists {
			result.Add(domain.Finding{
				Code:     domain.CodeDuplicateVoucher,
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("%s %s already exists", vch.Type, vch.Number),
			})
		}
	}

	closedEnd, err := cache.ClosedPeriodEnd(ctx, v.ledger, vch.CompanyID)
	if err != nil {
		return err
	}

	if closedEnd != nil && !vch.PostingDate.After(*closedEnd) {
		result.Add(domain.Finding{
			Code:     domain.CodeClosedPeriod,
			Severity: domain.SeverityError,
			Message: fmt.Sprintf("posting date %s falls in a closed period ending %s",
				vch.PostingDate.Format("2006-01-02"), closedEnd.Format("2006-01-02")),
		})
	}

	return nil
}

func (v *VoucherValidator) checkEntry(
	ctx context.Context,
	vch *domain.Voucher,
	line int,
	entry domain.VoucherEntry,
	accounts map[string]*domain.Account,
	baseCurrency string,
	policy domain.PolicyFlags,
	result *domain.VoucherValidation,
) error {
	acc, ok := accounts[entry.AccountID]
	if !ok {
		result.Add(domain.Finding{
			Code:      domain.CodeAccountNotFound,
			Severity:  domain.SeverityError,
			Message:   fmt.Sprintf("account %s not found", entry.AccountID),
			Line:      line,
			AccountID: entry.AccountID,
		})

		return nil
	}

	if acc.IsGroup {
		result.Add(domain.Finding{
			Code:      domain.CodeGroupAccount,
			Severity:  domain.SeverityError,
			Message:   fmt.Sprintf("account %s is a group account; select a leaf account", acc.ID),
			Line:      line,
			AccountID: acc.ID,
		})
	}

	if !acc.IsActive {
		result.Add(domain.Finding{
			Code:      domain.CodeAccountInactive,
			Severity:  domain.SeverityError,
			Message:   fmt.Sprintf("account %s is inactive", acc.ID),
			Line:      line,
			AccountID: acc.ID,
		})
	}

	if acc.IsFrozen {
		result.Add(domain.Finding{
			Code:      domain.CodeAccountFrozen,
			Severity:  domain.SeverityError,
			Message:   fmt.Sprintf("account %s is frozen", acc.ID),
			Line:      line,
			AccountID: acc.ID,
		})
	}

	if acc.Kind.RequiresParty() && (entry.PartyType == "" || entry.PartyID == "") {
		result.Add(domain.Finding{
			Code:      domain.CodeMissingParty,
			Severity:  domain.SeverityError,
			Message:   fmt.Sprintf("account %s is a %s account and requires a party", acc.ID, acc.Kind),
			Line:      line,
			AccountID: acc.ID,
		})
	}

	if acc.RootType.IsProfitAndLoss() && entry.CostCenter == "" {
		severity := domain.SeverityWarning
		if policy.RequireCostCenterOnPL {
			severity = domain.SeverityError
		}

		result.Add(domain.Finding{
			Code:      domain.CodeMissingCostCenter,
			Severity:  severity,
			Message:   fmt.Sprintf("profit and loss account %s has no cost center", acc.ID),
			Line:      line,
			AccountID: acc.ID,
		})
	}

	if entry.AccountCurrency != "" && domain.NormalizeCurrency(entry.AccountCurrency) != acc.Currency {
		result.Add(domain.Finding{
			Code:      domain.CodeCurrencyMismatch,
			Severity:  domain.SeverityError,
			Message:   fmt.Sprintf("entry currency %s does not match account currency %s", entry.AccountCurrency, acc.Currency),
			Line:      line,
			AccountID: acc.ID,
		})
	}

	// Multi-currency rules apply when the account is held in a currency
	// other than the company's base currency.
	if acc.Currency != "" && baseCurrency != "" && acc.Currency != baseCurrency {
		if entry.AmountInAccountCcy.IsZero() {
			result.Add(domain.Finding{
				Code:      domain.CodeAccountCurrencyRequired,
				Severity:  domain.SeverityError,
				Message:   fmt.Sprintf("account %s is held in %s; an account-currency amount is required", acc.ID, acc.Currency),
				Line:      line,
				AccountID: acc.ID,
			})
		}

		if domain.NormalizeCurrency(vch.Currency) != acc.Currency && !entry.ExchangeRate.IsPositive() {
			result.Add(domain.Finding{
				Code:      domain.CodeExchangeRateRequired,
				Severity:  domain.SeverityError,
				Message:   fmt.Sprintf("a positive exchange rate is required to post %s to account %s held in %s", vch.Currency, acc.ID, acc.Currency),
				Line:      line,
				AccountID: acc.ID,
			})
		}
	}

	if entry.HasAgainstVoucher() {
		if err := v.checkAgainstVoucher(ctx, vch, line, entry, result); err != nil {
			return err
		}
	}

	return nil
}

func (v *VoucherValidator) checkAgainstVoucher(ctx context.Context, vch *domain.Voucher, line int, entry domain.VoucherEntry, result *domain.VoucherValidation) error {
	rec, err := v.ledger.FindVoucher(ctx, vch.CompanyID, entry.AgainstVoucherType, entry.AgainstVoucherNumber)
	if err != nil {
		if errors.Is(err, domain.ErrVoucherNotFound) {
			result.Add(domain.Finding{
				Code:     domain.CodeAgainstVoucherNotFound,
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("against voucher %s %s not found", entry.AgainstVoucherType, entry.AgainstVoucherNumber),
				Line:     line,
			})

			return nil
		}

		return err
	}

	if rec.IsCancelled {
		result.Add(domain.Finding{
			Code:     domain.CodeAgainstVoucherCancelled,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("against voucher %s %s is cancelled", entry.AgainstVoucherType, entry.AgainstVoucherNumber),
			Line:     line,
		})

		return nil
	}

	if rec.PartyID != "" && entry.PartyID != "" &&
		(rec.PartyID != entry.PartyID || rec.PartyType != entry.PartyType) {
		result.Add(domain.Finding{
			Code:     domain.CodePartyMismatch,
			Severity: domain.SeverityError,
			Message: fmt.Sprintf("entry party %s %s does not match party %s %s on voucher %s %s",
				entry.PartyType, entry.PartyID, rec.PartyType, rec.PartyID,
				entry.AgainstVoucherType, entry.AgainstVoucherNumber),
			Line: line,
		})
	}

	return nil
}

func (v *VoucherValidator) checkComposition(vch *domain.Voucher, accounts map[string]*domain.Account, result *domain.VoucherValidation) {
	var hasReceivable, hasPayable, hasBankCash, hasIncome, hasExpense bool

	for _, entry := range vch.Entries {
		acc, ok := accounts[entry.AccountID]
		if !ok {
			continue
		}

		switch acc.Kind {
		case domain.KindReceivable:
			hasReceivable = true
		case domain.KindPayable:
			hasPayable = true
		case domain.KindBank, domain.KindCash:
			hasBankCash = true
		case domain.KindIncome:
			hasIncome = true
		case domain.KindExpense:
			hasExpense = true
		}
	}

	switch vch.Type {
	case domain.VoucherSalesInvoice:
		if !hasReceivable {
			result.Add(domain.Finding{
				Code:     domain.CodeMissingReceivable,
				Severity: domain.SeverityError,
				Message:  "sales invoice requires at least one receivable entry",
			})
		}

		if !hasIncome {
			result.Add(domain.Finding{
				Code:     domain.CodeNoIncomeEntry,
				Severity: domain.SeverityWarning,
				Message:  "sales invoice has no income entry",
			})
		}
	case domain.VoucherPurchaseInvoice:
		if !hasPayable {
			result.Add(domain.Finding{
				Code:     domain.CodeMissingPayable,
				Severity: domain.SeverityError,
				Message:  "purchase invoice requires at least one payable entry",
			})
		}

		if !hasExpense {
			result.Add(domain.Finding{
				Code:     domain.CodeNoExpenseEntry,
				Severity: domain.SeverityWarning,
				Message:  "purchase invoice has no expense entry",
			})
		}
	case domain.VoucherPaymentEntry:
		if !hasBankCash {
			result.Add(domain.Finding{
				Code:     domain.CodeMissingBankCash,
				Severity: domain.SeverityError,
				Message:  "payment entry requires at least one bank or cash entry",
			})
		}
	case domain.VoucherJournalEntry:
		if len(vch.Entries) > LongJournalThreshold {
			result.Add(domain.Finding{
				Code:     domain.CodeLongJournal,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("journal entry has %d lines; consider splitting it", len(vch.Entries)),
			})
		}
	}
}
