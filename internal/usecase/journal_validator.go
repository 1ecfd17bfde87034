package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/metrics"
)

// JournalValidator checks a proposed journal: structural shape, balance
// invariant, currency format, posting date, and chart-of-accounts
// policy. Validation is stateless and side-effect-free apart from
// read-only lookups, so validating the same journal twice yields the
// same result.
type JournalValidator struct {
	accounts AccountDirectory
	authz    AuthorizationPolicy
	metaTTL  time.Duration
	metrics  *metrics.Metrics
}

// NewJournalValidator creates a new JournalValidator.
func NewJournalValidator(accounts AccountDirectory, authz AuthorizationPolicy, metaTTL time.Duration) *JournalValidator {
	if metaTTL <= 0 {
		metaTTL = DefaultMetadataTTL
	}

	return &JournalValidator{
		accounts: accounts,
		authz:    authz,
		metaTTL:  metaTTL,
	}
}

// WithMetrics enables validation instrumentation. m may be nil.
func (v *JournalValidator) WithMetrics(m *metrics.Metrics) *JournalValidator {
	v.metrics = m
	return v
}

// Validate runs the full check sequence. Structural checks short-circuit
// on the first failing stage; chart-of-accounts findings accumulate.
// Business failures are findings on the result, never Go errors; the
// error return is reserved for lookup infrastructure failures.
func (v *JournalValidator) Validate(ctx context.Context, j *domain.Journal) (*domain.JournalValidation, error) {
	start := time.Now()

	result, err := v.validate(ctx, j)
	if err != nil {
		return nil, err
	}

	v.observe(result, start)

	return result, nil
}

func (v *JournalValidator) validate(ctx context.Context, j *domain.Journal) (*domain.JournalValidation, error) {
	result := &domain.JournalValidation{
		TotalDebit:  j.TotalDebit(),
		TotalCredit: j.TotalCredit(),
	}

	// 1. Authorization: a disallowed role is fatal, a flagged action
	// only escalates to an approval requirement.
	decision, err := v.authz.CheckSegregationOfDuties(ctx, domain.ActionPostJournal, j.Context.Role)
	if err != nil {
		return nil, err
	}

	if !decision.Allowed {
		reason := decision.Reason
		if reason == "" {
			reason = fmt.Sprintf("role %s may not post journals", j.Context.Role)
		}

		result.Errors = append(result.Errors, domain.Finding{
			Code:     domain.CodeNotAuthorized,
			Severity: domain.SeverityError,
			Message:  reason,
		})

		return result, nil
	}

	result.RequiresApproval = decision.RequiresApproval
	result.ApproverRoles = decision.ApproverRoles

	// 2-6. Structural checks.
	if findings := v.checkStructure(j); len(findings) > 0 {
		result.Errors = findings
		return result, nil
	}

	// 7. Chart-of-accounts policy, batched over the distinct accounts.
	errs, warns, err := v.checkAccounts(ctx, j)
	if err != nil {
		return nil, err
	}

	result.Errors = append(result.Errors, errs...)
	result.Warnings = append(result.Warnings, warns...)
	result.Validated = len(result.Errors) == 0

	return result, nil
}

func (v *JournalValidator) observe(result *domain.JournalValidation, start time.Time) {
	if v.metrics == nil {
		return
	}

	outcome := "validated"
	if !result.Validated {
		outcome = "rejected"
	}

	v.metrics.JournalsValidated.WithLabelValues(outcome).Inc()
	v.metrics.ValidationDuration.Observe(time.Since(start).Seconds())

	for _, f := range result.Errors {
		v.metrics.ValidationFindings.WithLabelValues(f.Code, string(f.Severity)).Inc()
	}
	for _, f := range result.Warnings {
		v.metrics.ValidationFindings.WithLabelValues(f.Code, string(f.Severity)).Inc()
	}
}

// ValidateStructure runs only the lookup-free stages: line bounds,
// per-line shape, balance, currency format, and posting date. The
// first failing stage short-circuits.
func (v *JournalValidator) ValidateStructure(j *domain.Journal) []domain.Finding {
	return v.checkStructure(j)
}

func (v *JournalValidator) checkStructure(j *domain.Journal) []domain.Finding {
	// 2. Line-count bounds.
	if len(j.Lines) == 0 {
		return []domain.Finding{{
			Code:     domain.CodeNoLines,
			Severity: domain.SeverityError,
			Message:  "journal has no lines",
		}}
	}

	if len(j.Lines) > domain.MaxJournalLines {
		return []domain.Finding{{
			Code:     domain.CodeTooManyLines,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("journal has %d lines, maximum is %d", len(j.Lines), domain.MaxJournalLines),
		}}
	}

	// 3. Per-line shape, reported with 1-based line indices.
	var shape []domain.Finding
	for i, line := range j.Lines {
		n := i + 1

		switch {
		case line.Debit.IsNegative() || line.Credit.IsNegative():
			shape = append(shape, domain.Finding{
				Code:      domain.CodeInvalidLineAmounts,
				Severity:  domain.SeverityError,
				Message:   "line has a negative amount",
				Line:      n,
				AccountID: line.AccountID,
			})
		case line.HasDebit() && line.HasCredit():
			shape = append(shape, domain.Finding{
				Code:      domain.CodeInvalidLineAmounts,
				Severity:  domain.SeverityError,
				Message:   "line has both a debit and a credit amount",
				Line:      n,
				AccountID: line.AccountID,
			})
		case !line.HasDebit() && !line.HasCredit():
			shape = append(shape, domain.Finding{
				Code:      domain.CodeZeroAmounts,
				Severity:  domain.SeverityError,
				Message:   "line has neither a debit nor a credit amount",
				Line:      n,
				AccountID: line.AccountID,
			})
		}

		if len(line.Description) > domain.MaxDescriptionLength {
			shape = append(shape, domain.Finding{
				Code:      domain.CodeDescriptionTooLong,
				Severity:  domain.SeverityError,
				Message:   fmt.Sprintf("line description exceeds %d characters", domain.MaxDescriptionLength),
				Line:      n,
				AccountID: line.AccountID,
			})
		}
	}

	if len(shape) > 0 {
		return shape
	}

	// 4. Balance invariant.
	if !j.Balanced() {
		diff := j.Difference()

		return []domain.Finding{{
			Code:     domain.CodeUnbalancedJournal,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("journal does not balance: difference %s", diff.StringFixed(2)),
			Amount:   diff,
		}}
	}

	// 5. Currency format.
	if !domain.ValidCurrencyCode(j.Currency) {
		return []domain.Finding{{
			Code:     domain.CodeInvalidCurrency,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("currency %q is not a three-letter code", j.Currency),
		}}
	}

	// 6. Temporal rule.
	if isFutureDate(j.PostingDate, time.Now().UTC()) {
		return []domain.Finding{{
			Code:     domain.CodeFutureDate,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("posting date %s is in the future", j.PostingDate.Format("2006-01-02")),
		}}
	}

	return nil
}

func (v *JournalValidator) checkAccounts(ctx context.Context, j *domain.Journal) (errs, warns []domain.Finding, err error) {
	ids := j.AccountIDs()

	cache := newMetaCache(v.metaTTL)

	accounts, err := cache.Prefetch(ctx, v.accounts, ids)
	if err != nil {
		return nil, nil, err
	}

	currency := domain.NormalizeCurrency(j.Currency)

	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			errs = append(errs, domain.Finding{
				Code:      domain.CodeAccountNotFound,
				Severity:  domain.SeverityError,
				Message:   fmt.Sprintf("account %s not found", id),
				AccountID: id,
			})

			continue
		}

		if acc.IsGroup {
			errs = append(errs, domain.Finding{
				Code:      domain.CodeGroupAccountTxn,
				Severity:  domain.SeverityError,
				Message:   fmt.Sprintf("account %s is a group account and cannot receive postings", id),
				AccountID: id,
			})
		}

		if !acc.IsActive {
			errs = append(errs, domain.Finding{
				Code:      domain.CodeAccountInactive,
				Severity:  domain.SeverityError,
				Message:   fmt.Sprintf("account %s is inactive", id),
				AccountID: id,
			})
		}

		if acc.IsFrozen {
			errs = append(errs, domain.Finding{
				Code:      domain.CodeAccountFrozen,
				Severity:  domain.SeverityError,
				Message:   fmt.Sprintf("account %s is frozen", id),
				AccountID: id,
			})
		}

		if acc.Currency != "" && acc.Currency != currency {
			errs = append(errs, domain.Finding{
				Code:      domain.CodeCurrencyMismatch,
				Severity:  domain.SeverityError,
				Message:   fmt.Sprintf("account %s is held in %s, journal is in %s", id, acc.Currency, currency),
				AccountID: id,
			})
		}

		if w := balanceSignWarning(j, acc); w != nil {
			warns = append(warns, *w)
		}
	}

	return errs, warns, nil
}

// balanceSignWarning flags a journal that moves an account against its
// declared normal balance side. Advisory only.
func balanceSignWarning(j *domain.Journal, acc *domain.Account) *domain.Finding {
	if acc.BalanceMustBe == "" {
		return nil
	}

	net := decimal.Zero
	for _, line := range j.Lines {
		if line.AccountID == acc.ID {
			net = net.Add(line.Debit).Sub(line.Credit)
		}
	}

	against := (acc.BalanceMustBe == domain.SideDebit && net.IsNegative()) ||
		(acc.BalanceMustBe == domain.SideCredit && net.IsPositive())
	if !against {
		return nil
	}

	return &domain.Finding{
		Code:      domain.CodeBalanceSign,
		Severity:  domain.SeverityWarning,
		Message:   fmt.Sprintf("account %s normally carries a %s balance", acc.ID, acc.BalanceMustBe),
		AccountID: acc.ID,
		Amount:    net,
	}
}

// isFutureDate compares calendar days in UTC, so a posting later today
// is not future.
func isFutureDate(posting, now time.Time) bool {
	p := posting.UTC()
	n := now.UTC()

	py, pm, pd := p.Date()
	ny, nm, nd := n.Date()

	if py != ny {
		return py > ny
	}

	if pm != nm {
		return pm > nm
	}

	return pd > nd
}
