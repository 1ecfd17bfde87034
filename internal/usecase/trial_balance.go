package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/metrics"
)

// TrialBalanceUseCase aggregates posted entries into per-account
// opening, period, and closing balances for a date window. Opening and
// closing are collapsed onto the account's net side; period columns
// carry gross activity. Zero-balance accounts are dropped unless asked
// for.
type TrialBalanceUseCase struct {
	accounts  AccountDirectory
	companies CompanyFacts
	ledger    LedgerQuery
	cache     Cache
	cacheTTL  time.Duration
	metrics   *metrics.Metrics
}

// NewTrialBalanceUseCase creates a new TrialBalanceUseCase. cache may
// be nil to disable report caching.
func NewTrialBalanceUseCase(
	accounts AccountDirectory,
	companies CompanyFacts,
	ledger LedgerQuery,
	cache Cache,
	cacheTTL time.Duration,
) *TrialBalanceUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultReportTTL
	}

	return &TrialBalanceUseCase{
		accounts:  accounts,
		companies: companies,
		ledger:    ledger,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// WithMetrics enables report instrumentation. m may be nil.
func (uc *TrialBalanceUseCase) WithMetrics(m *metrics.Metrics) *TrialBalanceUseCase {
	uc.metrics = m
	return uc
}

// TrialBalanceInput represents input for computing a trial balance.
type TrialBalanceInput struct {
	CompanyID   string
	FromDate    time.Time
	ToDate      time.Time
	IncludeZero bool
	// Fresh bypasses the report cache.
	Fresh bool
}

// Compute builds the trial balance for the window [FromDate, ToDate].
func (uc *TrialBalanceUseCase) Compute(ctx context.Context, input TrialBalanceInput) (*domain.TrialBalance, error) {
	if input.CompanyID == "" {
		return nil, fmt.Errorf("%w: company id is required", domain.ErrInvalidInput)
	}

	if input.ToDate.Before(input.FromDate) {
		return nil, fmt.Errorf("%w: to date precedes from date", domain.ErrInvalidInput)
	}

	key := fmt.Sprintf("report:tb:%s:%s:%s:%t",
		input.CompanyID, input.FromDate.Format("2006-01-02"), input.ToDate.Format("2006-01-02"), input.IncludeZero)

	if uc.cache != nil && !input.Fresh {
		if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
			var tb domain.TrialBalance
			if err := json.Unmarshal(data, &tb); err == nil {
				if uc.metrics != nil {
					uc.metrics.ReportCacheHits.WithLabelValues("hit").Inc()
				}
				return &tb, nil
			}
		}

		if uc.metrics != nil {
			uc.metrics.ReportCacheHits.WithLabelValues("miss").Inc()
		}
	}

	start := time.Now()

	tb, err := uc.compute(ctx, input)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ReportsGenerated.WithLabelValues("trial_balance").Inc()
		uc.metrics.ReportDuration.WithLabelValues("trial_balance").Observe(time.Since(start).Seconds())
	}

	if uc.cache != nil {
		if data, err := json.Marshal(tb); err == nil {
			// Cache is advisory; a failed set never fails the report.
			_ = uc.cache.Set(ctx, key, data, uc.cacheTTL)
		}
	}

	return tb, nil
}

func (uc *TrialBalanceUseCase) compute(ctx context.Context, input TrialBalanceInput) (*domain.TrialBalance, error) {
	base, err := uc.companies.BaseCurrency(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	opening, err := uc.ledger.OpeningTotals(ctx, input.CompanyID, input.FromDate)
	if err != nil {
		return nil, err
	}

	period, err := uc.ledger.PeriodTotals(ctx, input.CompanyID, input.FromDate, input.ToDate)
	if err != nil {
		return nil, err
	}

	type sums struct {
		opening domain.AccountTotal
		period  domain.AccountTotal
	}

	byAccount := make(map[string]*sums)
	ids := make([]string, 0, len(opening)+len(period))

	track := func(id string) *sums {
		s, ok := byAccount[id]
		if !ok {
			s = &sums{}
			byAccount[id] = s
			ids = append(ids, id)
		}

		return s
	}

	for _, t := range opening {
		track(t.AccountID).opening = t
	}

	for _, t := range period {
		track(t.AccountID).period = t
	}

	accounts, err := uc.accounts.GetAccounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.TrialBalanceRow, 0, len(ids))
	var totals domain.TrialBalanceTotals

	for _, id := range ids {
		s := byAccount[id]

		openingNet := s.opening.Debit.Sub(s.opening.Credit)
		closingNet := openingNet.Add(s.period.Debit).Sub(s.period.Credit)

		if !input.IncludeZero && openingNet.IsZero() && s.period.Debit.IsZero() && s.period.Credit.IsZero() {
			continue
		}

		row := domain.TrialBalanceRow{AccountID: id}
		if acc, ok := accounts[id]; ok {
			row.AccountCode = acc.Code
			row.AccountName = acc.Name
			row.RootType = acc.RootType
		}

		row.OpeningDebit, row.OpeningCredit = collapseNet(openingNet)
		row.PeriodDebit = s.period.Debit
		row.PeriodCredit = s.period.Credit
		row.ClosingDebit, row.ClosingCredit = collapseNet(closingNet)

		totals.OpeningDebit = totals.OpeningDebit.Add(row.OpeningDebit)
		totals.OpeningCredit = totals.OpeningCredit.Add(row.OpeningCredit)
		totals.PeriodDebit = totals.PeriodDebit.Add(row.PeriodDebit)
		totals.PeriodCredit = totals.PeriodCredit.Add(row.PeriodCredit)
		totals.ClosingDebit = totals.ClosingDebit.Add(row.ClosingDebit)
		totals.ClosingCredit = totals.ClosingCredit.Add(row.ClosingCredit)

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AccountCode != rows[j].AccountCode {
			return rows[i].AccountCode < rows[j].AccountCode
		}

		return rows[i].AccountID < rows[j].AccountID
	})

	return &domain.TrialBalance{
		CompanyID:   input.CompanyID,
		Currency:    base,
		FromDate:    input.FromDate,
		ToDate:      input.ToDate,
		Rows:        rows,
		Totals:      totals,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// collapseNet presents a net balance on its carrying side.
func collapseNet(net decimal.Decimal) (debit, credit decimal.Decimal) {
	if net.IsNegative() {
		return decimal.Zero, net.Neg()
	}

	return net, decimal.Zero
}
