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

// BalanceSheetUseCase classifies trial balance output into statement
// sections, derives retained earnings from cumulative revenue minus
// expense, and verifies the accounting equation. The balanced flag is
// always computed from the totals, never stored.
type BalanceSheetUseCase struct {
	trialBalance *TrialBalanceUseCase
	accounts     AccountDirectory
	cache        Cache
	cacheTTL     time.Duration
	metrics      *metrics.Metrics
}

// NewBalanceSheetUseCase creates a new BalanceSheetUseCase. cache may
// be nil to disable report caching.
func NewBalanceSheetUseCase(trialBalance *TrialBalanceUseCase, accounts AccountDirectory, cache Cache, cacheTTL time.Duration) *BalanceSheetUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultReportTTL
	}

	return &BalanceSheetUseCase{
		trialBalance: trialBalance,
		accounts:     accounts,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// WithMetrics enables report instrumentation. m may be nil.
func (uc *BalanceSheetUseCase) WithMetrics(m *metrics.Metrics) *BalanceSheetUseCase {
	uc.metrics = m
	return uc
}

// BalanceSheetInput represents input for computing a balance sheet.
type BalanceSheetInput struct {
	CompanyID string
	AsOf      time.Time
	// Fresh bypasses the report cache.
	Fresh bool
}

// Compute builds the classified statement of position as of a date.
func (uc *BalanceSheetUseCase) Compute(ctx context.Context, input BalanceSheetInput) (*domain.BalanceSheet, error) {
	if input.CompanyID == "" {
		return nil, fmt.Errorf("%w: company id is required", domain.ErrInvalidInput)
	}

	key := fmt.Sprintf("report:bs:%s:%s", input.CompanyID, input.AsOf.Format("2006-01-02"))

	if uc.cache != nil && !input.Fresh {
		if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
			var bs domain.BalanceSheet
			if err := json.Unmarshal(data, &bs); err == nil {
				return &bs, nil
			}
		}
	}

	start := time.Now()

	// Closing balances as of the date: opening before it plus that
	// day's activity.
	tb, err := uc.trialBalance.Compute(ctx, TrialBalanceInput{
		CompanyID: input.CompanyID,
		FromDate:  input.AsOf,
		ToDate:    input.AsOf,
		Fresh:     input.Fresh,
	})
	if err != nil {
		return nil, err
	}

	bs, err := uc.classify(ctx, input, tb)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ReportsGenerated.WithLabelValues("balance_sheet").Inc()
		uc.metrics.ReportDuration.WithLabelValues("balance_sheet").Observe(time.Since(start).Seconds())
	}

	if uc.cache != nil {
		if data, err := json.Marshal(bs); err == nil {
			_ = uc.cache.Set(ctx, key, data, uc.cacheTTL)
		}
	}

	return bs, nil
}

func (uc *BalanceSheetUseCase) classify(ctx context.Context, input BalanceSheetInput, tb *domain.TrialBalance) (*domain.BalanceSheet, error) {
	ids := make([]string, 0, len(tb.Rows))
	for _, row := range tb.Rows {
		ids = append(ids, row.AccountID)
	}

	accounts, err := uc.accounts.GetAccounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	sections := map[domain.BalanceSheetSection][]domain.BalanceSheetLine{}
	retained := decimal.Zero

	for _, row := range tb.Rows {
		net := row.ClosingNet()

		if row.RootType.IsProfitAndLoss() {
			// Cumulative revenue minus expense: revenue carries credit
			// balances, so the negated net sums to the right sign.
			retained = retained.Add(net.Neg())
			continue
		}

		if !row.RootType.IsBalanceSheet() {
			continue
		}

		line := domain.BalanceSheetLine{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			Label:       row.AccountName,
		}

		var section domain.BalanceSheetSection
		if acc, ok := accounts[row.AccountID]; ok {
			line.Category = acc.Category
			section, ok = domain.SectionForCategory(acc.Category)
			if !ok {
				section = fallbackSection(row.RootType)
			}
		} else {
			section = fallbackSection(row.RootType)
		}

		// Assets present debit-positive, the other side credit-positive.
		if row.RootType == domain.RootAsset {
			line.Amount = net
		} else {
			line.Amount = net.Neg()
		}

		sections[section] = append(sections[section], line)
	}

	sections[domain.SectionEquity] = append(sections[domain.SectionEquity], domain.BalanceSheetLine{
		Category: domain.CategoryRetainedEarnings,
		Label:    "Retained Earnings",
		Amount:   retained,
	})

	for _, lines := range sections {
		sort.SliceStable(lines, func(i, j int) bool {
			return lines[i].AccountCode < lines[j].AccountCode
		})
	}

	var totals domain.BalanceSheetTotals
	totals.RetainedEarnings = retained
	totals.CurrentAssets = sectionTotal(sections[domain.SectionCurrentAssets])
	totals.NonCurrentAssets = sectionTotal(sections[domain.SectionNonCurrentAssets])
	totals.TotalAssets = totals.CurrentAssets.Add(totals.NonCurrentAssets)
	totals.CurrentLiabilities = sectionTotal(sections[domain.SectionCurrentLiabilities])
	totals.NonCurrentLiabilities = sectionTotal(sections[domain.SectionNonCurrentLiabilities])
	totals.TotalLiabilities = totals.CurrentLiabilities.Add(totals.NonCurrentLiabilities)
	totals.TotalEquity = sectionTotal(sections[domain.SectionEquity])
	totals.LiabilitiesAndEquity = totals.TotalLiabilities.Add(totals.TotalEquity)
	totals.Difference = totals.TotalAssets.Sub(totals.LiabilitiesAndEquity)

	return &domain.BalanceSheet{
		CompanyID:   input.CompanyID,
		Currency:    tb.Currency,
		AsOf:        input.AsOf,
		Sections:    sections,
		Totals:      totals,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func fallbackSection(root domain.RootType) domain.BalanceSheetSection {
	switch root {
	case domain.RootAsset:
		return domain.SectionNonCurrentAssets
	case domain.RootLiability:
		return domain.SectionNonCurrentLiabilities
	default:
		return domain.SectionEquity
	}
}

func sectionTotal(lines []domain.BalanceSheetLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}

	return total
}
