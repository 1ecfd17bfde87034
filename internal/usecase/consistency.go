package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/metrics"
)

// ConsistencyUseCase sweeps posted vouchers and reports any whose
// debits and credits no longer net to zero. A dirty report means the
// store was corrupted outside the posting path; the engine itself never
// writes an unbalanced voucher.
type ConsistencyUseCase struct {
	ledger  LedgerQuery
	metrics *metrics.Metrics
}

// NewConsistencyUseCase creates a new ConsistencyUseCase.
func NewConsistencyUseCase(ledger LedgerQuery) *ConsistencyUseCase {
	return &ConsistencyUseCase{ledger: ledger}
}

// WithMetrics enables check instrumentation. m may be nil.
func (uc *ConsistencyUseCase) WithMetrics(m *metrics.Metrics) *ConsistencyUseCase {
	uc.metrics = m
	return uc
}

// Check aggregates per-voucher sums and flags imbalances beyond the
// balance tolerance.
func (uc *ConsistencyUseCase) Check(ctx context.Context, companyID string, limit, offset int) (*domain.ConsistencyReport, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: company id is required", domain.ErrInvalidInput)
	}

	limit, offset = domain.ValidatePagination(limit, offset)

	sums, err := uc.ledger.VoucherSums(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}

	report := &domain.ConsistencyReport{
		CompanyID:       companyID,
		VouchersChecked: len(sums),
		GeneratedAt:     time.Now().UTC(),
	}

	for _, check := range sums {
		diff := check.TotalDebit.Sub(check.TotalCredit)
		if diff.Abs().LessThanOrEqual(domain.BalanceTolerance) {
			continue
		}

		check.Difference = diff
		report.Unbalanced = append(report.Unbalanced, check)
	}

	if uc.metrics != nil {
		uc.metrics.ConsistencyChecks.Inc()
		uc.metrics.ConsistencyCheckScans.Observe(float64(report.VouchersChecked))
		uc.metrics.UnbalancedVouchers.Set(float64(len(report.Unbalanced)))
	}

	return report, nil
}
