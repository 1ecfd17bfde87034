package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/postgres/generated"
)

// LedgerQuery implements usecase.LedgerQuery. All aggregates exclude
// cancelled rows at the SQL level.
type LedgerQuery struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerQuery creates a new LedgerQuery.
func NewLedgerQuery(pool *pgxpool.Pool) *LedgerQuery {
	return &LedgerQuery{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// OpeningTotals aggregates non-cancelled entries posted strictly before
// the given date, per account.
func (r *LedgerQuery) OpeningTotals(ctx context.Context, companyID string, before time.Time) ([]domain.AccountTotal, error) {
	rows, err := r.queries.OpeningTotals(ctx, generated.OpeningTotalsParams{
		CompanyID:   companyID,
		PostingDate: timeToPgDate(before),
	})
	if err != nil {
		return nil, err
	}

	totals := make([]domain.AccountTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, domain.AccountTotal{
			AccountID: row.AccountID,
			Debit:     numericToDecimal(row.TotalDebit),
			Credit:    numericToDecimal(row.TotalCredit),
		})
	}

	return totals, nil
}

// PeriodTotals aggregates non-cancelled entries posted within [from, to].
func (r *LedgerQuery) PeriodTotals(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountTotal, error) {
	rows, err := r.queries.PeriodTotals(ctx, generated.PeriodTotalsParams{
		CompanyID:     companyID,
		PostingDate:   timeToPgDate(from),
		PostingDate_2: timeToPgDate(to),
	})
	if err != nil {
		return nil, err
	}

	totals := make([]domain.AccountTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, domain.AccountTotal{
			AccountID: row.AccountID,
			Debit:     numericToDecimal(row.TotalDebit),
			Credit:    numericToDecimal(row.TotalCredit),
		})
	}

	return totals, nil
}

// AccountTotals aggregates non-cancelled entries for one account posted
// up to and including the given date.
func (r *LedgerQuery) AccountTotals(ctx context.Context, companyID, accountID string, upTo time.Time) (domain.AccountTotal, error) {
	row, err := r.queries.AccountTotals(ctx, generated.AccountTotalsParams{
		CompanyID:   companyID,
		AccountID:   accountID,
		PostingDate: timeToPgDate(upTo),
	})
	if err != nil {
		return domain.AccountTotal{}, err
	}

	return domain.AccountTotal{
		AccountID: accountID,
		Debit:     numericToDecimal(row.TotalDebit),
		Credit:    numericToDecimal(row.TotalCredit),
	}, nil
}

// EntriesForAccount lists non-cancelled entries for one account up to a
// date, oldest first.
func (r *LedgerQuery) EntriesForAccount(ctx context.Context, companyID, accountID string, upTo time.Time, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.EntriesForAccount(ctx, generated.EntriesForAccountParams{
		CompanyID:   companyID,
		AccountID:   accountID,
		PostingDate: timeToPgDate(upTo),
		Limit:       int32(limit),
		Offset:      int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToLedgerEntry(row))
	}

	return entries, nil
}

// VoucherExists reports whether a voucher with the given identity exists.
func (r *LedgerQuery) VoucherExists(ctx context.Context, companyID string, vtype domain.VoucherType, number string, excludeCancelled bool) (bool, error) {
	return r.queries.VoucherExists(ctx, generated.VoucherExistsParams{
		CompanyID:        companyID,
		VoucherType:      string(vtype),
		Number:           number,
		ExcludeCancelled: excludeCancelled,
	})
}

// FindVoucher retrieves a voucher header, preferring a live voucher
// over a cancelled one carrying the same number.
func (r *LedgerQuery) FindVoucher(ctx context.Context, companyID string, vtype domain.VoucherType, number string) (*domain.VoucherRecord, error) {
	row, err := r.queries.GetVoucher(ctx, generated.GetVoucherParams{
		CompanyID:   companyID,
		VoucherType: string(vtype),
		Number:      number,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVoucherNotFound
		}

		return nil, err
	}

	return rowToVoucherRecord(row), nil
}

// LatestClosedPeriodEnd returns the end date of the most recently
// closed accounting period, or nil when none is closed.
func (r *LedgerQuery) LatestClosedPeriodEnd(ctx context.Context, companyID string) (*time.Time, error) {
	end, err := r.queries.LatestClosedPeriodEnd(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	if !end.Valid {
		return nil, nil
	}

	t := end.Time
	return &t, nil
}

// VoucherSums aggregates debit and credit per non-cancelled voucher.
func (r *LedgerQuery) VoucherSums(ctx context.Context, companyID string, limit, offset int) ([]domain.VoucherCheck, error) {
	rows, err := r.queries.VoucherSums(ctx, generated.VoucherSumsParams{
		CompanyID: companyID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	checks := make([]domain.VoucherCheck, 0, len(rows))
	for _, row := range rows {
		checks = append(checks, domain.VoucherCheck{
			VoucherType:   domain.VoucherType(row.VoucherType),
			VoucherNumber: row.VoucherNumber,
			TotalDebit:    numericToDecimal(row.TotalDebit),
			TotalCredit:   numericToDecimal(row.TotalCredit),
		})
	}

	return checks, nil
}

func rowToLedgerEntry(row generated.LedgerEntry) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:            row.ID,
		CompanyID:     row.CompanyID,
		AccountID:     row.AccountID,
		VoucherType:   domain.VoucherType(row.VoucherType),
		VoucherNumber: row.VoucherNumber,
		PostingDate:   row.PostingDate.Time,
		FiscalYear:    int(row.FiscalYear),
		Debit:         numericToDecimal(row.Debit),
		Credit:        numericToDecimal(row.Credit),
		Currency:      row.Currency,
		PartyType:     domain.PartyType(row.PartyType),
		PartyID:       row.PartyID,
		CostCenter:    row.CostCenter,
		Project:       row.Project,
		AgainstType:   domain.VoucherType(row.AgainstVoucherType),
		AgainstNumber: row.AgainstVoucherNumber,
		Remarks:       row.Remarks,
		IsCancelled:   row.IsCancelled,
		CreatedBy:     row.CreatedBy,
		CreatedAt:     row.CreatedAt.Time,
	}
}

func rowToVoucherRecord(row generated.Voucher) *domain.VoucherRecord {
	rec := &domain.VoucherRecord{
		ID:          row.ID,
		CompanyID:   row.CompanyID,
		Type:        domain.VoucherType(row.VoucherType),
		Number:      row.Number,
		PostingDate: row.PostingDate.Time,
		FiscalYear:  int(row.FiscalYear),
		Currency:    row.Currency,
		TotalDebit:  numericToDecimal(row.TotalDebit),
		TotalCredit: numericToDecimal(row.TotalCredit),
		PartyType:   domain.PartyType(row.PartyType),
		PartyID:     row.PartyID,
		IsCancelled: row.IsCancelled,
		CancelledBy: row.CancelledBy,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt.Time,
	}

	if row.CancelledAt.Valid {
		t := row.CancelledAt.Time
		rec.CancelledAt = &t
	}

	return rec
}
