package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/postgres/generated"
	"github.com/counterbook/counterbook/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// The partial unique index guarding (company_id, voucher_type, number)
// among non-cancelled vouchers.
const uqVoucherIdentity = "uq_vouchers_company_type_number"

// LedgerWriter implements usecase.LedgerWriter. Every write runs inside
// a caller-owned transaction so the voucher header, its rows and the
// audit trail commit together.
type LedgerWriter struct {
	pool *pgxpool.Pool
}

// NewLedgerWriter creates a new LedgerWriter.
func NewLedgerWriter(pool *pgxpool.Pool) *LedgerWriter {
	return &LedgerWriter{pool: pool}
}

// InsertVoucher writes a voucher header and its ledger rows.
func (r *LedgerWriter) InsertVoucher(ctx context.Context, tx usecase.Transaction, record *domain.VoucherRecord, entries []*domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateVoucher(ctx, generated.CreateVoucherParams{
		ID:          record.ID,
		CompanyID:   record.CompanyID,
		VoucherType: string(record.Type),
		Number:      record.Number,
		PostingDate: timeToPgDate(record.PostingDate),
		FiscalYear:  int32(record.FiscalYear),
		Currency:    record.Currency,
		TotalDebit:  decimalToNumeric(record.TotalDebit),
		TotalCredit: decimalToNumeric(record.TotalCredit),
		PartyType:   string(record.PartyType),
		PartyID:     record.PartyID,
		CreatedBy:   record.CreatedBy,
		CreatedAt:   timeToPgTimestamptz(record.CreatedAt),
	})
	if err != nil {
		return mapVoucherWriteError(err)
	}

	for _, entry := range entries {
		err := queries.CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
			ID:                   entry.ID,
			CompanyID:            entry.CompanyID,
			AccountID:            entry.AccountID,
			VoucherType:          string(entry.VoucherType),
			VoucherNumber:        entry.VoucherNumber,
			PostingDate:          timeToPgDate(entry.PostingDate),
			FiscalYear:           int32(entry.FiscalYear),
			Debit:                decimalToNumeric(entry.Debit),
			Credit:               decimalToNumeric(entry.Credit),
			Currency:             entry.Currency,
			PartyType:            string(entry.PartyType),
			PartyID:              entry.PartyID,
			CostCenter:           entry.CostCenter,
			Project:              entry.Project,
			AgainstVoucherType:   string(entry.AgainstType),
			AgainstVoucherNumber: entry.AgainstNumber,
			Remarks:              entry.Remarks,
			CreatedBy:            entry.CreatedBy,
			CreatedAt:            timeToPgTimestamptz(entry.CreatedAt),
		})
		if err != nil {
			return mapVoucherWriteError(err)
		}
	}

	return nil
}

// CancelVoucher flags a voucher header and its ledger rows cancelled.
// Rows are never deleted.
func (r *LedgerWriter) CancelVoucher(ctx context.Context, tx usecase.Transaction, companyID string, vtype domain.VoucherType, number, cancelledBy string, cancelledAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	affected, err := queries.CancelVoucher(ctx, generated.CancelVoucherParams{
		CompanyID:   companyID,
		VoucherType: string(vtype),
		Number:      number,
		CancelledBy: cancelledBy,
		CancelledAt: timeToPgTimestamptz(cancelledAt),
	})
	if err != nil {
		return err
	}

	// The service verified the voucher was live before starting the
	// transaction, so zero rows means it lost a cancellation race.
	if affected == 0 {
		return domain.ErrVoucherCancelled
	}

	_, err = queries.CancelLedgerEntries(ctx, generated.CancelLedgerEntriesParams{
		CompanyID:     companyID,
		VoucherType:   string(vtype),
		VoucherNumber: number,
	})

	return err
}

func mapVoucherWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation && pgErr.ConstraintName == uqVoucherIdentity {
		return domain.ErrDuplicateVoucher
	}

	return err
}

// Type conversion helpers shared across the package.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timeToPgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}
