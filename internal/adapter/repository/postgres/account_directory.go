package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/postgres/generated"
)

// AccountDirectory implements usecase.AccountDirectory over the
// accounts table. The posting engine only ever reads accounts.
type AccountDirectory struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAccountDirectory creates a new AccountDirectory.
func NewAccountDirectory(pool *pgxpool.Pool) *AccountDirectory {
	return &AccountDirectory{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// GetAccount retrieves one account by ID.
func (r *AccountDirectory) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetAccounts retrieves a batch of accounts keyed by ID. IDs with no
// matching row are simply absent from the result.
func (r *AccountDirectory) GetAccounts(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
	if len(ids) == 0 {
		return map[string]*domain.Account{}, nil
	}

	rows, err := r.queries.GetAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	accounts := make(map[string]*domain.Account, len(rows))
	for _, row := range rows {
		accounts[row.ID] = rowToAccount(row)
	}

	return accounts, nil
}

// ListByCompany lists a company's accounts ordered by code.
func (r *AccountDirectory) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountsByCompany(ctx, generated.ListAccountsByCompanyParams{
		CompanyID: companyID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:            row.ID,
		CompanyID:     row.CompanyID,
		Code:          row.Code,
		Name:          row.Name,
		RootType:      domain.RootType(row.RootType),
		Kind:          domain.AccountKind(row.Kind),
		Category:      row.Category,
		Currency:      row.Currency,
		IsGroup:       row.IsGroup,
		IsActive:      row.IsActive,
		IsFrozen:      row.IsFrozen,
		BalanceMustBe: domain.BalanceSide(row.BalanceMustBe),
		ParentID:      row.ParentID,
		Depth:         int(row.Depth),
	}
}
