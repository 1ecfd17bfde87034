package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/postgres/generated"
)

// CompanyFacts implements usecase.CompanyFacts over the companies table.
type CompanyFacts struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewCompanyFacts creates a new CompanyFacts.
func NewCompanyFacts(pool *pgxpool.Pool) *CompanyFacts {
	return &CompanyFacts{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// BaseCurrency returns the company's base currency code.
func (r *CompanyFacts) BaseCurrency(ctx context.Context, companyID string) (string, error) {
	row, err := r.queries.GetCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrCompanyNotFound
		}

		return "", err
	}

	return row.BaseCurrency, nil
}

// PolicyFlags returns the company's validation policy switches.
func (r *CompanyFacts) PolicyFlags(ctx context.Context, companyID string) (domain.PolicyFlags, error) {
	row, err := r.queries.GetCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PolicyFlags{}, domain.ErrCompanyNotFound
		}

		return domain.PolicyFlags{}, err
	}

	return domain.PolicyFlags{
		RequireCostCenterOnPL: row.RequireCostCenterOnPl,
	}, nil
}
