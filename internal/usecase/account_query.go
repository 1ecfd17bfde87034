package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/counterbook/counterbook/internal/domain"
)

// AccountQueryUseCase serves chart-of-accounts reads and point-in-time
// account positions for the API surface. It never mutates accounts.
type AccountQueryUseCase struct {
	accounts AccountDirectory
	ledger   LedgerQuery
}

// NewAccountQueryUseCase creates a new AccountQueryUseCase.
func NewAccountQueryUseCase(accounts AccountDirectory, ledger LedgerQuery) *AccountQueryUseCase {
	return &AccountQueryUseCase{
		accounts: accounts,
		ledger:   ledger,
	}
}

// Get retrieves one account by id.
func (uc *AccountQueryUseCase) Get(ctx context.Context, id string) (*domain.Account, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}

	return uc.accounts.GetAccount(ctx, id)
}

// ListByCompany lists a company's accounts, code order, paginated.
func (uc *AccountQueryUseCase) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.Account, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: company id is required", domain.ErrInvalidInput)
	}

	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.accounts.ListByCompany(ctx, companyID, limit, offset)
}

// AccountBalance is the position of one account as of a date, computed
// from non-cancelled postings.
type AccountBalance struct {
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	CompanyID   string          `json:"company_id"`
	Currency    string          `json:"currency"`
	AsOf        time.Time       `json:"as_of"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	// Balance is total debit minus total credit, signed.
	Balance decimal.Decimal `json:"balance"`
	// Side is the side the net balance falls on; a zero balance
	// reports the account's expected side.
	Side domain.BalanceSide `json:"side"`
}

// BalanceAsOf computes an account's cumulative position through the
// end of asOf.
func (uc *AccountQueryUseCase) BalanceAsOf(ctx context.Context, companyID, accountID string, asOf time.Time) (*AccountBalance, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: company id is required", domain.ErrInvalidInput)
	}

	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}

	acc, err := uc.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	total, err := uc.ledger.AccountTotals(ctx, companyID, accountID, asOf)
	if err != nil {
		return nil, err
	}

	balance := total.Debit.Sub(total.Credit)

	side := domain.SideDebit
	switch {
	case balance.IsNegative():
		side = domain.SideCredit
	case balance.IsZero() && acc.BalanceMustBe != "":
		side = acc.BalanceMustBe
	}

	return &AccountBalance{
		AccountID:   acc.ID,
		AccountCode: acc.Code,
		AccountName: acc.Name,
		CompanyID:   companyID,
		Currency:    acc.Currency,
		AsOf:        asOf,
		TotalDebit:  total.Debit,
		TotalCredit: total.Credit,
		Balance:     balance,
		Side:        side,
	}, nil
}

// Entries lists an account's non-cancelled postings through upTo,
// oldest first, paginated.
func (uc *AccountQueryUseCase) Entries(ctx context.Context, companyID, accountID string, upTo time.Time, limit, offset int) ([]*domain.LedgerEntry, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: company id is required", domain.ErrInvalidInput)
	}

	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}

	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.ledger.EntriesForAccount(ctx, companyID, accountID, upTo, limit, offset)
}
