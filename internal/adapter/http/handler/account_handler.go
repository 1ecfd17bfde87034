package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/counterbook/counterbook/internal/adapter/http/dto"
	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Get(ctx context.Context, id string) (*domain.Account, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*domain.Account, error)
	BalanceAsOf(ctx context.Context, companyID, accountID string, asOf time.Time) (*usecase.AccountBalance, error)
	Entries(ctx context.Context, companyID, accountID string, upTo time.Time, limit, offset int) ([]*domain.LedgerEntry, error)
}

// AccountHandler handles chart-of-accounts reads.
type AccountHandler struct {
	accounts AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Balance returns an account's cumulative position as of a date.
// as_of defaults to today.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	companyID := r.URL.Query().Get("company")
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "missing company", "the company query parameter is required")
		return
	}

	asOf, ok := parseDateQuery(r, "as_of")
	if !ok {
		asOf = time.Now().UTC().Truncate(24 * time.Hour)
	}

	balance, err := h.accounts.BalanceAsOf(r.Context(), companyID, id, asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute account balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, balance)
}

// Entries lists an account's postings through a date, oldest first.
func (h *AccountHandler) Entries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	companyID := r.URL.Query().Get("company")
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "missing company", "the company query parameter is required")
		return
	}

	upTo, ok := parseDateQuery(r, "up_to")
	if !ok {
		upTo = time.Now().UTC().Truncate(24 * time.Hour)
	}

	limit := parseIntQuery(r, "limit", 0)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.accounts.Entries(r.Context(), companyID, id, upTo, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: entries,
		Limit:   limit,
		Offset:  offset,
	})
}

// ListByCompany lists a company's accounts in code order.
func (h *AccountHandler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	limit := parseIntQuery(r, "limit", 0)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accounts.ListByCompany(r.Context(), companyID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Limit:    limit,
		Offset:   offset,
	})
}
