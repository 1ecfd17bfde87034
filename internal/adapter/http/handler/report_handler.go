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

// TrialBalanceService defines the trial balance behavior needed by
// ReportHandler.
type TrialBalanceService interface {
	Compute(ctx context.Context, input usecase.TrialBalanceInput) (*domain.TrialBalance, error)
}

// BalanceSheetService defines the balance sheet behavior needed by
// ReportHandler.
type BalanceSheetService interface {
	Compute(ctx context.Context, input usecase.BalanceSheetInput) (*domain.BalanceSheet, error)
}

// ConsistencyService defines the ledger check behavior needed by
// ReportHandler.
type ConsistencyService interface {
	Check(ctx context.Context, companyID string, limit, offset int) (*domain.ConsistencyReport, error)
}

// ReportHandler serves financial statements and the ledger consistency
// check. Reports are cached below this layer; fresh=true bypasses the
// cache.
type ReportHandler struct {
	trialBalance TrialBalanceService
	balanceSheet BalanceSheetService
	consistency  ConsistencyService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(trialBalance TrialBalanceService, balanceSheet BalanceSheetService, consistency ConsistencyService) *ReportHandler {
	return &ReportHandler{
		trialBalance: trialBalance,
		balanceSheet: balanceSheet,
		consistency:  consistency,
	}
}

// TrialBalance builds the per-account aggregation for a date window.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	from, okFrom := parseDateQuery(r, "from")
	to, okTo := parseDateQuery(r, "to")
	if !okFrom || !okTo {
		writeError(w, http.StatusBadRequest, "missing report window", "from and to are required as YYYY-MM-DD")
		return
	}

	report, err := h.trialBalance.Compute(r.Context(), usecase.TrialBalanceInput{
		CompanyID:   companyID,
		FromDate:    from,
		ToDate:      to,
		IncludeZero: parseBoolQuery(r, "include_zero"),
		Fresh:       parseBoolQuery(r, "fresh"),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute trial balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// BalanceSheet builds the classified statement of position. as_of
// defaults to today; compare adds a second statement for an earlier
// date.
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	fresh := parseBoolQuery(r, "fresh")

	asOf, ok := parseDateQuery(r, "as_of")
	if !ok {
		asOf = time.Now().UTC().Truncate(24 * time.Hour)
	}

	current, err := h.balanceSheet.Compute(r.Context(), usecase.BalanceSheetInput{
		CompanyID: companyID,
		AsOf:      asOf,
		Fresh:     fresh,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balance sheet", err.Error())
		return
	}

	compare, hasCompare := parseDateQuery(r, "compare")
	if !hasCompare {
		writeJSON(w, http.StatusOK, current)
		return
	}

	comparative, err := h.balanceSheet.Compute(r.Context(), usecase.BalanceSheetInput{
		CompanyID: companyID,
		AsOf:      compare,
		Fresh:     fresh,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute comparative balance sheet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ComparativeBalanceSheetResponse{
		Current:     current,
		Comparative: comparative,
	})
}

// Consistency re-sums every voucher and reports the ones whose sides
// do not net to zero.
func (h *ReportHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	limit := parseIntQuery(r, "limit", 0)
	offset := parseIntQuery(r, "offset", 0)

	report, err := h.consistency.Check(r.Context(), companyID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to run consistency check", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}
