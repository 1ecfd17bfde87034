package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/counterbook/counterbook/internal/adapter/http/dto"
	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/usecase"
)

// VoucherValidatorService defines the validation behavior needed by
// VoucherHandler.
type VoucherValidatorService interface {
	Validate(ctx context.Context, vch *domain.Voucher) (*domain.VoucherValidation, error)
}

// VoucherPostingService defines the posting behavior needed by
// VoucherHandler.
type VoucherPostingService interface {
	SubmitVoucher(ctx context.Context, vch *domain.Voucher) (*usecase.SubmitVoucherResult, error)
	CancelVoucher(ctx context.Context, pctx domain.PostingContext, vtype domain.VoucherType, number string) (*domain.VoucherRecord, error)
}

// VoucherHandler handles voucher validation, submission and cancellation.
type VoucherHandler struct {
	validator VoucherValidatorService
	posting   VoucherPostingService
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(validator VoucherValidatorService, posting VoucherPostingService) *VoucherHandler {
	return &VoucherHandler{
		validator: validator,
		posting:   posting,
	}
}

// Validate checks a voucher without posting anything.
func (h *VoucherHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var vch domain.Voucher
	if err := json.NewDecoder(r.Body).Decode(&vch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	applyAuthenticatedUser(r, &vch.Context)

	validation, err := h.validator.Validate(r.Context(), &vch)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to validate voucher", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, validation)
}

// Submit validates a voucher and posts it when it passes. A rejected
// voucher is a business outcome, not a transport error: the findings
// come back in a 200 response with posted=false.
func (h *VoucherHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var vch domain.Voucher
	if err := json.NewDecoder(r.Body).Decode(&vch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	applyAuthenticatedUser(r, &vch.Context)

	result, err := h.posting.SubmitVoucher(r.Context(), &vch)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to submit voucher", err.Error())
		return
	}

	status := http.StatusOK
	if result.Posted {
		status = http.StatusCreated
	}

	writeJSON(w, status, dto.SubmitResultFromUseCase(result))
}

// Cancel marks a posted voucher cancelled. The voucher keeps its rows;
// reports simply stop counting them.
func (h *VoucherHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	vtype := domain.VoucherType(chi.URLParam(r, "type"))
	if !vtype.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown voucher type", string(vtype))
		return
	}

	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing voucher number", "")
		return
	}

	var req dto.CancelVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	applyAuthenticatedUser(r, &req.Context)

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid cancellation request", err.Error())
		return
	}

	record, err := h.posting.CancelVoucher(r.Context(), req.Context, vtype, number)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to cancel voucher", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}
