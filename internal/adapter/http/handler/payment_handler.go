package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/counterbook/counterbook/internal/adapter/http/dto"
	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/usecase"
)

// PaymentPostingService defines the behavior needed by PaymentHandler.
type PaymentPostingService interface {
	PostPayment(ctx context.Context, pay *domain.Payment, post bool) (*usecase.PostDocumentResult, error)
}

// PaymentHandler translates payments into posted vouchers.
type PaymentHandler struct {
	posting PaymentPostingService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(posting PaymentPostingService) *PaymentHandler {
	return &PaymentHandler{posting: posting}
}

// Post builds the payment journal and submits it as a voucher. A failed
// build or a rejected voucher comes back as data in a 200 response.
func (h *PaymentHandler) Post(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, true)
}

// Preview builds and validates the payment journal without posting.
func (h *PaymentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, false)
}

func (h *PaymentHandler) post(w http.ResponseWriter, r *http.Request, post bool) {
	var pay domain.Payment
	if err := json.NewDecoder(r.Body).Decode(&pay); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	applyAuthenticatedUser(r, &pay.Context)

	result, err := h.posting.PostPayment(r.Context(), &pay, post)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to post payment", err.Error())
		return
	}

	status := http.StatusOK
	if result.Submit != nil && result.Submit.Posted {
		status = http.StatusCreated
	}

	writeJSON(w, status, dto.PostResultFromUseCase(result))
}
