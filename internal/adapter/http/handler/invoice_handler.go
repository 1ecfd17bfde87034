package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/counterbook/counterbook/internal/adapter/http/dto"
	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/usecase"
)

// InvoicePostingService defines the behavior needed by InvoiceHandler.
type InvoicePostingService interface {
	PostInvoice(ctx context.Context, inv *domain.Invoice, post bool) (*usecase.PostDocumentResult, error)
}

// InvoiceHandler translates invoices into posted vouchers.
type InvoiceHandler struct {
	posting InvoicePostingService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(posting InvoicePostingService) *InvoiceHandler {
	return &InvoiceHandler{posting: posting}
}

// Post builds the invoice journal and submits it as a voucher. A failed
// build or a rejected voucher comes back as data in a 200 response.
func (h *InvoiceHandler) Post(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, true)
}

// Preview builds and validates the invoice journal without posting.
func (h *InvoiceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, false)
}

func (h *InvoiceHandler) post(w http.ResponseWriter, r *http.Request, post bool) {
	var inv domain.Invoice
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	applyAuthenticatedUser(r, &inv.Context)

	result, err := h.posting.PostInvoice(r.Context(), &inv, post)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to post invoice", err.Error())
		return
	}

	status := http.StatusOK
	if result.Submit != nil && result.Submit.Posted {
		status = http.StatusCreated
	}

	writeJSON(w, status, dto.PostResultFromUseCase(result))
}
