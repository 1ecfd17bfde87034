package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/counterbook/counterbook/internal/domain"
)

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	Validate(ctx context.Context, j *domain.Journal) (*domain.JournalValidation, error)
}

// JournalHandler handles journal validation requests.
type JournalHandler struct {
	journals JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journals JournalService) *JournalHandler {
	return &JournalHandler{journals: journals}
}

// Validate checks a proposed journal without posting anything. Business
// failures come back as findings in a 200 response.
func (h *JournalHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var j domain.Journal
	if err := json.NewDecoder(r.Body).Decode(&j); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	applyAuthenticatedUser(r, &j.Context)

	validation, err := h.journals.Validate(r.Context(), &j)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to validate journal", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, validation)
}
