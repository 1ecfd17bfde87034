package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/counterbook/counterbook/internal/adapter/http/dto"
	"github.com/counterbook/counterbook/internal/domain"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// AuditHandler exposes the posting audit trail.
type AuditHandler struct {
	audit AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(audit AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List returns audit records matching the query filters, newest first.
// The end date is inclusive of the whole day.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.AuditFilter{
		UserID:       q.Get("user_id"),
		Action:       q.Get("action"),
		ResourceType: q.Get("resource_type"),
		ResourceID:   q.Get("resource_id"),
		Limit:        parseIntQuery(r, "limit", 0),
		Offset:       parseIntQuery(r, "offset", 0),
	}
	if start, ok := parseDateQuery(r, "start"); ok {
		filter.StartDate = &start
	}
	if end, ok := parseDateQuery(r, "end"); ok {
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	logs, err := h.audit.List(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAuditLogsResponse{
		Logs:   dto.AuditLogsFromDomain(logs),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// ByResource returns the full trail for one resource.
func (h *AuditHandler) ByResource(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, "resourceType")
	resourceID := chi.URLParam(r, "resourceID")
	if resourceType == "" || resourceID == "" {
		writeError(w, http.StatusBadRequest, "missing resource reference", "")
		return
	}

	logs, err := h.audit.GetByResourceID(r.Context(), resourceType, resourceID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get audit trail", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
