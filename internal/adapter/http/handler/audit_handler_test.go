package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/counterbook/counterbook/internal/adapter/http/dto"
	"github.com/counterbook/counterbook/internal/domain"
)

type auditServiceStub struct {
	listFn       func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	byResourceFn func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

func (s *auditServiceStub) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	return s.listFn(ctx, filter)
}

func (s *auditServiceStub) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	return s.byResourceFn(ctx, resourceType, resourceID)
}

func TestAuditHandler_List(t *testing.T) {
	var captured domain.AuditFilter
	handler := NewAuditHandler(&auditServiceStub{
		listFn: func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
			captured = filter
			return []*domain.AuditLog{
				{ID: "a-1", UserID: "user-1", Action: "voucher.submit", ResourceType: "voucher", ResourceID: "v-1"},
			}, nil
		},
	})

	target := "/api/v1/audit?user_id=user-1&action=voucher.submit&start=2025-03-01&end=2025-03-31&limit=20&offset=40"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.UserID != "user-1" || captured.Action != "voucher.submit" {
		t.Fatalf("unexpected filter: %+v", captured)
	}
	if captured.Limit != 20 || captured.Offset != 40 {
		t.Fatalf("expected limit=20 offset=40, got %d/%d", captured.Limit, captured.Offset)
	}
	if captured.StartDate == nil || captured.StartDate.Format("2006-01-02") != "2025-03-01" {
		t.Fatalf("unexpected start date: %v", captured.StartDate)
	}
	// The end date covers the whole day named in the query.
	if captured.EndDate == nil || !captured.EndDate.After(time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC)) {
		t.Fatalf("expected inclusive end of day, got %v", captured.EndDate)
	}

	var resp dto.ListAuditLogsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Logs) != 1 || resp.Logs[0].Action != "voucher.submit" {
		t.Fatalf("unexpected logs payload: %+v", resp)
	}
}

func TestAuditHandler_List_NoFilters(t *testing.T) {
	handler := NewAuditHandler(&auditServiceStub{
		listFn: func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
			if filter.StartDate != nil || filter.EndDate != nil {
				t.Fatalf("expected no dates, got %+v", filter)
			}
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuditHandler_ByResource(t *testing.T) {
	handler := NewAuditHandler(&auditServiceStub{
		byResourceFn: func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
			if resourceType != "voucher" || resourceID != "v-1" {
				t.Fatalf("expected voucher/v-1, got %s/%s", resourceType, resourceID)
			}
			return []*domain.AuditLog{
				{ID: "a-2", Action: "voucher.cancel", ResourceType: resourceType, ResourceID: resourceID},
				{ID: "a-1", Action: "voucher.submit", ResourceType: resourceType, ResourceID: resourceID},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit/voucher/v-1", nil)
	req = setChiURLParams(req, []string{"resourceType", "resourceID"}, []string{"voucher", "v-1"})
	rec := httptest.NewRecorder()

	handler.ByResource(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []dto.AuditLogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].Action != "voucher.cancel" {
		t.Fatalf("unexpected trail payload: %+v", resp)
	}
}

func TestAuditHandler_ByResource_MissingParams(t *testing.T) {
	handler := NewAuditHandler(&auditServiceStub{
		byResourceFn: func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
			t.Fatal("GetByResourceID should not be called without both params")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit/voucher/", nil)
	req = setChiURLParam(req, "resourceType", "voucher")
	rec := httptest.NewRecorder()

	handler.ByResource(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
