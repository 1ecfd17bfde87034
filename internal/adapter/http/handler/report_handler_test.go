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
	"github.com/counterbook/counterbook/internal/usecase"
)

type trialBalanceStub struct {
	computeFn func(ctx context.Context, input usecase.TrialBalanceInput) (*domain.TrialBalance, error)
}

func (s *trialBalanceStub) Compute(ctx context.Context, input usecase.TrialBalanceInput) (*domain.TrialBalance, error) {
	return s.computeFn(ctx, input)
}

type balanceSheetStub struct {
	computeFn func(ctx context.Context, input usecase.BalanceSheetInput) (*domain.BalanceSheet, error)
}

func (s *balanceSheetStub) Compute(ctx context.Context, input usecase.BalanceSheetInput) (*domain.BalanceSheet, error) {
	return s.computeFn(ctx, input)
}

type consistencyStub struct {
	checkFn func(ctx context.Context, companyID string, limit, offset int) (*domain.ConsistencyReport, error)
}

func (s *consistencyStub) Check(ctx context.Context, companyID string, limit, offset int) (*domain.ConsistencyReport, error) {
	return s.checkFn(ctx, companyID, limit, offset)
}

func TestReportHandler_TrialBalance(t *testing.T) {
	var captured usecase.TrialBalanceInput
	handler := NewReportHandler(&trialBalanceStub{
		computeFn: func(ctx context.Context, input usecase.TrialBalanceInput) (*domain.TrialBalance, error) {
			captured = input
			return &domain.TrialBalance{
				CompanyID: input.CompanyID,
				Currency:  "USD",
				FromDate:  input.FromDate,
				ToDate:    input.ToDate,
			}, nil
		},
	}, &balanceSheetStub{}, &consistencyStub{})

	target := "/api/v1/companies/co-1/reports/trial-balance?from=2025-01-01&to=2025-03-31&include_zero=true&fresh=true"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = setChiURLParam(req, "companyID", "co-1")
	rec := httptest.NewRecorder()

	handler.TrialBalance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.CompanyID != "co-1" {
		t.Fatalf("expected company co-1, got %s", captured.CompanyID)
	}
	if captured.FromDate.Format("2006-01-02") != "2025-01-01" || captured.ToDate.Format("2006-01-02") != "2025-03-31" {
		t.Fatalf("unexpected window: %s .. %s", captured.FromDate, captured.ToDate)
	}
	if !captured.IncludeZero || !captured.Fresh {
		t.Fatalf("expected include_zero and fresh to pass through, got %+v", captured)
	}

	var resp domain.TrialBalance
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CompanyID != "co-1" {
		t.Fatalf("unexpected report payload: %+v", resp)
	}
}

func TestReportHandler_TrialBalance_MissingWindow(t *testing.T) {
	handler := NewReportHandler(&trialBalanceStub{
		computeFn: func(ctx context.Context, input usecase.TrialBalanceInput) (*domain.TrialBalance, error) {
			t.Fatal("Compute should not be called without a window")
			return nil, nil
		},
	}, &balanceSheetStub{}, &consistencyStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies/co-1/reports/trial-balance?from=2025-01-01", nil)
	req = setChiURLParam(req, "companyID", "co-1")
	rec := httptest.NewRecorder()

	handler.TrialBalance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReportHandler_TrialBalance_CompanyNotFound(t *testing.T) {
	handler := NewReportHandler(&trialBalanceStub{
		computeFn: func(ctx context.Context, input usecase.TrialBalanceInput) (*domain.TrialBalance, error) {
			return nil, domain.ErrCompanyNotFound
		},
	}, &balanceSheetStub{}, &consistencyStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies/co-x/reports/trial-balance?from=2025-01-01&to=2025-03-31", nil)
	req = setChiURLParam(req, "companyID", "co-x")
	rec := httptest.NewRecorder()

	handler.TrialBalance(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestReportHandler_BalanceSheet(t *testing.T) {
	var captured usecase.BalanceSheetInput
	handler := NewReportHandler(&trialBalanceStub{}, &balanceSheetStub{
		computeFn: func(ctx context.Context, input usecase.BalanceSheetInput) (*domain.BalanceSheet, error) {
			captured = input
			return &domain.BalanceSheet{CompanyID: input.CompanyID, AsOf: input.AsOf}, nil
		},
	}, &consistencyStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies/co-1/reports/balance-sheet?as_of=2025-03-31", nil)
	req = setChiURLParam(req, "companyID", "co-1")
	rec := httptest.NewRecorder()

	handler.BalanceSheet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.AsOf.Format("2006-01-02") != "2025-03-31" {
		t.Fatalf("expected as_of 2025-03-31, got %s", captured.AsOf)
	}

	var resp domain.BalanceSheet
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CompanyID != "co-1" {
		t.Fatalf("unexpected sheet payload: %+v", resp)
	}
}

func TestReportHandler_BalanceSheet_Compare(t *testing.T) {
	var asOfs []time.Time
	handler := NewReportHandler(&trialBalanceStub{}, &balanceSheetStub{
		computeFn: func(ctx context.Context, input usecase.BalanceSheetInput) (*domain.BalanceSheet, error) {
			asOfs = append(asOfs, input.AsOf)
			return &domain.BalanceSheet{CompanyID: input.CompanyID, AsOf: input.AsOf}, nil
		},
	}, &consistencyStub{})

	target := "/api/v1/companies/co-1/reports/balance-sheet?as_of=2025-03-31&compare=2024-12-31"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = setChiURLParam(req, "companyID", "co-1")
	rec := httptest.NewRecorder()

	handler.BalanceSheet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(asOfs) != 2 {
		t.Fatalf("expected two computations, got %d", len(asOfs))
	}
	if asOfs[0].Format("2006-01-02") != "2025-03-31" || asOfs[1].Format("2006-01-02") != "2024-12-31" {
		t.Fatalf("unexpected as_of dates: %v", asOfs)
	}

	var resp dto.ComparativeBalanceSheetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Current == nil || resp.Comparative == nil {
		t.Fatalf("expected both sheets, got %+v", resp)
	}
	if resp.Comparative.AsOf.Format("2006-01-02") != "2024-12-31" {
		t.Fatalf("unexpected comparative date: %s", resp.Comparative.AsOf)
	}
}

func TestReportHandler_Consistency(t *testing.T) {
	handler := NewReportHandler(&trialBalanceStub{}, &balanceSheetStub{}, &consistencyStub{
		checkFn: func(ctx context.Context, companyID string, limit, offset int) (*domain.ConsistencyReport, error) {
			if companyID != "co-1" {
				t.Fatalf("expected company co-1, got %s", companyID)
			}
			return &domain.ConsistencyReport{CompanyID: companyID, VouchersChecked: 42}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies/co-1/ledger/consistency", nil)
	req = setChiURLParam(req, "companyID", "co-1")
	rec := httptest.NewRecorder()

	handler.Consistency(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.ConsistencyReport
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.VouchersChecked != 42 || !resp.Clean() {
		t.Fatalf("unexpected report payload: %+v", resp)
	}
}
