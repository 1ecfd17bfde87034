package dto

import (
	"time"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/usecase"
)

// AccountResponse represents a chart-of-accounts entry in API responses.
type AccountResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	RootType      domain.RootType    `json:"root_type"`
	Kind          domain.AccountKind `json:"kind"`
	Category      string             `json:"category,omitempty"`
	Currency      string             `json:"currency,omitempty"`
	IsGroup       bool               `json:"is_group"`
	IsActive      bool               `json:"is_active"`
	IsFrozen      bool               `json:"is_frozen"`
	BalanceMustBe domain.BalanceSide `json:"balance_must_be,omitempty"`
	ParentID      string             `json:"parent_id,omitempty"`
	Depth         int                `json:"depth"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		CompanyID:     a.CompanyID,
		Code:          a.Code,
		Name:          a.Name,
		RootType:      a.RootType,
		Kind:          a.Kind,
		Category:      a.Category,
		Currency:      a.Currency,
		IsGroup:       a.IsGroup,
		IsActive:      a.IsActive,
		IsFrozen:      a.IsFrozen,
		BalanceMustBe: a.BalanceMustBe,
		ParentID:      a.ParentID,
		Depth:         a.Depth,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse lists a company's accounts with the paging used.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

// ListEntriesResponse lists ledger entries with the paging used.
type ListEntriesResponse struct {
	Entries []*domain.LedgerEntry `json:"entries"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

// SubmitVoucherResponse reports a voucher submission outcome. Voucher
// is set only when the submission posted.
type SubmitVoucherResponse struct {
	Posted           bool                      `json:"posted"`
	Voucher          *domain.VoucherRecord     `json:"voucher,omitempty"`
	RequiresApproval bool                      `json:"requires_approval,omitempty"`
	ApproverRoles    []domain.Role             `json:"approver_roles,omitempty"`
	Validation       *domain.VoucherValidation `json:"validation"`
}

// SubmitResultFromUseCase converts a submit result to a response.
func SubmitResultFromUseCase(res *usecase.SubmitVoucherResult) *SubmitVoucherResponse {
	if res == nil {
		return nil
	}

	return &SubmitVoucherResponse{
		Posted:           res.Posted,
		Voucher:          res.Record,
		RequiresApproval: res.RequiresApproval,
		ApproverRoles:    res.ApproverRoles,
		Validation:       res.Validation,
	}
}

// PostDocumentResponse reports an invoice or payment posting outcome.
// Submit is absent when the build failed or a preview was requested.
type PostDocumentResponse struct {
	Build  *domain.PostingResult  `json:"build"`
	Submit *SubmitVoucherResponse `json:"submit,omitempty"`
}

// PostResultFromUseCase converts a document posting result to a response.
func PostResultFromUseCase(res *usecase.PostDocumentResult) *PostDocumentResponse {
	if res == nil {
		return nil
	}

	return &PostDocumentResponse{
		Build:  res.Build,
		Submit: SubmitResultFromUseCase(res.Submit),
	}
}

// ComparativeBalanceSheetResponse pairs a balance sheet with an earlier
// one for side-by-side reading.
type ComparativeBalanceSheetResponse struct {
	Current     *domain.BalanceSheet `json:"current"`
	Comparative *domain.BalanceSheet `json:"comparative"`
}

// AuditLogResponse represents one audit trail record in API responses.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Action       string      `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	IPAddress    string      `json:"ip_address,omitempty"`
	UserAgent    string      `json:"user_agent,omitempty"`
	RequestID    string      `json:"request_id,omitempty"`
	BeforeState  domain.JSON `json:"before_state,omitempty"`
	AfterState   domain.JSON `json:"after_state,omitempty"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogFromDomain converts a domain audit log to a response.
func AuditLogFromDomain(l *domain.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		IPAddress:    l.IPAddress,
		UserAgent:    l.UserAgent,
		RequestID:    l.RequestID,
		BeforeState:  l.BeforeState,
		AfterState:   l.AfterState,
		Status:       l.Status,
		ErrorMessage: l.ErrorMessage,
		CreatedAt:    l.CreatedAt,
	}
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = AuditLogFromDomain(l)
	}
	return result
}

// ListAuditLogsResponse lists audit records with the paging used.
type ListAuditLogsResponse struct {
	Logs   []*AuditLogResponse `json:"logs"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
