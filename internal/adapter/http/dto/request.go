package dto

import (
	"fmt"

	"github.com/counterbook/counterbook/internal/domain"
)

// Journals, vouchers, invoices and payments decode straight into their
// domain types; those carry the canonical wire field names. The types
// here cover requests with no domain counterpart.

// CancelVoucherRequest asks to cancel a posted voucher. The voucher
// type and number come from the URL.
type CancelVoucherRequest struct {
	Context domain.PostingContext `json:"context"`
	Reason  string                `json:"reason,omitempty"`
}

// Validate checks the fields the URL cannot supply.
func (r *CancelVoucherRequest) Validate() error {
	if r.Context.CompanyID == "" {
		return fmt.Errorf("%w: context.company_id is required", domain.ErrInvalidInput)
	}

	if r.Context.UserID == "" {
		return fmt.Errorf("%w: context.user_id is required", domain.ErrInvalidInput)
	}

	return nil
}
