package auth

import (
	"context"
	"fmt"

	"github.com/counterbook/counterbook/internal/domain"
)

// SoDPolicy is the static segregation-of-duties policy. Auditors never
// post, accountants post but free-form journal entries escalate to a
// manager approval, and only managers and admins cancel posted
// vouchers. Document-backed postings (invoices, payments) do not
// escalate: their shape is already constrained by the builders.
type SoDPolicy struct{}

// NewSoDPolicy creates the static policy.
func NewSoDPolicy() *SoDPolicy {
	return &SoDPolicy{}
}

// CheckSegregationOfDuties implements usecase.AuthorizationPolicy.
func (p *SoDPolicy) CheckSegregationOfDuties(ctx context.Context, action domain.Action, role domain.Role) (domain.SoDDecision, error) {
	if !role.IsValid() {
		return domain.SoDDecision{
			Reason: fmt.Sprintf("unknown role %q", role),
		}, nil
	}

	if action == domain.ActionCancelVoucher {
		if !role.CanCancel() {
			return domain.SoDDecision{
				Reason: fmt.Sprintf("role %s may not cancel vouchers", role),
			}, nil
		}

		return domain.SoDDecision{Allowed: true}, nil
	}

	if !role.CanPost() {
		return domain.SoDDecision{
			Reason: fmt.Sprintf("role %s may not post", role),
		}, nil
	}

	if action == domain.ActionPostJournal && role == domain.RoleAccountant {
		return domain.SoDDecision{
			Allowed:          true,
			RequiresApproval: true,
			Reason:           "free-form journal entries by accountants require approval",
			ApproverRoles:    []domain.Role{domain.RoleManager, domain.RoleAdmin},
		}, nil
	}

	return domain.SoDDecision{Allowed: true}, nil
}
