package auth_test

import (
	"context"
	"testing"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/auth"
)

func TestSoDPolicy(t *testing.T) {
	t.Parallel()

	policy := auth.NewSoDPolicy()

	tests := []struct {
		name             string
		action           domain.Action
		role             domain.Role
		allowed          bool
		requiresApproval bool
	}{
		{
			name:    "admin posts journals",
			action:  domain.ActionPostJournal,
			role:    domain.RoleAdmin,
			allowed: true,
		},
		{
			name:    "manager posts journals",
			action:  domain.ActionPostJournal,
			role:    domain.RoleManager,
			allowed: true,
		},
		{
			name:             "accountant journals escalate",
			action:           domain.ActionPostJournal,
			role:             domain.RoleAccountant,
			allowed:          true,
			requiresApproval: true,
		},
		{
			name:    "accountant invoices do not escalate",
			action:  domain.ActionPostInvoice,
			role:    domain.RoleAccountant,
			allowed: true,
		},
		{
			name:    "accountant payments do not escalate",
			action:  domain.ActionPostPayment,
			role:    domain.RoleAccountant,
			allowed: true,
		},
		{
			name:    "auditor may not post",
			action:  domain.ActionPostJournal,
			role:    domain.RoleAuditor,
			allowed: false,
		},
		{
			name:    "accountant may not cancel",
			action:  domain.ActionCancelVoucher,
			role:    domain.RoleAccountant,
			allowed: false,
		},
		{
			name:    "manager cancels",
			action:  domain.ActionCancelVoucher,
			role:    domain.RoleManager,
			allowed: true,
		},
		{
			name:    "unknown role denied",
			action:  domain.ActionPostJournal,
			role:    domain.Role("superuser"),
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := policy.CheckSegregationOfDuties(context.Background(), tt.action, tt.role)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if decision.Allowed != tt.allowed {
				t.Fatalf("Allowed = %v, want %v (%s)", decision.Allowed, tt.allowed, decision.Reason)
			}

			if decision.RequiresApproval != tt.requiresApproval {
				t.Fatalf("RequiresApproval = %v, want %v", decision.RequiresApproval, tt.requiresApproval)
			}

			if !decision.Allowed && decision.Reason == "" {
				t.Fatal("denials must carry a reason")
			}

			if decision.RequiresApproval && len(decision.ApproverRoles) == 0 {
				t.Fatal("escalations must name approver roles")
			}
		})
	}
}
