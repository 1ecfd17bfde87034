package domain

// User is the acting principal extracted from an authenticated request.
type User struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

// Role represents a user's posting authority.
type Role string

const (
	// RoleAdmin has full access to all operations
	RoleAdmin Role = "admin"

	// RoleManager can post and approve any voucher, and cancel vouchers
	RoleManager Role = "manager"

	// RoleAccountant can post vouchers; some actions escalate to approval
	RoleAccountant Role = "accountant"

	// RoleAuditor can only read reports, no postings
	RoleAuditor Role = "auditor"
)

// Valid roles
var validRoles = map[Role]bool{
	RoleAdmin:      true,
	RoleManager:    true,
	RoleAccountant: true,
	RoleAuditor:    true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanPost checks if the role may submit postings at all
func (r Role) CanPost() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleAccountant
}

// CanApprove checks if the role may approve escalated postings
func (r Role) CanApprove() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanCancel checks if the role may cancel posted vouchers
func (r Role) CanCancel() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanViewReports checks if the role can read reports
func (r Role) CanViewReports() bool {
	return r.IsValid()
}

// Action names a posting operation subject to segregation-of-duties policy.
type Action string

const (
	ActionPostJournal   Action = "post_journal"
	ActionPostInvoice   Action = "post_invoice"
	ActionPostPayment   Action = "post_payment"
	ActionCancelVoucher Action = "cancel_voucher"
)

// SoDDecision is the outcome of a segregation-of-duties check.
type SoDDecision struct {
	Allowed          bool
	RequiresApproval bool
	Reason           string
	ApproverRoles    []Role
}
