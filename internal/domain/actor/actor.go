package actor

import "strings"

type Role string

const (
	RoleAdmin           Role = "ADMIN"
	RoleBranchManager   Role = "BRANCH_MANAGER"
	RoleLoanOfficer     Role = "LOAN_OFFICER"
	RoleCustomerService Role = "CUSTOMER_SERVICE"
)

// Actor is the already-authenticated caller. The HTTP boundary builds it
// from the bearer token; usecases only read it.
type Actor struct {
	ID   string
	Role Role
}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleBranchManager, RoleLoanOfficer, RoleCustomerService:
		return r, true
	}
	return "", false
}

// CanDecide reports whether the role may approve/reject loans, verify
// documents and move loans through disbursement/closure.
func (r Role) CanDecide() bool {
	switch r {
	case RoleAdmin, RoleBranchManager, RoleLoanOfficer:
		return true
	}
	return false
}

// StaffRoles lists the roles allowed through staff-only routes.
func StaffRoles() []Role {
	return []Role{RoleAdmin, RoleBranchManager, RoleLoanOfficer}
}
