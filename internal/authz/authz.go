// Package authz is the single capability gate consulted before every
// core operation. Handlers never compare roles directly; they ask
// whether the principal's role may perform a named operation.
package authz

// Op names a core operation a principal may request.
type Op string

const (
	OpViewDashboard Op = "dashboard.view"
	OpCreateLoan    Op = "loan.create"
	OpSetLoanStatus Op = "loan.set_status"
	OpDeleteLoan    Op = "loan.delete"
	OpListLoans     Op = "loan.list"
	OpListReturns   Op = "return.list"
	OpManageItems   Op = "item.manage"
	OpManageMembers Op = "member.manage"
)

const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

var memberOps = map[Op]bool{
	OpViewDashboard: true,
	OpCreateLoan:    true,
}

// Allowed reports whether role may perform op. Admins may do
// everything; members only the self-service subset.
func Allowed(role string, op Op) bool {
	if role == RoleAdmin {
		return true
	}
	if role == RoleMember {
		return memberOps[op]
	}
	return false
}
