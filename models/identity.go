package models

// Roles carried in the identity token.
const (
	RoleCustomer  = "customer"
	RoleCollector = "collector"
	RoleAdmin     = "admin"
)

// Requester is the authenticated caller of a booking operation.
type Requester struct {
	UserID string
	Role   string
}

func (r Requester) IsAdmin() bool     { return r.Role == RoleAdmin }
func (r Requester) IsCollector() bool { return r.Role == RoleCollector }

// Staff are collectors and admins.
func (r Requester) IsStaff() bool { return r.IsAdmin() || r.IsCollector() }

// Actor is the name written into status history.
func (r Requester) Actor() string {
	if r.UserID == "" {
		return "system"
	}
	return r.Role + ":" + r.UserID
}
