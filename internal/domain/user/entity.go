package user

type Role string

const (
	RoleAdmin    Role = "admin"    // Reviews corrections, manages allowlists and summaries
	RoleEmployee Role = "employee" // Punches and submits corrections
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Principal is the request-scoped identity carried by a verified token.
type Principal struct {
	UserID       string
	EmployeeID   string
	EmployeeCode string
	Role         Role
}

// IsAdmin checks if the principal may use administrator operations
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// HasEmployee checks if the principal is linked to an employee record
func (p Principal) HasEmployee() bool {
	return p.EmployeeID != "" && p.EmployeeCode != ""
}
