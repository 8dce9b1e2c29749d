package domain

// Session identifies the logged-in user for one façade call.
type Session struct {
	UserID   int    `json:"userId"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (s Session) IsOrganiser() bool { return s.Role == RoleOrganiser && s.UserID > 0 }
func (s Session) IsCustomer() bool  { return s.Role == RoleCustomer && s.UserID > 0 }
