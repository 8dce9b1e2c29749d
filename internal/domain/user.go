package domain

type Role string

const (
	RoleOrganiser Role = "organiser"
	RoleCustomer  Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleOrganiser || r == RoleCustomer
}

type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

type Organiser struct {
	User
}

type Customer struct {
	User
}

// Profile is the signup input shared by organisers and customers.
type Profile struct {
	Name     string
	Email    string
	Username string
	Password string
}
