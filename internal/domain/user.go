package domain

// Role gates access to farmer-only routes.
type Role string

const (
	RoleConsumer Role = "consumer"
	RoleFarmer   Role = "farmer"
)

// ValidRole reports whether r is a role the system knows about.
func ValidRole(r Role) bool {
	return r == RoleConsumer || r == RoleFarmer
}

// User is an account document. The authentication provider itself is
// external; the backend only resolves opaque bearer tokens to users and reads
// the role field for access-control routing.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
