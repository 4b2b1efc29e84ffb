package domain

type UserRole string

const (
	UserRoleRenter UserRole = "renter"
	UserRoleMitra  UserRole = "mitra"
)

// User is a read-only input owned by the identity collaborator. The booking
// core only needs it for existence and ownership checks plus notifications.
type User struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Phone string   `json:"phone"`
	Role  UserRole `json:"role"`
}
