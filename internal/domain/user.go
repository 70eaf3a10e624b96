package domain

type UserRole string

const (
	UserRoleRenter UserRole = "RENTER"
	UserRoleVendor UserRole = "VENDOR"
)

type User struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	Name        string   `json:"name"`
	Role        UserRole `json:"role"`
	CreatedOn   string   `json:"created_on"`
	UpdatedOn   string   `json:"updated_on"`
}
