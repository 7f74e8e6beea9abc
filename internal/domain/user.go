package domain

type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleSeller UserRole = "SELLER"
	UserRoleBuyer  UserRole = "BUYER"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusBlocked UserStatus = "BLOCKED"
)

type User struct {
	ID           int32      `json:"id"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phone_number"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	CompanyName  string     `json:"company_name,omitempty"`
	AvatarURL    string     `json:"avatar_url"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedOn    string     `json:"created_on"`
	UpdatedOn    string     `json:"updated_on"`
}
