package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile is an account row. PasswordHash never leaves the storage layer
// except for credential checks in the auth service.
type Profile struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    *string   `json:"first_name"`
	LastName     *string   `json:"last_name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the verified caller extracted from a session token.
type Identity struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
