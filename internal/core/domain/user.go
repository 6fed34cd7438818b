package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleBroker = "broker"
)

// User models an authenticated dashboard actor: an admin or a brokerage
// operator scoped to their own book of business.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	BrokerID     string    `json:"broker_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
