package models

import "time"

// UserRole identifies the kind of account a token belongs to
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleParent UserRole = "parent"
	RoleChild  UserRole = "child"
)

// ChildStatus marks whether a child account is usable
type ChildStatus string

const (
	ChildActive   ChildStatus = "Active"
	ChildInactive ChildStatus = "Inactive"
)

// Parent represents a parent account
type Parent struct {
	ParentID     string    `json:"parent_id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Child represents a child account owned by exactly one parent
type Child struct {
	ChildID      string      `json:"child_id"`
	ParentID     string      `json:"parent_id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	BirthDate    *time.Time  `json:"birth_date,omitempty"`
	Nickname     string      `json:"nickname,omitempty"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Status       ChildStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Profile is the role-shaped view of an account returned by the API
type Profile struct {
	UserID    string     `json:"user_id"`
	Username  string     `json:"username"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      UserRole   `json:"role"`
	Email     string     `json:"email,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Nickname  string     `json:"nickname,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
