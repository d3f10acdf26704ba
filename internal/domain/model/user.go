package model

import "time"

// Role describes the access level of a registered user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User represents a registered customer of the storefront.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CancelCount  int64
	Blocked      bool
	CreatedAt    time.Time
}
