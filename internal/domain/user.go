package domain

import "time"

// Role represents a user's role on the platform.
type Role string

const (
	RoleCustomer  Role = "CUSTOMER"
	RoleAdmin     Role = "ADMIN"
	RoleInventory Role = "INVENTORY"
	RoleFinance   Role = "FINANCE"
	RoleMarketing Role = "MARKETING"
	RoleRental    Role = "RENTAL"
	RoleGearHost  Role = "GEAR_HOST"
)

// User represents a registered user in the system.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
