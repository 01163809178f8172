package entity

import "database/sql"

const (
	RoleMember = "Member"
	RoleOwner  = "Owner"
	RoleAdmin  = "Admin"
)

// User always carries at least one credential: a password hash, a third-party
// subject, or both.
type User struct {
	Base
	Email         string `gorm:"unique"`
	PasswordHash  sql.NullString
	Name          string
	AvatarURL     sql.NullString
	Role          string `gorm:"default:Member"`
	EmailVerified bool
	GoogleSubject sql.NullString `gorm:"unique"`
	LastLogin     sql.NullTime
}
