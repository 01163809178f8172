package entity

import (
	"database/sql"
	"time"
)

// RefreshToken stores the SHA-256 hash of a refresh token, never the raw
// value. RevokedAt is set exactly once, on consumption, logout or bulk
// revocation.
type RefreshToken struct {
	Base
	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	TokenHash string `gorm:"unique"`
	ExpiresAt time.Time
	RevokedAt sql.NullTime
}
