package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session backs an issued JWT; its ID is the token's jti so logout can revoke it
type Session struct {
	BaseSimple
	InstituteID uuid.UUID  `db:"institute_id"`
	UserAgent   *string    `db:"user_agent"`
	IPAddress   *string    `db:"ip_address"`
	ExpiresAt   time.Time  `db:"expires_at"`
	RevokedAt   *time.Time `db:"revoked_at"`
}
