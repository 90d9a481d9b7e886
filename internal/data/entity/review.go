package entity

import (
	"github.com/google/uuid"
)

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

type Review struct {
	BaseSimple
	CenterID  uuid.UUID `db:"center_id"`
	UserName  string    `db:"user_name"`
	UserEmail string    `db:"user_email"` // stored lower-cased
	Rating    int       `db:"rating"`     // 1-5
	Comment   string    `db:"comment"`
}
