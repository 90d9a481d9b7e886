package repository

import (
	"inscovia/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Institute InstituteRepository
	Session   SessionRepository
	Center    CenterRepository
	Review    ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Institute: NewInstituteRepository(db, log),
		Session:   NewSessionRepository(db, log),
		Center:    NewCenterRepository(db, log),
		Review:    NewReviewRepository(db, log),
	}
}
