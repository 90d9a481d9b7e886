package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inscovia/internal/data/entity"
	"inscovia/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type InstituteRepository interface {
	Create(ctx context.Context, institute *entity.Institute) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Institute, error)
	FindByEmail(ctx context.Context, email string) (*entity.Institute, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type instituteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInstituteRepository(db database.PgxIface, log *zap.Logger) InstituteRepository {
	return &instituteRepository{
		db:  db,
		log: log.With(zap.String("repository", "institute")),
	}
}

// Create inserts a new institute record into the database
func (r *instituteRepository) Create(ctx context.Context, institute *entity.Institute) error {
	query := `
		INSERT INTO institutes (id, name, email, password, phone,
		                        email_verified, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		institute.ID,
		institute.Name,
		institute.Email,
		institute.PasswordHash,
		institute.Phone,
		institute.EmailVerified,
		institute.IsActive,
		institute.CreatedAt,
		institute.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create institute",
			zap.Error(err),
			zap.String("email", institute.Email),
		)
		return fmt.Errorf("create institute %s: %w", institute.Email, err)
	}

	return nil
}

func (r *instituteRepository) findOne(ctx context.Context, where string, arg any) (*entity.Institute, error) {
	query := `
		SELECT id, name, email, password, phone,
		       email_verified, is_active, created_at, updated_at, deleted_at
		FROM institutes
		WHERE ` + where + ` AND deleted_at IS NULL
	`

	var institute entity.Institute
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&institute.ID,
		&institute.Name,
		&institute.Email,
		&institute.PasswordHash,
		&institute.Phone,
		&institute.EmailVerified,
		&institute.IsActive,
		&institute.CreatedAt,
		&institute.UpdatedAt,
		&institute.DeletedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &institute, nil
}

func (r *instituteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Institute, error) {
	institute, err := r.findOne(ctx, "id = $1", id)
	if err != nil {
		r.log.Error("Failed to find institute by ID",
			zap.Error(err),
			zap.String("institute_id", id.String()),
		)
		return nil, fmt.Errorf("find institute by ID %s: %w", id.String(), err)
	}
	return institute, nil
}

// FindByEmail matches case-insensitively
func (r *instituteRepository) FindByEmail(ctx context.Context, email string) (*entity.Institute, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	institute, err := r.findOne(ctx, "LOWER(email) = $1", email)
	if err != nil {
		r.log.Error("Failed to find institute by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find institute by email %s: %w", email, err)
	}
	return institute, nil
}

func (r *instituteRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE institutes
		SET password = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		r.log.Error("Failed to update institute password",
			zap.Error(err),
			zap.String("institute_id", id.String()),
		)
		return fmt.Errorf("update password for institute %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("institute %s not found", id.String())
	}

	return nil
}
