package repository

import (
	"context"
	"errors"
	"fmt"

	"inscovia/internal/data/entity"
	"inscovia/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByCenterID(ctx context.Context, centerID uuid.UUID) ([]*entity.Review, error)
	ExistsByEmailAndCenter(ctx context.Context, email string, centerID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Ratings of every review on the center, for aggregation
	GetRatingsByCenter(ctx context.Context, centerID uuid.UUID) ([]int, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, center_id, user_name, user_email, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.CenterID,
		review.UserName,
		review.UserEmail,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("center_id", review.CenterID.String()),
			zap.String("user_email", review.UserEmail),
		)
		return fmt.Errorf("create review for center %s by %s: %w",
			review.CenterID.String(), review.UserEmail, err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, center_id, user_name, user_email, rating, comment, created_at
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.CenterID,
		&review.UserName,
		&review.UserEmail,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByCenterID(ctx context.Context, centerID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT id, center_id, user_name, user_email, rating, comment, created_at
		FROM reviews
		WHERE center_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, centerID)
	if err != nil {
		r.log.Error("Failed to find reviews by center ID",
			zap.Error(err),
			zap.String("center_id", centerID.String()),
		)
		return nil, fmt.Errorf("find reviews by center ID %s: %w", centerID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.CenterID,
			&review.UserName,
			&review.UserEmail,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) ExistsByEmailAndCenter(ctx context.Context, email string, centerID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE center_id = $1 AND user_email = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, centerID, email).Scan(&exists); err != nil {
		r.log.Error("Failed to check existing review",
			zap.Error(err),
			zap.String("center_id", centerID.String()),
			zap.String("user_email", email),
		)
		return false, fmt.Errorf("check review by %s for center %s: %w", email, centerID.String(), err)
	}

	return exists, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func (r *reviewRepository) GetRatingsByCenter(ctx context.Context, centerID uuid.UUID) ([]int, error) {
	query := `SELECT rating FROM reviews WHERE center_id = $1`

	rows, err := r.db.Query(ctx, query, centerID)
	if err != nil {
		r.log.Error("Failed to get center ratings",
			zap.Error(err),
			zap.String("center_id", centerID.String()),
		)
		return nil, fmt.Errorf("get ratings for center %s: %w", centerID.String(), err)
	}

	ratings, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("collect ratings for center %s: %w", centerID.String(), err)
	}

	return ratings, nil
}
