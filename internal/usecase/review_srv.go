package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inscovia/internal/data/entity"
	"inscovia/internal/data/repository"
	"inscovia/internal/dto/request"
	"inscovia/internal/dto/response"
	"inscovia/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type ReviewService interface {
	// Public endpoints
	CreateReview(ctx context.Context, centerID string, req *request.CreateReviewRequest) (*response.CreateReviewResponse, error)
	GetCenterReviews(ctx context.Context, centerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)

	// Institute dashboard
	DeleteReview(ctx context.Context, instituteID uuid.UUID, reviewID string) error
}

type reviewService struct {
	repo  *repository.Repository
	locks *keyedMutex
	log   *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:  repo,
		locks: newKeyedMutex(),
		log:   log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, centerID string, req *request.CreateReviewRequest) (*response.CreateReviewResponse, error) {
	// Validate request
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	center, err := s.findCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))

	// duplicate check, insert and recompute run under the center lock
	unlock := s.locks.Lock(center.ID)
	defer unlock()

	exists, err := s.repo.Review.ExistsByEmailAndCenter(ctx, email, center.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		s.log.Warn("Duplicate review rejected",
			zap.String("center_id", center.ID.String()),
			zap.String("user_email", email),
		)
		return nil, fmt.Errorf("review by %s for this center: %w", email, ErrConflict)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		CenterID:  center.ID,
		UserName:  strings.TrimSpace(req.UserName),
		UserEmail: email,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("review by %s for this center: %w", email, ErrConflict)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	rating, err := s.recomputeRating(ctx, center.ID)
	if err != nil {
		s.log.Warn("Failed to update center rating",
			zap.Error(err),
			zap.String("center_id", center.ID.String()),
		)
		rating = center.Rating
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("center_id", center.ID.String()),
		zap.Int("rating", review.Rating),
		zap.Float64("center_rating", rating),
	)

	return &response.CreateReviewResponse{
		Review:       response.ReviewToResponse(review),
		CenterRating: rating,
	}, nil
}

func (s *reviewService) GetCenterReviews(ctx context.Context, centerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	center, err := s.findCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByCenterID(ctx, center.ID)
	if err != nil {
		return nil, fmt.Errorf("get center reviews: %w", err)
	}

	total := len(reviews)
	start, end := utils.PageBounds(req.Page, req.Limit(), total)

	out := make([]response.ReviewResponse, 0, end-start)
	for _, review := range reviews[start:end] {
		out = append(out, response.ReviewToResponse(review))
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), int64(total)), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, instituteID uuid.UUID, reviewID string) error {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}

	center, err := s.repo.Center.FindByID(ctx, review.CenterID)
	if err != nil {
		return fmt.Errorf("find center: %w", err)
	}
	if center == nil || !center.IsOwnedBy(instituteID) {
		return fmt.Errorf("review %s is not on one of your centers: %w", reviewID, ErrForbidden)
	}

	unlock := s.locks.Lock(center.ID)
	defer unlock()

	if err := s.repo.Review.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if _, err := s.recomputeRating(ctx, center.ID); err != nil {
		s.log.Warn("Failed to update center rating",
			zap.Error(err),
			zap.String("center_id", center.ID.String()),
		)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("center_id", center.ID.String()),
		zap.String("institute_id", instituteID.String()),
	)
	return nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) findCenter(ctx context.Context, centerID string) (*entity.Center, error) {
	id, err := uuid.Parse(centerID)
	if err != nil {
		return nil, fmt.Errorf("center %s: %w", centerID, ErrNotFound)
	}

	center, err := s.repo.Center.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find center: %w", err)
	}
	if center == nil {
		return nil, fmt.Errorf("center %s: %w", centerID, ErrNotFound)
	}
	return center, nil
}

// recomputeRating must be called with the center lock held
func (s *reviewService) recomputeRating(ctx context.Context, centerID uuid.UUID) (float64, error) {
	ratings, err := s.repo.Review.GetRatingsByCenter(ctx, centerID)
	if err != nil {
		return 0, fmt.Errorf("get ratings: %w", err)
	}

	rating := Average(ratings)
	if err := s.repo.Center.UpdateRating(ctx, centerID, rating); err != nil {
		return 0, fmt.Errorf("update center rating: %w", err)
	}

	s.log.Debug("Center rating updated",
		zap.String("center_id", centerID.String()),
		zap.Int("reviews", len(ratings)),
		zap.Float64("new_rating", rating),
	)

	return rating, nil
}
