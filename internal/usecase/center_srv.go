package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"inscovia/internal/data/entity"
	"inscovia/internal/data/repository"
	"inscovia/internal/dto/request"
	"inscovia/internal/dto/response"
	"inscovia/internal/search"
	"inscovia/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CenterService interface {
	// Public endpoints
	ListCenters(ctx context.Context, q search.Query, page *request.PaginatedRequest) (*response.CenterListResponse, error)
	GetCenter(ctx context.Context, idOrSlug string) (*response.CenterResponse, error)
	FilterOptions(ctx context.Context) (*response.FilterOptionsResponse, error)

	// Institute dashboard
	ListInstituteCenters(ctx context.Context, instituteID uuid.UUID) ([]response.CenterResponse, error)
	CreateCenter(ctx context.Context, instituteID uuid.UUID, req *request.CenterRequest) (*response.CenterResponse, error)
	UpdateCenter(ctx context.Context, instituteID uuid.UUID, centerID string, req *request.CenterRequest) (*response.CenterResponse, error)
	DeleteCenter(ctx context.Context, instituteID uuid.UUID, centerID string) error
}

type centerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCenterService(repo *repository.Repository, log *zap.Logger) CenterService {
	return &centerService{
		repo: repo,
		log:  log.With(zap.String("service", "center")),
	}
}

func (s *centerService) ListCenters(ctx context.Context, q search.Query, page *request.PaginatedRequest) (*response.CenterListResponse, error) {
	centers, err := s.repo.Center.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list centers: %w", err)
	}

	filtered := search.Filter(centers, q)
	resp := &response.CenterListResponse{Count: len(filtered)}

	if page != nil {
		meta := response.NewPaginationMeta(page.Page, page.Limit(), int64(len(filtered)))
		resp.Pagination = &meta

		start, end := utils.PageBounds(page.Page, page.Limit(), len(filtered))
		filtered = filtered[start:end]
	}

	resp.Centers = response.CentersToResponse(filtered)

	s.log.Debug("Centers listed",
		zap.Int("total", len(centers)),
		zap.Int("matched", resp.Count),
		zap.Bool("filtered", !q.IsEmpty()),
	)

	return resp, nil
}

// GetCenter returns nil without error when nothing matches
func (s *centerService) GetCenter(ctx context.Context, idOrSlug string) (*response.CenterResponse, error) {
	var (
		center *entity.Center
		err    error
	)

	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		center, err = s.repo.Center.FindByID(ctx, id)
	} else {
		center, err = s.repo.Center.FindBySlug(ctx, strings.ToLower(idOrSlug))
	}
	if err != nil {
		return nil, fmt.Errorf("get center %s: %w", idOrSlug, err)
	}
	if center == nil {
		return nil, nil
	}

	resp := response.CenterToResponse(center)
	return &resp, nil
}

func (s *centerService) FilterOptions(ctx context.Context) (*response.FilterOptionsResponse, error) {
	centers, err := s.repo.Center.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("filter options: %w", err)
	}

	seen := make(map[string]bool)
	states := []string{}
	for _, c := range centers {
		if c.State != "" && !seen[c.State] {
			seen[c.State] = true
			states = append(states, c.State)
		}
	}
	sort.Strings(states)

	buckets := make([]string, len(search.PriceRanges))
	for i, pr := range search.PriceRanges {
		buckets[i] = pr.Token
	}

	return &response.FilterOptionsResponse{
		Categories:    entity.Categories,
		TeachingModes: []entity.TeachingMode{entity.TeachingModeOnline, entity.TeachingModeOffline, entity.TeachingModeHybrid},
		PriceRanges:   buckets,
		States:        states,
	}, nil
}

func (s *centerService) ListInstituteCenters(ctx context.Context, instituteID uuid.UUID) ([]response.CenterResponse, error) {
	centers, err := s.repo.Center.FindByInstitute(ctx, instituteID)
	if err != nil {
		return nil, fmt.Errorf("list institute centers: %w", err)
	}
	return response.CentersToResponse(centers), nil
}

func (s *centerService) CreateCenter(ctx context.Context, instituteID uuid.UUID, req *request.CenterRequest) (*response.CenterResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create center validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	now := time.Now()
	center := &entity.Center{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		InstituteID: &instituteID,
	}
	if err := applyCenterRequest(center, req); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, center.Name, center.ID)
	if err != nil {
		return nil, err
	}
	center.Slug = slug

	if err := s.repo.Center.Create(ctx, center); err != nil {
		return nil, fmt.Errorf("create center: %w", err)
	}

	s.log.Info("Center created",
		zap.String("center_id", center.ID.String()),
		zap.String("institute_id", instituteID.String()),
		zap.String("slug", center.Slug),
	)

	resp := response.CenterToResponse(center)
	return &resp, nil
}

func (s *centerService) UpdateCenter(ctx context.Context, instituteID uuid.UUID, centerID string, req *request.CenterRequest) (*response.CenterResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update center validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	center, err := s.findOwned(ctx, instituteID, centerID)
	if err != nil {
		return nil, err
	}

	if err := applyCenterRequest(center, req); err != nil {
		return nil, err
	}
	center.UpdatedAt = time.Now()

	if err := s.repo.Center.Update(ctx, center); err != nil {
		return nil, fmt.Errorf("update center: %w", err)
	}

	s.log.Info("Center updated",
		zap.String("center_id", center.ID.String()),
		zap.String("institute_id", instituteID.String()),
	)

	resp := response.CenterToResponse(center)
	return &resp, nil
}

func (s *centerService) DeleteCenter(ctx context.Context, instituteID uuid.UUID, centerID string) error {
	center, err := s.findOwned(ctx, instituteID, centerID)
	if err != nil {
		return err
	}

	if err := s.repo.Center.Delete(ctx, center.ID); err != nil {
		return fmt.Errorf("delete center: %w", err)
	}

	s.log.Info("Center deleted",
		zap.String("center_id", center.ID.String()),
		zap.String("institute_id", instituteID.String()),
	)
	return nil
}

// ==================== HELPER METHODS ====================

func (s *centerService) findOwned(ctx context.Context, instituteID uuid.UUID, centerID string) (*entity.Center, error) {
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
	if !center.IsOwnedBy(instituteID) {
		s.log.Warn("Center ownership check failed",
			zap.String("center_id", centerID),
			zap.String("institute_id", instituteID.String()),
		)
		return nil, fmt.Errorf("center %s belongs to another institute: %w", centerID, ErrForbidden)
	}

	return center, nil
}

func (s *centerService) uniqueSlug(ctx context.Context, name string, id uuid.UUID) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "center"
	}

	candidates := []string{base, base + "-" + id.String()[:8], base + "-" + id.String()}
	for _, slug := range candidates {
		exists, err := s.repo.Center.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return slug, nil
		}
	}
	return "", fmt.Errorf("slug %s: %w", base, ErrConflict)
}

// applyCenterRequest copies validated input onto center and enforces the category invariants
func applyCenterRequest(center *entity.Center, req *request.CenterRequest) error {
	category, ok := entity.ParseCategory(req.Category)
	if !ok {
		return validationError("category", "Unknown category")
	}

	mode, ok := entity.ParseTeachingMode(req.TeachingMode)
	if !ok {
		return validationError("teachingMode", "Unknown teaching mode")
	}

	secondary := make([]entity.Category, 0, len(req.SecondaryCategories))
	for _, raw := range req.SecondaryCategories {
		sc, ok := entity.ParseCategory(raw)
		if !ok {
			return validationError("secondaryCategories", fmt.Sprintf("Unknown category %s", raw))
		}
		secondary = append(secondary, sc)
	}

	courses := make([]entity.Course, 0, len(req.Courses))
	for i, cr := range req.Courses {
		cc, ok := entity.ParseCategory(cr.Category)
		if !ok {
			return validationError(fmt.Sprintf("courses[%d].category", i), "Unknown category")
		}
		courses = append(courses, entity.Course{
			Position: i,
			Name:     strings.TrimSpace(cr.Name),
			Category: cc,
			Fee:      cr.Fee,
			Duration: cr.Duration,
		})
	}

	center.Name = strings.TrimSpace(req.Name)
	center.Category = category
	center.SecondaryCategories = secondary
	center.TeachingMode = mode
	center.State = strings.TrimSpace(req.State)
	center.City = strings.TrimSpace(req.City)
	center.District = strings.TrimSpace(req.District)
	center.Location = strings.TrimSpace(req.Location)
	center.Description = strings.TrimSpace(req.Description)
	center.Courses = courses

	if err := center.Validate(); err != nil {
		var ferr *entity.FieldError
		if errors.As(err, &ferr) {
			return validationError(ferr.Field, ferr.Err.Error())
		}
		return validationError("center", err.Error())
	}
	return nil
}
