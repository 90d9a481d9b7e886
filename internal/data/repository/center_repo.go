package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inscovia/internal/data/entity"
	"inscovia/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CenterRepository interface {
	FindAll(ctx context.Context) ([]*entity.Center, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Center, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Center, error)
	FindByInstitute(ctx context.Context, instituteID uuid.UUID) ([]*entity.Center, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, center *entity.Center) error
	Update(ctx context.Context, center *entity.Center) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}

type centerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCenterRepository(db database.PgxIface, log *zap.Logger) CenterRepository {
	return &centerRepository{
		db:  db,
		log: log.With(zap.String("repository", "center")),
	}
}

const centerColumns = `
	id, institute_id, slug, name, category, secondary_categories, teaching_mode,
	state, city, district, location, description, rating, created_at, updated_at`

func scanCenter(row pgx.Row) (*entity.Center, error) {
	var c entity.Center
	var secondary []string
	err := row.Scan(
		&c.ID,
		&c.InstituteID,
		&c.Slug,
		&c.Name,
		&c.Category,
		&secondary,
		&c.TeachingMode,
		&c.State,
		&c.City,
		&c.District,
		&c.Location,
		&c.Description,
		&c.Rating,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.SecondaryCategories = toCategories(secondary)
	return &c, nil
}

func toCategories(values []string) []entity.Category {
	if len(values) == 0 {
		return nil
	}
	out := make([]entity.Category, len(values))
	for i, v := range values {
		out[i] = entity.Category(v)
	}
	return out
}

func fromCategories(values []entity.Category) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func (r *centerRepository) queryCenters(ctx context.Context, query string, args ...any) ([]*entity.Center, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var centers []*entity.Center
	for rows.Next() {
		c, err := scanCenter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan center row: %w", err)
		}
		centers = append(centers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachCourses(ctx, centers); err != nil {
		return nil, err
	}
	return centers, nil
}

// attachCourses loads the courses of all given centers in one query
func (r *centerRepository) attachCourses(ctx context.Context, centers []*entity.Center) error {
	if len(centers) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(centers))
	byID := make(map[uuid.UUID]*entity.Center, len(centers))
	for i, c := range centers {
		ids[i] = c.ID
		byID[c.ID] = c
	}

	query := `
		SELECT id, center_id, position, name, category, fee, duration
		FROM courses
		WHERE center_id = ANY($1)
		ORDER BY center_id, position
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load courses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var course entity.Course
		err := rows.Scan(
			&course.ID,
			&course.CenterID,
			&course.Position,
			&course.Name,
			&course.Category,
			&course.Fee,
			&course.Duration,
		)
		if err != nil {
			return fmt.Errorf("scan course row: %w", err)
		}
		if c, ok := byID[course.CenterID]; ok {
			c.Courses = append(c.Courses, course)
		}
	}

	return rows.Err()
}

func (r *centerRepository) FindAll(ctx context.Context) ([]*entity.Center, error) {
	query := `SELECT ` + centerColumns + `
		FROM centers
		WHERE deleted_at IS NULL
		ORDER BY created_at, id
	`

	centers, err := r.queryCenters(ctx, query)
	if err != nil {
		r.log.Error("Failed to find centers", zap.Error(err))
		return nil, fmt.Errorf("find all centers: %w", err)
	}

	return centers, nil
}

func (r *centerRepository) findOne(ctx context.Context, where string, arg any) (*entity.Center, error) {
	query := `SELECT ` + centerColumns + `
		FROM centers
		WHERE ` + where + ` AND deleted_at IS NULL
	`

	c, err := scanCenter(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachCourses(ctx, []*entity.Center{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *centerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Center, error) {
	c, err := r.findOne(ctx, "id = $1", id)
	if err != nil {
		r.log.Error("Failed to find center by ID",
			zap.Error(err),
			zap.String("center_id", id.String()),
		)
		return nil, fmt.Errorf("find center by ID %s: %w", id.String(), err)
	}
	return c, nil
}

func (r *centerRepository) FindBySlug(ctx context.Context, slug string) (*entity.Center, error) {
	c, err := r.findOne(ctx, "slug = $1", slug)
	if err != nil {
		r.log.Error("Failed to find center by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find center by slug %s: %w", slug, err)
	}
	return c, nil
}

func (r *centerRepository) FindByInstitute(ctx context.Context, instituteID uuid.UUID) ([]*entity.Center, error) {
	query := `SELECT ` + centerColumns + `
		FROM centers
		WHERE institute_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, id
	`

	centers, err := r.queryCenters(ctx, query, instituteID)
	if err != nil {
		r.log.Error("Failed to find centers by institute",
			zap.Error(err),
			zap.String("institute_id", instituteID.String()),
		)
		return nil, fmt.Errorf("find centers by institute %s: %w", instituteID.String(), err)
	}

	return centers, nil
}

func (r *centerRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM centers WHERE slug = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		r.log.Error("Failed to check slug", zap.Error(err), zap.String("slug", slug))
		return false, fmt.Errorf("check slug %s: %w", slug, err)
	}

	return exists, nil
}

func (r *centerRepository) Create(ctx context.Context, center *entity.Center) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO centers (id, institute_id, slug, name, category, secondary_categories,
			                     teaching_mode, state, city, district, location, description,
			                     rating, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`

		_, err := tx.Exec(ctx, query,
			center.ID,
			center.InstituteID,
			center.Slug,
			center.Name,
			center.Category,
			fromCategories(center.SecondaryCategories),
			center.TeachingMode,
			center.State,
			center.City,
			center.District,
			center.Location,
			center.Description,
			center.Rating,
			center.CreatedAt,
			center.UpdatedAt,
		)
		if err != nil {
			return err
		}

		return insertCourses(ctx, tx, center)
	})

	if err != nil {
		r.log.Error("Failed to create center",
			zap.Error(err),
			zap.String("center_id", center.ID.String()),
			zap.String("slug", center.Slug),
		)
		return fmt.Errorf("create center %s: %w", center.Slug, err)
	}

	return nil
}

// Update rewrites the center row and replaces its courses
func (r *centerRepository) Update(ctx context.Context, center *entity.Center) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE centers
			SET name = $2, category = $3, secondary_categories = $4, teaching_mode = $5,
			    state = $6, city = $7, district = $8, location = $9, description = $10,
			    updated_at = $11
			WHERE id = $1 AND deleted_at IS NULL
		`

		result, err := tx.Exec(ctx, query,
			center.ID,
			center.Name,
			center.Category,
			fromCategories(center.SecondaryCategories),
			center.TeachingMode,
			center.State,
			center.City,
			center.District,
			center.Location,
			center.Description,
			center.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("center %s not found", center.ID.String())
		}

		if _, err := tx.Exec(ctx, `DELETE FROM courses WHERE center_id = $1`, center.ID); err != nil {
			return err
		}

		return insertCourses(ctx, tx, center)
	})

	if err != nil {
		r.log.Error("Failed to update center",
			zap.Error(err),
			zap.String("center_id", center.ID.String()),
		)
		return fmt.Errorf("update center %s: %w", center.ID.String(), err)
	}

	return nil
}

func insertCourses(ctx context.Context, tx pgx.Tx, center *entity.Center) error {
	query := `
		INSERT INTO courses (id, center_id, position, name, category, fee, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for i := range center.Courses {
		course := &center.Courses[i]
		course.CenterID = center.ID
		course.Position = i
		if course.ID == uuid.Nil {
			course.ID = uuid.New()
		}

		_, err := tx.Exec(ctx, query,
			course.ID,
			course.CenterID,
			course.Position,
			course.Name,
			course.Category,
			course.Fee,
			course.Duration,
		)
		if err != nil {
			return fmt.Errorf("insert course %q: %w", course.Name, err)
		}
	}

	return nil
}

func (r *centerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE centers
		SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		r.log.Error("Failed to delete center",
			zap.Error(err),
			zap.String("center_id", id.String()),
		)
		return fmt.Errorf("delete center %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("center %s not found", id.String())
	}

	r.log.Info("Center deleted", zap.String("center_id", id.String()))
	return nil
}

func (r *centerRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	query := `
		UPDATE centers
		SET rating = $2
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, rating)
	if err != nil {
		r.log.Error("Failed to update center rating",
			zap.Error(err),
			zap.String("center_id", id.String()),
			zap.Float64("rating", rating),
		)
		return fmt.Errorf("update rating for center %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("center %s not found", id.String())
	}

	return nil
}
