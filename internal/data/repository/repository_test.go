package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"inscovia/internal/data/entity"
	"inscovia/internal/data/seed"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestReviewRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock, zap.NewNop())

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		CenterID:   uuid.New(),
		UserName:   "Asha",
		UserEmail:  "asha@example.com",
		Rating:     5,
		Comment:    "Great teachers and labs",
	}

	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(review.ID, review.CenterID, review.UserName, review.UserEmail,
			review.Rating, review.Comment, review.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), review))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_CreateWrapsError(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock, zap.NewNop())

	boom := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO reviews").WithArgs(anyArgs(7)...).WillReturnError(boom)

	err := repo.Create(context.Background(), &entity.Review{UserEmail: "a@x.com"})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ExistsByEmailAndCenter(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock, zap.NewNop())
	centerID := uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(centerID, "a@x.com").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmailAndCenter(context.Background(), "a@x.com", centerID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetRatingsByCenter(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock, zap.NewNop())
	centerID := uuid.New()

	mock.ExpectQuery("SELECT rating FROM reviews").
		WithArgs(centerID).
		WillReturnRows(mock.NewRows([]string{"rating"}).AddRow(4).AddRow(5).AddRow(3))

	ratings, err := repo.GetRatingsByCenter(context.Background(), centerID)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 3}, ratings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_FindByIDNoRows(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectQuery("FROM reviews").WithArgs(id).WillReturnError(pgx.ErrNoRows)

	review, err := repo.FindByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, review)
}

func TestReviewRepository_DeleteMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewReviewRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec("DELETE FROM reviews").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)
	assert.ErrorContains(t, err, "not found")
}

func TestCenterRepository_CreateWritesCoursesInTransaction(t *testing.T) {
	mock := newMock(t)
	repo := NewCenterRepository(mock, zap.NewNop())
	center := seed.Centers()[0]

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO centers").WithArgs(anyArgs(15)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, course := range center.Courses {
		mock.ExpectExec("INSERT INTO courses").
			WithArgs(course.ID, center.ID, course.Position, course.Name, course.Category, course.Fee, course.Duration).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), center))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCenterRepository_CreateRollsBackOnCourseFailure(t *testing.T) {
	mock := newMock(t)
	repo := NewCenterRepository(mock, zap.NewNop())
	center := seed.Centers()[0]

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO centers").WithArgs(anyArgs(15)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO courses").WithArgs(anyArgs(7)...).WillReturnError(errors.New("check constraint"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), center)
	assert.ErrorContains(t, err, "check constraint")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCenterRepository_FindBySlugNoRows(t *testing.T) {
	mock := newMock(t)
	repo := NewCenterRepository(mock, zap.NewNop())

	mock.ExpectQuery("FROM centers").WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	center, err := repo.FindBySlug(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, center)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCenterRepository_UpdateRating(t *testing.T) {
	mock := newMock(t)
	repo := NewCenterRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec("UPDATE centers").
		WithArgs(id, 4.0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdateRating(context.Background(), id, 4.0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCenterRepository_DeleteIsSoft(t *testing.T) {
	mock := newMock(t)
	repo := NewCenterRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec("UPDATE centers\\s+SET deleted_at").
		WithArgs(id, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_RevokeAlreadyRevoked(t *testing.T) {
	mock := newMock(t)
	repo := NewSessionRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec("UPDATE sessions").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Revoke(context.Background(), id)
	assert.ErrorContains(t, err, "already revoked")
}

func TestInstituteRepository_FindByEmailLowercases(t *testing.T) {
	mock := newMock(t)
	repo := NewInstituteRepository(mock, zap.NewNop())

	mock.ExpectQuery("FROM institutes").
		WithArgs("owner@example.com").
		WillReturnError(pgx.ErrNoRows)

	institute, err := repo.FindByEmail(context.Background(), "  Owner@Example.com ")
	assert.NoError(t, err)
	assert.Nil(t, institute)
	assert.NoError(t, mock.ExpectationsWereMet())
}
