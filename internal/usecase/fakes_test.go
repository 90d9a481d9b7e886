package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"inscovia/internal/ai"
	"inscovia/internal/data/entity"
	"inscovia/internal/data/repository"
	"inscovia/internal/notify"

	"github.com/google/uuid"
)

// In-memory repositories backing the service tests

type fakeCenterRepo struct {
	mu      sync.Mutex
	centers []*entity.Center
	ratings map[uuid.UUID]float64
	failAll error
}

func newFakeCenterRepo(centers ...*entity.Center) *fakeCenterRepo {
	return &fakeCenterRepo{centers: centers, ratings: make(map[uuid.UUID]float64)}
}

func (r *fakeCenterRepo) live() []*entity.Center {
	out := make([]*entity.Center, 0, len(r.centers))
	for _, c := range r.centers {
		if c.DeletedAt == nil {
			out = append(out, c)
		}
	}
	return out
}

func (r *fakeCenterRepo) FindAll(ctx context.Context) ([]*entity.Center, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	return r.live(), nil
}

func (r *fakeCenterRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Center, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.live() {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCenterRepo) FindBySlug(ctx context.Context, slug string) (*entity.Center, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.live() {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCenterRepo) FindByInstitute(ctx context.Context, instituteID uuid.UUID) ([]*entity.Center, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Center
	for _, c := range r.live() {
		if c.IsOwnedBy(instituteID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCenterRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.centers {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCenterRepo) Create(ctx context.Context, center *entity.Center) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.centers = append(r.centers, center)
	return nil
}

func (r *fakeCenterRepo) Update(ctx context.Context, center *entity.Center) error {
	return nil
}

func (r *fakeCenterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.live() {
		if c.ID == id {
			now := time.Now()
			c.DeletedAt = &now
			return nil
		}
	}
	return errors.New("center not found")
}

func (r *fakeCenterRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.centers {
		if c.ID == id {
			c.Rating = rating
			r.ratings[id] = rating
			return nil
		}
	}
	return errors.New("center not found")
}

type fakeReviewRepo struct {
	mu        sync.Mutex
	reviews   []*entity.Review
	createErr error
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.ID == id {
			return rv, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) FindByCenterID(ctx context.Context, centerID uuid.UUID) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for _, rv := range r.reviews {
		if rv.CenterID == centerID {
			out = append(out, rv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeReviewRepo) ExistsByEmailAndCenter(ctx context.Context, email string, centerID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.CenterID == centerID && strings.EqualFold(rv.UserEmail, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rv := range r.reviews {
		if rv.ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return errors.New("review not found")
}

func (r *fakeReviewRepo) GetRatingsByCenter(ctx context.Context, centerID uuid.UUID) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int
	for _, rv := range r.reviews {
		if rv.CenterID == centerID {
			out = append(out, rv.Rating)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reviews)
}

type fakeInstituteRepo struct {
	mu         sync.Mutex
	institutes map[uuid.UUID]*entity.Institute
}

func newFakeInstituteRepo() *fakeInstituteRepo {
	return &fakeInstituteRepo{institutes: make(map[uuid.UUID]*entity.Institute)}
}

func (r *fakeInstituteRepo) Create(ctx context.Context, institute *entity.Institute) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.institutes[institute.ID] = institute
	return nil
}

func (r *fakeInstituteRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Institute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.institutes[id], nil
}

func (r *fakeInstituteRepo) FindByEmail(ctx context.Context, email string) (*entity.Institute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.institutes {
		if strings.EqualFold(i.Email, email) {
			return i, nil
		}
	}
	return nil, nil
}

func (r *fakeInstituteRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.institutes[id]
	if !ok {
		return errors.New("institute not found")
	}
	i.PasswordHash = passwordHash
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) FindValidSession(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.RevokedAt != nil || time.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	return s, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok && s.RevokedAt == nil {
		now := time.Now()
		s.RevokedAt = &now
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllInstituteSessions(ctx context.Context, instituteID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, s := range r.sessions {
		if s.InstituteID == instituteID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	return nil
}

func (r *fakeSessionRepo) active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.sessions {
		if s.RevokedAt == nil {
			n++
		}
	}
	return n
}

type fakes struct {
	centers    *fakeCenterRepo
	reviews    *fakeReviewRepo
	institutes *fakeInstituteRepo
	sessions   *fakeSessionRepo
}

func newFakeRepository(centers ...*entity.Center) (*repository.Repository, *fakes) {
	f := &fakes{
		centers:    newFakeCenterRepo(centers...),
		reviews:    &fakeReviewRepo{},
		institutes: newFakeInstituteRepo(),
		sessions:   newFakeSessionRepo(),
	}
	return &repository.Repository{
		Institute: f.institutes,
		Session:   f.sessions,
		Center:    f.centers,
		Review:    f.reviews,
	}, f
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []notify.OTPEmail
	err  error
}

func (m *recordingMailer) SendOTP(ctx context.Context, email notify.OTPEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *recordingMailer) last() notify.OTPEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type stubGenerator struct {
	reply  string
	err    error
	system string
	turns  []ai.Turn
}

func (g *stubGenerator) Generate(ctx context.Context, system string, history []ai.Turn, message string) (string, error) {
	g.system = system
	g.turns = history
	return g.reply, g.err
}
