// Package otp keeps short-lived one-time codes in process memory.
//
// A code is issued per key, overwrites whatever was issued for that key before,
// and is consumed by the first successful Verify. Expired codes are removed lazily
// by Verify and eagerly by Sweep.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultTTL           = 10 * time.Minute
	DefaultSweepInterval = 10 * time.Minute

	codeMin = 100000
	codeMax = 999999
)

// ErrInvalidOrExpired is returned for a missing, expired or mismatched code alike
var ErrInvalidOrExpired = errors.New("invalid or expired OTP")

// Purpose namespaces codes so a registration code cannot reset a password
type Purpose string

const (
	PurposeRegistration      Purpose = "registration"
	PurposePasswordReset     Purpose = "password_reset"
	PurposeEmailVerification Purpose = "email_verification"
)

// Key builds the registry key for an email and purpose
func Key(purpose Purpose, email string) string {
	return string(purpose) + ":" + strings.ToLower(strings.TrimSpace(email))
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock
var SystemClock Clock = systemClock{}

type record struct {
	code      string
	expiresAt time.Time
	payload   any
}

type Registry struct {
	mu       sync.Mutex
	records  map[string]record
	ttl      time.Duration
	clock    Clock
	generate func() (string, error)
	log      *zap.Logger
}

type Option func(*Registry)

func WithClock(c Clock) Option {
	return func(r *Registry) { r.clock = c }
}

func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithGenerator replaces the random code source
func WithGenerator(fn func() (string, error)) Option {
	return func(r *Registry) { r.generate = fn }
}

func NewRegistry(log *zap.Logger, opts ...Option) *Registry {
	r := &Registry{
		records:  make(map[string]record),
		ttl:      DefaultTTL,
		clock:    SystemClock,
		generate: GenerateCode,
		log:      log.With(zap.String("component", "otp_registry")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GenerateCode returns a uniformly random code in [100000, 999999]
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// Issue stores a fresh code for key, replacing any live one
func (r *Registry) Issue(key string, payload any) (string, time.Time, error) {
	code, err := r.generate()
	if err != nil {
		return "", time.Time{}, err
	}

	expiresAt := r.clock.Now().Add(r.ttl)

	r.mu.Lock()
	_, replaced := r.records[key]
	r.records[key] = record{code: code, expiresAt: expiresAt, payload: payload}
	r.mu.Unlock()

	r.log.Debug("OTP issued",
		zap.String("key", key),
		zap.Bool("replaced", replaced),
		zap.Time("expires_at", expiresAt),
	)

	return code, expiresAt, nil
}

// Verify consumes the code for key and returns the payload it was issued with
func (r *Registry) Verify(key, code string) (any, error) {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[key]
	if !ok {
		return nil, ErrInvalidOrExpired
	}

	if !now.Before(rec.expiresAt) {
		delete(r.records, key)
		r.log.Debug("OTP expired on verify", zap.String("key", key))
		return nil, ErrInvalidOrExpired
	}

	if subtle.ConstantTimeCompare([]byte(rec.code), []byte(code)) != 1 {
		return nil, ErrInvalidOrExpired
	}

	delete(r.records, key)
	return rec.payload, nil
}

// Sweep removes every expired record and reports how many were dropped
func (r *Registry) Sweep() int {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, rec := range r.records {
		if !now.Before(rec.expiresAt) {
			delete(r.records, key)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Run sweeps every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Info("Expired OTPs swept", zap.Int("removed", n))
			}
		}
	}
}
