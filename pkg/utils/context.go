package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	InstituteIDKey contextKey = "institute_id"
	SessionIDKey   contextKey = "session_id"
)

func GetInstituteIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	val := ctx.Value(InstituteIDKey)
	if val == nil {
		return uuid.Nil, false
	}

	id, ok := val.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}

	return id, true
}

// GetSessionIDFromContext returns the session (token jti) of the authenticated request
func GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	val := ctx.Value(SessionIDKey)
	if val == nil {
		return uuid.Nil, false
	}

	id, ok := val.(uuid.UUID)
	return id, ok
}

func SetAuthContext(ctx context.Context, instituteID, sessionID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, InstituteIDKey, instituteID)
	ctx = context.WithValue(ctx, SessionIDKey, sessionID)
	return ctx
}
