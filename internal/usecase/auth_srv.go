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
	"inscovia/internal/notify"
	"inscovia/internal/otp"
	"inscovia/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ClientInfo describes the caller of a login, stored on the session
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	// Registration is a two step flow: the OTP carries the pending account
	RegisterSendOTP(ctx context.Context, req *request.RegisterSendOTPRequest) (*response.OTPSentResponse, error)
	RegisterVerifyOTP(ctx context.Context, req *request.VerifyOTPRequest, client ClientInfo) (*response.AuthResponse, error)

	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	Me(ctx context.Context, instituteID uuid.UUID) (*response.InstituteResponse, error)

	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error

	// Bare email verification codes
	SendOTP(ctx context.Context, req *request.SendOTPRequest) (*response.OTPSentResponse, error)
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error
}

type pendingRegistration struct {
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
}

type authService struct {
	repo   *repository.Repository
	otps   *otp.Registry
	mailer notify.Mailer
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	otps *otp.Registry,
	mailer notify.Mailer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		otps:   otps,
		mailer: mailer,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) RegisterSendOTP(ctx context.Context, req *request.RegisterSendOTPRequest) (*response.OTPSentResponse, error) {
	// 1. Validate input
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	email := normalizeEmail(req.Email)

	// 2. Email must be free
	existing, err := s.repo.Institute.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s: %w", email, ErrConflict)
	}

	// 3. Hash now so the plain password never sits in memory
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	pending := pendingRegistration{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
	}

	// 4. Issue and deliver
	return s.issueAndSend(ctx, otp.PurposeRegistration, email, pending.Name, pending)
}

func (s *authService) RegisterVerifyOTP(ctx context.Context, req *request.VerifyOTPRequest, client ClientInfo) (*response.AuthResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	email := normalizeEmail(req.Email)

	payload, err := s.otps.Verify(otp.Key(otp.PurposeRegistration, email), req.OTP)
	if err != nil {
		s.log.Warn("Registration OTP rejected", zap.String("email", email))
		return nil, err
	}

	pending, ok := payload.(pendingRegistration)
	if !ok {
		return nil, errors.New("registration payload missing")
	}

	// someone may have registered the same email while the code was live
	existing, err := s.repo.Institute.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s: %w", email, ErrConflict)
	}

	now := time.Now()
	institute := &entity.Institute{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          pending.Name,
		Email:         pending.Email,
		PasswordHash:  pending.PasswordHash,
		Phone:         pending.Phone,
		EmailVerified: true,
		IsActive:      true,
	}

	if err := s.repo.Institute.Create(ctx, institute); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("email %s: %w", email, ErrConflict)
		}
		return nil, fmt.Errorf("create institute: %w", err)
	}

	s.log.Info("Institute registered",
		zap.String("institute_id", institute.ID.String()),
		zap.String("email", institute.Email),
	)

	return s.startSession(ctx, institute, client)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validate
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	email := normalizeEmail(req.Email)

	// 2. Find institute
	institute, err := s.repo.Institute.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find institute: %w", err)
	}
	if institute == nil {
		s.log.Warn("Institute not found for login", zap.String("email", email))
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, institute.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("institute_id", institute.ID.String()))
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	// 4. Check if institute is active
	if !institute.IsActive {
		s.log.Warn("Inactive institute tried to login", zap.String("institute_id", institute.ID.String()))
		return nil, fmt.Errorf("account is deactivated: %w", ErrForbidden)
	}

	resp, err := s.startSession(ctx, institute, client)
	if err != nil {
		return nil, err
	}

	s.log.Info("Institute logged in", zap.String("institute_id", institute.ID.String()))
	return resp, nil
}

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.repo.Session.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("Institute logged out", zap.String("session_id", sessionID.String()))
	return nil
}

func (s *authService) Me(ctx context.Context, instituteID uuid.UUID) (*response.InstituteResponse, error) {
	institute, err := s.repo.Institute.FindByID(ctx, instituteID)
	if err != nil {
		return nil, fmt.Errorf("find institute: %w", err)
	}
	if institute == nil {
		return nil, fmt.Errorf("institute %s: %w", instituteID.String(), ErrNotFound)
	}

	resp := response.InstituteToResponse(institute)
	return &resp, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	email := normalizeEmail(req.Email)

	institute, err := s.repo.Institute.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find institute: %w", err)
	}
	if institute == nil || !institute.IsActive {
		// same answer as success so emails cannot be enumerated
		s.log.Info("Password reset requested for unknown email", zap.String("email", email))
		return nil
	}

	_, err = s.issueAndSend(ctx, otp.PurposePasswordReset, email, institute.Name, institute.ID)
	return err
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	email := normalizeEmail(req.Email)

	payload, err := s.otps.Verify(otp.Key(otp.PurposePasswordReset, email), req.OTP)
	if err != nil {
		s.log.Warn("Password reset OTP rejected", zap.String("email", email))
		return err
	}

	instituteID, ok := payload.(uuid.UUID)
	if !ok {
		return errors.New("password reset payload missing")
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.Institute.UpdatePassword(ctx, instituteID, hashedPassword); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.repo.Session.RevokeAllInstituteSessions(ctx, instituteID); err != nil {
		s.log.Warn("Failed to revoke sessions after password reset",
			zap.Error(err),
			zap.String("institute_id", instituteID.String()),
		)
	}

	s.log.Info("Password reset", zap.String("institute_id", instituteID.String()))
	return nil
}

func (s *authService) SendOTP(ctx context.Context, req *request.SendOTPRequest) (*response.OTPSentResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	email := normalizeEmail(req.Email)
	return s.issueAndSend(ctx, otp.PurposeEmailVerification, email, strings.TrimSpace(req.Name), nil)
}

func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	email := normalizeEmail(req.Email)
	if _, err := s.otps.Verify(otp.Key(otp.PurposeEmailVerification, email), req.OTP); err != nil {
		s.log.Warn("Email verification OTP rejected", zap.String("email", email))
		return err
	}

	s.log.Info("Email verified", zap.String("email", email))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) issueAndSend(ctx context.Context, purpose otp.Purpose, email, name string, payload any) (*response.OTPSentResponse, error) {
	code, expiresAt, err := s.otps.Issue(otp.Key(purpose, email), payload)
	if err != nil {
		return nil, fmt.Errorf("issue otp: %w", err)
	}

	err = s.mailer.SendOTP(ctx, notify.OTPEmail{
		To:        email,
		Name:      name,
		Code:      code,
		Purpose:   purpose,
		ExpiresIn: time.Until(expiresAt).Round(time.Minute),
	})
	if err != nil {
		return nil, fmt.Errorf("deliver otp: %w", err)
	}

	s.log.Info("OTP sent",
		zap.String("email", email),
		zap.String("purpose", string(purpose)),
		zap.Time("expires_at", expiresAt),
	)

	return &response.OTPSentResponse{Email: email, ExpiresAt: expiresAt}, nil
}

func (s *authService) startSession(ctx context.Context, institute *entity.Institute, client ClientInfo) (*response.AuthResponse, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		InstituteID: institute.ID,
		ExpiresAt:   now.Add(time.Duration(s.config.JWT.ExpiryHours) * time.Hour),
	}
	if client.UserAgent != "" {
		session.UserAgent = &client.UserAgent
	}
	if client.IPAddress != "" {
		session.IPAddress = &client.IPAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := utils.GenerateToken(s.config.JWT.Secret, institute.ID, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	resp := response.AuthToResponse(institute, token, session.ExpiresAt)
	return &resp, nil
}
