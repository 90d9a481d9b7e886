package response

import (
	"time"

	"inscovia/internal/data/entity"
)

type AuthResponse struct {
	InstituteID string    `json:"institute_id"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	IsVerified  bool      `json:"is_verified"`
}

type InstituteResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// OTPSentResponse never contains the code itself
type OTPSentResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func InstituteToResponse(institute *entity.Institute) InstituteResponse {
	return InstituteResponse{
		ID:         institute.ID.String(),
		Name:       institute.Name,
		Email:      institute.Email,
		Phone:      institute.Phone,
		IsVerified: institute.EmailVerified,
		CreatedAt:  institute.CreatedAt,
	}
}

func AuthToResponse(institute *entity.Institute, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		InstituteID: institute.ID.String(),
		Token:       token,
		ExpiresAt:   expiresAt,
		Name:        institute.Name,
		Email:       institute.Email,
		IsVerified:  institute.EmailVerified,
	}
}
