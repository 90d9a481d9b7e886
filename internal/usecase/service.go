package usecase

import (
	"inscovia/internal/ai"
	"inscovia/internal/data/repository"
	"inscovia/internal/notify"
	"inscovia/internal/otp"
	"inscovia/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	Center CenterService
	Review ReviewService
	Chat   ChatService
}

// Deps are the process-wide collaborators shared by the services
type Deps struct {
	OTP       *otp.Registry
	Mailer    notify.Mailer
	Generator ai.Generator
}

func NewService(repo *repository.Repository, deps Deps, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, deps.OTP, deps.Mailer, config, log),
		Center: NewCenterService(repo, log),
		Review: NewReviewService(repo, log),
		Chat:   NewChatService(repo, deps.Generator, config, log),
	}
}
