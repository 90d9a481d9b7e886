package wire

import (
	"inscovia/internal/adaptor"
	"inscovia/internal/data/repository"
	"inscovia/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireChat(
	r chi.Router,
	chatHandler *adaptor.ChatHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// POST /api/chat - AI recommendations grounded on the directory
	r.Post("/api/chat", chatHandler.Chat)
}
