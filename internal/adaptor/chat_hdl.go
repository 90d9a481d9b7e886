package adaptor

import (
	"net/http"

	"inscovia/internal/dto/request"
	"inscovia/internal/usecase"
	"inscovia/pkg/utils"

	"go.uber.org/zap"
)

type ChatHandler struct {
	service usecase.ChatService
	log     *zap.Logger
}

func NewChatHandler(service usecase.ChatService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With(zap.String("handler", "chat")),
	}
}

// Chat handles POST /api/chat (public)
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req request.ChatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Recommend(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "chat")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}
