package request

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=2000"`
}

type ChatRequest struct {
	Message string        `json:"message" validate:"required,min=1,max=1000"`
	History []ChatMessage `json:"history,omitempty" validate:"max=20,dive"`
}
