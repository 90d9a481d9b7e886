package response

type ChatResponse struct {
	Reply   string           `json:"reply"`
	Centers []CenterResponse `json:"centers"`
	Source  string           `json:"source"` // "model" or "fallback"
}
