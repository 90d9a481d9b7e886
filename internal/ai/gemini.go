// Package ai wraps the Gemini model used for center recommendations.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inscovia/pkg/utils"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

var ErrNotConfigured = errors.New("ai model not configured")

type Turn struct {
	FromUser bool
	Text     string
}

// Generator produces a reply for a conversation under a system instruction
type Generator interface {
	Generate(ctx context.Context, system string, history []Turn, message string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewGenerator returns a Gemini-backed Generator, or a disabled one when no API key is set
func NewGenerator(ctx context.Context, config utils.AIConfig, log *zap.Logger) (Generator, error) {
	log = log.With(zap.String("component", "gemini"))

	if config.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, chat answers use the built-in fallback")
		return disabled{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &geminiGenerator{client: client, model: model, log: log}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, system string, history []Turn, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.Role(genai.RoleModel)
		if turn.FromUser {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
	})
	if err != nil {
		g.log.Error("Gemini request failed", zap.Error(err), zap.String("model", g.model))
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}

type disabled struct{}

func (disabled) Generate(context.Context, string, []Turn, string) (string, error) {
	return "", ErrNotConfigured
}
