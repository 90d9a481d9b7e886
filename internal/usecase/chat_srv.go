package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"inscovia/internal/ai"
	"inscovia/internal/data/entity"
	"inscovia/internal/data/repository"
	"inscovia/internal/dto/request"
	"inscovia/internal/dto/response"
	"inscovia/internal/search"
	"inscovia/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultChatCandidates = 5
	minKeywordLength      = 3

	ReplySourceModel    = "model"
	ReplySourceFallback = "fallback"
)

const chatSystemPrompt = `You are the Inscovia assistant. Inscovia is a directory of training centers in India.
Recommend centers only from the CANDIDATES list below and never invent centers, fees or ratings.
Mention the center name, city and the most relevant course with its fee when one is listed.
If none of the candidates fit the question, say so and suggest refining the search.
Keep answers under 150 words.`

type ChatService interface {
	Recommend(ctx context.Context, req *request.ChatRequest) (*response.ChatResponse, error)
}

type chatService struct {
	repo          *repository.Repository
	generator     ai.Generator
	maxCandidates int
	log           *zap.Logger
}

func NewChatService(repo *repository.Repository, generator ai.Generator, config *utils.Config, log *zap.Logger) ChatService {
	maxCandidates := config.AI.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = defaultChatCandidates
	}

	return &chatService{
		repo:          repo,
		generator:     generator,
		maxCandidates: maxCandidates,
		log:           log.With(zap.String("service", "chat")),
	}
}

func (s *chatService) Recommend(ctx context.Context, req *request.ChatRequest) (*response.ChatResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	centers, err := s.repo.Center.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load centers: %w", err)
	}

	candidates := selectCandidates(centers, req.Message, s.maxCandidates)

	history := make([]ai.Turn, 0, len(req.History))
	for _, msg := range req.History {
		history = append(history, ai.Turn{FromUser: msg.Role == "user", Text: msg.Content})
	}

	resp := &response.ChatResponse{
		Centers: response.CentersToResponse(candidates),
		Source:  ReplySourceModel,
	}

	reply, err := s.generator.Generate(ctx, buildSystemPrompt(candidates), history, req.Message)
	if err != nil {
		s.log.Warn("Chat model unavailable, using fallback reply", zap.Error(err))
		reply = fallbackReply(candidates)
		resp.Source = ReplySourceFallback
	}
	resp.Reply = reply

	s.log.Info("Chat answered",
		zap.Int("candidates", len(candidates)),
		zap.Int("history", len(history)),
		zap.String("source", resp.Source),
	)

	return resp, nil
}

// selectCandidates narrows the directory for the prompt. An exact search match wins,
// then centers sharing the most keywords with the message, then the top rated.
func selectCandidates(centers []*entity.Center, message string, limit int) []*entity.Center {
	matched := search.Filter(centers, search.Query{Search: message, Sort: search.SortRating})
	if len(matched) == 0 {
		matched = rankByKeywords(centers, keywords(message))
	}
	if len(matched) == 0 {
		matched = search.Filter(centers, search.Query{Sort: search.SortRating})
	}

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func keywords(message string) []string {
	var out []string
	for _, tok := range search.Tokenize(message) {
		tok = strings.TrimFunc(tok, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(tok) >= minKeywordLength {
			out = append(out, tok)
		}
	}
	return out
}

func rankByKeywords(centers []*entity.Center, words []string) []*entity.Center {
	if len(words) == 0 {
		return nil
	}

	type scored struct {
		center *entity.Center
		hits   int
	}

	var ranked []scored
	for _, c := range centers {
		text := search.SearchableText(c)
		hits := 0
		for _, w := range words {
			if strings.Contains(text, w) {
				hits++
			}
		}
		if hits > 0 {
			ranked = append(ranked, scored{center: c, hits: hits})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].hits != ranked[j].hits {
			return ranked[i].hits > ranked[j].hits
		}
		return ranked[i].center.Rating > ranked[j].center.Rating
	})

	out := make([]*entity.Center, len(ranked))
	for i, r := range ranked {
		out[i] = r.center
	}
	return out
}

func buildSystemPrompt(candidates []*entity.Center) string {
	var b strings.Builder
	b.WriteString(chatSystemPrompt)
	b.WriteString("\n\nCANDIDATES:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. %s (%s) in %s, %s. Mode %s. Rating %.1f.\n",
			i+1, c.Name, c.Category, c.City, c.State, c.TeachingMode, c.Rating)
		for _, course := range c.Courses {
			fee := "fee on request"
			if course.Fee != nil {
				fee = fmt.Sprintf("INR %d", *course.Fee)
			}
			fmt.Fprintf(&b, "   - %s, %s\n", course.Name, fee)
		}
	}
	return b.String()
}

func fallbackReply(candidates []*entity.Center) string {
	if len(candidates) == 0 {
		return "No training centers are listed yet. Please check back later."
	}

	var b strings.Builder
	b.WriteString("Here are some centers that may fit what you are looking for:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "- %s in %s, %s (rating %.1f)", c.Name, c.City, c.State, c.Rating)
		if fee, ok := c.MinFee(); ok {
			fmt.Fprintf(&b, ", courses from INR %d", fee)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
