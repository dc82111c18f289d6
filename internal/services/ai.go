package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/feedback-systems/ai-feedback-backend/internal/config"
)

// Fallback texts returned when the completion provider fails or comes back
// empty. Callers can rely on these being stable.
const (
	FallbackUserResponse = "Thank you for your feedback! We appreciate your input."
	FallbackSummary      = "Review received"
	FallbackActions      = "Review and categorize feedback"
)

// Generation is the outcome of a single generation call. When Fallback is
// true the provider failed and Text carries the canned string instead.
type Generation struct {
	Text     string
	Fallback bool
}

// LLMService produces the three AI texts attached to every submission. Its
// methods never return an error: provider failures are logged and absorbed
// into fallback text so a broken provider cannot fail a submission.
type LLMService struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

func NewLLMService(cfg config.Config, log zerolog.Logger) *LLMService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		// Any OpenAI-compatible provider works, e.g. Groq.
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &LLMService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		log:    log,
	}
}

// GenerateUserResponse builds the user-facing empathetic reply.
func (s *LLMService) GenerateUserResponse(ctx context.Context, rating int, review string) Generation {
	prompt := fmt.Sprintf(`You are a helpful customer service AI. A user has submitted the following feedback:

Rating: %d/5
Review: %s

Generate a warm, empathetic, and professional response to acknowledge their feedback. Keep it concise (2-3 sentences).
If the review is negative, offer to help resolve the issue. If positive, thank them for their kind words.`, rating, review)

	return s.complete(ctx, prompt, 0.9, FallbackUserResponse)
}

// GenerateSummary builds the 1-2 sentence internal summary for the admin
// dashboard.
func (s *LLMService) GenerateSummary(ctx context.Context, review string) Generation {
	prompt := fmt.Sprintf(`Summarize the following customer review in 1-2 sentences for internal use:

Review: %s

Provide a concise summary that captures the main points.`, review)

	return s.complete(ctx, prompt, 0.5, FallbackSummary)
}

// GenerateRecommendedActions suggests follow-up actions for the support team.
func (s *LLMService) GenerateRecommendedActions(ctx context.Context, rating int, review string) Generation {
	prompt := fmt.Sprintf(`Based on the following customer review, suggest 1-2 recommended actions for the support team:

Rating: %d/5
Review: %s

Provide specific, actionable recommendations (e.g., "Follow up with customer", "Escalate to management", "Document as feature request", etc.)`, rating, review)

	return s.complete(ctx, prompt, 0.6, FallbackActions)
}

func (s *LLMService) complete(ctx context.Context, prompt string, temperature float32, fallback string) Generation {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   1000,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("completion request failed, using fallback")
		return Generation{Text: fallback, Fallback: true}
	}
	if len(resp.Choices) == 0 {
		s.log.Warn().Msg("completion returned no choices, using fallback")
		return Generation{Text: fallback, Fallback: true}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		s.log.Warn().Msg("completion returned empty text, using fallback")
		return Generation{Text: fallback, Fallback: true}
	}

	return Generation{Text: text}
}
