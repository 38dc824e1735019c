package llm

//go:generate mockgen -destination=./clients_mock_test.go -package=llm -source=clients.go

import (
	"context"
	"fmt"

	"chatbot/internal/config"
)

// CompletionClient defines the contract for an external chat-completion provider.
type CompletionClient interface {
	// Complete sends the conversation and returns the text of the single generated message.
	Complete(ctx context.Context, messages []*ChatMessage) (string, error)
	// Close releases any connections held by the client.
	Close() error
}

// NewClient builds the completion client selected by cfg.Provider.
func NewClient(ctx context.Context, cfg *config.Config) (CompletionClient, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}
