package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
)

// Service defines the business logic for the completion gateway.
type Service interface {
	// Reply wraps a single user message with the system prompt and returns the model's trimmed answer.
	Reply(ctx context.Context, message string) (string, error)
}

// Options tunes how the service uses its completion client.
type Options struct {
	// Timeout bounds a single upstream call, including the wait for a free slot. Zero means no timeout.
	Timeout time.Duration
	// MaxConcurrent caps in-flight upstream calls. Values below 1 are treated as 1.
	MaxConcurrent int
}

// service is the concrete implementation of the Service interface.
type service struct {
	client  CompletionClient // client for the external completion API
	prompt  string
	timeout time.Duration
	slots   *semaphore.Weighted
}

// NewService is the constructor for the completion gateway.
func NewService(client CompletionClient, systemPrompt string, opts Options) Service {
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	return &service{
		client:  client,
		prompt:  systemPrompt,
		timeout: opts.Timeout,
		slots:   semaphore.NewWeighted(int64(opts.MaxConcurrent)),
	}
}

// Reply implements the Service interface. It makes exactly one upstream attempt.
func (s *service) Reply(ctx context.Context, message string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("waiting for a completion slot: %w", err)}
	}
	defer s.slots.Release(1)

	reply, err := s.client.Complete(ctx, NewConversation(s.prompt, message))
	if err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("completion client failed: %w", err)}
	}

	return strings.TrimSpace(reply), nil
}
