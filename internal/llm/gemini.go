package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// geminiClient talks to the Gemini API.
type geminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client authenticated with an API key.
func NewGeminiClient(ctx context.Context, apiKey, model string) (CompletionClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiClient{client: client, model: model}, nil
}

func (c *geminiClient) Complete(ctx context.Context, messages []*ChatMessage) (string, error) {
	system, history, prompt := toGeminiRequest(messages)

	// GenerativeModel carries per-call settings, so each request gets its own.
	model := c.client.GenerativeModel(c.model)
	if system != nil {
		model.SystemInstruction = system
	}
	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	return geminiReply(resp)
}

func (c *geminiClient) Close() error {
	return c.client.Close()
}

// toGeminiRequest splits a conversation into the system instruction, prior turns, and the final prompt.
// System turns are merged into the instruction; the last non-system turn is the prompt.
func toGeminiRequest(messages []*ChatMessage) (*genai.Content, []*genai.Content, string) {
	var systemParts []string
	var turns []*ChatMessage
	for _, m := range messages {
		if m.Role == RoleSystem {
			systemParts = append(systemParts, m.Content)
			continue
		}
		turns = append(turns, m)
	}

	var system *genai.Content
	if len(systemParts) > 0 {
		system = &genai.Content{Parts: []genai.Part{genai.Text(strings.Join(systemParts, "\n\n"))}}
	}

	if len(turns) == 0 {
		return system, nil, ""
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for _, m := range turns[:len(turns)-1] {
		history = append(history, &genai.Content{
			Role:  geminiRole(m.Role),
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return system, history, turns[len(turns)-1].Content
}

func geminiRole(role string) string {
	if role == RoleAssistant {
		return "model"
	}
	return "user"
}

// geminiReply returns the text of the first candidate, the one generated message.
func geminiReply(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		reason := genai.FinishReasonUnspecified
		if cand != nil {
			reason = cand.FinishReason
		}
		return "", fmt.Errorf("gemini candidate has no content (finish reason %s)", reason)
	}

	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String(), nil
}
