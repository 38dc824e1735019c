package llm

import "fmt"

// Message roles understood by every completion provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one role-tagged turn passed to a completion provider.
type ChatMessage struct {
	// Role is who sent the message, e.g., "system" or "user".
	Role string `json:"role"`
	// Content is the text of the message.
	Content string `json:"content"`
}

// UpstreamError is returned for any failure while contacting or parsing the completion provider.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream completion failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
