package chat

//go:generate mockgen -destination=./gateway_mock_test.go -package=chat -source=gateway.go

import "context"

// Gateway is the completion side of a chat exchange. llm.Service satisfies it.
type Gateway interface {
	Reply(ctx context.Context, message string) (string, error)
}
