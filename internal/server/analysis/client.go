package analysis

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// ChatClient is the minimal surface of the external text-generation
// provider. *openai.Client satisfies it; tests substitute a fake.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}
