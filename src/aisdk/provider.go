package aisdk

import (
	"context"
)

// ModelClient represents a client for a specific chat model.
type ModelClient interface {
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
}
