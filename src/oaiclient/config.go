package oaiclient

import (
	"log/slog"
	"time"
)

// Config holds configuration for the chat completions client.
type Config struct {
	APIKey     string        // Provider API key
	BaseURL    string        // Base URL for the OpenAI-compatible API
	Model      string        // Model used for all completions
	Logger     *slog.Logger  // Logger for debugging
	Timeout    time.Duration // HTTP timeout
	RetryCount int           // Number of retries for failed requests
	RetryDelay time.Duration // Delay between retries
}
