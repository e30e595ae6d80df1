// Package config holds the application configuration and its loading
// rules: defaults, then an optional JSON file, then environment
// variables, validated at the end.
package config

// Config represents the complete configuration for coursechat
type Config struct {
	// API configuration for the model provider
	API APIConfig `json:"api"`

	// Server configuration for the HTTP API
	Server ServerConfig `json:"server"`

	// RAG configuration for sessions, search and ingestion
	RAG RAGConfig `json:"rag"`
}

// APIConfig configures the chat completion provider.
type APIConfig struct {
	Key       string `json:"key,omitempty"`
	BaseURL   string `json:"base_url,omitempty" validate:"omitempty,url"`
	Model     string `json:"model,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty" validate:"omitempty,gt=0"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr        string   `json:"addr,omitempty"`
	CORSOrigins []string `json:"cors_origins,omitempty"`
}

// RAGConfig configures the question-answering pipeline.
type RAGConfig struct {
	// MaxHistory is the number of past exchanges kept per session.
	MaxHistory int `json:"max_history,omitempty" validate:"omitempty,gte=0"`

	// MaxResults caps how many chunks a single search returns.
	MaxResults int `json:"max_results,omitempty" validate:"omitempty,gt=0"`

	// DocsDir is the course documents directory for ingestion.
	DocsDir string `json:"docs_dir,omitempty"`

	// DatabasePath is the sqlite file holding the course catalog.
	DatabasePath string `json:"database_path,omitempty"`
}
