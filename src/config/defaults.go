package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultConfig returns the configuration used when no file or overrides
// are present.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "https://api.openai.com/v1",
			Model:     "gpt-4o-mini",
			MaxTokens: 800,
		},
		Server: ServerConfig{
			Addr:        ":8000",
			CORSOrigins: []string{"*"},
		},
		RAG: RAGConfig{
			MaxHistory:   2,
			MaxResults:   5,
			DocsDir:      "docs",
			DatabasePath: DefaultDatabasePath(),
		},
	}
}

// DefaultDatabasePath returns the course catalog location under the
// XDG data directory.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, "coursechat", "catalog.db")
}

// DefaultConfigPath returns the user config file location under the XDG
// config directory.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "coursechat", "config.json")
}
