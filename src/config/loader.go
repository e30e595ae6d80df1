package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Load builds the effective configuration: defaults, then the JSON file
// at path (missing file is fine), then environment variables, validated
// at the end.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		if err := mergeFile(config, path); err != nil {
			return nil, err
		}
	}

	applyEnvironment(config)

	if err := Validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

func mergeFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Unmarshal over the defaults so absent keys keep their values.
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func applyEnvironment(config *Config) {
	if v := os.Getenv("COURSECHAT_API_KEY"); v != "" {
		config.API.Key = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && config.API.Key == "" {
		config.API.Key = v
	}
	if v := os.Getenv("COURSECHAT_BASE_URL"); v != "" {
		config.API.BaseURL = v
	}
	if v := os.Getenv("COURSECHAT_MODEL"); v != "" {
		config.API.Model = v
	}
	if v := os.Getenv("COURSECHAT_ADDR"); v != "" {
		config.Server.Addr = v
	}
}

// Validate checks the configuration's struct tags and returns the first
// violation.
func Validate(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("invalid config: field %s failed on '%s'", e.Namespace(), e.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
