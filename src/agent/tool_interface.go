// Package agent implements the tool registry and the tool-augmented
// generation loop.
package agent

import (
	"context"

	jsonschema "github.com/swaggest/jsonschema-go"

	"github.com/elee1766/coursechat/src/aisdk"
)

// Tool is the interface that all tools must implement
type Tool interface {
	// GetType returns the tool type (always "function" for now)
	GetType() string

	// GetName returns the tool's name
	GetName() string

	// GetDescription returns the tool's description
	GetDescription() string

	// GetParameters returns the JSON schema for the tool's parameters
	GetParameters() *jsonschema.Schema

	// Execute runs the tool with the given parameters
	Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)
}

// TextMarshaler is implemented by tool outputs that render themselves as the
// plain text the model should see, instead of a JSON encoding.
type TextMarshaler interface {
	ToolResultText() string
}

// CitationProvider is implemented by tool outputs that carry source
// citations. Citations are copied onto the ToolResponse so they travel with
// the execution result rather than through any shared registry state.
type CitationProvider interface {
	ToolCitations() []aisdk.Citation
}
