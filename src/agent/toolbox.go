package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/elee1766/coursechat/src/aisdk"
)

// ErrUnknownTool is returned by ExecuteTool when the requested tool is not
// registered. The generation loop narrates it to the model as the tool
// result instead of failing the turn.
var ErrUnknownTool = errors.New("unknown tool")

// ToolExecutor is a function type for tool execution
type ToolExecutor func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)

// ToolMiddleware is a function that wraps a ToolExecutor to add functionality.
type ToolMiddleware func(next ToolExecutor) ToolExecutor

// Toolbox handles tool registration and execution. Declarations are exposed
// to the model in registration order.
type Toolbox struct {
	names      []string
	tools      map[string]Tool
	middleware []ToolMiddleware
}

// NewToolbox creates a new tool manager.
func NewToolbox() *Toolbox {
	return &Toolbox{
		tools: make(map[string]Tool),
	}
}

// RegisterTool registers a tool. Re-registering a name fails rather than
// silently overwriting.
func (tm *Toolbox) RegisterTool(tool Tool) error {
	if tool.GetName() == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	if _, exists := tm.tools[tool.GetName()]; exists {
		return fmt.Errorf("tool %s is already registered", tool.GetName())
	}

	tm.tools[tool.GetName()] = tool
	tm.names = append(tm.names, tool.GetName())
	return nil
}

// RegisterMiddleware registers middleware that will be applied to all tool
// executions. Middleware is applied in the order it's registered (first
// registered = outermost layer).
func (tm *Toolbox) RegisterMiddleware(middleware ToolMiddleware) {
	tm.middleware = append(tm.middleware, middleware)
}

// Tools returns the registered tools in registration order.
func (tm *Toolbox) Tools() []Tool {
	out := make([]Tool, 0, len(tm.names))
	for _, name := range tm.names {
		out = append(out, tm.tools[name])
	}
	return out
}

// ChatTools returns the registered tools as chat API declarations, in
// registration order.
func (tm *Toolbox) ChatTools() []*aisdk.ChatTool {
	return ToChatTools(tm.Tools())
}

// Len returns the number of registered tools.
func (tm *Toolbox) Len() int {
	return len(tm.names)
}

// ExecuteTool executes a tool call with middleware applied.
func (tm *Toolbox) ExecuteTool(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	tool, exists := tm.tools[call.Function.Name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, call.Function.Name)
	}

	toolExecutor := ToolExecutor(func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
		return tool.Execute(ctx, call)
	})

	finalExecutor := toolExecutor
	for i := len(tm.middleware) - 1; i >= 0; i-- {
		finalExecutor = tm.middleware[i](finalExecutor)
	}

	return finalExecutor(ctx, call)
}

// GetTool returns a specific tool by name.
func (tm *Toolbox) GetTool(name string) (Tool, bool) {
	tool, exists := tm.tools[name]
	return tool, exists
}

// HasTool checks if a tool is available.
func (tm *Toolbox) HasTool(name string) bool {
	_, exists := tm.tools[name]
	return exists
}

// LoggingMiddleware logs tool execution details.
func LoggingMiddleware(logger interface {
	Info(msg string, args ...interface{})
}) ToolMiddleware {
	return func(next ToolExecutor) ToolExecutor {
		return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
			logger.Info("executing tool", "tool", call.Function.Name, "params", string(call.Function.Arguments))
			result, err := next(ctx, call)
			if err != nil {
				logger.Info("tool execution failed", "error", err)
			} else {
				logger.Info("tool execution completed successfully")
			}
			return result, err
		}
	}
}
