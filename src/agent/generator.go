package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/elee1766/coursechat/src/aisdk"
)

// ErrNoChoices indicates the model returned no completion choices.
var ErrNoChoices = errors.New("no choices in response")

// systemPrompt is static so it is not rebuilt on every call.
const systemPrompt = `You are an AI assistant specialized in course materials and educational content with access to a comprehensive search tool for course information.

Search Tool Usage:
- Use the search tool **only** for questions about specific course content or detailed educational materials
- **One search per query maximum**
- Synthesize search results into accurate, fact-based responses
- If search yields no results, state this clearly without offering alternatives

Response Protocol:
- **General knowledge questions**: Answer using existing knowledge without searching
- **Course-specific questions**: Search first, then answer
- **No meta-commentary**:
 - Provide direct answers only - no reasoning process, search explanations, or question-type analysis
 - Do not mention "based on the search results"


All responses must be:
1. **Brief, Concise and focused** - Get to the point quickly
2. **Educational** - Maintain instructional value
3. **Clear** - Use accessible language
4. **Example-supported** - Include relevant examples when they aid understanding
Provide only the direct answer to what was asked.
`

const defaultMaxTokens = 800

// Generator runs one tool-augmented generation turn against a chat model.
// Tool use is structurally capped at one round: the follow-up request after
// tool execution carries no tool declarations, so the model cannot chain
// searches within a turn.
type Generator struct {
	Model     aisdk.ModelClient
	Toolbox   *Toolbox
	MaxTokens int
	Logger    *slog.Logger
}

// Result is the outcome of a single generation turn. Citations come from
// the tool calls executed during this turn only; a turn without tool use
// yields none.
type Result struct {
	Answer    string
	Citations []aisdk.Citation
}

// Generate answers one user query. history is the rendered prior
// conversation ("" for a fresh session); it is folded into the system
// instruction. The model may request tool calls on the first response, in
// which case each call is executed in the order emitted and a single
// follow-up completion produces the final answer.
func (g *Generator) Generate(ctx context.Context, query, history string) (*Result, error) {
	logger := g.logger()

	system := systemPrompt
	if history != "" {
		system = fmt.Sprintf("%s\n\nPrevious conversation:\n%s", systemPrompt, history)
	}

	messages := []*aisdk.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: query},
	}

	req := g.newRequest(messages)
	if g.Toolbox != nil && g.Toolbox.Len() > 0 {
		req.Tools = g.Toolbox.ChatTools()
		req.ToolChoice = "auto"
	}

	resp, err := g.Model.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) == 0 || g.Toolbox == nil {
		return &Result{Answer: msg.Content}, nil
	}

	logger.Debug("model requested tool calls", "count", len(msg.ToolCalls))
	return g.handleToolCalls(ctx, messages, &msg)
}

// handleToolCalls executes the requested tool calls and issues the
// follow-up completion. Tool-level failures (unknown tool, bad arguments,
// handler errors) are narrated to the model as the tool result text rather
// than aborting the turn.
func (g *Generator) handleToolCalls(ctx context.Context, messages []*aisdk.Message, assistant *aisdk.Message) (*Result, error) {
	logger := g.logger()

	messages = append(messages, assistant)

	var citations []aisdk.Citation
	for i := range assistant.ToolCalls {
		call := &assistant.ToolCalls[i]

		var content string
		toolResp, err := g.Toolbox.ExecuteTool(ctx, call)
		switch {
		case err != nil:
			logger.Warn("tool execution failed", "tool", call.Function.Name, "error", err)
			content = err.Error()
		default:
			content = string(toolResp.Content)
			citations = append(citations, toolResp.Citations...)
			if toolResp.IsError {
				logger.Warn("tool returned error result", "tool", call.Function.Name, "result", content)
			}
		}

		messages = append(messages, &aisdk.Message{
			Role:       "tool",
			Name:       call.Function.Name,
			ToolCallID: call.ID,
			Content:    content,
		})
	}

	// No tools on the follow-up call: a second round of tool use is not
	// permitted within the same turn.
	resp, err := g.Model.CreateChatCompletion(ctx, g.newRequest(messages))
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	return &Result{
		Answer:    resp.Choices[0].Message.Content,
		Citations: citations,
	}, nil
}

// newRequest builds a request with the fixed generation parameters:
// deterministic temperature and a bounded completion length.
func (g *Generator) newRequest(messages []*aisdk.Message) *aisdk.ChatCompletionRequest {
	temperature := float64(0)
	maxTokens := g.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &aisdk.ChatCompletionRequest{
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	}
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}
