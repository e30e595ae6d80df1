package agent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elee1766/coursechat/src/aisdk"
)

// scriptedModel returns canned responses in order and records every request.
type scriptedModel struct {
	responses []*aisdk.ChatCompletionResponse
	requests  []*aisdk.ChatCompletionRequest
	err       error
}

func (m *scriptedModel) CreateChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest) (*aisdk.ChatCompletionResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.requests) > len(m.responses) {
		return nil, errors.New("scripted model exhausted")
	}
	return m.responses[len(m.requests)-1], nil
}

func textResponse(text string) *aisdk.ChatCompletionResponse {
	return &aisdk.ChatCompletionResponse{
		Choices: []aisdk.Choice{{
			Message:      aisdk.Message{Role: "assistant", Content: text},
			FinishReason: "stop",
		}},
	}
}

func toolCallResponse(calls ...aisdk.ToolCall) *aisdk.ChatCompletionResponse {
	return &aisdk.ChatCompletionResponse{
		Choices: []aisdk.Choice{{
			Message:      aisdk.Message{Role: "assistant", ToolCalls: calls},
			FinishReason: "tool_calls",
		}},
	}
}

func searchToolbox(t *testing.T, result string, citations []aisdk.Citation) *Toolbox {
	t.Helper()
	tb := NewToolbox()
	tool := MustNewGenericTool("search_course_content", "searches course content",
		func(ctx context.Context, input echoInput) (textOutput, error) {
			return textOutput{Text: result, Sources: citations}, nil
		})
	require.NoError(t, tb.RegisterTool(tool))
	return tb
}

func TestGenerate_DirectAnswer(t *testing.T) {
	model := &scriptedModel{responses: []*aisdk.ChatCompletionResponse{
		textResponse("Deep learning is a subset of machine learning."),
	}}
	gen := &Generator{Model: model, Toolbox: searchToolbox(t, "", nil)}

	result, err := gen.Generate(context.Background(), "What is deep learning?", "")
	require.NoError(t, err)

	assert.Equal(t, "Deep learning is a subset of machine learning.", result.Answer)
	assert.Empty(t, result.Citations, "a turn without tool use yields no citations")
	require.Len(t, model.requests, 1, "no follow-up call without tool use")

	first := model.requests[0]
	require.NotEmpty(t, first.Tools, "tool declarations attach to the first call")
	assert.Equal(t, "auto", first.ToolChoice)
	require.NotNil(t, first.Temperature)
	assert.Zero(t, *first.Temperature)
	require.NotNil(t, first.MaxTokens)
	assert.Equal(t, defaultMaxTokens, *first.MaxTokens)
}

func TestGenerate_HistoryInSystemMessage(t *testing.T) {
	model := &scriptedModel{responses: []*aisdk.ChatCompletionResponse{textResponse("ok")}}
	gen := &Generator{Model: model, Toolbox: NewToolbox()}

	_, err := gen.Generate(context.Background(), "And what about that?", "User: What is MCP?\nAssistant: A protocol.")
	require.NoError(t, err)

	system := model.requests[0].Messages[0]
	assert.Equal(t, "system", system.Role)
	assert.Contains(t, system.Content, "Previous conversation:")
	assert.Contains(t, system.Content, "User: What is MCP?")
	assert.Empty(t, model.requests[0].Tools, "an empty toolbox attaches no declarations")
}

func TestGenerate_ToolCallRound(t *testing.T) {
	citations := []aisdk.Citation{{Text: "Course A - Lesson 1", URL: "https://example.com/l1"}}
	model := &scriptedModel{responses: []*aisdk.ChatCompletionResponse{
		toolCallResponse(aisdk.ToolCall{
			ID:   "call_abc",
			Type: "function",
			Function: aisdk.FunctionCall{
				Name:      "search_course_content",
				Arguments: json.RawMessage(`{"text":"lesson 1"}`),
			},
		}),
		textResponse("Lesson 1 covers the basics."),
	}}
	gen := &Generator{Model: model, Toolbox: searchToolbox(t, "[Course A - Lesson 1]\nthe basics", citations)}

	result, err := gen.Generate(context.Background(), "What does lesson 1 cover?", "")
	require.NoError(t, err)

	assert.Equal(t, "Lesson 1 covers the basics.", result.Answer)
	assert.Equal(t, citations, result.Citations)
	require.Len(t, model.requests, 2, "exactly one follow-up call")

	followUp := model.requests[1]
	assert.Empty(t, followUp.Tools, "follow-up call must not carry tool declarations")
	assert.Empty(t, followUp.ToolChoice)

	// system, user, assistant tool-call message, tool result
	require.Len(t, followUp.Messages, 4)
	toolMsg := followUp.Messages[3]
	assert.Equal(t, "tool", toolMsg.Role)
	assert.Equal(t, "call_abc", toolMsg.ToolCallID)
	assert.Equal(t, "[Course A - Lesson 1]\nthe basics", toolMsg.Content)
}

func TestGenerate_NeverIssuesThirdCall(t *testing.T) {
	// The follow-up response also "wants" a tool call; its text is still
	// returned as the final answer.
	model := &scriptedModel{responses: []*aisdk.ChatCompletionResponse{
		toolCallResponse(aisdk.ToolCall{
			ID:       "call_1",
			Type:     "function",
			Function: aisdk.FunctionCall{Name: "search_course_content", Arguments: json.RawMessage(`{"text":"a"}`)},
		}),
		{
			Choices: []aisdk.Choice{{
				Message: aisdk.Message{
					Role:    "assistant",
					Content: "answer anyway",
					ToolCalls: []aisdk.ToolCall{{
						ID:       "call_2",
						Type:     "function",
						Function: aisdk.FunctionCall{Name: "search_course_content", Arguments: json.RawMessage(`{"text":"b"}`)},
					}},
				},
				FinishReason: "tool_calls",
			}},
		},
	}}
	gen := &Generator{Model: model, Toolbox: searchToolbox(t, "result", nil)}

	result, err := gen.Generate(context.Background(), "q", "")
	require.NoError(t, err)
	assert.Equal(t, "answer anyway", result.Answer)
	assert.Len(t, model.requests, 2)
}

func TestGenerate_NoResultsLiteral(t *testing.T) {
	model := &scriptedModel{responses: []*aisdk.ChatCompletionResponse{
		toolCallResponse(aisdk.ToolCall{
			ID:       "call_1",
			Type:     "function",
			Function: aisdk.FunctionCall{Name: "search_course_content", Arguments: json.RawMessage(`{"text":"nothing"}`)},
		}),
		textResponse("I could not find anything about that."),
	}}
	gen := &Generator{Model: model, Toolbox: searchToolbox(t, "no results found", nil)}

	result, err := gen.Generate(context.Background(), "q", "")
	require.NoError(t, err)

	assert.Equal(t, "I could not find anything about that.", result.Answer)
	assert.Empty(t, result.Citations)

	followUp := model.requests[1]
	var sawLiteral bool
	for _, msg := range followUp.Messages {
		if msg.Role == "tool" && msg.Content == "no results found" {
			sawLiteral = true
		}
	}
	assert.True(t, sawLiteral, "follow-up input must include the exact tool-result text")
}

func TestGenerate_UnknownToolNarrated(t *testing.T) {
	model := &scriptedModel{responses: []*aisdk.ChatCompletionResponse{
		toolCallResponse(aisdk.ToolCall{
			ID:       "call_1",
			Type:     "function",
			Function: aisdk.FunctionCall{Name: "made_up_tool", Arguments: json.RawMessage(`{}`)},
		}),
		textResponse("sorry"),
	}}
	gen := &Generator{Model: model, Toolbox: searchToolbox(t, "unused", nil)}

	result, err := gen.Generate(context.Background(), "q", "")
	require.NoError(t, err, "unknown tool must not fail the turn")
	assert.Equal(t, "sorry", result.Answer)

	toolMsg := model.requests[1].Messages[3]
	assert.Equal(t, "tool", toolMsg.Role)
	assert.Contains(t, toolMsg.Content, "unknown tool")
}

func TestGenerate_MultipleToolCallsInOrder(t *testing.T) {
	tb := NewToolbox()
	var executed []string
	for _, name := range []string{"first_tool", "second_tool"} {
		name := name
		require.NoError(t, tb.RegisterTool(MustNewGenericTool(name, "test tool",
			func(ctx context.Context, input echoInput) (textOutput, error) {
				executed = append(executed, name)
				return textOutput{Text: name + " result"}, nil
			})))
	}

	model := &scriptedModel{responses: []*aisdk.ChatCompletionResponse{
		toolCallResponse(
			aisdk.ToolCall{ID: "c1", Type: "function", Function: aisdk.FunctionCall{Name: "second_tool", Arguments: json.RawMessage(`{"text":"x"}`)}},
			aisdk.ToolCall{ID: "c2", Type: "function", Function: aisdk.FunctionCall{Name: "first_tool", Arguments: json.RawMessage(`{"text":"y"}`)}},
		),
		textResponse("done"),
	}}
	gen := &Generator{Model: model, Toolbox: tb}

	_, err := gen.Generate(context.Background(), "q", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"second_tool", "first_tool"}, executed, "execution follows emitted order")

	msgs := model.requests[1].Messages
	require.Len(t, msgs, 5)
	assert.Equal(t, "c1", msgs[3].ToolCallID)
	assert.Equal(t, "c2", msgs[4].ToolCallID)
}

func TestGenerate_ModelErrorPropagates(t *testing.T) {
	model := &scriptedModel{err: errors.New("provider down")}
	gen := &Generator{Model: model, Toolbox: NewToolbox()}

	_, err := gen.Generate(context.Background(), "q", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider down")
}
