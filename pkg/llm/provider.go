package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "model", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ToolSpec describes a single callable tool exposed to the model.
// Parameters is a JSON-schema object in the wire format both Gemini and
// Ollama accept.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ToolCall is a structured request from the model to invoke a tool.
type ToolCall struct {
	Name string
	Args map[string]interface{}
}

// ToolResponse is the outcome of a tool-bound chat call: either plain text,
// or one or more requested tool invocations (or both).
type ToolResponse struct {
	Content   string
	ToolCalls []ToolCall
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// ChatWithTools sends the history with tool specifications bound and
	// returns the raw response including any tool invocation requests.
	ChatWithTools(ctx context.Context, history []Message, tools []ToolSpec, options ...Option) (*ToolResponse, error)
}
