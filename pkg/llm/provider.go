// Package llm defines the provider abstraction used by the web-surfing
// agent to talk to a multimodal chat-completion model.
//
// Providers handle API communication only and return plain StreamChunk
// values. Converting chunks into agent events, managing conversation
// history, and deciding what to do with the model's output are all the
// agent layer's job. Keeping providers this narrow makes them reusable
// outside the agent and testable without one.
package llm

import (
	"context"

	"github.com/entrhq/websurf/pkg/types"
)

// ContentType classifies the content carried by a StreamChunk.
type ContentType string

const (
	// ContentTypeMessage is regular response content.
	ContentTypeMessage ContentType = "message"

	// ContentTypeThinking is content the model emitted inside
	// <thinking> tags, separated out by the stream parser.
	ContentTypeThinking ContentType = "thinking"
)

// StreamChunk is a single increment of a streamed completion.
//
// A chunk carries at most one of: a content delta, a terminal Finished
// marker, or an Error. Callers should read the stream channel until it
// closes.
type StreamChunk struct {
	// Role is set on the first chunk of a response (e.g. "assistant").
	Role string

	// Content is the text delta for this chunk.
	Content string

	// Type distinguishes thinking content from message content.
	Type ContentType

	// Finished is true on the final chunk of a successful stream.
	Finished bool

	// Error is set when the stream failed mid-flight.
	Error error
}

// IsError returns true if the chunk carries a stream error.
func (c *StreamChunk) IsError() bool {
	return c.Error != nil
}

// Provider is implemented by LLM integrations. Messages may carry PNG
// screenshots alongside text; providers that cannot ship images must
// return an error rather than silently dropping them.
type Provider interface {
	// StreamCompletion sends messages to the model and streams back
	// response chunks. The returned channel is closed when streaming
	// completes or fails; stream-time failures arrive as chunks with
	// Error set. An error is returned only when the stream cannot be
	// started at all.
	StreamCompletion(ctx context.Context, messages []*types.Message) (<-chan *StreamChunk, error)

	// Complete sends messages to the model and accumulates the streamed
	// response into a single assistant message.
	Complete(ctx context.Context, messages []*types.Message) (*types.Message, error)

	// GetModelInfo returns metadata about the configured model.
	GetModelInfo() *types.ModelInfo

	// GetModel returns the model name in use.
	GetModel() string
}
