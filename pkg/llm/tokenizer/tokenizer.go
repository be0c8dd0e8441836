// Package tokenizer provides client-side token counting so the agent
// can report usage without relying on API-side accounting.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/entrhq/websurf/pkg/types"
)

// fallbackEncoding covers models tiktoken has no mapping for.
const fallbackEncoding = "cl100k_base"

// messageOverheadTokens approximates the per-message framing the chat
// format adds around the content itself.
const messageOverheadTokens = 4

// screenshotTokens estimates the cost of one full-viewport PNG sent at
// high detail: a 1440x900 capture scales to 6 image tiles plus the base
// cost under the vision pricing model.
const screenshotTokens = 6*170 + 85

// Tokenizer counts tokens using the encoding of a specific model.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// New creates a tokenizer for the default encoding.
func New() (*Tokenizer, error) {
	return NewForModel("")
}

// NewForModel creates a tokenizer matching the given model's encoding,
// falling back to cl100k_base when the model is unknown.
func NewForModel(model string) (*Tokenizer, error) {
	if model != "" {
		if enc, err := tiktoken.EncodingForModel(model); err == nil {
			return &Tokenizer{encoding: enc}, nil
		}
	}
	enc, err := tiktoken.GetEncoding(fallbackEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", fallbackEncoding, err)
	}
	return &Tokenizer{encoding: enc}, nil
}

// CountTokens returns the token count of a text string.
func (t *Tokenizer) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(t.encoding.Encode(text, nil, nil))
}

// CountMessageTokens returns the token count of a single message,
// including framing overhead and an estimate for an attached
// screenshot.
func (t *Tokenizer) CountMessageTokens(msg *types.Message) int {
	if msg == nil {
		return 0
	}
	count := messageOverheadTokens + t.CountTokens(msg.Content)
	if msg.HasImage() {
		count += screenshotTokens
	}
	return count
}

// CountMessagesTokens returns the total token count of a conversation.
func (t *Tokenizer) CountMessagesTokens(messages []*types.Message) int {
	total := 0
	for _, msg := range messages {
		total += t.CountMessageTokens(msg)
	}
	return total
}
