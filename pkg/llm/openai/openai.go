// Package openai implements the llm.Provider interface against
// OpenAI-compatible chat-completion APIs, including multimodal requests
// that carry page screenshots as image parts.
package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/openai/openai-go"

	"github.com/entrhq/websurf/pkg/llm"
	"github.com/entrhq/websurf/pkg/llm/parser"
	"github.com/entrhq/websurf/pkg/types"
)

// DefaultBaseURL is the standard OpenAI API endpoint.
const DefaultBaseURL = "https://api.openai.com/v1"

// DefaultModel is used when no model is configured. It must be a
// vision-capable model: the agent sends a screenshot every turn.
const DefaultModel = "gpt-4o"

// Provider implements llm.Provider for OpenAI-compatible APIs.
//
// Streaming is done over raw SSE rather than through a client library's
// stream wrapper. Compatible gateways (Azure, local inference servers)
// sometimes emit SSE comments or keepalive lines that stricter parsers
// reject; reading the event stream directly tolerates them.
type Provider struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	modelInfo  *types.ModelInfo
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithModel sets the model used for completions.
func WithModel(model string) ProviderOption {
	return func(p *Provider) {
		p.model = model
	}
}

// WithBaseURL points the provider at an OpenAI-compatible API such as
// Azure OpenAI or a local inference server.
func WithBaseURL(baseURL string) ProviderOption {
	return func(p *Provider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) ProviderOption {
	return func(p *Provider) {
		p.httpClient = client
	}
}

// NewProvider creates an OpenAI provider. An empty apiKey falls back to
// OPENAI_API_KEY; an unset base URL falls back to OPENAI_BASE_URL and
// then to the public endpoint.
func NewProvider(apiKey string, opts ...ProviderOption) (*Provider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (provide via parameter or OPENAI_API_KEY environment variable)")
	}

	p := &Provider{
		model:      DefaultModel,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.baseURL == DefaultBaseURL {
		if envBaseURL := os.Getenv("OPENAI_BASE_URL"); envBaseURL != "" {
			p.baseURL = strings.TrimRight(envBaseURL, "/")
		}
	}

	p.modelInfo = &types.ModelInfo{
		Name:              p.model,
		Provider:          "openai",
		MaxTokens:         128000,
		SupportsVision:    true,
		SupportsStreaming: true,
	}

	return p, nil
}

// StreamCompletion sends messages to the API and streams back response
// chunks, separating <thinking> content from message content as the
// deltas arrive.
func (p *Provider) StreamCompletion(ctx context.Context, messages []*types.Message) (<-chan *llm.StreamChunk, error) {
	resp, err := p.sendStreamRequest(ctx, messages)
	if err != nil {
		return nil, err
	}

	chunks := make(chan *llm.StreamChunk, 10)
	go p.readStream(ctx, resp, chunks)
	return chunks, nil
}

// Complete accumulates a streamed response into a single assistant
// message.
func (p *Provider) Complete(ctx context.Context, messages []*types.Message) (*types.Message, error) {
	stream, err := p.StreamCompletion(ctx, messages)
	if err != nil {
		return nil, err
	}

	var thinking, message strings.Builder
	for chunk := range stream {
		if chunk.IsError() {
			return nil, chunk.Error
		}
		if chunk.Type == llm.ContentTypeThinking {
			thinking.WriteString(chunk.Content)
			continue
		}
		message.WriteString(chunk.Content)
	}

	// Re-wrap the separated reasoning so the accumulated message has
	// the same shape a non-streaming response would have.
	content := message.String()
	if thinking.Len() > 0 {
		content = "<thinking>" + thinking.String() + "</thinking>\n" + content
	}
	return types.NewAssistantMessage(content), nil
}

// GetModelInfo returns metadata about the configured model.
func (p *Provider) GetModelInfo() *types.ModelInfo {
	return p.modelInfo
}

// GetModel returns the model name in use.
func (p *Provider) GetModel() string {
	return p.model
}

func (p *Provider) sendStreamRequest(ctx context.Context, messages []*types.Message) (*http.Response, error) {
	body, err := json.Marshal(map[string]interface{}{
		"model":    p.model,
		"messages": convertMessages(messages),
		"stream":   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		errBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(errBody))
	}
	return resp, nil
}

// readStream consumes the SSE response body and forwards chunks until
// the [DONE] marker, an error, or context cancellation.
func (p *Provider) readStream(ctx context.Context, resp *http.Response, chunks chan<- *llm.StreamChunk) {
	defer close(chunks)
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	thinking := parser.NewThinkingParser()
	firstChunk := true

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, ":") || !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")

		if data == "[DONE]" {
			p.flush(ctx, thinking, chunks)
			p.send(ctx, &llm.StreamChunk{Finished: true}, chunks)
			return
		}

		if !p.handleDelta(ctx, data, &firstChunk, thinking, chunks) {
			return
		}
	}

	p.flush(ctx, thinking, chunks)
	if err := scanner.Err(); err != nil {
		chunks <- &llm.StreamChunk{Error: fmt.Errorf("stream read error: %w", err)}
	}
}

// handleDelta parses one SSE data payload. Malformed payloads are
// skipped rather than failing the stream.
func (p *Provider) handleDelta(ctx context.Context, data string, firstChunk *bool, thinking *parser.ThinkingParser, chunks chan<- *llm.StreamChunk) bool {
	var event struct {
		Choices []struct {
			Delta struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"delta"`
			FinishReason *string `json:"finish_reason"`
		} `json:"choices"`
	}
	if err := json.Unmarshal([]byte(data), &event); err != nil || len(event.Choices) == 0 {
		return true
	}

	choice := event.Choices[0]
	role := ""
	if *firstChunk && choice.Delta.Role != "" {
		role = choice.Delta.Role
		*firstChunk = false
	}

	if choice.Delta.Content != "" {
		th, msg := thinking.Parse(choice.Delta.Content)
		if th != "" {
			if !p.send(ctx, &llm.StreamChunk{Role: role, Content: th, Type: llm.ContentTypeThinking}, chunks) {
				return false
			}
			role = ""
		}
		if msg != "" {
			if !p.send(ctx, &llm.StreamChunk{Role: role, Content: msg, Type: llm.ContentTypeMessage}, chunks) {
				return false
			}
			role = ""
		}
	}

	if choice.FinishReason != nil && *choice.FinishReason == "stop" {
		return p.send(ctx, &llm.StreamChunk{Role: role, Finished: true}, chunks)
	}
	if role != "" {
		return p.send(ctx, &llm.StreamChunk{Role: role, Type: llm.ContentTypeMessage}, chunks)
	}
	return true
}

func (p *Provider) flush(ctx context.Context, thinking *parser.ThinkingParser, chunks chan<- *llm.StreamChunk) {
	th, msg := thinking.Flush()
	if th != "" {
		p.send(ctx, &llm.StreamChunk{Content: th, Type: llm.ContentTypeThinking}, chunks)
	}
	if msg != "" {
		p.send(ctx, &llm.StreamChunk{Content: msg, Type: llm.ContentTypeMessage}, chunks)
	}
}

func (p *Provider) send(ctx context.Context, chunk *llm.StreamChunk, chunks chan<- *llm.StreamChunk) bool {
	select {
	case chunks <- chunk:
		return true
	case <-ctx.Done():
		chunks <- &llm.StreamChunk{Error: ctx.Err()}
		return false
	}
}

// convertMessages maps conversation messages onto the API's message
// unions. User messages with a screenshot become multimodal content
// with the PNG inlined as a base64 data URL.
func convertMessages(messages []*types.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case types.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case types.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			if msg.HasImage() {
				out = append(out, openai.UserMessage(multimodalParts(msg)))
			} else {
				out = append(out, openai.UserMessage(msg.Content))
			}
		}
	}
	return out
}

func multimodalParts(msg *types.Message) []openai.ChatCompletionContentPartUnionParam {
	parts := []openai.ChatCompletionContentPartUnionParam{}
	if msg.Content != "" {
		parts = append(parts, openai.TextContentPart(msg.Content))
	}
	parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
		URL:    pngDataURL(msg.ImagePNG),
		Detail: "high",
	}))
	return parts
}

func pngDataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
