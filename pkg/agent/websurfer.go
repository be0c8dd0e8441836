// Package agent implements the web-surfing loop: observe the page,
// reason with the model, execute one browsing action, repeat until the
// answer tool ends the run.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/entrhq/websurf/pkg/agent/prompts"
	"github.com/entrhq/websurf/pkg/agent/tools"
	"github.com/entrhq/websurf/pkg/browser"
	"github.com/entrhq/websurf/pkg/llm"
	"github.com/entrhq/websurf/pkg/llm/tokenizer"
	"github.com/entrhq/websurf/pkg/types"
)

// BrowserDriver is everything the agent needs from a browser session:
// the actions the tools execute plus the observation surface.
type BrowserDriver interface {
	tools.Surfer

	Screenshot() ([]byte, error)
	PageText(maxLength int) (*browser.PageText, error)
	Metadata() (title, url string, err error)
}

// Default run limits, overridable through options.
const (
	DefaultMaxTurns      = 20
	DefaultPageTextLimit = 8000
	defaultMaxImages     = 2
)

// Result is the outcome of a completed run.
type Result struct {
	// Answer is the final answer produced by the answer tool.
	Answer string

	// Turns is the number of turns the run took.
	Turns int

	// TotalTokens is the client-side token count across all turns,
	// zero when no tokenizer is available.
	TotalTokens int
}

// WebSurfer drives a browser session with a multimodal model.
type WebSurfer struct {
	provider llm.Provider
	driver   BrowserDriver
	toolset  map[string]tools.Tool

	systemPrompt  string
	maxTurns      int
	pageTextLimit int

	tokenizer *tokenizer.Tokenizer
	events    chan *types.AgentEvent
}

// Option configures a WebSurfer.
type Option func(*WebSurfer)

// WithMaxTurns caps the number of turns before the run is abandoned.
func WithMaxTurns(n int) Option {
	return func(w *WebSurfer) {
		if n > 0 {
			w.maxTurns = n
		}
	}
}

// WithPageTextLimit caps the extracted page text per observation.
func WithPageTextLimit(n int) Option {
	return func(w *WebSurfer) {
		if n > 0 {
			w.pageTextLimit = n
		}
	}
}

// WithCustomInstructions prepends end-user instructions to the system
// prompt.
func WithCustomInstructions(instructions string) Option {
	return func(w *WebSurfer) {
		w.systemPrompt = prompts.NewPromptBuilder().
			WithTools(w.toolsList()).
			WithCustomInstructions(instructions).
			Build()
	}
}

// NewWebSurfer creates an agent over the given provider and browser
// session.
func NewWebSurfer(provider llm.Provider, driver BrowserDriver, opts ...Option) *WebSurfer {
	w := &WebSurfer{
		provider:      provider,
		driver:        driver,
		toolset:       make(map[string]tools.Tool),
		maxTurns:      DefaultMaxTurns,
		pageTextLimit: DefaultPageTextLimit,
		events:        make(chan *types.AgentEvent, 64),
	}

	for _, tool := range tools.DefaultToolset(driver) {
		w.toolset[tool.Name()] = tool
	}
	w.systemPrompt = prompts.NewPromptBuilder().WithTools(w.toolsList()).Build()

	// Token counting is best effort; the run proceeds without it.
	if tok, err := tokenizer.NewForModel(provider.GetModel()); err == nil {
		w.tokenizer = tok
	}

	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Events returns the channel of run events. It is closed when Run
// returns.
func (w *WebSurfer) Events() <-chan *types.AgentEvent {
	return w.events
}

// Run executes the task until the answer tool is called, the turn limit
// is reached, or the context is canceled.
func (w *WebSurfer) Run(ctx context.Context, task string) (*Result, error) {
	defer close(w.events)

	memory := NewConversationMemory(defaultMaxImages)
	memory.Append(types.NewUserMessage(prompts.TaskMessage(task)))

	result := &Result{}
	lastResult := ""

	for turn := 1; turn <= w.maxTurns; turn++ {
		result.Turns = turn
		w.emit(ctx, types.NewTurnStartEvent(turn))

		observation, png, err := w.observe(ctx, turn, lastResult, memory)
		if err != nil {
			w.emit(ctx, types.NewErrorEvent(err))
			return result, err
		}
		w.emit(ctx, types.NewObservationEvent(turn, observation, png))

		response, err := w.provider.Complete(ctx, w.withSystemPrompt(memory.Messages()))
		if err != nil {
			err = fmt.Errorf("completion failed on turn %d: %w", turn, err)
			w.emit(ctx, types.NewErrorEvent(err))
			return result, err
		}
		memory.Append(response)
		w.countTokens(ctx, turn, memory, response, result)

		thinking, call, _, parseErr := tools.ExtractThinkingAndToolCall(response.Content)
		if thinking = stripThinkingTags(thinking); thinking != "" {
			w.emit(ctx, types.NewThinkingEvent(turn, thinking))
		}

		switch {
		case parseErr != nil:
			lastResult = w.reportActionError(ctx, turn, "tool_call",
				fmt.Errorf("your tool call could not be parsed: %w", parseErr))
		case call == nil:
			lastResult = w.reportActionError(ctx, turn, "tool_call",
				fmt.Errorf("your response did not contain a tool call; every response must end with one"))
		default:
			var done bool
			lastResult, done = w.execute(ctx, turn, call, result)
			if done {
				return result, nil
			}
		}

		w.emit(ctx, types.NewTurnEndEvent(turn))
	}

	err := fmt.Errorf("no answer after %d turns", w.maxTurns)
	w.emit(ctx, types.NewErrorEvent(err))
	return result, err
}

// observe captures the current page and appends it to memory as the
// next user message. The screenshot is also returned so the run can
// surface it on the observation event.
func (w *WebSurfer) observe(ctx context.Context, turn int, lastResult string, memory *ConversationMemory) (string, []byte, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	png, err := w.driver.Screenshot()
	if err != nil {
		return "", nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	text, err := w.driver.PageText(w.pageTextLimit)
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract page text: %w", err)
	}
	title, url, err := w.driver.Metadata()
	if err != nil {
		return "", nil, fmt.Errorf("failed to read page metadata: %w", err)
	}

	observation := prompts.Observation(turn, title, url, text.Text, lastResult)
	memory.Append(types.NewUserImageMessage(observation, png))
	return observation, png, nil
}

// execute runs one tool call. The returned done flag is true when a
// loop-breaking tool produced the final answer.
func (w *WebSurfer) execute(ctx context.Context, turn int, call *tools.ToolCall, result *Result) (string, bool) {
	tool, ok := w.toolset[call.ToolName]
	if !ok {
		return w.reportActionError(ctx, turn, call.ToolName,
			fmt.Errorf("unknown tool %q; use only the tools listed in the system prompt", call.ToolName)), false
	}

	argsXML := call.GetArgumentsXML()
	args, _ := tools.ArgumentsToMap(argsXML)
	w.emit(ctx, types.NewActionStartEvent(turn, call.ToolName, args))

	output, _, err := tool.Execute(ctx, argsXML)
	if err != nil {
		return w.reportActionError(ctx, turn, call.ToolName, err), false
	}

	if tool.IsLoopBreaking() {
		result.Answer = output
		w.emit(ctx, types.NewTaskCompleteEvent(turn, output))
		return output, true
	}

	w.emit(ctx, types.NewActionResultEvent(turn, call.ToolName, output))
	return output, false
}

// reportActionError emits the failure and turns it into feedback the
// model sees in the next observation.
func (w *WebSurfer) reportActionError(ctx context.Context, turn int, action string, err error) string {
	w.emit(ctx, types.NewActionErrorEvent(turn, action, err))
	return fmt.Sprintf("ERROR: %v", err)
}

func (w *WebSurfer) withSystemPrompt(history []*types.Message) []*types.Message {
	messages := make([]*types.Message, 0, len(history)+1)
	messages = append(messages, types.NewSystemMessage(w.systemPrompt))
	return append(messages, history...)
}

func (w *WebSurfer) countTokens(ctx context.Context, turn int, memory *ConversationMemory, response *types.Message, result *Result) {
	if w.tokenizer == nil {
		return
	}
	completion := w.tokenizer.CountMessageTokens(response)
	prompt := w.tokenizer.CountTokens(w.systemPrompt) +
		w.tokenizer.CountMessagesTokens(memory.Messages()) - completion

	result.TotalTokens += prompt + completion
	w.emit(ctx, types.NewTokenUsageEvent(turn, prompt, completion, prompt+completion))
}

func (w *WebSurfer) emit(ctx context.Context, event *types.AgentEvent) {
	select {
	case w.events <- event:
	case <-ctx.Done():
	}
}

func (w *WebSurfer) toolsList() []tools.Tool {
	list := make([]tools.Tool, 0, len(w.toolset))
	for _, name := range []string{"visit_url", "click", "type_text", "press_key", "scroll", "go_back", "answer"} {
		if tool, ok := w.toolset[name]; ok {
			list = append(list, tool)
		}
	}
	return list
}

// stripThinkingTags removes the <thinking> wrapper the provider
// re-assembles around streamed reasoning.
func stripThinkingTags(s string) string {
	s = strings.ReplaceAll(s, "<thinking>", "")
	s = strings.ReplaceAll(s, "</thinking>", "")
	return strings.TrimSpace(s)
}
