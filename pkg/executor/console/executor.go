// Package console runs a web-surfing agent once, rendering its events
// to the terminal and optionally writing run artifacts.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/websurf/pkg/agent"
	"github.com/entrhq/websurf/pkg/types"
)

// Runner is the slice of agent behavior the executor drives.
// *agent.WebSurfer satisfies it.
type Runner interface {
	Run(ctx context.Context, task string) (*agent.Result, error)
	Events() <-chan *types.AgentEvent
}

var (
	turnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	thinkingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	actionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	resultStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	usageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	answerStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// Executor renders one agent run to the terminal.
type Executor struct {
	runner Runner
	writer io.Writer

	showThinking bool
	showUsage    bool
	artifacts    *ArtifactWriter
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithShowThinking toggles rendering of the agent's reasoning.
func WithShowThinking(show bool) ExecutorOption {
	return func(e *Executor) {
		e.showThinking = show
	}
}

// WithShowUsage toggles per-turn token usage lines.
func WithShowUsage(show bool) ExecutorOption {
	return func(e *Executor) {
		e.showUsage = show
	}
}

// WithWriter sets a custom output writer (default os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithArtifacts writes a machine-readable run report into dir after the
// run finishes.
func WithArtifacts(dir string) ExecutorOption {
	return func(e *Executor) {
		if dir != "" {
			e.artifacts = NewArtifactWriter(dir)
		}
	}
}

// NewExecutor creates a console executor around the given runner.
func NewExecutor(runner Runner, opts ...ExecutorOption) *Executor {
	e := &Executor{
		runner:       runner,
		writer:       os.Stdout,
		showThinking: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the task, rendering events as they arrive. The agent's
// result is returned after its event stream has drained.
func (e *Executor) Run(ctx context.Context, task string) (*agent.Result, error) {
	started := time.Now()

	type outcome struct {
		result *agent.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := e.runner.Run(ctx, task)
		done <- outcome{result, err}
	}()

	for event := range e.runner.Events() {
		e.render(event)
	}
	run := <-done

	if e.artifacts != nil {
		summary := NewRunSummary(task, run.result, run.err, started, time.Now())
		if werr := e.artifacts.WriteAll(summary); werr != nil {
			fmt.Fprintln(e.writer, errorStyle.Render(fmt.Sprintf("failed to write artifacts: %v", werr)))
		}
	}
	return run.result, run.err
}

func (e *Executor) render(event *types.AgentEvent) {
	switch event.Type {
	case types.EventTypeTurnStart:
		fmt.Fprintln(e.writer, turnStyle.Render(fmt.Sprintf("── turn %d ──", event.Turn)))

	case types.EventTypeThinking:
		if e.showThinking {
			fmt.Fprintln(e.writer, thinkingStyle.Render(event.Content))
		}

	case types.EventTypeObservation:
		// Observation text is bulky and never printed; the screenshot
		// is saved per turn when an artifact directory is configured.
		if e.artifacts != nil {
			if err := e.artifacts.WriteScreenshot(event.Turn, event.Screenshot); err != nil {
				fmt.Fprintln(e.writer, errorStyle.Render(fmt.Sprintf("failed to save screenshot: %v", err)))
			}
		}

	case types.EventTypeActionStart:
		fmt.Fprintln(e.writer, actionStyle.Render(fmt.Sprintf("→ %s %s", event.ActionName, formatInput(event.ActionInput))))

	case types.EventTypeActionResult:
		fmt.Fprintln(e.writer, resultStyle.Render("  "+event.Content))

	case types.EventTypeActionError:
		fmt.Fprintln(e.writer, errorStyle.Render(fmt.Sprintf("  ✗ %s: %v", event.ActionName, event.Error)))

	case types.EventTypeTokenUsage:
		if e.showUsage && event.TokenUsage != nil {
			fmt.Fprintln(e.writer, usageStyle.Render(fmt.Sprintf("  tokens: %d prompt, %d completion",
				event.TokenUsage.PromptTokens, event.TokenUsage.CompletionTokens)))
		}

	case types.EventTypeTaskComplete:
		fmt.Fprintln(e.writer, answerStyle.Render(event.Content))

	case types.EventTypeError:
		fmt.Fprintln(e.writer, errorStyle.Render(fmt.Sprintf("error: %v", event.Error)))
	}
}

func formatInput(input map[string]interface{}) string {
	if len(input) == 0 {
		return ""
	}
	// Render the most telling argument only; full inputs live in the
	// artifacts.
	for _, key := range []string{"url", "selector", "direction", "key", "content"} {
		if value, ok := input[key]; ok {
			return fmt.Sprintf("%v", value)
		}
	}
	return ""
}
