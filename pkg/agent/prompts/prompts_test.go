package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrhq/websurf/pkg/agent/tools"
)

func TestBuildIncludesCoreSections(t *testing.T) {
	prompt := NewPromptBuilder().Build()

	assert.Contains(t, prompt, "<system_role>")
	assert.Contains(t, prompt, "<agent_loop>")
	assert.Contains(t, prompt, "<chain_of_thought>")
	assert.Contains(t, prompt, "<tool_calling>")
	assert.Contains(t, prompt, "<browsing_rules>")
	assert.NotContains(t, prompt, "<available_tools>", "no tools registered")
}

func TestBuildRendersTools(t *testing.T) {
	toolset := []tools.Tool{tools.NewAnswerTool()}
	prompt := NewPromptBuilder().WithTools(toolset).Build()

	assert.Contains(t, prompt, "<available_tools>")
	assert.Contains(t, prompt, "## answer")
	assert.Contains(t, prompt, "Arguments schema:")
	assert.Contains(t, prompt, `"content"`)
}

func TestBuildCustomInstructionsFirst(t *testing.T) {
	prompt := NewPromptBuilder().
		WithCustomInstructions("Prefer official sources.").
		Build()

	assert.True(t, strings.HasPrefix(prompt, "<custom_instructions>\nPrefer official sources."),
		"custom instructions lead the prompt")
}

func TestObservation(t *testing.T) {
	obs := Observation(3, "Example Domain", "https://example.com/", "page body text", "Clicked #link")

	assert.Contains(t, obs, `<observation turn="3">`)
	assert.Contains(t, obs, "Clicked #link")
	assert.Contains(t, obs, `title="Example Domain"`)
	assert.Contains(t, obs, `url="https://example.com/"`)
	assert.Contains(t, obs, "page body text")
}

func TestObservationOmitsEmptyLastResult(t *testing.T) {
	obs := Observation(1, "t", "u", "text", "")
	assert.NotContains(t, obs, "<last_action_result>")
}

func TestTaskMessage(t *testing.T) {
	assert.Equal(t, "<task>\nfind the weather\n</task>", TaskMessage("  find the weather \n"))
}
