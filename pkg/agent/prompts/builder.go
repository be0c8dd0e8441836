// Package prompts assembles the system prompt and per-turn observation
// messages for the web-surfing agent.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/entrhq/websurf/pkg/agent/tools"
)

// PromptBuilder constructs the agent's system prompt.
type PromptBuilder struct {
	tools              []tools.Tool
	customInstructions string
}

// NewPromptBuilder creates a prompt builder with no tools registered.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// WithTools sets the tools rendered into the available_tools section.
func (pb *PromptBuilder) WithTools(toolsList []tools.Tool) *PromptBuilder {
	pb.tools = toolsList
	return pb
}

// WithCustomInstructions adds end-user instructions ahead of the base
// prompt sections.
func (pb *PromptBuilder) WithCustomInstructions(instructions string) *PromptBuilder {
	pb.customInstructions = instructions
	return pb
}

// Build assembles the complete system prompt.
func (pb *PromptBuilder) Build() string {
	var builder strings.Builder

	if pb.customInstructions != "" {
		builder.WriteString("<custom_instructions>\n")
		builder.WriteString(pb.customInstructions)
		builder.WriteString("\n</custom_instructions>\n\n")
	}

	builder.WriteString(SystemRolePrompt)
	builder.WriteString("\n\n")
	builder.WriteString(AgentLoopPrompt)
	builder.WriteString("\n\n")
	builder.WriteString(ChainOfThoughtPrompt)
	builder.WriteString("\n\n")
	builder.WriteString(ToolCallingPrompt)
	builder.WriteString("\n\n")

	if len(pb.tools) > 0 {
		builder.WriteString("<available_tools>\n")
		builder.WriteString(FormatToolSchemas(pb.tools))
		builder.WriteString("</available_tools>\n\n")
	}

	builder.WriteString(BrowsingRulesPrompt)
	return builder.String()
}

// FormatToolSchemas renders each tool's name, description, and argument
// schema for the system prompt.
func FormatToolSchemas(toolsList []tools.Tool) string {
	var builder strings.Builder
	for _, tool := range toolsList {
		builder.WriteString(fmt.Sprintf("## %s\n", tool.Name()))
		builder.WriteString(tool.Description())
		builder.WriteString("\n")

		schema, err := json.MarshalIndent(tool.Schema(), "", "  ")
		if err != nil {
			continue
		}
		builder.WriteString("Arguments schema:\n")
		builder.Write(schema)
		builder.WriteString("\n\n")
	}
	return builder.String()
}

// Observation formats the textual half of a page observation. The
// screenshot travels alongside it as the message's image attachment.
func Observation(turn int, title, url, pageText, lastResult string) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "<observation turn=\"%d\">\n", turn)
	if lastResult != "" {
		builder.WriteString("<last_action_result>\n")
		builder.WriteString(lastResult)
		builder.WriteString("\n</last_action_result>\n")
	}
	fmt.Fprintf(&builder, "<page title=%q url=%q>\n", title, url)
	builder.WriteString(pageText)
	builder.WriteString("\n</page>\n</observation>")

	return builder.String()
}

// TaskMessage frames the user's task for the first turn.
func TaskMessage(task string) string {
	return "<task>\n" + strings.TrimSpace(task) + "\n</task>"
}
