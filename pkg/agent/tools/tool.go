// Package tools defines the browsing actions the agent can take and the
// XML tool-call format the model uses to invoke them.
package tools

import (
	"context"
	"encoding/xml"
)

// Tool is one action available to the agent. The model invokes tools
// through XML-formatted calls:
//
//	<tool>
//	<tool_name>visit_url</tool_name>
//	<arguments>
//	  <url>https://example.com/</url>
//	</arguments>
//	</tool>
type Tool interface {
	// Name returns the unique identifier for this tool (e.g. "click").
	Name() string

	// Description tells the model what the tool does and when to use it.
	Description() string

	// Schema returns a JSON Schema object describing the tool's
	// arguments. It is rendered into the system prompt.
	Schema() map[string]interface{}

	// Execute runs the tool with the raw <arguments> XML and returns an
	// observation string for the model plus optional metadata for
	// events.
	Execute(ctx context.Context, argumentsXML []byte) (string, map[string]interface{}, error)

	// IsLoopBreaking reports whether a successful call ends the agent
	// loop. Only the answer tool breaks the loop.
	IsLoopBreaking() bool
}

// ToolCall is a parsed tool invocation from the model's response.
type ToolCall struct {
	XMLName   xml.Name       `xml:"tool"`
	ToolName  string         `xml:"tool_name"`
	Arguments ArgumentsBlock `xml:"arguments"`
}

// ArgumentsBlock holds the raw XML inside the arguments element.
type ArgumentsBlock struct {
	InnerXML []byte `xml:",innerxml"`
}

// GetArgumentsXML returns the arguments re-wrapped in <arguments> tags,
// ready for unmarshaling into a tool's argument struct.
func (tc *ToolCall) GetArgumentsXML() []byte {
	const prefix = "<arguments>"
	const suffix = "</arguments>"

	result := make([]byte, 0, len(prefix)+len(tc.Arguments.InnerXML)+len(suffix))
	result = append(result, prefix...)
	result = append(result, tc.Arguments.InnerXML...)
	result = append(result, suffix...)
	return result
}

// BaseToolSchema builds the common JSON Schema shape shared by every
// tool.
func BaseToolSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
