package tools

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
)

const answerToolName = "answer"

// AnswerTool is the loop-breaking tool the agent calls once it has
// gathered enough from the web to answer the task.
type AnswerTool struct{}

func NewAnswerTool() *AnswerTool {
	return &AnswerTool{}
}

func (t *AnswerTool) Name() string {
	return answerToolName
}

func (t *AnswerTool) Description() string {
	return "Finish the task and report the final answer. Use this only " +
		"when the pages you visited contain everything needed; the answer " +
		"should be complete and grounded in what you observed."
}

func (t *AnswerTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "The final answer to the task, including relevant details found while browsing.",
			},
		},
		[]string{"content"},
	)
}

func (t *AnswerTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName xml.Name `xml:"arguments"`
		Content string   `xml:"content"`
	}
	if err := UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for %s: %w", answerToolName, err)
	}

	content := strings.TrimSpace(args.Content)
	if content == "" {
		return "", nil, fmt.Errorf("answer content cannot be empty")
	}
	return content, nil, nil
}

// IsLoopBreaking returns true: a successful answer ends the run.
func (t *AnswerTool) IsLoopBreaking() bool {
	return true
}
