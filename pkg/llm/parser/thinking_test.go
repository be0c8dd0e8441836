package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// feed runs all chunks through the parser and flushes, accumulating the
// two output streams.
func feed(p *ThinkingParser, chunks ...string) (thinking, message string) {
	for _, chunk := range chunks {
		th, msg := p.Parse(chunk)
		thinking += th
		message += msg
	}
	th, msg := p.Flush()
	return thinking + th, message + msg
}

func TestThinkingParserSeparatesContent(t *testing.T) {
	thinking, message := feed(NewThinkingParser(),
		"<thinking>I should visit the page first.</thinking>",
		"\n<tool><tool_name>visit_url</tool_name></tool>",
	)

	assert.Equal(t, "I should visit the page first.", thinking)
	assert.Contains(t, message, "<tool>")
	assert.NotContains(t, message, "thinking")
}

func TestThinkingParserTagSplitAcrossChunks(t *testing.T) {
	thinking, message := feed(NewThinkingParser(),
		"<think", "ing>reason", "ing here</thi", "nking>answer",
	)

	assert.Equal(t, "reasoning here", thinking)
	assert.Equal(t, "answer", message)
}

func TestThinkingParserPreservesAngleBrackets(t *testing.T) {
	p := NewThinkingParser()
	thinking, message := feed(p,
		"<thinking>",
		"loop: for i := 0; i < 10; i++ {\n",
		"cmp: if x > 3 {\n",
		"</thinking>",
		"<tool>go_back</tool>",
	)

	assert.False(t, p.InThinking(), "close tag must be detected even after stray < and >")
	assert.Contains(t, thinking, "i < 10")
	assert.Contains(t, thinking, "x > 3")
	assert.Contains(t, message, "<tool>go_back</tool>")
}

func TestThinkingParserNoThinkingTags(t *testing.T) {
	thinking, message := feed(NewThinkingParser(), "just ", "plain text")

	assert.Empty(t, thinking)
	assert.Equal(t, "just plain text", message)
}

func TestThinkingParserFlushReleasesTruncatedTag(t *testing.T) {
	p := NewThinkingParser()
	_, message := p.Parse("answer <incomplete")
	assert.Equal(t, "answer ", message)

	_, flushed := p.Flush()
	assert.Equal(t, "<incomplete", flushed)
}

func TestThinkingParserReset(t *testing.T) {
	p := NewThinkingParser()
	p.Parse("<thinking>unfinished")
	assert.True(t, p.InThinking())

	p.Reset()
	assert.False(t, p.InThinking())

	_, message := feed(p, "fresh stream")
	assert.Equal(t, "fresh stream", message)
}
