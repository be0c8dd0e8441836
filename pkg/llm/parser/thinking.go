// Package parser separates structured markup from LLM output streams.
package parser

import "strings"

// ThinkingParser splits streamed model output into thinking and message
// content. The model wraps its reasoning in <thinking> tags; because the
// stream arrives in arbitrary deltas, a tag can be cut anywhere, so the
// parser buffers from '<' until it can tell whether the run is a real
// thinking tag or ordinary text.
type ThinkingParser struct {
	text       strings.Builder
	tag        strings.Builder
	inThinking bool
	inTag      bool
}

// NewThinkingParser returns a parser at the start-of-stream state.
func NewThinkingParser() *ThinkingParser {
	return &ThinkingParser{}
}

const (
	openTag  = "<thinking>"
	closeTag = "</thinking>"
)

// Parse consumes one stream delta and returns the thinking and message
// content it completed. Either return value may be empty; content held
// back as a potential tag is emitted by a later Parse call or by Flush.
func (p *ThinkingParser) Parse(delta string) (thinking, message string) {
	for _, ch := range delta {
		switch {
		case ch == '<':
			if p.inTag {
				// The previous '<' never closed, so it was plain text.
				thinking, message = p.emit(thinking, message, p.drainTag())
			}
			thinking, message = p.emit(thinking, message, p.drainText())
			p.inTag = true
			p.tag.WriteRune(ch)

		case ch == '>' && p.inTag:
			p.tag.WriteRune(ch)
			run := p.tag.String()
			p.tag.Reset()
			p.inTag = false

			switch run {
			case openTag:
				p.inThinking = true
			case closeTag:
				p.inThinking = false
			default:
				thinking, message = p.emit(thinking, message, run)
			}

		case p.inTag:
			p.tag.WriteRune(ch)

		default:
			p.text.WriteRune(ch)
		}
	}

	thinking, message = p.emit(thinking, message, p.drainText())
	return thinking, message
}

// Flush releases anything still buffered. Call it once the stream ends
// so a truncated tag is not swallowed.
func (p *ThinkingParser) Flush() (thinking, message string) {
	if p.inTag {
		thinking, message = p.emit(thinking, message, p.drainTag())
		p.inTag = false
	}
	return p.emit(thinking, message, p.drainText())
}

// InThinking reports whether the parser is currently inside a
// <thinking> block.
func (p *ThinkingParser) InThinking() bool {
	return p.inThinking
}

// Reset clears all state for reuse on a new stream.
func (p *ThinkingParser) Reset() {
	p.text.Reset()
	p.tag.Reset()
	p.inThinking = false
	p.inTag = false
}

func (p *ThinkingParser) drainText() string {
	s := p.text.String()
	p.text.Reset()
	return s
}

func (p *ThinkingParser) drainTag() string {
	s := p.tag.String()
	p.tag.Reset()
	return s
}

// emit routes content to the thinking or message accumulator depending
// on the current mode.
func (p *ThinkingParser) emit(thinking, message, content string) (string, string) {
	if content == "" {
		return thinking, message
	}
	if p.inThinking {
		return thinking + content, message
	}
	return thinking, message + content
}
