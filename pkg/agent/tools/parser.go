package tools

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const (
	// maxToolCallSize bounds the XML we will attempt to parse.
	maxToolCallSize = 1 * 1024 * 1024

	argumentsTagName = "arguments"
)

var toolRegex = regexp.MustCompile(`(?s)<tool>.*?</tool>`)

// ampersandEntityRegex matches ampersands that already start an XML
// entity so the fallback escape does not double-escape them.
var ampersandEntityRegex = regexp.MustCompile(`&(?:amp|lt|gt|quot|apos|#\d+|#x[0-9a-fA-F]+);`)

// ParseToolCall extracts the first tool invocation from model output.
// Returns the parsed call and the text with the invocation removed.
func ParseToolCall(text string) (*ToolCall, string, error) {
	if len(text) > maxToolCallSize {
		return nil, text, fmt.Errorf("tool call exceeds maximum size of %d bytes", maxToolCallSize)
	}

	match := toolRegex.FindString(text)
	if match == "" {
		return nil, text, fmt.Errorf("no tool call found in text")
	}

	var call ToolCall
	if err := UnmarshalXMLWithFallback([]byte(strings.TrimSpace(match)), &call); err != nil {
		snippet := match
		if len(snippet) > 200 {
			snippet = snippet[:200] + "..."
		}
		return nil, text, fmt.Errorf("failed to unmarshal tool call XML: %w\nXML snippet: %s", err, snippet)
	}

	if call.ToolName == "" {
		return nil, text, fmt.Errorf("tool_name is required in tool call")
	}

	remaining := strings.TrimSpace(toolRegex.ReplaceAllString(text, ""))
	return &call, remaining, nil
}

// ExtractThinkingAndToolCall splits a response into the reasoning that
// precedes the tool call, the call itself, and anything after it. When
// no tool call is present the whole text is returned as thinking.
func ExtractThinkingAndToolCall(text string) (thinking string, call *ToolCall, remaining string, err error) {
	loc := toolRegex.FindStringIndex(text)
	if loc == nil {
		return text, nil, "", nil
	}

	thinking = strings.TrimSpace(text[:loc[0]])
	remaining = strings.TrimSpace(text[loc[1]:])

	call, _, err = ParseToolCall(text[loc[0]:loc[1]])
	if err != nil {
		return thinking, nil, remaining, err
	}
	return thinking, call, remaining, nil
}

// HasToolCall reports whether the text contains a tool invocation.
func HasToolCall(text string) bool {
	return toolRegex.MatchString(text)
}

// UnmarshalXMLWithFallback unmarshals XML, retrying with bare
// ampersands escaped when the first parse fails. Models routinely emit
// URLs with unescaped query separators.
func UnmarshalXMLWithFallback(data []byte, v interface{}) error {
	if err := xml.Unmarshal(data, v); err == nil {
		return nil
	}
	return xml.Unmarshal(escapeBareAmpersands(data), v)
}

func escapeBareAmpersands(data []byte) []byte {
	text := string(data)

	entityStarts := make(map[int]bool)
	for _, match := range ampersandEntityRegex.FindAllStringIndex(text, -1) {
		entityStarts[match[0]] = true
	}

	var result strings.Builder
	result.Grow(len(text) + 16)
	for i := 0; i < len(text); i++ {
		if text[i] == '&' && !entityStarts[i] {
			result.WriteString("&amp;")
		} else {
			result.WriteByte(text[i])
		}
	}
	return []byte(result.String())
}

// ArgumentsToMap flattens the direct children of an <arguments> element
// into a string map, for logging and event payloads.
func ArgumentsToMap(data []byte) (map[string]interface{}, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	result := make(map[string]interface{})

	var path []string
	var text strings.Builder

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)
			text.Reset()

		case xml.EndElement:
			if len(path) == 0 {
				continue
			}
			name := path[len(path)-1]
			path = path[:len(path)-1]

			// Only direct children of the root <arguments> element.
			if len(path) == 1 && path[0] == argumentsTagName && name != argumentsTagName {
				if value := strings.TrimSpace(text.String()); value != "" {
					result[name] = value
				}
			}
			text.Reset()

		case xml.CharData:
			text.Write(t)
		}
	}

	return result, nil
}
