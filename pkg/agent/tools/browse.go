package tools

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
)

// Surfer is the slice of browser session behavior the tools drive.
// *browser.Session satisfies it; tests substitute a stub.
type Surfer interface {
	Navigate(rawURL string, waitUntil string) error
	Click(selector string) error
	Fill(selector, value string) error
	Press(selector, key string) error
	ScrollBy(deltaX, deltaY float64) error
	Back() error
	WaitForLoad() error
}

// scrollStep is how far one scroll action moves the page, roughly
// three quarters of the default viewport height so consecutive scrolls
// overlap.
const scrollStep = 680

// DefaultToolset returns the browsing tools wired to the given session,
// plus the loop-breaking answer tool.
func DefaultToolset(surfer Surfer) []Tool {
	return []Tool{
		NewVisitURLTool(surfer),
		NewClickTool(surfer),
		NewTypeTextTool(surfer),
		NewPressKeyTool(surfer),
		NewScrollTool(surfer),
		NewGoBackTool(surfer),
		NewAnswerTool(),
	}
}

// VisitURLTool navigates the page to an absolute URL.
type VisitURLTool struct {
	surfer Surfer
}

func NewVisitURLTool(surfer Surfer) *VisitURLTool {
	return &VisitURLTool{surfer: surfer}
}

func (t *VisitURLTool) Name() string { return "visit_url" }

func (t *VisitURLTool) Description() string {
	return "Navigate the browser to an absolute URL. " +
		"Use this to open a website or jump directly to a known page."
}

func (t *VisitURLTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "The absolute URL to open, including the scheme.",
			},
		},
		[]string{"url"},
	)
}

func (t *VisitURLTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName xml.Name `xml:"arguments"`
		URL     string   `xml:"url"`
	}
	if err := UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for visit_url: %w", err)
	}

	url := strings.TrimSpace(args.URL)
	if url == "" {
		return "", nil, fmt.Errorf("url cannot be empty")
	}

	if err := t.surfer.Navigate(url, "domcontentloaded"); err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("Opened %s", url), map[string]interface{}{"url": url}, nil
}

func (t *VisitURLTool) IsLoopBreaking() bool { return false }

// ClickTool clicks an element identified by a CSS selector.
type ClickTool struct {
	surfer Surfer
}

func NewClickTool(surfer Surfer) *ClickTool {
	return &ClickTool{surfer: surfer}
}

func (t *ClickTool) Name() string { return "click" }

func (t *ClickTool) Description() string {
	return "Click an element on the page identified by a CSS selector. " +
		"The numbered overlay on the screenshot maps to selectors of the " +
		`form [data-websurf-label="N"].`
}

func (t *ClickTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of the element to click.",
			},
		},
		[]string{"selector"},
	)
}

func (t *ClickTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName  xml.Name `xml:"arguments"`
		Selector string   `xml:"selector"`
	}
	if err := UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for click: %w", err)
	}
	if strings.TrimSpace(args.Selector) == "" {
		return "", nil, fmt.Errorf("selector cannot be empty")
	}

	if err := t.surfer.Click(args.Selector); err != nil {
		return "", nil, err
	}
	if err := t.surfer.WaitForLoad(); err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("Clicked %s", args.Selector), map[string]interface{}{"selector": args.Selector}, nil
}

func (t *ClickTool) IsLoopBreaking() bool { return false }

// TypeTextTool fills an input and optionally submits it with Enter.
type TypeTextTool struct {
	surfer Surfer
}

func NewTypeTextTool(surfer Surfer) *TypeTextTool {
	return &TypeTextTool{surfer: surfer}
}

func (t *TypeTextTool) Name() string { return "type_text" }

func (t *TypeTextTool) Description() string {
	return "Type text into an input field identified by a CSS selector, " +
		"replacing its current value. Set submit to true to press Enter afterwards."
}

func (t *TypeTextTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of the input field.",
			},
			"text": map[string]interface{}{
				"type":        "string",
				"description": "The text to type.",
			},
			"submit": map[string]interface{}{
				"type":        "boolean",
				"description": "Press Enter after typing. Defaults to false.",
			},
		},
		[]string{"selector", "text"},
	)
}

func (t *TypeTextTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName  xml.Name `xml:"arguments"`
		Selector string   `xml:"selector"`
		Text     string   `xml:"text"`
		Submit   string   `xml:"submit"`
	}
	if err := UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for type_text: %w", err)
	}
	if strings.TrimSpace(args.Selector) == "" {
		return "", nil, fmt.Errorf("selector cannot be empty")
	}

	if err := t.surfer.Fill(args.Selector, args.Text); err != nil {
		return "", nil, err
	}

	result := fmt.Sprintf("Typed %q into %s", args.Text, args.Selector)
	if strings.EqualFold(strings.TrimSpace(args.Submit), "true") {
		if err := t.surfer.Press(args.Selector, "Enter"); err != nil {
			return "", nil, err
		}
		if err := t.surfer.WaitForLoad(); err != nil {
			return "", nil, err
		}
		result += " and pressed Enter"
	}
	return result, map[string]interface{}{"selector": args.Selector}, nil
}

func (t *TypeTextTool) IsLoopBreaking() bool { return false }

// PressKeyTool sends a single key press to an element.
type PressKeyTool struct {
	surfer Surfer
}

func NewPressKeyTool(surfer Surfer) *PressKeyTool {
	return &PressKeyTool{surfer: surfer}
}

func (t *PressKeyTool) Name() string { return "press_key" }

func (t *PressKeyTool) Description() string {
	return "Press a single key (e.g. Enter, Escape, ArrowDown, Tab) with " +
		"an element focused. Useful for dismissing dialogs and submitting forms."
}

func (t *PressKeyTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of the element to focus. Defaults to the page body.",
			},
			"key": map[string]interface{}{
				"type":        "string",
				"description": "The key to press, using keyboard event names.",
			},
		},
		[]string{"key"},
	)
}

func (t *PressKeyTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName  xml.Name `xml:"arguments"`
		Selector string   `xml:"selector"`
		Key      string   `xml:"key"`
	}
	if err := UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for press_key: %w", err)
	}
	if strings.TrimSpace(args.Key) == "" {
		return "", nil, fmt.Errorf("key cannot be empty")
	}

	selector := strings.TrimSpace(args.Selector)
	if selector == "" {
		selector = "body"
	}

	if err := t.surfer.Press(selector, args.Key); err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("Pressed %s", args.Key), nil, nil
}

func (t *PressKeyTool) IsLoopBreaking() bool { return false }

// ScrollTool scrolls the page up or down by one step.
type ScrollTool struct {
	surfer Surfer
}

func NewScrollTool(surfer Surfer) *ScrollTool {
	return &ScrollTool{surfer: surfer}
}

func (t *ScrollTool) Name() string { return "scroll" }

func (t *ScrollTool) Description() string {
	return "Scroll the page up or down to reveal content outside the " +
		"current viewport."
}

func (t *ScrollTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"direction": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"up", "down"},
				"description": "The direction to scroll.",
			},
		},
		[]string{"direction"},
	)
}

func (t *ScrollTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName   xml.Name `xml:"arguments"`
		Direction string   `xml:"direction"`
	}
	if err := UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for scroll: %w", err)
	}

	var deltaY float64
	switch strings.ToLower(strings.TrimSpace(args.Direction)) {
	case "down":
		deltaY = scrollStep
	case "up":
		deltaY = -scrollStep
	default:
		return "", nil, fmt.Errorf("direction must be up or down, got %q", args.Direction)
	}

	if err := t.surfer.ScrollBy(0, deltaY); err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("Scrolled %s", strings.ToLower(args.Direction)), nil, nil
}

func (t *ScrollTool) IsLoopBreaking() bool { return false }

// GoBackTool navigates to the previous page in history.
type GoBackTool struct {
	surfer Surfer
}

func NewGoBackTool(surfer Surfer) *GoBackTool {
	return &GoBackTool{surfer: surfer}
}

func (t *GoBackTool) Name() string { return "go_back" }

func (t *GoBackTool) Description() string {
	return "Go back to the previous page, like the browser's back button. " +
		"Use this when the current page is a dead end."
}

func (t *GoBackTool) Schema() map[string]interface{} {
	return BaseToolSchema(map[string]interface{}{}, nil)
}

func (t *GoBackTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	if err := t.surfer.Back(); err != nil {
		return "", nil, err
	}
	return "Went back to the previous page", nil, nil
}

func (t *GoBackTool) IsLoopBreaking() bool { return false }
