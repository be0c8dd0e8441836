package browser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// PageText is the cleaned textual rendering of a page, suitable for
// inclusion in an LLM observation alongside the screenshot.
type PageText struct {
	Title       string
	Description string
	Text        string
	Truncated   bool
}

// ExtractPageText parses raw page HTML and renders it as annotated plain
// text: scripts, styles and embeds are dropped, block elements become line
// breaks, and links, images and form controls keep a short annotation so
// the surfer can refer to them.
func ExtractPageText(rawHTML string, maxLength int) (*PageText, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	result := &PageText{
		Title:       findTitle(doc),
		Description: findMetaDescription(doc),
	}

	var b strings.Builder
	var length int
	result.Truncated = renderNode(doc, &b, &length, maxLength)
	result.Text = collapseBlankLines(b.String())
	return result, nil
}

// renderNode walks the tree writing text; returns true once truncated.
func renderNode(n *html.Node, b *strings.Builder, length *int, maxLength int) bool {
	if *length >= maxLength {
		return true
	}

	switch n.Type {
	case html.CommentNode:
		return false

	case html.TextNode:
		return writeText(n.Data, b, length, maxLength)

	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if isNoiseElement(tag) {
			return false
		}

		if annotation := elementAnnotation(tag, n); annotation != "" {
			if writeText(annotation, b, length, maxLength) {
				return true
			}
		}

		if isLineBreaking(tag) {
			b.WriteString("\n")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if renderNode(c, b, length, maxLength) {
			return true
		}
	}

	if n.Type == html.ElementNode && isLineBreaking(strings.ToLower(n.Data)) {
		b.WriteString("\n")
	}
	return false
}

func writeText(text string, b *strings.Builder, length *int, maxLength int) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
		b.WriteString(" ")
	}

	if *length+len(text) > maxLength {
		remaining := maxLength - *length
		if remaining > 0 {
			// Back off to a rune boundary so the cut never emits a
			// partial multi-byte character.
			for remaining > 0 && !utf8.RuneStart(text[remaining]) {
				remaining--
			}
			b.WriteString(text[:remaining])
		}
		b.WriteString("...")
		*length = maxLength
		return true
	}

	b.WriteString(text)
	*length += len(text)
	return false
}

// elementAnnotation renders a short marker for interactive elements so the
// observation text can be correlated with the labeled screenshot.
func elementAnnotation(tag string, n *html.Node) string {
	attr := func(key string) string {
		for _, a := range n.Attr {
			if strings.EqualFold(a.Key, key) {
				return a.Val
			}
		}
		return ""
	}

	switch tag {
	case "a":
		if href := attr("href"); href != "" {
			return fmt.Sprintf("[link: %s]", href)
		}
	case "img":
		if alt := attr("alt"); alt != "" {
			return fmt.Sprintf("[image: %s]", alt)
		}
	case "input":
		name := attr("name")
		if name == "" {
			name = attr("placeholder")
		}
		if name != "" {
			return fmt.Sprintf("[input: %s]", name)
		}
		return "[input]"
	case "textarea":
		return "[textarea]"
	case "select":
		return "[select]"
	case "button":
		return "[button]"
	}
	return ""
}

func isNoiseElement(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "iframe", "embed", "object", "svg", "template", "head":
		return true
	}
	return false
}

func isLineBreaking(tag string) bool {
	switch tag {
	case "div", "p", "section", "article", "header", "footer", "nav", "main",
		"aside", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li",
		"table", "tr", "form", "fieldset", "blockquote", "pre", "br", "hr":
		return true
	}
	return false
}

// collapseBlankLines trims each line and squeezes runs of blank lines.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// findTitle returns the contents of the document's <title>.
func findTitle(doc *html.Node) string {
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

// findMetaDescription returns the document's meta description, if any.
func findMetaDescription(doc *html.Node) string {
	var description string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if description != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" {
			var isDescription bool
			var content string
			for _, attr := range n.Attr {
				if attr.Key == "name" && attr.Val == "description" {
					isDescription = true
				}
				if attr.Key == "content" {
					content = attr.Val
				}
			}
			if isDescription {
				description = strings.TrimSpace(content)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return description
}
