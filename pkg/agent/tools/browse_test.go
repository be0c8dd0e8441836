package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSurfer records the calls the tools make against the session.
type stubSurfer struct {
	calls []string
	fail  error
}

func (s *stubSurfer) record(call string) error {
	s.calls = append(s.calls, call)
	return s.fail
}

func (s *stubSurfer) Navigate(rawURL, waitUntil string) error {
	return s.record("navigate " + rawURL + " " + waitUntil)
}
func (s *stubSurfer) Click(selector string) error       { return s.record("click " + selector) }
func (s *stubSurfer) Fill(selector, value string) error { return s.record("fill " + selector + " " + value) }
func (s *stubSurfer) Press(selector, key string) error  { return s.record("press " + selector + " " + key) }
func (s *stubSurfer) ScrollBy(dx, dy float64) error {
	if dy > 0 {
		return s.record("scroll down")
	}
	return s.record("scroll up")
}
func (s *stubSurfer) Back() error        { return s.record("back") }
func (s *stubSurfer) WaitForLoad() error { return s.record("wait") }

func execute(t *testing.T, tool Tool, argsXML string) (string, error) {
	t.Helper()
	result, _, err := tool.Execute(context.Background(), []byte(argsXML))
	return result, err
}

func TestVisitURLTool(t *testing.T) {
	surfer := &stubSurfer{}
	tool := NewVisitURLTool(surfer)

	result, err := execute(t, tool, "<arguments><url>https://example.com/</url></arguments>")
	require.NoError(t, err)

	assert.Contains(t, result, "https://example.com/")
	assert.Equal(t, []string{"navigate https://example.com/ domcontentloaded"}, surfer.calls)
}

func TestVisitURLToolRequiresURL(t *testing.T) {
	_, err := execute(t, NewVisitURLTool(&stubSurfer{}), "<arguments><url>  </url></arguments>")
	assert.Error(t, err)
}

func TestVisitURLToolPropagatesNavigationError(t *testing.T) {
	surfer := &stubSurfer{fail: errors.New("blocked by policy")}

	_, err := execute(t, NewVisitURLTool(surfer), "<arguments><url>https://evil.com/</url></arguments>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked by policy")
}

func TestClickToolWaitsForLoad(t *testing.T) {
	surfer := &stubSurfer{}

	_, err := execute(t, NewClickTool(surfer), "<arguments><selector>#submit</selector></arguments>")
	require.NoError(t, err)

	assert.Equal(t, []string{"click #submit", "wait"}, surfer.calls)
}

func TestTypeTextTool(t *testing.T) {
	t.Run("without submit", func(t *testing.T) {
		surfer := &stubSurfer{}
		result, err := execute(t, NewTypeTextTool(surfer),
			"<arguments><selector>#q</selector><text>weather lisbon</text></arguments>")
		require.NoError(t, err)

		assert.Equal(t, []string{"fill #q weather lisbon"}, surfer.calls)
		assert.NotContains(t, result, "Enter")
	})

	t.Run("with submit", func(t *testing.T) {
		surfer := &stubSurfer{}
		result, err := execute(t, NewTypeTextTool(surfer),
			"<arguments><selector>#q</selector><text>weather</text><submit>true</submit></arguments>")
		require.NoError(t, err)

		assert.Equal(t, []string{"fill #q weather", "press #q Enter", "wait"}, surfer.calls)
		assert.Contains(t, result, "Enter")
	})
}

func TestPressKeyToolDefaultsToBody(t *testing.T) {
	surfer := &stubSurfer{}

	_, err := execute(t, NewPressKeyTool(surfer), "<arguments><key>Escape</key></arguments>")
	require.NoError(t, err)

	assert.Equal(t, []string{"press body Escape"}, surfer.calls)
}

func TestScrollTool(t *testing.T) {
	surfer := &stubSurfer{}
	tool := NewScrollTool(surfer)

	_, err := execute(t, tool, "<arguments><direction>down</direction></arguments>")
	require.NoError(t, err)
	_, err = execute(t, tool, "<arguments><direction>up</direction></arguments>")
	require.NoError(t, err)

	assert.Equal(t, []string{"scroll down", "scroll up"}, surfer.calls)

	_, err = execute(t, tool, "<arguments><direction>sideways</direction></arguments>")
	assert.Error(t, err)
}

func TestGoBackTool(t *testing.T) {
	surfer := &stubSurfer{}

	result, err := execute(t, NewGoBackTool(surfer), "<arguments></arguments>")
	require.NoError(t, err)

	assert.Contains(t, result, "back")
	assert.Equal(t, []string{"back"}, surfer.calls)
}

func TestAnswerTool(t *testing.T) {
	tool := NewAnswerTool()
	assert.True(t, tool.IsLoopBreaking())

	result, err := execute(t, tool, "<arguments><content>The population is 10.5 million.</content></arguments>")
	require.NoError(t, err)
	assert.Equal(t, "The population is 10.5 million.", result)

	_, err = execute(t, tool, "<arguments><content>  </content></arguments>")
	assert.Error(t, err)
}

func TestDefaultToolsetShape(t *testing.T) {
	toolset := DefaultToolset(&stubSurfer{})

	names := make(map[string]bool)
	loopBreaking := 0
	for _, tool := range toolset {
		assert.NotEmpty(t, tool.Description())
		assert.Equal(t, "object", tool.Schema()["type"])
		names[tool.Name()] = true
		if tool.IsLoopBreaking() {
			loopBreaking++
		}
	}

	for _, name := range []string{"visit_url", "click", "type_text", "press_key", "scroll", "go_back", "answer"} {
		assert.True(t, names[name], "missing tool %s", name)
	}
	assert.Equal(t, 1, loopBreaking, "only answer ends the loop")
}
