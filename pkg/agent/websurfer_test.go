package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/websurf/pkg/browser"
	"github.com/entrhq/websurf/pkg/llm"
	"github.com/entrhq/websurf/pkg/types"
)

// scriptedProvider replays canned responses in order.
type scriptedProvider struct {
	responses []string
	calls     [][]*types.Message
	err       error
}

func (p *scriptedProvider) Complete(ctx context.Context, messages []*types.Message) (*types.Message, error) {
	p.calls = append(p.calls, messages)
	if p.err != nil {
		return nil, p.err
	}
	index := len(p.calls) - 1
	if index >= len(p.responses) {
		index = len(p.responses) - 1
	}
	return types.NewAssistantMessage(p.responses[index]), nil
}

func (p *scriptedProvider) StreamCompletion(ctx context.Context, messages []*types.Message) (<-chan *llm.StreamChunk, error) {
	return nil, errors.New("not used in tests")
}

func (p *scriptedProvider) GetModelInfo() *types.ModelInfo {
	return &types.ModelInfo{Name: "scripted", Provider: "test"}
}

func (p *scriptedProvider) GetModel() string { return "scripted" }

// fakeDriver is a minimal BrowserDriver that records actions.
type fakeDriver struct {
	actions []string
	failOn  string
}

func (d *fakeDriver) act(name string) error {
	d.actions = append(d.actions, name)
	if d.failOn == name {
		return errors.New(name + " exploded")
	}
	return nil
}

func (d *fakeDriver) Navigate(rawURL, waitUntil string) error { return d.act("navigate") }
func (d *fakeDriver) Click(selector string) error             { return d.act("click") }
func (d *fakeDriver) Fill(selector, value string) error       { return d.act("fill") }
func (d *fakeDriver) Press(selector, key string) error        { return d.act("press") }
func (d *fakeDriver) ScrollBy(dx, dy float64) error           { return d.act("scroll") }
func (d *fakeDriver) Back() error                             { return d.act("back") }
func (d *fakeDriver) WaitForLoad() error                      { return d.act("wait") }

func (d *fakeDriver) Screenshot() ([]byte, error) {
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (d *fakeDriver) PageText(maxLength int) (*browser.PageText, error) {
	return &browser.PageText{Title: "Example", Text: "Example Domain body text"}, nil
}

func (d *fakeDriver) Metadata() (string, string, error) {
	return "Example", "https://example.com/", nil
}

// drainEvents consumes the event channel so Run never blocks, returning
// the collected events after Run finishes.
func drainEvents(w *WebSurfer) func() []*types.AgentEvent {
	collected := make(chan []*types.AgentEvent, 1)
	go func() {
		var events []*types.AgentEvent
		for event := range w.Events() {
			events = append(events, event)
		}
		collected <- events
	}()
	return func() []*types.AgentEvent { return <-collected }
}

const answerCall = `<thinking>I can answer now.</thinking>
<tool><tool_name>answer</tool_name><arguments><content>It is example.com.</content></arguments></tool>`

func TestRunAnswersImmediately(t *testing.T) {
	provider := &scriptedProvider{responses: []string{answerCall}}
	surfer := NewWebSurfer(provider, &fakeDriver{})
	events := drainEvents(surfer)

	result, err := surfer.Run(context.Background(), "what site is this?")
	require.NoError(t, err)

	assert.Equal(t, "It is example.com.", result.Answer)
	assert.Equal(t, 1, result.Turns)

	var sawThinking, sawComplete bool
	for _, event := range events() {
		switch event.Type {
		case types.EventTypeThinking:
			sawThinking = true
			assert.Equal(t, "I can answer now.", event.Content)
		case types.EventTypeTaskComplete:
			sawComplete = true
		}
	}
	assert.True(t, sawThinking)
	assert.True(t, sawComplete)
}

func TestRunExecutesActionsThenAnswers(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`<thinking>open the page</thinking>
<tool><tool_name>visit_url</tool_name><arguments><url>https://example.com/</url></arguments></tool>`,
		`<thinking>scroll for more</thinking>
<tool><tool_name>scroll</tool_name><arguments><direction>down</direction></arguments></tool>`,
		answerCall,
	}}
	driver := &fakeDriver{}
	surfer := NewWebSurfer(provider, driver)
	events := drainEvents(surfer)

	result, err := surfer.Run(context.Background(), "task")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Turns)
	assert.Equal(t, []string{"navigate", "scroll"}, driver.actions)

	resultEvents := 0
	for _, event := range events() {
		if event.Type == types.EventTypeActionResult {
			resultEvents++
		}
	}
	assert.Equal(t, 2, resultEvents)
}

func TestRunFeedsActionErrorBackToModel(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`<tool><tool_name>click</tool_name><arguments><selector>#gone</selector></arguments></tool>`,
		answerCall,
	}}
	driver := &fakeDriver{failOn: "click"}
	surfer := NewWebSurfer(provider, driver)
	events := drainEvents(surfer)

	result, err := surfer.Run(context.Background(), "task")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Turns)

	// The second observation must carry the failure back to the model.
	require.Len(t, provider.calls, 2)
	secondObservation := provider.calls[1][len(provider.calls[1])-1]
	assert.Contains(t, secondObservation.Content, "click exploded")

	var sawActionError bool
	for _, event := range events() {
		if event.Type == types.EventTypeActionError {
			sawActionError = true
		}
	}
	assert.True(t, sawActionError)
}

func TestRunRecoversFromMissingToolCall(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"I will just describe the page instead of acting.",
		answerCall,
	}}
	surfer := NewWebSurfer(provider, &fakeDriver{})
	events := drainEvents(surfer)

	result, err := surfer.Run(context.Background(), "task")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Turns)

	secondObservation := provider.calls[1][len(provider.calls[1])-1]
	assert.Contains(t, secondObservation.Content, "did not contain a tool call")
	_ = events()
}

func TestRunRejectsUnknownTool(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`<tool><tool_name>teleport</tool_name><arguments></arguments></tool>`,
		answerCall,
	}}
	surfer := NewWebSurfer(provider, &fakeDriver{})
	events := drainEvents(surfer)

	result, err := surfer.Run(context.Background(), "task")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Turns)

	secondObservation := provider.calls[1][len(provider.calls[1])-1]
	assert.Contains(t, secondObservation.Content, "unknown tool")
	_ = events()
}

func TestRunStopsAtMaxTurns(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`<tool><tool_name>scroll</tool_name><arguments><direction>down</direction></arguments></tool>`,
	}}
	surfer := NewWebSurfer(provider, &fakeDriver{}, WithMaxTurns(3))
	events := drainEvents(surfer)

	result, err := surfer.Run(context.Background(), "task")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 turns")
	assert.Equal(t, 3, result.Turns)
	assert.Empty(t, result.Answer)
	_ = events()
}

func TestRunSurfacesProviderError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("api down")}
	surfer := NewWebSurfer(provider, &fakeDriver{})
	events := drainEvents(surfer)

	_, err := surfer.Run(context.Background(), "task")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api down")
	_ = events()
}

func TestSystemPromptLeadsEveryCompletion(t *testing.T) {
	provider := &scriptedProvider{responses: []string{answerCall}}
	surfer := NewWebSurfer(provider, &fakeDriver{})
	events := drainEvents(surfer)

	_, err := surfer.Run(context.Background(), "task")
	require.NoError(t, err)
	_ = events()

	first := provider.calls[0][0]
	assert.Equal(t, types.RoleSystem, first.Role)
	assert.Contains(t, first.Content, "<available_tools>")
}

func TestObservationEventsCarryScreenshot(t *testing.T) {
	provider := &scriptedProvider{responses: []string{answerCall}}
	surfer := NewWebSurfer(provider, &fakeDriver{})
	events := drainEvents(surfer)

	_, err := surfer.Run(context.Background(), "task")
	require.NoError(t, err)

	var observations int
	for _, event := range events() {
		if event.Type == types.EventTypeObservation {
			observations++
			assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, event.Screenshot,
				"the captured viewport rides on the event so executors can persist it")
		}
	}
	assert.Equal(t, 1, observations)
}

func TestConversationMemoryEvictsOldScreenshots(t *testing.T) {
	memory := NewConversationMemory(2)

	memory.Append(types.NewUserMessage("task"))
	first := types.NewUserImageMessage("obs 1", []byte{1})
	second := types.NewUserImageMessage("obs 2", []byte{2})
	third := types.NewUserImageMessage("obs 3", []byte{3})
	memory.Append(first)
	memory.Append(second)
	memory.Append(third)

	assert.False(t, first.HasImage(), "oldest screenshot evicted")
	assert.True(t, second.HasImage())
	assert.True(t, third.HasImage())
	assert.Equal(t, 4, memory.Len())
	assert.Equal(t, "obs 1", first.Content, "text survives eviction")
}
