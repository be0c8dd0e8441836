package types

// AgentEventType defines the type of event emitted by the web surfer.
type AgentEventType string

const (
	EventTypeTurnStart    AgentEventType = "turn_start"    // EventTypeTurnStart indicates the surfer is starting a new turn.
	EventTypeThinking     AgentEventType = "thinking"      // EventTypeThinking carries the surfer's reasoning for the current turn.
	EventTypeObservation  AgentEventType = "observation"   // EventTypeObservation carries the page state observed at the start of a turn.
	EventTypeActionStart  AgentEventType = "action_start"  // EventTypeActionStart indicates a surf action is about to execute.
	EventTypeActionResult AgentEventType = "action_result" // EventTypeActionResult indicates a surf action completed successfully.
	EventTypeActionError  AgentEventType = "action_error"  // EventTypeActionError indicates a surf action failed.
	EventTypeTokenUsage   AgentEventType = "token_usage"   // EventTypeTokenUsage carries token usage from an LLM completion.
	EventTypeTaskComplete AgentEventType = "task_complete" // EventTypeTaskComplete indicates the surfer produced a final answer.
	EventTypeTurnEnd      AgentEventType = "turn_end"      // EventTypeTurnEnd indicates the surfer finished the current turn.
	EventTypeError        AgentEventType = "error"         // EventTypeError indicates an unrecoverable error during the run.
)

// AgentEvent represents an event emitted by the web surfer during a run.
type AgentEvent struct {
	// Metadata holds optional additional information about the event.
	Metadata map[string]interface{}

	// ActionInput is the parsed arguments for action events.
	ActionInput map[string]interface{}

	// Error contains error information for error events.
	Error error

	// Content holds text content (thinking, observation, result, answer).
	Content string

	// ActionName is the name of the surf action (for action events).
	ActionName string

	// Screenshot is the viewport PNG captured with an observation event.
	Screenshot []byte

	// Type indicates the kind of event.
	Type AgentEventType

	// Turn is the 1-based turn number the event belongs to.
	Turn int

	// TokenUsage contains token usage information (for token usage events).
	TokenUsage *TokenUsage
}

// NewTurnStartEvent creates a turn start event.
func NewTurnStartEvent(turn int) *AgentEvent {
	return &AgentEvent{Type: EventTypeTurnStart, Turn: turn}
}

// NewThinkingEvent creates a thinking event with the surfer's reasoning.
func NewThinkingEvent(turn int, content string) *AgentEvent {
	return &AgentEvent{Type: EventTypeThinking, Turn: turn, Content: content}
}

// NewObservationEvent creates an observation event carrying the page
// state text and the screenshot it was observed from.
func NewObservationEvent(turn int, content string, screenshot []byte) *AgentEvent {
	return &AgentEvent{Type: EventTypeObservation, Turn: turn, Content: content, Screenshot: screenshot}
}

// NewActionStartEvent creates an action start event.
func NewActionStartEvent(turn int, action string, input map[string]interface{}) *AgentEvent {
	return &AgentEvent{Type: EventTypeActionStart, Turn: turn, ActionName: action, ActionInput: input}
}

// NewActionResultEvent creates an action result event.
func NewActionResultEvent(turn int, action, result string) *AgentEvent {
	return &AgentEvent{Type: EventTypeActionResult, Turn: turn, ActionName: action, Content: result}
}

// NewActionErrorEvent creates an action error event.
func NewActionErrorEvent(turn int, action string, err error) *AgentEvent {
	return &AgentEvent{Type: EventTypeActionError, Turn: turn, ActionName: action, Error: err}
}

// NewTokenUsageEvent creates a token usage event.
func NewTokenUsageEvent(turn, prompt, completion, total int) *AgentEvent {
	return &AgentEvent{
		Type: EventTypeTokenUsage,
		Turn: turn,
		TokenUsage: &TokenUsage{
			PromptTokens:     prompt,
			CompletionTokens: completion,
			TotalTokens:      total,
		},
	}
}

// NewTaskCompleteEvent creates a task complete event with the final answer.
func NewTaskCompleteEvent(turn int, answer string) *AgentEvent {
	return &AgentEvent{Type: EventTypeTaskComplete, Turn: turn, Content: answer}
}

// NewTurnEndEvent creates a turn end event.
func NewTurnEndEvent(turn int) *AgentEvent {
	return &AgentEvent{Type: EventTypeTurnEnd, Turn: turn}
}

// NewErrorEvent creates an error event.
func NewErrorEvent(err error) *AgentEvent {
	return &AgentEvent{Type: EventTypeError, Error: err}
}
