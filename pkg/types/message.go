package types

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single entry in the agent's conversation with the LLM.
// User messages produced from page observations may carry a screenshot
// alongside the text content.
type Message struct {
	// Metadata holds optional additional information about the message.
	Metadata map[string]interface{}

	// Role indicates who authored the message.
	Role Role

	// Content is the text content of the message.
	Content string

	// ImagePNG is an optional PNG screenshot attached to the message.
	// Only multimodal providers will transmit it.
	ImagePNG []byte
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) *Message {
	return &Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message with text content only.
func NewUserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content}
}

// NewUserImageMessage creates a user message carrying a screenshot.
func NewUserImageMessage(content string, png []byte) *Message {
	return &Message{Role: RoleUser, Content: content, ImagePNG: png}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) *Message {
	return &Message{Role: RoleAssistant, Content: content}
}

// HasImage reports whether the message carries a screenshot.
func (m *Message) HasImage() bool {
	return len(m.ImagePNG) > 0
}

// ModelInfo describes the LLM model behind a provider.
type ModelInfo struct {
	// Name is the model identifier (e.g., "gpt-4o").
	Name string

	// Provider is the service name (e.g., "openai").
	Provider string

	// MaxTokens is the model's context window size.
	MaxTokens int

	// SupportsVision indicates whether the model accepts image inputs.
	SupportsVision bool

	// SupportsStreaming indicates whether the provider can stream responses.
	SupportsStreaming bool
}

// TokenUsage contains token usage statistics from an LLM API call.
type TokenUsage struct {
	// PromptTokens is the number of tokens in the input/prompt.
	PromptTokens int

	// CompletionTokens is the number of tokens in the generated response.
	CompletionTokens int

	// TotalTokens is the total number of tokens used (prompt + completion).
	TotalTokens int
}
