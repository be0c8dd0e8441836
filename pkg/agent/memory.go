package agent

import "github.com/entrhq/websurf/pkg/types"

// ConversationMemory holds the run's message history. Screenshots
// dominate the token budget, so only the most recent observations keep
// their image; older ones are reduced to text.
type ConversationMemory struct {
	messages  []*types.Message
	maxImages int
}

// NewConversationMemory creates a memory that retains images on at most
// maxImages of the latest messages.
func NewConversationMemory(maxImages int) *ConversationMemory {
	if maxImages < 1 {
		maxImages = 1
	}
	return &ConversationMemory{maxImages: maxImages}
}

// Append adds a message and evicts screenshots that fell out of the
// retention window.
func (m *ConversationMemory) Append(msg *types.Message) {
	m.messages = append(m.messages, msg)

	kept := 0
	for i := len(m.messages) - 1; i >= 0; i-- {
		if !m.messages[i].HasImage() {
			continue
		}
		kept++
		if kept > m.maxImages {
			m.messages[i].ImagePNG = nil
		}
	}
}

// Messages returns the history in order.
func (m *ConversationMemory) Messages() []*types.Message {
	return m.messages
}

// Len returns the number of messages held.
func (m *ConversationMemory) Len() int {
	return len(m.messages)
}
