package agent

import "fmt"

// Turn is one utterance in a conversation, from the user or the assistant.
type Turn struct {
	Role    string // user or assistant
	Content string
}

// ConversationContext carries the active user and the turn history. It is
// passed explicitly into every specialist call; there is no ambient session
// registry.
type ConversationContext struct {
	UserID         string
	ConversationID string
	Turns          []Turn
}

// NewConversationContext creates a context for one user's session.
func NewConversationContext(userID string) *ConversationContext {
	return &ConversationContext{UserID: userID}
}

// Append records a turn.
func (c *ConversationContext) Append(role, content string) {
	c.Turns = append(c.Turns, Turn{Role: role, Content: content})
}

// Recent returns up to n of the latest turns formatted for prompt context.
func (c *ConversationContext) Recent(n int) []string {
	start := len(c.Turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, 0, len(c.Turns)-start)
	for _, t := range c.Turns[start:] {
		out = append(out, fmt.Sprintf("%s: %s", t.Role, t.Content))
	}
	return out
}
