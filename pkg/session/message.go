package session

import "github.com/google/uuid"

// Role identifies the author of a chat message.
type Role string

const (
	// RoleUser marks a message the user submitted.
	RoleUser Role = "user"
	// RoleAssistant marks a message produced by the knowledge service,
	// including the fixed fallback and error texts.
	RoleAssistant Role = "assistant"
)

// Message is one immutable entry in a space's conversation. The sequence a
// ChatSession holds is append-only and ordering-preserving.
type Message struct {
	// ID is a locally generated unique identifier.
	ID string `json:"id" yaml:"id"`
	// Seq is the monotonic position within the session, starting at 1.
	Seq int `json:"seq" yaml:"seq"`
	// Role is the message author.
	Role Role `json:"role" yaml:"role"`
	// Content is the message text.
	Content string `json:"content" yaml:"content"`
}

// newMessage creates a Message with a fresh ID at the given sequence position.
func newMessage(seq int, role Role, content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Seq:     seq,
		Role:    role,
		Content: content,
	}
}
