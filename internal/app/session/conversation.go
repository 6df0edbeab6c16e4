package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/PJEDeveloper/thinker/internal/domain"
)

// Conversation is the ordered, role-tagged message list of one session.
// It is not safe for concurrent use on its own; the owning Session
// serializes access.
type Conversation struct {
	messages []domain.Message
	now      func() time.Time
}

func newConversation() Conversation {
	return Conversation{now: time.Now}
}

// Append adds a message to the end of the timeline and returns it.
func (c *Conversation) Append(role domain.Role, text string) domain.Message {
	if c.now == nil {
		c.now = time.Now
	}
	msg := domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		Role:      role,
		Text:      text,
		CreatedAt: c.now(),
	}
	c.messages = append(c.messages, msg)
	return msg
}

// ClearAll empties the timeline.
func (c *Conversation) ClearAll() {
	c.messages = nil
}

// ClearLastTurn removes the most recent user+assistant pair. With fewer than
// two messages it removes whatever trails; on an empty timeline it is a no-op.
func (c *Conversation) ClearLastTurn() {
	n := len(c.messages)
	switch {
	case n >= 2:
		c.messages = c.messages[:n-2]
	case n == 1:
		c.messages = nil
	}
}

// ToPromptContext returns a copy of the timeline in append order.
func (c *Conversation) ToPromptContext() []domain.Message {
	out := make([]domain.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int {
	return len(c.messages)
}
