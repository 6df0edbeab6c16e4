package domain

// Message is one entry in a conversation timeline (user or assistant).
type Message struct {
	ID        MessageID
	Role      Role
	Text      string
	CreatedAt Timestamp
}

// Prompt is what a Generator receives: a system instruction, the prior
// conversation, and the fully composed content of the current user turn.
type Prompt struct {
	System  string
	History []Message
	User    string
}
