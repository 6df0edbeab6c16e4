package session

import (
	"sync"

	"github.com/PJEDeveloper/thinker/internal/domain"
)

// Session aggregates one conversation, one media context, and one document
// context behind a single lock. Every mutation and every consistent read of
// the three sub-states goes through it: concurrent handlers must never
// interleave appends and clears on the shared sequence.
type Session struct {
	ID domain.SessionID

	mu    sync.Mutex
	conv  Conversation
	media MediaContext
	doc   DocumentContext
}

func newSession(id domain.SessionID) *Session {
	return &Session{
		ID:   id,
		conv: newConversation(),
	}
}

// Snapshot is a consistent read of everything prompt composition needs.
type Snapshot struct {
	History             []domain.Message
	MediaFragment       string
	DocumentText        string
	DocumentInteraction bool
	DocumentLoaded      bool
}

// Snapshot captures the composable state under one lock acquisition, so a
// concurrent clear cannot land between reading the history and reading the
// document page.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		History:             s.conv.ToPromptContext(),
		MediaFragment:       s.media.Render(),
		DocumentText:        s.doc.CurrentText(),
		DocumentInteraction: s.doc.Interaction(),
		DocumentLoaded:      s.doc.Loaded(),
	}
}

func (s *Session) AppendMessage(role domain.Role, text string) domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Append(role, text)
}

func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.ToPromptContext()
}

func (s *Session) ClearConversation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.ClearAll()
}

func (s *Session) ClearLastTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.ClearLastTurn()
}

func (s *Session) SetCaption(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media.SetCaption(text)
}

func (s *Session) SetTranscript(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media.SetTranscript(text)
}

func (s *Session) ClearCaption() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media.ClearCaption()
}

func (s *Session) ClearTranscript() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media.ClearTranscript()
}

func (s *Session) LoadDocument(filename, spoolPath, rawText string, chunkSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Load(filename, spoolPath, rawText, chunkSize)
}

// DocumentPage moves the document cursor to page n and returns the chunk
// plus (current, total).
func (s *Session) DocumentPage(n int) (text string, current, total int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, err = s.doc.GetPage(n)
	return text, s.doc.CurrentPage(), s.doc.TotalPages(), err
}

func (s *Session) DocumentInfo() (filename string, current, total int, loaded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Filename(), s.doc.CurrentPage(), s.doc.TotalPages(), s.doc.Loaded()
}

func (s *Session) SetDocumentInteraction(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.SetInteraction(enabled)
}

// ClearDocument empties the document context and returns the spool path of
// the removed file, "" when none was loaded.
func (s *Session) ClearDocument() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clear()
}

// Reset clears conversation, media, and document atomically from the
// caller's perspective. Returns the removed document's spool path.
func (s *Session) Reset() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.ClearAll()
	s.media.ClearCaption()
	s.media.ClearTranscript()
	return s.doc.Clear()
}
