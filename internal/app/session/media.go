package session

import "strings"

// MediaContext holds the transient caption/transcript slots that get attached
// to composed prompts. At most one of each lives at a time; new uploads
// overwrite, and each slot clears independently.
type MediaContext struct {
	caption    string
	transcript string
}

func (m *MediaContext) SetCaption(text string) {
	m.caption = text
}

func (m *MediaContext) SetTranscript(text string) {
	m.transcript = text
}

// ClearCaption is idempotent; clearing an empty slot succeeds silently.
func (m *MediaContext) ClearCaption() {
	m.caption = ""
}

func (m *MediaContext) ClearTranscript() {
	m.transcript = ""
}

func (m *MediaContext) Caption() string    { return m.caption }
func (m *MediaContext) Transcript() string { return m.transcript }

// Render returns the labeled prompt fragment for whatever slots are live,
// or "" when both are empty.
func (m *MediaContext) Render() string {
	var b strings.Builder
	if m.transcript != "" {
		b.WriteString("[Audio Transcription]: ")
		b.WriteString(m.transcript)
	}
	if m.caption != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[Image Description]: ")
		b.WriteString(m.caption)
	}
	return b.String()
}
