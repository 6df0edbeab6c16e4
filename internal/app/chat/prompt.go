package chat

import (
	"strings"

	"github.com/PJEDeveloper/thinker/internal/app/session"
)

// composeInput collects everything one turn contributes to the prompt beyond
// the conversation history.
type composeInput struct {
	Snapshot        session.Snapshot
	Text            string
	FallbackDocText string
	SearchResults   []string
	MaxDocChars     int
}

// composeUserContent builds the content of the current user turn: media
// fragment, then document fragment (only while interaction is enabled), then
// search results, then the user's question. Returns "" when the turn carries
// nothing at all.
func composeUserContent(in composeInput) string {
	var parts []string

	if in.Snapshot.MediaFragment != "" {
		parts = append(parts, in.Snapshot.MediaFragment)
	}

	if in.Snapshot.DocumentInteraction {
		docText := in.Snapshot.DocumentText
		if !in.Snapshot.DocumentLoaded {
			// No server-side document: fall back to the page text the
			// client carried along, if any.
			docText = strings.TrimSpace(in.FallbackDocText)
		}
		if docText != "" {
			docText = truncateDocContext(docText, in.MaxDocChars)
			parts = append(parts,
				"[Document Context]\n"+docText+"\nAnswer based on the document when relevant.")
		}
	}

	if len(in.SearchResults) > 0 {
		parts = append(parts,
			"[Internet Search Results]:\n"+strings.Join(in.SearchResults, "\n"))
	}

	if text := strings.TrimSpace(in.Text); text != "" {
		parts = append(parts, "User question: "+text)
	}

	return strings.Join(parts, "\n\n")
}

// truncateDocContext bounds the document fragment so a huge page cannot
// swamp the prompt.
func truncateDocContext(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars]) + "...[truncated]"
}
