package chat

import (
	"strings"
	"testing"

	"github.com/PJEDeveloper/thinker/internal/app/session"
)

func TestComposeOrdersFragments(t *testing.T) {
	content := composeUserContent(composeInput{
		Snapshot: session.Snapshot{
			MediaFragment:       "[Image Description]: a cat",
			DocumentText:        "page text",
			DocumentInteraction: true,
			DocumentLoaded:      true,
		},
		Text:          "  what about it?  ",
		SearchResults: []string{"https://example.com"},
	})

	media := strings.Index(content, "[Image Description]")
	doc := strings.Index(content, "[Document Context]")
	search := strings.Index(content, "[Internet Search Results]")
	question := strings.Index(content, "User question: what about it?")

	if media == -1 || doc == -1 || search == -1 || question == -1 {
		t.Fatalf("missing fragment in:\n%s", content)
	}
	if !(media < doc && doc < search && search < question) {
		t.Fatalf("fragments out of order in:\n%s", content)
	}
}

func TestComposeFallbackDocContext(t *testing.T) {
	content := composeUserContent(composeInput{
		Snapshot: session.Snapshot{
			DocumentInteraction: true,
			DocumentLoaded:      false,
		},
		Text:            "q",
		FallbackDocText: "client-side page",
	})
	if !strings.Contains(content, "client-side page") {
		t.Fatalf("fallback document context ignored:\n%s", content)
	}

	// Server-held page wins when a document is loaded.
	content = composeUserContent(composeInput{
		Snapshot: session.Snapshot{
			DocumentInteraction: true,
			DocumentLoaded:      true,
			DocumentText:        "server page",
		},
		Text:            "q",
		FallbackDocText: "client-side page",
	})
	if strings.Contains(content, "client-side page") || !strings.Contains(content, "server page") {
		t.Fatalf("server-held page not authoritative:\n%s", content)
	}
}

func TestComposeTruncatesDocContext(t *testing.T) {
	content := composeUserContent(composeInput{
		Snapshot: session.Snapshot{
			DocumentInteraction: true,
			DocumentLoaded:      true,
			DocumentText:        strings.Repeat("a", 100),
		},
		Text:        "q",
		MaxDocChars: 10,
	})
	if !strings.Contains(content, strings.Repeat("a", 10)+"...[truncated]") {
		t.Fatalf("document context not truncated:\n%s", content)
	}
	if strings.Contains(content, strings.Repeat("a", 11)) {
		t.Fatalf("truncation bound exceeded:\n%s", content)
	}
}

func TestComposeEmptyTurn(t *testing.T) {
	if got := composeUserContent(composeInput{Text: "   "}); got != "" {
		t.Fatalf("expected empty content, got %q", got)
	}
}
