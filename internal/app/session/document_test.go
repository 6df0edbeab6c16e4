package session

import (
	"errors"
	"strings"
	"testing"

	"github.com/PJEDeveloper/thinker/internal/domain"
)

func TestLoadEmptyTextFails(t *testing.T) {
	var doc DocumentContext
	err := doc.Load("a.txt", "", "", 1500)
	if !errors.Is(err, domain.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestFailedLoadPreservesPriorDocument(t *testing.T) {
	var doc DocumentContext
	if err := doc.Load("a.txt", "", "original content", 1500); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := doc.Load("b.txt", "", "", 1500); !errors.Is(err, domain.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}

	page, err := doc.GetPage(1)
	if err != nil {
		t.Fatalf("prior document not queryable after failed load: %v", err)
	}
	if page != "original content" {
		t.Fatalf("expected prior content, got %q", page)
	}
	if doc.Filename() != "a.txt" {
		t.Fatalf("expected prior filename, got %q", doc.Filename())
	}
}

func TestChunkingScenario(t *testing.T) {
	// 3200 characters at a 1500-character chunk size make 3 pages.
	var doc DocumentContext
	text := strings.Repeat("x", 3200)
	if err := doc.Load("big.txt", "", text, 1500); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if doc.TotalPages() != 3 {
		t.Fatalf("expected 3 pages, got %d", doc.TotalPages())
	}
	if doc.CurrentPage() != 1 {
		t.Fatalf("expected cursor at page 1, got %d", doc.CurrentPage())
	}

	if _, err := doc.GetPage(4); !errors.Is(err, domain.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for page 4, got %v", err)
	}
	if doc.CurrentPage() != 1 {
		t.Fatalf("cursor moved on failed GetPage: %d", doc.CurrentPage())
	}
}

func TestChunkRoundTrip(t *testing.T) {
	var doc DocumentContext
	text := "héllo wörld, " + strings.Repeat("padding ", 400) + "fin"
	if err := doc.Load("r.txt", "", text, 97); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	var b strings.Builder
	for n := 1; n <= doc.TotalPages(); n++ {
		page, err := doc.GetPage(n)
		if err != nil {
			t.Fatalf("GetPage(%d): %v", n, err)
		}
		b.WriteString(page)
	}
	if b.String() != text {
		t.Fatalf("concatenated pages do not reproduce the input")
	}
}

func TestGetPageMovesCursor(t *testing.T) {
	var doc DocumentContext
	if err := doc.Load("p.txt", "", strings.Repeat("a", 30), 10); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if _, err := doc.GetPage(2); err != nil {
		t.Fatalf("GetPage(2): %v", err)
	}
	if doc.CurrentPage() != 2 {
		t.Fatalf("expected cursor at 2, got %d", doc.CurrentPage())
	}
}

func TestNextPreviousClampAtBoundaries(t *testing.T) {
	var doc DocumentContext
	if err := doc.Load("p.txt", "", strings.Repeat("a", 20), 10); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if _, err := doc.Previous(); err != nil {
		t.Fatalf("Previous at first page errored: %v", err)
	}
	if doc.CurrentPage() != 1 {
		t.Fatalf("expected clamp at page 1, got %d", doc.CurrentPage())
	}

	if _, err := doc.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := doc.Next(); err != nil {
		t.Fatalf("Next at last page errored: %v", err)
	}
	if doc.CurrentPage() != 2 {
		t.Fatalf("expected clamp at page 2, got %d", doc.CurrentPage())
	}
}

func TestToggleInteractionDoesNotClearContent(t *testing.T) {
	var doc DocumentContext
	if err := doc.Load("t.txt", "", "kept content", 1500); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	doc.SetInteraction(false)

	page, err := doc.GetPage(1)
	if err != nil {
		t.Fatalf("GetPage after disabling interaction: %v", err)
	}
	if page != "kept content" {
		t.Fatalf("content lost on toggle: %q", page)
	}
}

func TestClearResetsToNoDocumentState(t *testing.T) {
	var doc DocumentContext
	if err := doc.Load("c.txt", "temp/c.txt", "content", 1500); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	spool := doc.Clear()
	if spool != "temp/c.txt" {
		t.Fatalf("expected spool path back, got %q", spool)
	}
	if doc.Loaded() || doc.TotalPages() != 0 || doc.CurrentPage() != 0 {
		t.Fatalf("document not reset: loaded=%v total=%d current=%d",
			doc.Loaded(), doc.TotalPages(), doc.CurrentPage())
	}
}
