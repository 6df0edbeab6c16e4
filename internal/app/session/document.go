package session

import (
	"fmt"

	"github.com/PJEDeveloper/thinker/internal/domain"
)

// DocumentContext holds the extracted text of the current document split into
// page-sized chunks, plus the 1-based cursor and the prompt-inclusion flag.
//
// Invariant: 1 <= current <= len(pages) whenever a document is loaded.
type DocumentContext struct {
	filename  string
	spoolPath string
	pages     []string
	current   int
	interact  bool
}

// Load replaces the document state wholesale with rawText chunked into
// chunkSize-rune pages and resets the cursor to page 1. An empty rawText
// fails with ErrExtraction and leaves any prior document untouched.
func (d *DocumentContext) Load(filename, spoolPath, rawText string, chunkSize int) error {
	if rawText == "" {
		return fmt.Errorf("%w: document is empty or unreadable", domain.ErrExtraction)
	}
	d.filename = filename
	d.spoolPath = spoolPath
	d.pages = chunkText(rawText, chunkSize)
	d.current = 1
	return nil
}

// GetPage returns the chunk at 1-based position n and moves the cursor to n.
// Out-of-range requests fail with ErrOutOfRange and do not move the cursor.
func (d *DocumentContext) GetPage(n int) (string, error) {
	if len(d.pages) == 0 {
		return "", fmt.Errorf("%w: no document loaded", domain.ErrOutOfRange)
	}
	if n < 1 || n > len(d.pages) {
		return "", fmt.Errorf("%w: page %d of %d", domain.ErrOutOfRange, n, len(d.pages))
	}
	d.current = n
	return d.pages[n-1], nil
}

// Next advances the cursor by one page, clamped at the last page.
func (d *DocumentContext) Next() (string, error) {
	n := d.current + 1
	if n > len(d.pages) {
		n = len(d.pages)
	}
	return d.GetPage(n)
}

// Previous moves the cursor back one page, clamped at page 1.
func (d *DocumentContext) Previous() (string, error) {
	n := d.current - 1
	if n < 1 {
		n = 1
	}
	return d.GetPage(n)
}

// Clear empties the page sequence and resets the cursor. The spool path of
// the removed document is returned so the caller can delete the temp file.
func (d *DocumentContext) Clear() (spoolPath string) {
	spoolPath = d.spoolPath
	d.filename = ""
	d.spoolPath = ""
	d.pages = nil
	d.current = 0
	return spoolPath
}

// SetInteraction flips prompt inclusion. Content is never cleared here;
// disabling only suppresses the document fragment in future prompts.
func (d *DocumentContext) SetInteraction(enabled bool) {
	d.interact = enabled
}

func (d *DocumentContext) Interaction() bool { return d.interact }

func (d *DocumentContext) Loaded() bool { return len(d.pages) > 0 }

func (d *DocumentContext) Filename() string { return d.filename }

func (d *DocumentContext) CurrentPage() int { return d.current }

func (d *DocumentContext) TotalPages() int { return len(d.pages) }

// CurrentText returns the chunk under the cursor without moving it,
// or "" when no document is loaded.
func (d *DocumentContext) CurrentText() string {
	if len(d.pages) == 0 {
		return ""
	}
	return d.pages[d.current-1]
}

// chunkText splits text into fixed-size rune chunks. Boundaries cut at exact
// rune counts with no whitespace snapping, so concatenating the chunks in
// order reproduces the input.
func chunkText(text string, size int) []string {
	if size <= 0 {
		size = 1500
	}
	runes := []rune(text)
	pages := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		pages = append(pages, string(runes[start:end]))
	}
	return pages
}
