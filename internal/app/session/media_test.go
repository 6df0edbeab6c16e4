package session

import (
	"strings"
	"testing"
)

func TestMediaOverwriteAndClear(t *testing.T) {
	var m MediaContext

	m.SetCaption("a dog")
	m.SetCaption("a cat")
	if m.Caption() != "a cat" {
		t.Fatalf("expected overwrite, got %q", m.Caption())
	}

	m.ClearCaption()
	m.ClearCaption() // idempotent
	if m.Caption() != "" {
		t.Fatalf("expected cleared caption, got %q", m.Caption())
	}
}

func TestMediaRender(t *testing.T) {
	var m MediaContext
	if m.Render() != "" {
		t.Fatalf("expected empty render, got %q", m.Render())
	}

	m.SetTranscript("hello there")
	m.SetCaption("a red bicycle")

	out := m.Render()
	if !strings.Contains(out, "[Audio Transcription]: hello there") {
		t.Fatalf("transcript missing from render: %q", out)
	}
	if !strings.Contains(out, "[Image Description]: a red bicycle") {
		t.Fatalf("caption missing from render: %q", out)
	}

	m.ClearTranscript()
	if strings.Contains(m.Render(), "Transcription") {
		t.Fatalf("transcript survived clear: %q", m.Render())
	}
}
