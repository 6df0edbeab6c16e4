package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PJEDeveloper/thinker/internal/adapters/llm"
	"github.com/PJEDeveloper/thinker/internal/app/chat"
	"github.com/PJEDeveloper/thinker/internal/app/session"
	"github.com/PJEDeveloper/thinker/internal/domain"
)

type stubSearcher struct {
	results []string
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	return s.results, s.err
}

type stubExtractor struct{}

func (stubExtractor) ExtractText(filename string, data []byte) (string, error) {
	return string(data), nil
}

type failingGenerator struct{}

func (failingGenerator) GenerateReply(ctx context.Context, p domain.Prompt) (string, error) {
	return "", errors.New("model exploded")
}

// recordingGenerator keeps the last prompt it saw.
type recordingGenerator struct {
	last domain.Prompt
}

func (g *recordingGenerator) GenerateReply(ctx context.Context, p domain.Prompt) (string, error) {
	g.last = p
	return "ok", nil
}

func newTestService(gen domain.Generator, searcher domain.Searcher) (*chat.Service, *session.Store) {
	mock := llm.NewMockClient()
	if gen == nil {
		gen = mock
	}
	if searcher == nil {
		searcher = &stubSearcher{}
	}
	sessions := session.NewStore()
	svc := chat.NewService(gen, mock, mock, searcher, stubExtractor{}, sessions, chat.Options{
		SystemPrompt: "You are a helpful assistant.",
		ChunkSize:    1500,
	})
	return svc, sessions
}

func TestSequentialTurnsKeepOrder(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestService(nil, nil)

	for _, text := range []string{"Hi", "How are you?"} {
		out, err := svc.Stream(ctx, chat.StreamInput{Text: text})
		if err != nil {
			t.Fatalf("Stream(%q) failed: %v", text, err)
		}
		if out.Response == "" {
			t.Fatalf("Stream(%q) returned empty response", text)
		}
	}

	msgs := sessions.Default().Messages()
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	wantRoles := []domain.Role{domain.RoleUser, domain.RoleAssistant, domain.RoleUser, domain.RoleAssistant}
	for i, m := range msgs {
		if m.Role != wantRoles[i] {
			t.Fatalf("message %d: got role %s, want %s", i, m.Role, wantRoles[i])
		}
	}
	if msgs[0].Text != "Hi" || msgs[2].Text != "How are you?" {
		t.Fatalf("user turns hold composed text instead of raw input: %q, %q", msgs[0].Text, msgs[2].Text)
	}
}

func TestDocumentInteractionWithoutDocument(t *testing.T) {
	ctx := context.Background()
	gen := &recordingGenerator{}
	svc, _ := newTestService(gen, nil)

	out, err := svc.Stream(ctx, chat.StreamInput{
		Text:                "summarize",
		DocumentInteraction: true,
	})
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if out.Response == "" {
		t.Fatal("expected a response")
	}
	if strings.Contains(gen.last.User, "[Document Context]") {
		t.Fatalf("prompt contains document fragment with no document loaded:\n%s", gen.last.User)
	}
}

func TestDocumentFragmentFollowsInteractionFlag(t *testing.T) {
	ctx := context.Background()
	gen := &recordingGenerator{}
	svc, _ := newTestService(gen, nil)

	if _, err := svc.UploadDocument(ctx, "notes.txt", []byte("the document body")); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if _, err := svc.Stream(ctx, chat.StreamInput{Text: "q1", DocumentInteraction: true}); err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if !strings.Contains(gen.last.User, "the document body") {
		t.Fatalf("document fragment missing with interaction enabled:\n%s", gen.last.User)
	}

	if _, err := svc.Stream(ctx, chat.StreamInput{Text: "q2", DocumentInteraction: false}); err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if strings.Contains(gen.last.User, "the document body") {
		t.Fatalf("document fragment present with interaction disabled:\n%s", gen.last.User)
	}
}

func TestGenerationFailureKeepsUserTurn(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestService(failingGenerator{}, nil)

	_, err := svc.Stream(ctx, chat.StreamInput{Text: "Hi"})
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}

	msgs := sessions.Default().Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected only the user turn, got %d messages", len(msgs))
	}
	if msgs[0].Role != domain.RoleUser || msgs[0].Text != "Hi" {
		t.Fatalf("unexpected surviving message: %s %q", msgs[0].Role, msgs[0].Text)
	}
}

func TestSearchFailureDegradesToEmptyResults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil, &stubSearcher{err: domain.ErrSearchUnavailable})

	out, err := svc.Stream(ctx, chat.StreamInput{Text: "Hi", SearchEnabled: true})
	if err != nil {
		t.Fatalf("Stream failed despite best-effort search: %v", err)
	}
	if len(out.SearchResults) != 0 {
		t.Fatalf("expected empty search results, got %v", out.SearchResults)
	}
}

func TestSearchResultsReachPromptAndResponse(t *testing.T) {
	ctx := context.Background()
	gen := &recordingGenerator{}
	svc, _ := newTestService(gen, &stubSearcher{results: []string{"https://example.com/a"}})

	out, err := svc.Stream(ctx, chat.StreamInput{Text: "Hi", SearchEnabled: true})
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if len(out.SearchResults) != 1 {
		t.Fatalf("expected 1 search result, got %v", out.SearchResults)
	}
	if !strings.Contains(gen.last.User, "https://example.com/a") {
		t.Fatalf("search results missing from prompt:\n%s", gen.last.User)
	}
}

func TestImageAttachesCaptionToPrompt(t *testing.T) {
	ctx := context.Background()
	gen := &recordingGenerator{}
	svc, _ := newTestService(gen, nil)

	_, err := svc.Stream(ctx, chat.StreamInput{
		Text:      "what is this?",
		Image:     []byte{0xFF, 0xD8, 0xFF},
		ImageMIME: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if !strings.Contains(gen.last.User, "[Image Description]") {
		t.Fatalf("caption missing from prompt:\n%s", gen.last.User)
	}
}

// blockingTranscriber only returns when its context is cancelled.
type blockingTranscriber struct{}

func (blockingTranscriber) Transcribe(ctx context.Context, media []byte, filename string) (string, error) {
	select {
	case <-time.After(5 * time.Second):
		return "too late", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestTranscriptionHonorsTimeout(t *testing.T) {
	ctx := context.Background()
	mock := llm.NewMockClient()
	svc := chat.NewService(mock, mock, blockingTranscriber{}, &stubSearcher{}, stubExtractor{},
		session.NewStore(), chat.Options{
			SystemPrompt:    "You are a helpful assistant.",
			GenerateTimeout: 50 * time.Millisecond,
		})

	start := time.Now()
	_, err := svc.Stream(ctx, chat.StreamInput{
		Text:      "what was said?",
		Audio:     []byte{0x00, 0x01},
		AudioName: "clip.wav",
	})
	elapsed := time.Since(start)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed > 2*time.Second {
		t.Fatalf("transcription ran past the configured bound: %s", elapsed)
	}
}

func TestEmptyTurnRejected(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestService(nil, nil)

	_, err := svc.Stream(ctx, chat.StreamInput{})
	if !errors.Is(err, domain.ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
	if sessions.Default().Messages() != nil && len(sessions.Default().Messages()) != 0 {
		t.Fatal("empty turn mutated the conversation")
	}
}

func TestUploadAndPaginate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil, nil)

	body := strings.Repeat("x", 3200)
	page, err := svc.UploadDocument(ctx, "big.txt", []byte(body))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if page.TotalPages != 3 || page.CurrentPage != 1 {
		t.Fatalf("expected 3 pages at page 1, got %d at %d", page.TotalPages, page.CurrentPage)
	}

	if _, err := svc.GetDocumentPage(ctx, 4); !errors.Is(err, domain.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for page 4, got %v", err)
	}

	p2, err := svc.GetDocumentPage(ctx, 2)
	if err != nil {
		t.Fatalf("GetDocumentPage(2) failed: %v", err)
	}
	if p2.CurrentPage != 2 || len(p2.Page) != 1500 {
		t.Fatalf("unexpected page 2: current=%d len=%d", p2.CurrentPage, len(p2.Page))
	}
}

func TestResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestService(nil, nil)

	if _, err := svc.UploadDocument(ctx, "n.txt", []byte("doc")); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if _, err := svc.Stream(ctx, chat.StreamInput{Text: "Hi"}); err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	svc.Reset(ctx)

	if n := len(sessions.Default().Messages()); n != 0 {
		t.Fatalf("conversation not cleared: %d messages", n)
	}
	if _, _, _, loaded := sessions.Default().DocumentInfo(); loaded {
		t.Fatal("document not cleared")
	}
}
