package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PJEDeveloper/thinker/internal/app/session"
	"github.com/PJEDeveloper/thinker/internal/domain"
	"github.com/PJEDeveloper/thinker/internal/observability"
)

// Service is the request dispatcher: it resolves media and document context,
// composes the generation prompt, and keeps the session state consistent
// around collaborator calls.
type Service struct {
	generator   domain.Generator
	captioner   domain.Captioner
	transcriber domain.Transcriber
	searcher    domain.Searcher
	extractor   domain.Extractor
	sessions    *session.Store
	opts        Options
}

type Options struct {
	SystemPrompt       string
	ChunkSize          int
	MaxDocContextChars int
	GenerateTimeout    time.Duration
	SearchResults      int
	TempDir            string
}

func NewService(
	generator domain.Generator,
	captioner domain.Captioner,
	transcriber domain.Transcriber,
	searcher domain.Searcher,
	extractor domain.Extractor,
	sessions *session.Store,
	opts Options,
) *Service {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 1500
	}
	if opts.GenerateTimeout <= 0 {
		opts.GenerateTimeout = 120 * time.Second
	}
	if opts.SearchResults <= 0 {
		opts.SearchResults = 5
	}
	return &Service{
		generator:   generator,
		captioner:   captioner,
		transcriber: transcriber,
		searcher:    searcher,
		extractor:   extractor,
		sessions:    sessions,
		opts:        opts,
	}
}

type StreamInput struct {
	Text      string
	Audio     []byte
	AudioName string
	Image     []byte
	ImageMIME string

	SearchEnabled       bool
	DocumentInteraction bool
	DocumentContext     string
}

type StreamOutput struct {
	Response      string
	SearchResults []string
}

// Stream handles one chat turn end to end. On generation failure the user
// turn stays recorded and no assistant turn is appended; later turns must
// tolerate the odd trailing state.
func (s *Service) Stream(ctx context.Context, in StreamInput) (*StreamOutput, error) {
	sess := s.sessions.Default()
	log := observability.LoggerFromContext(ctx).With("session_id", sess.ID)

	if len(in.Image) > 0 {
		capCtx, cancel := context.WithTimeout(ctx, s.opts.GenerateTimeout)
		caption, err := s.captioner.CaptionImage(capCtx, in.Image, in.ImageMIME)
		cancel()
		if err != nil {
			log.Error("image captioning failed", "error", err)
			return nil, fmt.Errorf("caption image: %w", err)
		}
		sess.SetCaption(caption)
		log.Info("image captioned", "caption_len", len(caption))
	}

	if len(in.Audio) > 0 {
		trCtx, cancel := context.WithTimeout(ctx, s.opts.GenerateTimeout)
		transcript, err := s.transcriber.Transcribe(trCtx, in.Audio, in.AudioName)
		cancel()
		if err != nil {
			log.Error("transcription failed", "error", err)
			return nil, fmt.Errorf("transcribe audio: %w", err)
		}
		sess.SetTranscript(transcript)
		log.Info("audio transcribed", "transcript_len", len(transcript))
	}

	// Best effort: search failures degrade to an empty result list.
	searchResults := []string{}
	if in.SearchEnabled && strings.TrimSpace(in.Text) != "" {
		results, err := s.searcher.Search(ctx, in.Text, s.opts.SearchResults)
		if err != nil {
			log.Warn("web search unavailable", "error", err)
		} else {
			searchResults = results
		}
	}

	sess.SetDocumentInteraction(in.DocumentInteraction)
	snap := sess.Snapshot()

	userContent := composeUserContent(composeInput{
		Snapshot:        snap,
		Text:            in.Text,
		FallbackDocText: in.DocumentContext,
		SearchResults:   searchResults,
		MaxDocChars:     s.opts.MaxDocContextChars,
	})
	if userContent == "" {
		return nil, fmt.Errorf("%w: empty turn", domain.ErrNoContent)
	}

	// The conversation records the raw user text, not the composed prompt.
	sess.AppendMessage(domain.RoleUser, in.Text)

	prompt := domain.Prompt{
		System:  s.opts.SystemPrompt,
		History: snap.History,
		User:    userContent,
	}

	genCtx, cancel := context.WithTimeout(ctx, s.opts.GenerateTimeout)
	defer cancel()

	start := time.Now()
	reply, err := s.generator.GenerateReply(genCtx, prompt)
	if err != nil {
		log.Error("generation failed", "error", err, "elapsed", time.Since(start))
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	log.Info("reply generated", "elapsed", time.Since(start), "reply_len", len(reply))

	sess.AppendMessage(domain.RoleAssistant, reply)

	return &StreamOutput{
		Response:      reply,
		SearchResults: searchResults,
	}, nil
}

type DocumentPage struct {
	Filename    string
	Page        string
	CurrentPage int
	TotalPages  int
}

// UploadDocument extracts text from an uploaded file, spools the original to
// the temp dir, and replaces the session's document context with the chunked
// pages. The first page comes back for immediate display.
func (s *Service) UploadDocument(ctx context.Context, filename string, data []byte) (*DocumentPage, error) {
	sess := s.sessions.Default()
	log := observability.LoggerFromContext(ctx).With("filename", filename)

	name := sanitizeFilename(filename)

	text, err := s.extractor.ExtractText(name, data)
	if err != nil {
		log.Error("extraction failed", "error", err)
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: document is empty or unreadable", domain.ErrExtraction)
	}

	var spoolPath string
	if s.opts.TempDir != "" {
		if err := os.MkdirAll(s.opts.TempDir, 0o755); err == nil {
			spoolPath = filepath.Join(s.opts.TempDir, name)
			if err := os.WriteFile(spoolPath, data, 0o644); err != nil {
				log.Warn("failed to spool document", "error", err)
				spoolPath = ""
			}
		}
	}

	if err := sess.LoadDocument(name, spoolPath, text, s.opts.ChunkSize); err != nil {
		return nil, err
	}

	page, current, total, err := sess.DocumentPage(1)
	if err != nil {
		return nil, err
	}
	log.Info("document loaded", "total_pages", total)

	return &DocumentPage{
		Filename:    name,
		Page:        page,
		CurrentPage: current,
		TotalPages:  total,
	}, nil
}

// GetDocumentPage moves the cursor to page n of the loaded document.
func (s *Service) GetDocumentPage(ctx context.Context, n int) (*DocumentPage, error) {
	sess := s.sessions.Default()

	page, current, total, err := sess.DocumentPage(n)
	if err != nil {
		return nil, err
	}
	filename, _, _, _ := sess.DocumentInfo()

	return &DocumentPage{
		Filename:    filename,
		Page:        page,
		CurrentPage: current,
		TotalPages:  total,
	}, nil
}

// Reset clears conversation, media, and document state and removes any
// spooled document file.
func (s *Service) Reset(ctx context.Context) {
	spool := s.sessions.Default().Reset()
	removeSpool(ctx, spool)
	observability.LoggerFromContext(ctx).Info("session reset")
}

func (s *Service) ClearConversation(ctx context.Context) {
	s.sessions.Default().ClearConversation()
	observability.LoggerFromContext(ctx).Info("conversation cleared")
}

func (s *Service) ClearTranscript(ctx context.Context) {
	s.sessions.Default().ClearTranscript()
}

func (s *Service) ClearCaption(ctx context.Context) {
	s.sessions.Default().ClearCaption()
}

func (s *Service) ClearDocument(ctx context.Context) {
	spool := s.sessions.Default().ClearDocument()
	removeSpool(ctx, spool)
	observability.LoggerFromContext(ctx).Info("document context cleared")
}

func removeSpool(ctx context.Context, spool string) {
	if spool == "" {
		return
	}
	if err := os.Remove(spool); err != nil && !os.IsNotExist(err) {
		observability.LoggerFromContext(ctx).Warn("failed to remove spooled document",
			"path", spool, "error", err)
	}
}

// sanitizeFilename keeps only the base name of whatever the client sent.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	if base == "." || base == "/" || base == "" {
		return "uploaded_document"
	}
	return base
}
