package domain

import "context"

// Generator defines how the core application talks to a text-generation model.
type Generator interface {
	GenerateReply(ctx context.Context, prompt Prompt) (string, error)
}

// Captioner produces a short textual description of an image.
type Captioner interface {
	CaptionImage(ctx context.Context, image []byte, mimeType string) (string, error)
}

// Transcriber turns an audio or video payload into text.
// The filename carries the extension the backend may need to decode the media.
type Transcriber interface {
	Transcribe(ctx context.Context, media []byte, filename string) (string, error)
}

// Searcher performs a best-effort web search and returns result URLs.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// Extractor pulls raw text out of an uploaded document.
type Extractor interface {
	ExtractText(filename string, data []byte) (string, error)
}
