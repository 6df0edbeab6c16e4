package domain

import "errors"

// Error kinds the HTTP layer maps to status codes. Adapters wrap their
// failures with fmt.Errorf("...: %w", Err...) so callers can errors.Is them.
var (
	// ErrUnsupportedMedia means an uploaded file's type cannot be decoded.
	ErrUnsupportedMedia = errors.New("unsupported media format")

	// ErrExtraction means document text extraction failed or yielded nothing.
	ErrExtraction = errors.New("document extraction failed")

	// ErrOutOfRange means a requested document page is outside [1, total].
	ErrOutOfRange = errors.New("page out of range")

	// ErrGeneration means the text-generation backend failed or timed out.
	ErrGeneration = errors.New("generation failed")

	// ErrNoContent means a turn carried no usable content at all.
	ErrNoContent = errors.New("no content provided")

	// ErrSearchUnavailable is internal to the search adapter; the dispatcher
	// swallows it and degrades to empty results.
	ErrSearchUnavailable = errors.New("search unavailable")
)
