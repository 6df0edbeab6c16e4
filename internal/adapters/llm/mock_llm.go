package llm

import (
	"context"
	"fmt"

	"github.com/PJEDeveloper/thinker/internal/domain"
)

// MockClient answers every port with deterministic canned output. Used for
// local development without credentials and throughout the tests.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GenerateReply(ctx context.Context, prompt domain.Prompt) (string, error) {
	return fmt.Sprintf("Understood. You asked about: %s", firstLine(prompt.User)), nil
}

func (m *MockClient) CaptionImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	return fmt.Sprintf("an image of %d bytes (%s)", len(image), mimeType), nil
}

func (m *MockClient) Transcribe(ctx context.Context, media []byte, filename string) (string, error) {
	return fmt.Sprintf("transcript of %s (%d bytes)", filename, len(media)), nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
