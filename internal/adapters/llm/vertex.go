package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/PJEDeveloper/thinker/internal/domain"
)

type VertexClient struct {
	client    *genai.Client
	modelName string
}

// NewVertexClient creates a Vertex AI (Gemini) backend covering generation,
// captioning, and transcription through one multimodal model.
func NewVertexClient(ctx context.Context, projectID, location, modelName string) (*VertexClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("project id and location are required for the vertex backend")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// GenerateReply implements domain.Generator using Vertex AI.
func (v *VertexClient) GenerateReply(ctx context.Context, prompt domain.Prompt) (string, error) {
	var contents []*genai.Content
	for _, m := range prompt.History {
		var role genai.Role = genai.RoleUser
		if m.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(prompt.User, genai.RoleUser))

	temp := float32(0.3)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   outputTokens,
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("vertex generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("vertex returned empty text")
	}
	return text, nil
}

// CaptionImage implements domain.Captioner via an inline image part.
func (v *VertexClient) CaptionImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return v.describeMedia(ctx, image, mimeType,
		"Describe this image in one or two sentences.")
}

// Transcribe implements domain.Transcriber via an inline audio part.
func (v *VertexClient) Transcribe(ctx context.Context, media []byte, filename string) (string, error) {
	return v.describeMedia(ctx, media, audioMIMEType(filename),
		"Transcribe this recording verbatim. Return only the transcript.")
}

func (v *VertexClient) describeMedia(ctx context.Context, data []byte, mimeType, instruction string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(data, mimeType),
		genai.NewPartFromText(instruction),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("vertex generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("vertex returned empty text")
	}
	return text, nil
}
