package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/PJEDeveloper/thinker/internal/domain"
)

type OllamaClient struct {
	client      *api.Client
	model       string
	visionModel string
}

// NewOllamaClient creates a local Ollama backend. The host comes from
// OLLAMA_HOST, defaulting to localhost.
func NewOllamaClient(model, visionModel string) (*OllamaClient, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}
	if model == "" {
		model = "llama3.1"
	}
	if visionModel == "" {
		visionModel = "llava"
	}
	return &OllamaClient{
		client:      client,
		model:       model,
		visionModel: visionModel,
	}, nil
}

// GenerateReply implements domain.Generator over a blocking chat call.
func (c *OllamaClient) GenerateReply(ctx context.Context, prompt domain.Prompt) (string, error) {
	messages := make([]api.Message, 0, len(prompt.History)+2)
	messages = append(messages, api.Message{Role: "system", Content: prompt.System})
	for _, m := range prompt.History {
		role := "user"
		if m.Role == domain.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, api.Message{Role: role, Content: m.Text})
	}
	messages = append(messages, api.Message{Role: "user", Content: prompt.User})

	return c.chat(ctx, &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
	})
}

// CaptionImage implements domain.Captioner with the vision model.
func (c *OllamaClient) CaptionImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	return c.chat(ctx, &api.ChatRequest{
		Model: c.visionModel,
		Messages: []api.Message{{
			Role:    "user",
			Content: "Describe this image in one or two sentences.",
			Images:  []api.ImageData{image},
		}},
	})
}

func (c *OllamaClient) chat(ctx context.Context, req *api.ChatRequest) (string, error) {
	stream := false
	req.Stream = &stream
	req.KeepAlive = &api.Duration{Duration: 10 * time.Minute} // keep the model warm between turns

	var sb strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("ollama returned empty text")
	}
	return sb.String(), nil
}
