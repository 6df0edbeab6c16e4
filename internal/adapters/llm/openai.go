package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/PJEDeveloper/thinker/internal/domain"
)

type OpenAIClient struct {
	client          openai.Client
	model           string
	transcribeModel string
}

// NewOpenAIClient creates an OpenAI-compatible backend. BaseURL is optional
// and points the client at any compatible endpoint.
func NewOpenAIClient(apiKey, baseURL, model, transcribeModel string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required for the openai backend")
	}
	if model == "" {
		model = "gpt-4o"
	}
	if transcribeModel == "" {
		transcribeModel = "whisper-1"
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client:          openai.NewClient(opts...),
		model:           model,
		transcribeModel: transcribeModel,
	}, nil
}

// GenerateReply implements domain.Generator over chat completions.
func (c *OpenAIClient) GenerateReply(ctx context.Context, prompt domain.Prompt) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(prompt.History)+2)
	messages = append(messages, openai.SystemMessage(prompt.System))
	for _, m := range prompt.History {
		if m.Role == domain.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(m.Text))
		} else {
			messages = append(messages, openai.UserMessage(m.Text))
		}
	}
	messages = append(messages, openai.UserMessage(prompt.User))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// CaptionImage implements domain.Captioner with a vision content part.
func (c *OpenAIClient) CaptionImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart("Describe this image in one or two sentences."),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: dataURL,
		}),
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
	})
	if err != nil {
		return "", fmt.Errorf("openai caption: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe implements domain.Transcriber via the audio transcriptions API.
func (c *OpenAIClient) Transcribe(ctx context.Context, media []byte, filename string) (string, error) {
	if filename == "" {
		filename = "audio.wav"
	}

	resp, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(c.transcribeModel),
		File:  openai.File(bytes.NewReader(media), filename, audioMIMEType(filename)),
	})
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}
	return resp.Text, nil
}
