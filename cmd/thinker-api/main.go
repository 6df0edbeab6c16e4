package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PJEDeveloper/thinker/internal/adapters/extract"
	httpadapter "github.com/PJEDeveloper/thinker/internal/adapters/http"
	"github.com/PJEDeveloper/thinker/internal/adapters/llm"
	"github.com/PJEDeveloper/thinker/internal/adapters/search"
	"github.com/PJEDeveloper/thinker/internal/app/chat"
	"github.com/PJEDeveloper/thinker/internal/app/session"
	"github.com/PJEDeveloper/thinker/internal/config"
	"github.com/PJEDeveloper/thinker/internal/domain"
	"github.com/PJEDeveloper/thinker/internal/observability"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	observability.SetLevel(logLevel(cfg.LogLevel))

	generator, captioner, transcriber := buildBackend(ctx, cfg)

	searcher := search.NewDuckDuckGo("", search.NewClient(search.Options{
		Timeout: cfg.SearchTimeout,
		Retry:   2,
	}))

	extractor := extract.NewService()

	svc := chat.NewService(generator, captioner, transcriber, searcher, extractor,
		session.NewStore(), chat.Options{
			SystemPrompt:       cfg.SystemPrompt,
			ChunkSize:          cfg.ChunkSize,
			MaxDocContextChars: cfg.MaxDocContextChars,
			GenerateTimeout:    cfg.GenerateTimeout,
			SearchResults:      cfg.SearchResults,
			TempDir:            cfg.TempDir,
		})

	handler := httpadapter.NewServer(svc, cfg.MaxUploadBytes)

	addr := ":" + cfg.Port
	log.Printf("Thinker API listening on %s (backend=%s)", addr, cfg.Backend)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}

// buildBackend wires the generation, captioning, and transcription ports for
// the configured backend. Ollama has no transcription API, so that backend
// falls back to OpenAI's when a key is present and to the mock otherwise.
func buildBackend(ctx context.Context, cfg *config.Config) (domain.Generator, domain.Captioner, domain.Transcriber) {
	switch cfg.Backend {
	case config.BackendOpenAI:
		log.Println("[LLM] Using OpenAI backend")
		c, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL,
			cfg.OpenAIModel, cfg.OpenAITranscribeModel)
		if err != nil {
			log.Fatalf("error initializing OpenAI client: %v", err)
		}
		return c, c, c

	case config.BackendOllama:
		log.Println("[LLM] Using Ollama backend")
		c, err := llm.NewOllamaClient(cfg.OllamaModel, cfg.OllamaVisionModel)
		if err != nil {
			log.Fatalf("error initializing Ollama client: %v", err)
		}

		var transcriber domain.Transcriber
		if cfg.OpenAIAPIKey != "" {
			log.Println("[LLM] Transcription via OpenAI")
			oc, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL,
				cfg.OpenAIModel, cfg.OpenAITranscribeModel)
			if err != nil {
				log.Fatalf("error initializing OpenAI transcriber: %v", err)
			}
			transcriber = oc
		} else {
			log.Println("[LLM] No transcription backend, using mock transcripts")
			transcriber = llm.NewMockClient()
		}
		return c, c, transcriber

	case config.BackendVertex:
		log.Println("[LLM] Using Vertex AI backend")
		c, err := llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.VertexModel)
		if err != nil {
			log.Fatalf("error initializing Vertex client: %v", err)
		}
		return c, c, c

	default:
		log.Println("[LLM] Using MOCK backend")
		c := llm.NewMockClient()
		return c, c, c
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
