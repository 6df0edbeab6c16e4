package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Backend string

const (
	BackendMock   Backend = "mock"
	BackendOpenAI Backend = "openai"
	BackendOllama Backend = "ollama"
	BackendVertex Backend = "vertex"
)

type Config struct {
	Port string

	Backend Backend

	// Prompt assembly
	SystemPrompt       string
	MaxDocContextChars int
	GenerateTimeout    time.Duration

	// Document handling
	ChunkSize      int
	MaxUploadBytes int64
	TempDir        string

	// Web search
	SearchResults int
	SearchTimeout time.Duration

	// OpenAI-compatible backend
	OpenAIAPIKey          string
	OpenAIBaseURL         string
	OpenAIModel           string
	OpenAITranscribeModel string

	// Ollama backend
	OllamaModel       string
	OllamaVisionModel string

	// Vertex AI backend
	GCPProjectID string
	GCPLocation  string
	VertexModel  string

	LogLevel string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

const defaultSystemPrompt = "You are a professional assistant, coding expert, and MLOps subject matter expert."

// Load reads all env vars and builds the config.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("THINKER_PORT", "8080"),

		Backend: Backend(getEnv("THINKER_BACKEND", "mock")),

		SystemPrompt:       getEnv("THINKER_SYSTEM_PROMPT", defaultSystemPrompt),
		MaxDocContextChars: getIntEnv("THINKER_MAX_DOC_CONTEXT_CHARS", 20000),
		GenerateTimeout:    getDurationEnv("THINKER_GENERATE_TIMEOUT", 120*time.Second),

		ChunkSize:      getIntEnv("THINKER_CHUNK_SIZE", 1500),
		MaxUploadBytes: int64(getIntEnv("THINKER_MAX_UPLOAD_BYTES", 32<<20)),
		TempDir:        getEnv("THINKER_TEMP_DIR", "temp"),

		SearchResults: getIntEnv("THINKER_SEARCH_RESULTS", 5),
		SearchTimeout: getDurationEnv("THINKER_SEARCH_TIMEOUT", 5*time.Second),

		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:         getEnv("THINKER_OPENAI_BASE_URL", ""),
		OpenAIModel:           getEnv("THINKER_OPENAI_MODEL", "gpt-4o"),
		OpenAITranscribeModel: getEnv("THINKER_OPENAI_TRANSCRIBE_MODEL", "whisper-1"),

		OllamaModel:       getEnv("THINKER_OLLAMA_MODEL", "llama3.1"),
		OllamaVisionModel: getEnv("THINKER_OLLAMA_VISION_MODEL", "llava"),

		GCPProjectID: getEnv("THINKER_GCP_PROJECT", ""),
		GCPLocation:  getEnv("THINKER_GCP_LOCATION", "us-central1"),
		VertexModel:  getEnv("THINKER_VERTEX_MODEL", "gemini-2.5-flash"),

		LogLevel: getEnv("THINKER_LOG_LEVEL", "info"),
	}

	switch cfg.Backend {
	case BackendMock, BackendOpenAI, BackendOllama, BackendVertex:
	default:
		log.Fatalf("unknown THINKER_BACKEND %q (want mock, openai, ollama, or vertex)", cfg.Backend)
	}

	if cfg.Backend == BackendOpenAI && cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY must be set for the openai backend")
	}
	if cfg.Backend == BackendVertex && cfg.GCPProjectID == "" {
		log.Fatal("THINKER_GCP_PROJECT must be set for the vertex backend")
	}
	if cfg.ChunkSize <= 0 {
		log.Fatalf("THINKER_CHUNK_SIZE must be positive, got %d", cfg.ChunkSize)
	}

	return cfg
}
