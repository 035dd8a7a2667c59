package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotInitialized = errors.New("llm provider not initialized")

type Config struct {
	Backend     string `mapstructure:"backend"`      // "gemini" or "ollama"
	Model       string `mapstructure:"model"`        // default text/structured model
	VisionModel string `mapstructure:"vision_model"` // default multimodal model
	OllamaHost  string `mapstructure:"ollama_host"`
}

// Provider is one LLM backend. Implementations are long-lived: constructed
// once at startup and safe for concurrent read-only inference calls.
type Provider interface {
	Init(cfg Config) error
	DefaultModel() string
	AllowedModelOrDefault(model string) string
	Generate(ctx context.Context, prompt, model string) (string, error)
	GenerateJSON(ctx context.Context, prompt, model string, schema any) (string, error)
	GenerateVision(ctx context.Context, prompt string, imageJPEG []byte, model string) (string, error)
}

// New constructs and initializes the provider named by cfg.Backend.
func New(cfg Config) (Provider, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = "gemini"
	}
	var p Provider
	switch backend {
	case "ollama":
		p = &ollamaProvider{}
	case "gemini":
		p = &geminiProvider{}
	default:
		return nil, fmt.Errorf("unsupported LLM backend: %s", backend)
	}
	if err := p.Init(cfg); err != nil {
		return nil, err
	}
	return p, nil
}
