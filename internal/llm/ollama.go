package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

type ollamaProvider struct {
	client      *api.Client
	model       string
	visionModel string
}

const (
	ollamaDefault       = "phi4:latest"
	ollamaVisionDefault = "qwen2.5vl:latest"
)

func (p *ollamaProvider) Init(cfg Config) error {
	c, err := api.ClientFromEnvironment()
	if err != nil {
		host := cfg.OllamaHost
		if host == "" {
			host = "http://localhost:11434"
		}
		u, uerr := url.Parse(host)
		if uerr != nil {
			return fmt.Errorf("ollama: bad host %q: %w", host, uerr)
		}
		c = api.NewClient(u, nil)
	}
	p.client = c
	p.model = ollamaDefault
	if strings.TrimSpace(cfg.Model) != "" {
		p.model = cfg.Model
	}
	p.visionModel = ollamaVisionDefault
	if strings.TrimSpace(cfg.VisionModel) != "" {
		p.visionModel = cfg.VisionModel
	}
	return nil
}

func (p *ollamaProvider) DefaultModel() string { return ollamaDefault }

func (p *ollamaProvider) AllowedModelOrDefault(model string) string {
	m := strings.TrimSpace(model)
	if m == "" {
		return p.model
	}
	return m
}

func (p *ollamaProvider) generate(ctx context.Context, req *api.GenerateRequest) (string, error) {
	if p.client == nil {
		return "", ErrNotInitialized
	}
	stream := false
	req.Stream = &stream
	req.Options = map[string]any{"temperature": 0}
	var out strings.Builder
	if err := p.client.Generate(ctx, req, func(gr api.GenerateResponse) error {
		out.WriteString(gr.Response)
		return nil
	}); err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return out.String(), nil
}

func (p *ollamaProvider) Generate(ctx context.Context, prompt, model string) (string, error) {
	return p.generate(ctx, &api.GenerateRequest{
		Model:  p.AllowedModelOrDefault(model),
		Prompt: prompt,
	})
}

func (p *ollamaProvider) GenerateJSON(ctx context.Context, prompt, model string, schema any) (string, error) {
	// Force JSON output. If schema supplied, pass it; else "json".
	var fmtRaw json.RawMessage
	if schema != nil {
		b, err := json.Marshal(schema)
		if err != nil {
			return "", fmt.Errorf("ollama marshal schema: %w", err)
		}
		fmtRaw = b
	} else {
		fmtRaw = json.RawMessage(`"json"`)
	}
	return p.generate(ctx, &api.GenerateRequest{
		Model:  p.AllowedModelOrDefault(model),
		Prompt: prompt + "\n\nReturn ONLY strict JSON. No extra text.",
		Format: fmtRaw,
	})
}

func (p *ollamaProvider) GenerateVision(ctx context.Context, prompt string, imageJPEG []byte, model string) (string, error) {
	m := strings.TrimSpace(model)
	if m == "" {
		m = p.visionModel
	}
	return p.generate(ctx, &api.GenerateRequest{
		Model:  m,
		Prompt: prompt,
		Images: []api.ImageData{imageJPEG},
	})
}
