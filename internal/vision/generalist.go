package vision

import (
	"context"
	"image"

	"iva/internal/agent"
	"iva/internal/imaging"
	"iva/internal/llm"
)

// Width images are scaled down to before transport to a vision backend.
const standardWidth = 512

// Generalist answers open-ended image questions on a multimodal provider
// (Gemini remote or a local Ollama vision model).
type Generalist struct {
	provider    llm.Provider
	model       string
	resizeWidth int
}

var _ agent.GeneralistVision = (*Generalist)(nil)

func NewGeneralist(p llm.Provider, model string, resizeWidth int) *Generalist {
	if resizeWidth <= 0 {
		resizeWidth = standardWidth
	}
	return &Generalist{provider: p, model: model, resizeWidth: resizeWidth}
}

func (g *Generalist) Call(ctx context.Context, query string, img image.Image) (string, error) {
	scaled := imaging.ResizeWidth(img, g.resizeWidth)
	encoded, err := imaging.EncodeJPEG(scaled)
	if err != nil {
		return "", err
	}
	prompt := agent.ImageInterpretationPrompt + "\n\n" + query
	return g.provider.GenerateVision(ctx, prompt, encoded, g.model)
}
