package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"iva/internal/agent"
	"iva/internal/imaging"
)

const defaultFlorenceTimeout = 60 * time.Second

// Task codes understood by a Florence-2 style serving endpoint.
var taskCodes = map[agent.ToolMode]string{
	agent.ModeGeneralDetection:  "<OD>",
	agent.ModeSpecificDetection: "<CAPTION_TO_PHRASE_GROUNDING>",
	agent.ModeCaption:           "<MORE_DETAILED_CAPTION>",
	agent.ModeOCR:               "<OCR_WITH_REGION>",
}

type FlorenceConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Florence is the specialist vision adapter: it ships a base64 JPEG plus a
// task code to an inference server and returns the structured result as a
// JSON string the assessor can read.
type Florence struct {
	endpoint string
	client   *http.Client
}

var _ agent.SpecialistVision = (*Florence)(nil)

func NewFlorence(cfg FlorenceConfig) *Florence {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFlorenceTimeout
	}
	return &Florence{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type florenceRequest struct {
	Task      string `json:"task"`
	Image     string `json:"image"`
	TextInput string `json:"text_input,omitempty"`
}

type florenceResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error,omitempty"`
}

func (f *Florence) Call(ctx context.Context, mode agent.ToolMode, img image.Image, textInput string) (string, error) {
	code, ok := taskCodes[mode]
	if !ok {
		code = "<DETAILED_CAPTION>"
	}

	encoded, err := imaging.EncodeBase64JPEG(img)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(florenceRequest{Task: code, Image: encoded, TextInput: textInput})
	if err != nil {
		return "", fmt.Errorf("marshal florence request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build florence request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("florence call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read florence response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("florence endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	var out florenceResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode florence response: %v\nRaw Response: %s", err, raw)
	}
	if out.Error != "" {
		return "", fmt.Errorf("florence endpoint error: %s", out.Error)
	}
	return string(out.Result), nil
}
