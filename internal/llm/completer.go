package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Completer binds a provider to a fixed system prompt. One instance per
// role (planning, interpretation, ...), constructed once at startup.
type Completer struct {
	provider Provider
	system   string
	model    string
}

func NewCompleter(p Provider, systemPrompt, model string) *Completer {
	return &Completer{provider: p, system: systemPrompt, model: model}
}

func (c *Completer) Call(ctx context.Context, query string) (string, error) {
	return c.provider.Generate(ctx, c.system+"\n\n"+query, c.model)
}

// Structured binds a provider to a fixed system prompt and output schema.
// The response is decoded into T; output that does not parse as T is an
// adapter failure, never silently coerced.
type Structured[T any] struct {
	provider Provider
	system   string
	model    string
	schema   map[string]any
}

func NewStructured[T any](p Provider, systemPrompt, model string, schema map[string]any) *Structured[T] {
	return &Structured[T]{provider: p, system: systemPrompt, model: model, schema: schema}
}

func (s *Structured[T]) Call(ctx context.Context, query string) (T, error) {
	var out T
	raw, err := s.provider.GenerateJSON(ctx, s.system+"\n\n"+query, s.model, s.schema)
	if err != nil {
		return out, err
	}
	cleaned := stripFences(raw)
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return out, fmt.Errorf("structured output violates schema: %v\nRaw Response: %s", err, raw)
	}
	return out, nil
}

// Some local models wrap JSON in markdown fences despite format constraints.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
