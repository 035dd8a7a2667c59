package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeProvider struct {
	Provider
	lastPrompt string
	response   string
	err        error
}

func (f *fakeProvider) Generate(_ context.Context, prompt, _ string) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeProvider) GenerateJSON(_ context.Context, prompt, _ string, _ any) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func TestCompleterPrependsSystemPrompt(t *testing.T) {
	fp := &fakeProvider{response: "a plan"}
	c := NewCompleter(fp, "You are a planner.", "")

	got, err := c.Call(context.Background(), "The task is X")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a plan" {
		t.Errorf("got %q, want %q", got, "a plan")
	}
	if !strings.HasPrefix(fp.lastPrompt, "You are a planner.") {
		t.Errorf("system prompt missing from composed prompt: %q", fp.lastPrompt)
	}
	if !strings.Contains(fp.lastPrompt, "The task is X") {
		t.Errorf("query missing from composed prompt: %q", fp.lastPrompt)
	}
}

func TestStructuredCall(t *testing.T) {
	type verdict struct {
		FinalAnswer int    `json:"final_answer"`
		Assessment  string `json:"assessment"`
	}

	testCases := []struct {
		name        string
		response    string
		err         error
		expectErr   bool
		expectFlag  int
		expectWords string
	}{
		{
			name:       "Strict JSON decodes",
			response:   `{"final_answer": 1, "assessment": "good"}`,
			expectFlag: 1, expectWords: "good",
		},
		{
			name:       "Fenced JSON is unwrapped",
			response:   "```json\n{\"final_answer\": 0, \"assessment\": \"weak\"}\n```",
			expectFlag: 0, expectWords: "weak",
		},
		{
			name:      "Malformed output is an error, not a default",
			response:  "I think the answer is fine.",
			expectErr: true,
		},
		{
			name:      "Provider error propagates",
			err:       errors.New("backend down"),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fp := &fakeProvider{response: tc.response, err: tc.err}
			s := NewStructured[verdict](fp, "You assess answers.", "", nil)

			got, err := s.Call(context.Background(), "was it good?")
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.FinalAnswer != tc.expectFlag || got.Assessment != tc.expectWords {
				t.Errorf("got %+v, want flag=%d assessment=%q", got, tc.expectFlag, tc.expectWords)
			}
		})
	}
}
