package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"iva/internal/agent"
)

func TestFlorenceCall(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))

	testCases := []struct {
		name          string
		mode          agent.ToolMode
		textInput     string
		status        int
		responseBody  string
		expectTask    string
		expectText    string
		expectResult  string
		expectFailure bool
	}{
		{
			name:         "General detection sends OD task code",
			mode:         agent.ModeGeneralDetection,
			status:       http.StatusOK,
			responseBody: `{"result": {"bboxes": [[1, 2, 3, 4]], "labels": ["dog"]}}`,
			expectTask:   "<OD>",
			expectResult: `{"bboxes": [[1, 2, 3, 4]], "labels": ["dog"]}`,
		},
		{
			name:         "Specific detection forwards the phrase",
			mode:         agent.ModeSpecificDetection,
			textInput:    "white dog",
			status:       http.StatusOK,
			responseBody: `{"result": {"bboxes": [], "labels": []}}`,
			expectTask:   "<CAPTION_TO_PHRASE_GROUNDING>",
			expectText:   "white dog",
			expectResult: `{"bboxes": [], "labels": []}`,
		},
		{
			name:         "OCR task code",
			mode:         agent.ModeOCR,
			status:       http.StatusOK,
			responseBody: `{"result": "SALE 50% OFF"}`,
			expectTask:   "<OCR_WITH_REGION>",
			expectResult: `"SALE 50% OFF"`,
		},
		{
			name:          "Server failure propagates",
			mode:          agent.ModeCaption,
			status:        http.StatusInternalServerError,
			responseBody:  `model not loaded`,
			expectFailure: true,
		},
		{
			name:          "Endpoint-level error propagates",
			mode:          agent.ModeCaption,
			status:        http.StatusOK,
			responseBody:  `{"error": "cuda out of memory"}`,
			expectFailure: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got florenceRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("request body did not decode: %v", err)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.responseBody))
			}))
			defer server.Close()

			client := NewFlorence(FlorenceConfig{Endpoint: server.URL})
			result, err := client.Call(context.Background(), tc.mode, img, tc.textInput)

			if tc.expectFailure {
				if err == nil {
					t.Fatalf("expected error, got result %q", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Task != tc.expectTask {
				t.Errorf("task code %q, want %q", got.Task, tc.expectTask)
			}
			if got.TextInput != tc.expectText {
				t.Errorf("text input %q, want %q", got.TextInput, tc.expectText)
			}
			if _, err := base64.StdEncoding.DecodeString(got.Image); err != nil {
				t.Errorf("image is not valid base64: %v", err)
			}
			if result != tc.expectResult {
				t.Errorf("result %q, want %q", result, tc.expectResult)
			}
		})
	}
}
