package agent

// JSON Schemas handed to the structured-completion adapters at
// construction time. The backends enforce these on their side; the typed
// decode in the adapter enforces them on ours.

func PlanSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"plan": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"tool_name": map[string]any{
							"type": "string",
							"enum": []string{string(ToolSpecialVision), string(ToolGeneralVision)},
						},
						"tool_mode": map[string]any{
							"type": "string",
							"enum": []string{
								string(ModeGeneralDetection),
								string(ModeSpecificDetection),
								string(ModeCaption),
								string(ModeOCR),
								string(ModeConversation),
							},
						},
						"tool_input": map[string]any{"type": "string"},
					},
					"required": []string{"tool_name", "tool_mode"},
				},
			},
		},
		"required": []string{"plan"},
	}
}

func AssessmentSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"final_answer": map[string]any{
				"type": "integer",
				"enum": []int{0, 1},
			},
			"assessment": map[string]any{"type": "string"},
		},
		"required": []string{"final_answer", "assessment"},
	}
}
