package agent

import (
	"errors"
	"fmt"
)

// ErrInvalidPlan marks a structured plan that violates the tool/mode/input
// rules below. Surfaced at structuring time so a bad plan never reaches the
// executors.
var ErrInvalidPlan = errors.New("invalid plan")

type ToolName string

const (
	ToolSpecialVision ToolName = "special_vision"
	ToolGeneralVision ToolName = "general_vision"
)

type ToolMode string

const (
	ModeGeneralDetection  ToolMode = "general_detection"
	ModeSpecificDetection ToolMode = "specific_detection"
	ModeCaption           ToolMode = "caption"
	ModeOCR               ToolMode = "ocr"
	ModeConversation      ToolMode = "conversation"
)

// PlanStep is one unit of planned work. Step indices are 1-based and
// contiguous; the structuring node assigns them regardless of what the
// model returned.
type PlanStep struct {
	Step  int      `json:"step"`
	Tool  ToolName `json:"tool_name"`
	Mode  ToolMode `json:"tool_mode"`
	Input string   `json:"tool_input,omitempty"`
}

// Plan is the strict schema the structuring model is constrained to.
type Plan struct {
	Steps []PlanStep `json:"plan"`
}

// Assessment is the verdict schema: 1 accepts the accumulated answer,
// 0 rejects it and triggers a replan.
type Assessment struct {
	FinalAnswer int    `json:"final_answer"`
	Assessment  string `json:"assessment"`
}

var specialModes = map[ToolMode]struct{}{
	ModeGeneralDetection:  {},
	ModeSpecificDetection: {},
	ModeCaption:           {},
	ModeOCR:               {},
}

// ModeNeedsInput reports whether a tool mode semantically requires a text
// argument. All other modes operate on the image alone.
func ModeNeedsInput(mode ToolMode) bool {
	return mode == ModeSpecificDetection || mode == ModeConversation
}

// ValidatePlan checks every step against the tool/mode/input invariants:
//   - special_vision runs in one of the four specialist modes, and
//     specific_detection requires a non-empty input phrase;
//   - general_vision only runs in conversation mode with a non-empty input.
func ValidatePlan(p Plan) error {
	for i, step := range p.Steps {
		switch step.Tool {
		case ToolSpecialVision:
			if _, ok := specialModes[step.Mode]; !ok {
				return fmt.Errorf("%w: step %d: mode %q is not a special_vision mode", ErrInvalidPlan, i+1, step.Mode)
			}
			if step.Mode == ModeSpecificDetection && step.Input == "" {
				return fmt.Errorf("%w: step %d: specific_detection requires an input phrase", ErrInvalidPlan, i+1)
			}
		case ToolGeneralVision:
			if step.Mode != ModeConversation {
				return fmt.Errorf("%w: step %d: general_vision only supports conversation mode, got %q", ErrInvalidPlan, i+1, step.Mode)
			}
			if step.Input == "" {
				return fmt.Errorf("%w: step %d: conversation requires an input question", ErrInvalidPlan, i+1)
			}
		default:
			return fmt.Errorf("%w: step %d: unknown tool %q", ErrInvalidPlan, i+1, step.Tool)
		}
	}
	return nil
}

// NormalizeStepInput drops a text argument the planner supplied for a mode
// that does not take one. The second return reports whether anything was
// dropped, so callers can log the correction instead of hiding it.
func NormalizeStepInput(step PlanStep) (PlanStep, bool) {
	if step.Input != "" && !ModeNeedsInput(step.Mode) {
		step.Input = ""
		return step, true
	}
	return step, false
}
