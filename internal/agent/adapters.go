package agent

import (
	"context"
	"image"
)

// The narrow collaborator interfaces the loop consumes. Backends are
// injected at construction and treated as opaque functions; any failure
// they raise propagates out of the invocation untouched.

// TextCompletion turns a prompt into free text (the planning model).
type TextCompletion interface {
	Call(ctx context.Context, query string) (string, error)
}

// PlanCompletion is a structured completion constrained to the Plan schema.
type PlanCompletion interface {
	Call(ctx context.Context, query string) (Plan, error)
}

// AssessmentCompletion is a structured completion constrained to the
// Assessment schema.
type AssessmentCompletion interface {
	Call(ctx context.Context, query string) (Assessment, error)
}

// SpecialistVision runs one fixed-mode vision task (detection, OCR,
// captioning) and returns a structured-or-text rendering of the result.
type SpecialistVision interface {
	Call(ctx context.Context, mode ToolMode, img image.Image, textInput string) (string, error)
}

// GeneralistVision answers an open-ended question about an image.
type GeneralistVision interface {
	Call(ctx context.Context, query string, img image.Image) (string, error)
}
