package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"iva/internal/logger"
)

// Nodes holds the injected model adapters and implements one handler per
// graph node. Every handler reads the fields it declares and returns a
// partial Update; the driver owns the merge.
type Nodes struct {
	Planner    TextCompletion
	Structurer PlanCompletion
	Assessor   AssessmentCompletion
	Specialist SpecialistVision
	Generalist GeneralistVision
}

// PlanNode produces a free-text plan. On a retry it embeds the previous
// plan and the assessor's rejection feedback into a revision prompt.
func (n *Nodes) PlanNode(ctx context.Context, s AgentState) (Update, error) {
	var query string
	if s.Plan != "" && s.AnswerAssessment != "" {
		query = fmt.Sprintf(
			"The task is %s\nYour old plan was %s\nbut your answer wasn't good enough. Another system provided this feedback:\n%s\nPlease revise your plan",
			s.Task, s.Plan, s.AnswerAssessment)
	} else {
		query = fmt.Sprintf("The task is %s", s.Task)
	}

	plan, err := n.Planner.Call(ctx, query)
	if err != nil {
		return Update{}, err
	}
	version := s.PlanVersion + 1
	return Update{Plan: &plan, PlanVersion: &version}, nil
}

// StructurePlanNode converts the free-text plan into an ordered PlanStep
// sequence. Steps are re-indexed 1-based contiguous regardless of what the
// model returned, then checked against the plan invariants; a violation
// rejects the plan instead of surfacing later as a bad lookup.
func (n *Nodes) StructurePlanNode(ctx context.Context, s AgentState) (Update, error) {
	plan, err := n.Structurer.Call(ctx, s.Plan)
	if err != nil {
		return Update{}, err
	}
	if err := ValidatePlan(plan); err != nil {
		return Update{}, err
	}

	steps := make([]PlanStep, len(plan.Steps))
	copy(steps, plan.Steps)
	for i := range steps {
		steps[i].Step = i + 1
	}

	zero := 0
	maxSteps := len(steps)
	return Update{PlanStructure: &steps, CurrentStep: &zero, MaxSteps: &maxSteps}, nil
}

// RoutingNode advances the step cursor. The branch decision itself lives
// in ChooseTool.
func (n *Nodes) RoutingNode(_ context.Context, s AgentState) (Update, error) {
	next := s.CurrentStep + 1
	return Update{CurrentStep: &next}, nil
}

func (s AgentState) currentPlanStep() (PlanStep, error) {
	if s.CurrentStep < 1 || s.CurrentStep > len(s.PlanStructure) {
		return PlanStep{}, fmt.Errorf("plan step %d does not exist (plan has %d steps)", s.CurrentStep, len(s.PlanStructure))
	}
	return s.PlanStructure[s.CurrentStep-1], nil
}

// SpecialVisionNode executes the current step on the specialist backend.
// A text argument supplied for a mode that takes none is dropped and the
// correction is logged; this covers upstream planning slips without hiding
// them.
func (n *Nodes) SpecialVisionNode(ctx context.Context, s AgentState) (Update, error) {
	step, err := s.currentPlanStep()
	if err != nil {
		return Update{}, err
	}

	step, dropped := NormalizeStepInput(step)
	if dropped {
		logger.Printf("step %d: dropping tool_input for mode %q, which takes none", step.Step, step.Mode)
	}

	result, err := n.Specialist.Call(ctx, step.Mode, s.Image, step.Input)
	if err != nil {
		return Update{}, err
	}
	return Update{PlanOutput: []StepResult{{Step: s.CurrentStep, Result: result}}}, nil
}

// GeneralVisionNode executes the current step on the generalist backend.
func (n *Nodes) GeneralVisionNode(ctx context.Context, s AgentState) (Update, error) {
	step, err := s.currentPlanStep()
	if err != nil {
		return Update{}, err
	}

	result, err := n.Generalist.Call(ctx, step.Input, s.Image)
	if err != nil {
		return Update{}, err
	}
	return Update{PlanOutput: []StepResult{{Step: s.CurrentStep, Result: result}}}, nil
}

// AssessmentNode judges the full accumulated output, not just the current
// iteration's steps, against the original task.
func (n *Nodes) AssessmentNode(ctx context.Context, s AgentState) (Update, error) {
	rendered, err := json.Marshal(s.PlanOutput)
	if err != nil {
		return Update{}, fmt.Errorf("render plan output: %w", err)
	}
	query := fmt.Sprintf("The question was: %s\nThe plan was:\n%s\nThe output is:\n%s",
		s.Task, s.Plan, string(rendered))

	verdict, err := n.Assessor.Call(ctx, query)
	if err != nil {
		return Update{}, err
	}
	return Update{AnswerAssessment: &verdict.Assessment, AnswerFlag: &verdict.FinalAnswer}, nil
}

// RespondNode dumps the terminal output: the accumulated result texts plus
// the last verdict, so callers can tell an accepted answer from a
// best-effort timeout.
func (n *Nodes) RespondNode(_ context.Context, s AgentState) (Update, error) {
	final := make([]string, len(s.PlanOutput))
	for i, entry := range s.PlanOutput {
		final[i] = entry.Result
	}
	assessment := s.AnswerAssessment
	flag := s.AnswerFlag
	return Update{AnswerAssessment: &assessment, AnswerFlag: &flag, FinalResult: &final}, nil
}
