package agent

import "image"

// StepResult pairs a 1-based plan step index with the tool output it
// produced.
type StepResult struct {
	Step   int    `json:"step"`
	Result string `json:"result"`
}

// AgentState is the single mutable record threaded through the control
// loop. It is created fresh per invocation and never shared between
// concurrent invocations.
type AgentState struct {
	Task        string // original user query, set once
	Plan        string // latest free-text plan
	PlanVersion int    // incremented on every planning visit; the retry counter
	MaxPlans    int    // ceiling on PlanVersion before forced termination

	Image image.Image // immutable for the lifetime of one invocation

	PlanStructure []PlanStep // replaced wholesale on every structuring visit
	CurrentStep   int        // 0 before any step executes; 1-based afterwards
	MaxSteps      int        // length of the freshly structured plan

	// PlanOutput accumulates across the entire invocation, including across
	// replans. A rejected plan's outputs stay visible to later assessments.
	PlanOutput []StepResult

	AnswerAssessment string
	AnswerFlag       int // 1 accept, 0 reject-and-retry

	FinalResult []string // set once at termination
}

// Update is the partial state change a node hands back. Merge semantics are
// explicit per field: pointer fields replace, PlanOutput appends and
// FinalResult is set exactly once.
type Update struct {
	Plan             *string
	PlanVersion      *int
	PlanStructure    *[]PlanStep
	CurrentStep      *int
	MaxSteps         *int
	PlanOutput       []StepResult
	AnswerAssessment *string
	AnswerFlag       *int
	FinalResult      *[]string
}

// Apply merges the update into the running state.
func (u Update) Apply(s *AgentState) {
	if u.Plan != nil {
		s.Plan = *u.Plan
	}
	if u.PlanVersion != nil {
		s.PlanVersion = *u.PlanVersion
	}
	if u.PlanStructure != nil {
		s.PlanStructure = *u.PlanStructure
	}
	if u.CurrentStep != nil {
		s.CurrentStep = *u.CurrentStep
	}
	if u.MaxSteps != nil {
		s.MaxSteps = *u.MaxSteps
	}
	if len(u.PlanOutput) > 0 {
		s.PlanOutput = append(s.PlanOutput, u.PlanOutput...)
	}
	if u.AnswerAssessment != nil {
		s.AnswerAssessment = *u.AnswerAssessment
	}
	if u.AnswerFlag != nil {
		s.AnswerFlag = *u.AnswerFlag
	}
	if u.FinalResult != nil {
		s.FinalResult = *u.FinalResult
	}
}

// Fields renders the produced fields of an update for telemetry and
// display, keyed by the state field names.
func (u Update) Fields() map[string]any {
	out := make(map[string]any)
	if u.Plan != nil {
		out["plan"] = *u.Plan
	}
	if u.PlanVersion != nil {
		out["plan_version"] = *u.PlanVersion
	}
	if u.PlanStructure != nil {
		out["plan_structure"] = *u.PlanStructure
	}
	if u.CurrentStep != nil {
		out["current_step"] = *u.CurrentStep
	}
	if u.MaxSteps != nil {
		out["max_steps"] = *u.MaxSteps
	}
	if len(u.PlanOutput) > 0 {
		out["plan_output"] = u.PlanOutput
	}
	if u.AnswerAssessment != nil {
		out["answer_assessment"] = *u.AnswerAssessment
	}
	if u.AnswerFlag != nil {
		out["answer_flag"] = *u.AnswerFlag
	}
	if u.FinalResult != nil {
		out["final_result"] = *u.FinalResult
	}
	return out
}
