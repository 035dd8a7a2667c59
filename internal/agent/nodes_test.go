package agent

import (
	"context"
	"strings"
	"testing"
)

func TestPlanNodeFirstVisit(t *testing.T) {
	planner := &fakePlanner{responses: []string{"a fresh plan"}}
	n := &Nodes{Planner: planner}

	u, err := n.PlanNode(context.Background(), AgentState{Task: "count the cats"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *u.Plan != "a fresh plan" || *u.PlanVersion != 1 {
		t.Errorf("got plan=%q version=%d, want %q/1", *u.Plan, *u.PlanVersion, "a fresh plan")
	}
	q := planner.queries[0]
	if !strings.Contains(q, "count the cats") {
		t.Errorf("task missing from planning query: %q", q)
	}
	if strings.Contains(q, "feedback") {
		t.Errorf("first visit must not use the revision prompt: %q", q)
	}
}

func TestPlanNodeRevisionCarriesFeedback(t *testing.T) {
	planner := &fakePlanner{responses: []string{"a better plan"}}
	n := &Nodes{Planner: planner}

	s := AgentState{
		Task:             "count the cats",
		Plan:             "the old plan",
		PlanVersion:      1,
		AnswerAssessment: "the count ignored the cat behind the sofa",
	}
	u, err := n.PlanNode(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *u.PlanVersion != 2 {
		t.Errorf("plan version = %d, want 2", *u.PlanVersion)
	}
	q := planner.queries[0]
	for _, want := range []string{"count the cats", "the old plan", "cat behind the sofa"} {
		if !strings.Contains(q, want) {
			t.Errorf("revision query missing %q: %q", want, q)
		}
	}
}

func TestStructurePlanNodeReindexes(t *testing.T) {
	// Whatever indices the model emitted, the stored structure is 1-based
	// and contiguous, with the cursor reset.
	structurer := &fakeStructurer{plans: []Plan{{Steps: []PlanStep{
		{Step: 7, Tool: ToolSpecialVision, Mode: ModeCaption},
		{Step: 7, Tool: ToolGeneralVision, Mode: ModeConversation, Input: "and then?"},
	}}}}
	n := &Nodes{Structurer: structurer}

	u, err := n.StructurePlanNode(context.Background(), AgentState{Plan: "caption, then ask"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	steps := *u.PlanStructure
	for i, step := range steps {
		if step.Step != i+1 {
			t.Errorf("step[%d].Step = %d, want %d", i, step.Step, i+1)
		}
	}
	if *u.CurrentStep != 0 || *u.MaxSteps != 2 {
		t.Errorf("cursor/max = %d/%d, want 0/2", *u.CurrentStep, *u.MaxSteps)
	}
}

func TestSpecialVisionNodeDropsForbiddenInput(t *testing.T) {
	specialist := &fakeSpecialist{}
	n := &Nodes{Specialist: specialist}

	s := AgentState{
		PlanStructure: []PlanStep{{Step: 1, Tool: ToolSpecialVision, Mode: ModeOCR, Input: "should not be passed"}},
		CurrentStep:   1,
	}
	u, err := n.SpecialVisionNode(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := specialist.inputs[0]; got != "" {
		t.Errorf("text input %q reached the specialist for a no-input mode", got)
	}
	if len(u.PlanOutput) != 1 || u.PlanOutput[0].Step != 1 {
		t.Errorf("plan output = %+v, want one entry for step 1", u.PlanOutput)
	}
}

func TestSpecialVisionNodeKeepsPhraseInput(t *testing.T) {
	specialist := &fakeSpecialist{}
	n := &Nodes{Specialist: specialist}

	s := AgentState{
		PlanStructure: []PlanStep{{Step: 1, Tool: ToolSpecialVision, Mode: ModeSpecificDetection, Input: "red bicycle"}},
		CurrentStep:   1,
	}
	if _, err := n.SpecialVisionNode(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if specialist.modes[0] != ModeSpecificDetection || specialist.inputs[0] != "red bicycle" {
		t.Errorf("specialist got mode=%q input=%q", specialist.modes[0], specialist.inputs[0])
	}
}

func TestVisionNodesRejectBadCursor(t *testing.T) {
	n := &Nodes{Specialist: &fakeSpecialist{}, Generalist: &fakeGeneralist{}}
	s := AgentState{
		PlanStructure: []PlanStep{{Step: 1, Tool: ToolSpecialVision, Mode: ModeCaption}},
		CurrentStep:   2,
	}
	if _, err := n.SpecialVisionNode(context.Background(), s); err == nil {
		t.Error("special vision accepted an out-of-range cursor")
	}
	if _, err := n.GeneralVisionNode(context.Background(), s); err == nil {
		t.Error("general vision accepted an out-of-range cursor")
	}
}

func TestAssessmentNodeSeesAccumulatedOutput(t *testing.T) {
	assessor := &fakeAssessor{verdicts: []Assessment{{FinalAnswer: 0, Assessment: "incomplete"}}}
	n := &Nodes{Assessor: assessor}

	s := AgentState{
		Task: "what is on the table",
		Plan: "caption the scene",
		PlanOutput: []StepResult{
			{Step: 1, Result: "first pass output"},
			{Step: 1, Result: "second pass output"},
		},
	}
	u, err := n.AssessmentNode(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := assessor.queries[0]
	for _, want := range []string{"what is on the table", "first pass output", "second pass output"} {
		if !strings.Contains(q, want) {
			t.Errorf("assessment query missing %q: %q", want, q)
		}
	}
	if *u.AnswerFlag != 0 || *u.AnswerAssessment != "incomplete" {
		t.Errorf("verdict = %d/%q, want 0/incomplete", *u.AnswerFlag, *u.AnswerAssessment)
	}
}

func TestRespondNodeFlattensResults(t *testing.T) {
	n := &Nodes{}
	s := AgentState{
		PlanOutput: []StepResult{
			{Step: 1, Result: "one"},
			{Step: 2, Result: "two"},
			{Step: 1, Result: "three"},
		},
		AnswerAssessment: "good enough",
		AnswerFlag:       1,
	}
	u, err := n.RespondNode(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := *u.FinalResult
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("final result %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("final[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if *u.AnswerFlag != 1 || *u.AnswerAssessment != "good enough" {
		t.Errorf("terminal verdict not re-surfaced: %d/%q", *u.AnswerFlag, *u.AnswerAssessment)
	}
}
