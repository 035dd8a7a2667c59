package display

import (
	"strings"
	"testing"

	"iva/internal/agent"
	"iva/internal/metrics"
)

func TestFormatPlan(t *testing.T) {
	steps := []agent.PlanStep{
		{Step: 1, Tool: agent.ToolSpecialVision, Mode: agent.ModeGeneralDetection},
		{Step: 2, Tool: agent.ToolGeneralVision, Mode: agent.ModeConversation, Input: "what breed is the dog?"},
	}

	out := FormatPlan(steps)

	if !strings.Contains(out, "Proposed plan") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "Step 1: special_vision (general_detection)") {
		t.Errorf("missing first step:\n%s", out)
	}
	if !strings.Contains(out, "Step 2: general_vision (conversation)") {
		t.Errorf("missing second step:\n%s", out)
	}
	if !strings.Contains(out, "what breed is the dog?") {
		t.Errorf("missing step input:\n%s", out)
	}
}

func TestFormatStepUpdateTruncatesLongValues(t *testing.T) {
	long := strings.Repeat("a", 200)
	u := agent.StepUpdate{"planning": {"plan": long}}

	out := FormatStepUpdate(u)

	if !strings.Contains(out, "...") {
		t.Errorf("long value not truncated:\n%s", out)
	}
	if strings.Contains(out, long) {
		t.Errorf("full value leaked into output")
	}
}

func TestFormatAnswer(t *testing.T) {
	accepted := agent.StepUpdate{string(agent.NodeResponse): {
		"final_result":      []string{"a golden retriever"},
		"answer_flag":       1,
		"answer_assessment": "directly answers the question",
	}}
	out := FormatAnswer(accepted)
	if !strings.Contains(out, "a golden retriever") {
		t.Errorf("answer text missing:\n%s", out)
	}
	if strings.Contains(out, "budget exhausted") {
		t.Errorf("accepted answer flagged as timed out:\n%s", out)
	}

	timedOut := agent.StepUpdate{string(agent.NodeResponse): {
		"final_result":      []string{"partial output"},
		"answer_flag":       0,
		"answer_assessment": "the breed was never identified",
	}}
	out = FormatAnswer(timedOut)
	if !strings.Contains(out, "budget exhausted") || !strings.Contains(out, "never identified") {
		t.Errorf("timeout notice missing:\n%s", out)
	}

	if got := FormatAnswer(agent.StepUpdate{"planning": {}}); got != "No answer produced." {
		t.Errorf("non-terminal record formatted as %q", got)
	}
}

func TestFormatInvocationMetrics(t *testing.T) {
	mm := &metrics.InvocationMetrics{
		DurationMs:  1200,
		Succeeded:   true,
		PlanVersion: 2,
		Nodes: []metrics.NodeMetrics{
			{Node: "planning", DurationMs: 400, Success: true},
			{Node: "assessment", DurationMs: 300, Success: false, Err: "backend down"},
		},
	}

	out := FormatInvocationMetrics(mm)

	if !strings.Contains(out, "success=true, plans=2") {
		t.Errorf("summary line missing:\n%s", out)
	}
	if !strings.Contains(out, "planning") || !strings.Contains(out, "[ok]") || !strings.Contains(out, "[err]") {
		t.Errorf("node rows missing:\n%s", out)
	}

	if got := FormatInvocationMetrics(nil); got != "No metrics available." {
		t.Errorf("nil metrics formatted as %q", got)
	}
}
