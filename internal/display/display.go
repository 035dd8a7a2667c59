package display

import (
	"fmt"
	"sort"
	"strings"

	"iva/internal/agent"
)

const maxFieldValueLength = 100

// FormatPlan renders a structured plan for the terminal.
func FormatPlan(steps []agent.PlanStep) string {
	var sb strings.Builder
	sb.WriteString("Proposed plan:\n")
	sb.WriteString("--------------------------------------------------\n")
	for _, step := range steps {
		sb.WriteString(fmt.Sprintf("Step %d: %s (%s)\n", step.Step, step.Tool, step.Mode))
		if step.Input != "" {
			sb.WriteString(fmt.Sprintf("  Input: %s\n", formatValueForDisplay(step.Input)))
		}
	}
	sb.WriteString("--------------------------------------------------")
	return sb.String()
}

// FormatStepUpdate renders one node visit, fields in deterministic order.
func FormatStepUpdate(u agent.StepUpdate) string {
	var sb strings.Builder
	for node, fields := range u {
		sb.WriteString(fmt.Sprintf("[%s]\n", node))
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, formatValueForDisplay(fields[k])))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatAnswer renders the terminal record: the accepted (or best-effort)
// answer texts plus the closing verdict.
func FormatAnswer(u agent.StepUpdate) string {
	fields, ok := u[string(agent.NodeResponse)]
	if !ok {
		return "No answer produced."
	}
	var sb strings.Builder
	if results, ok := fields["final_result"].([]string); ok {
		for _, r := range results {
			sb.WriteString(r)
			sb.WriteString("\n")
		}
	}
	if flag, ok := fields["answer_flag"].(int); ok && flag != 1 {
		assessment, _ := fields["answer_assessment"].(string)
		sb.WriteString(fmt.Sprintf("(plan budget exhausted; last assessment: %s)\n", assessment))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatValueForDisplay(value any) string {
	s := fmt.Sprintf("%v", value)
	s = strings.ReplaceAll(s, "\n", "\\n")
	if len(s) > maxFieldValueLength {
		return s[:maxFieldValueLength] + "..."
	}
	return s
}
