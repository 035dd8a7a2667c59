package display

import (
	"fmt"
	"strings"

	"iva/internal/metrics"
)

func FormatInvocationMetrics(mm *metrics.InvocationMetrics) string {
	if mm == nil {
		return "No metrics available."
	}
	var sb strings.Builder
	sb.WriteString("Invocation metrics:\n")
	sb.WriteString(fmt.Sprintf("- Total: %d ms  (success=%v, plans=%d)\n",
		mm.DurationMs, mm.Succeeded, mm.PlanVersion))
	for _, n := range mm.Nodes {
		status := "ok"
		if !n.Success {
			status = "err"
		}
		sb.WriteString(fmt.Sprintf("    %-16s %5d ms  [%s]\n", n.Node, n.DurationMs, status))
	}
	return sb.String()
}
