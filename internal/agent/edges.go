package agent

import "fmt"

// Route names the node the loop dispatches to after the routing node.
type Route string

const (
	RouteSpecialVision Route = "special_vision"
	RouteGeneralVision Route = "general_vision"
	RouteFinalize      Route = "finalize"
)

// Verdict names the transition taken after an assessment.
type Verdict string

const (
	VerdictAccept   Verdict = "accept"
	VerdictRetry    Verdict = "retry"
	VerdictTimedOut Verdict = "timed_out"
)

// ChooseTool picks the next tool from the current plan position. It is a
// pure function of the state: once every step has run the plan finalizes,
// otherwise the current step's tool decides the branch.
func ChooseTool(s AgentState) (Route, error) {
	if s.CurrentStep > s.MaxSteps {
		return RouteFinalize, nil
	}
	if s.CurrentStep < 1 || s.CurrentStep > len(s.PlanStructure) {
		return "", fmt.Errorf("plan step %d does not exist (plan has %d steps)", s.CurrentStep, len(s.PlanStructure))
	}
	switch tool := s.PlanStructure[s.CurrentStep-1].Tool; tool {
	case ToolSpecialVision:
		return RouteSpecialVision, nil
	case ToolGeneralVision:
		return RouteGeneralVision, nil
	default:
		return "", fmt.Errorf("plan step %d names unknown tool %q", s.CurrentStep, tool)
	}
}

// AfterVerdict decides whether the invocation terminates or replans. Pure
// over (AnswerFlag, PlanVersion, MaxPlans); this comparison is the only
// bound on re-planning cycles.
func AfterVerdict(s AgentState) Verdict {
	if s.AnswerFlag == 1 {
		return VerdictAccept
	}
	if s.PlanVersion > s.MaxPlans {
		return VerdictTimedOut
	}
	return VerdictRetry
}
