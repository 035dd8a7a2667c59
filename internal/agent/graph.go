package agent

import (
	"context"
	"fmt"
	"time"

	"iva/internal/metrics"
)

// Node names the states of the control loop's finite-state machine.
type Node string

const (
	NodePlanning      Node = "planning"
	NodeStructurePlan Node = "structure_plan"
	NodeRouting       Node = "routing"
	NodeSpecialVision Node = "special_vision"
	NodeGeneralVision Node = "general_vision"
	NodeAssessment    Node = "assessment"
	NodeResponse      Node = "response"
	nodeEnd           Node = "end"
)

// StepUpdate is one surfaced node visit: node name mapped to the fields it
// produced. Suitable for direct display or logging.
type StepUpdate map[string]map[string]any

type handler func(ctx context.Context, s AgentState) (Update, error)

// Graph is the control loop driver: a dispatch table from node to handler
// plus the transition function. Nodes never call each other; all data flows
// through the state record the driver owns.
type Graph struct {
	handlers map[Node]handler
}

func NewGraph(n *Nodes) *Graph {
	return &Graph{handlers: map[Node]handler{
		NodePlanning:      n.PlanNode,
		NodeStructurePlan: n.StructurePlanNode,
		NodeRouting:       n.RoutingNode,
		NodeSpecialVision: n.SpecialVisionNode,
		NodeGeneralVision: n.GeneralVisionNode,
		NodeAssessment:    n.AssessmentNode,
		NodeResponse:      n.RespondNode,
	}}
}

// next computes the successor state. The only conditional transitions are
// out of routing (tool choice or finalize) and out of assessment (accept,
// timeout or retry); everything else is a fixed edge.
func (g *Graph) next(node Node, s AgentState) (Node, error) {
	switch node {
	case NodePlanning:
		return NodeStructurePlan, nil
	case NodeStructurePlan:
		return NodeRouting, nil
	case NodeRouting:
		route, err := ChooseTool(s)
		if err != nil {
			return "", err
		}
		switch route {
		case RouteSpecialVision:
			return NodeSpecialVision, nil
		case RouteGeneralVision:
			return NodeGeneralVision, nil
		default:
			return NodeAssessment, nil
		}
	case NodeSpecialVision, NodeGeneralVision:
		return NodeRouting, nil
	case NodeAssessment:
		switch AfterVerdict(s) {
		case VerdictRetry:
			return NodePlanning, nil
		default:
			return NodeResponse, nil
		}
	case NodeResponse:
		return nodeEnd, nil
	default:
		return "", fmt.Errorf("no transition defined for node %q", node)
	}
}

// Run drives the state machine from planning to the terminal node. Every
// node visit is reported through observe after its update has been merged.
// Termination is guaranteed: PlanVersion strictly increases on each
// planning visit and is bounded by MaxPlans, and step progression within
// one plan is bounded by MaxSteps.
func (g *Graph) Run(ctx context.Context, s *AgentState, mm *metrics.InvocationMetrics, observe func(node Node, u Update)) error {
	node := NodePlanning
	for node != nodeEnd {
		if err := ctx.Err(); err != nil {
			return err
		}

		nm := metrics.NodeMetrics{Node: string(node), Start: time.Now()}
		update, err := g.handlers[node](ctx, *s)
		nm.End = time.Now()
		nm.Success = err == nil
		if err != nil {
			nm.Err = err.Error()
		}
		nm.Finalize()
		if mm != nil {
			mm.Nodes = append(mm.Nodes, nm)
		}
		if err != nil {
			return fmt.Errorf("node %s: %w", node, err)
		}

		update.Apply(s)
		if observe != nil {
			observe(node, update)
		}

		next, err := g.next(node, *s)
		if err != nil {
			return fmt.Errorf("after node %s: %w", node, err)
		}
		node = next
	}
	return nil
}
