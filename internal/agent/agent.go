package agent

import (
	"context"
	"image"
	"time"

	"github.com/google/uuid"

	"iva/internal/logger"
	"iva/internal/memory"
	"iva/internal/metrics"
)

const DefaultMaxPlans = 2

// Deps are the long-lived collaborators an Agent is wired with, one per
// process. Adapters must tolerate concurrent read-only inference calls;
// the agent does not serialize access to them.
type Deps struct {
	Planner    TextCompletion
	Structurer PlanCompletion
	Assessor   AssessmentCompletion
	Specialist SpecialistVision
	Generalist GeneralistVision
	Store      memory.Store
}

type Agent struct {
	graph *Graph
	store memory.Store
}

func New(d Deps) *Agent {
	nodes := &Nodes{
		Planner:    d.Planner,
		Structurer: d.Structurer,
		Assessor:   d.Assessor,
		Specialist: d.Specialist,
		Generalist: d.Generalist,
	}
	return &Agent{graph: NewGraph(nodes), store: d.Store}
}

// InvokeConfig scopes one invocation: the identity keys its telemetry
// namespace, MaxPlans bounds replanning (DefaultMaxPlans when zero).
type InvokeConfig struct {
	Identity string
	MaxPlans int
}

// Invoke answers one query about one image. It returns the ordered
// per-node update records and the invocation timings. Adapter failures are
// not caught anywhere below; the whole call fails and no final result is
// produced.
func (a *Agent) Invoke(ctx context.Context, query string, img image.Image, cfg InvokeConfig) ([]StepUpdate, *metrics.InvocationMetrics, error) {
	maxPlans := cfg.MaxPlans
	if maxPlans <= 0 {
		maxPlans = DefaultMaxPlans
	}

	state := &AgentState{Task: query, Image: img, MaxPlans: maxPlans}
	ns := memory.Namespace{Identity: cfg.Identity, Kind: "memories"}
	mm := &metrics.InvocationMetrics{Identity: cfg.Identity, Start: time.Now()}

	var updates []StepUpdate
	err := a.graph.Run(ctx, state, mm, func(node Node, u Update) {
		record := StepUpdate{string(node): u.Fields()}
		updates = append(updates, record)
		if a.store == nil {
			return
		}
		// Telemetry is append-only and fire-and-forget; a failed write
		// must not fail the invocation.
		id := uuid.New().String()
		if perr := a.store.Put(ctx, ns, id, map[string]any{"memory": record}); perr != nil {
			logger.Printf("memory put failed for %s: %v", ns.Identity, perr)
		}
	})

	mm.Succeeded = err == nil
	mm.PlanVersion = state.PlanVersion
	mm.Finalize()
	if err != nil {
		return nil, mm, err
	}
	return updates, mm, nil
}
