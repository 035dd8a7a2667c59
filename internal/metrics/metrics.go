package metrics

import "time"

type NodeMetrics struct {
	Node       string    `json:"node"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	DurationMs int64     `json:"duration_ms"`
	Success    bool      `json:"success"`
	Err        string    `json:"err,omitempty"`
}

type InvocationMetrics struct {
	Identity    string        `json:"identity"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	DurationMs  int64         `json:"duration_ms"`
	Succeeded   bool          `json:"succeeded"`
	PlanVersion int           `json:"plan_version"`
	Nodes       []NodeMetrics `json:"nodes"`
}

// Compute derived fields for a node visit.
func (n *NodeMetrics) Finalize() {
	n.DurationMs = n.End.Sub(n.Start).Milliseconds()
}

// Compute derived fields for the whole invocation.
func (m *InvocationMetrics) Finalize() {
	m.End = time.Now()
	m.DurationMs = m.End.Sub(m.Start).Milliseconds()
}
