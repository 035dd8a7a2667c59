package memory

import "context"

// Namespace keys a set of records: one identity per caller, one kind per
// record family (the agent writes under kind "memories").
type Namespace struct {
	Identity string
	Kind     string
}

// Entry is one stored record.
type Entry struct {
	ID     string
	Record map[string]any
}

// Store is an append-only sink for per-node telemetry records. Writes are
// fire-and-forget from the loop's perspective; entries are keyed for later
// retrieval by identity.
type Store interface {
	Put(ctx context.Context, ns Namespace, id string, record map[string]any) error
	List(ctx context.Context, ns Namespace) ([]Entry, error)
}
