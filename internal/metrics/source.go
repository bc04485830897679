package metrics

import "context"

// Source produces a fresh Snapshot each time it is asked.
// Implementations are called from a single goroutine and need no locking.
type Source interface {
	Sample(ctx context.Context) (Snapshot, error)
}
