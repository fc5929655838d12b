package audit

import "context"

// Recorder persists audit entries best-effort; failures are logged,
// never propagated to the mutating request.
type Recorder interface {
	Record(ctx context.Context, entry Log)
	List(ctx context.Context, limit, offset int) ([]LogResponse, error)
}
