package scheduler

import "context"

// Job is a unit of work executed by the worker pool.
type Job interface {
	// Execute runs the job. Context should be respected for cancellation
	// and timeouts.
	Execute(ctx context.Context) error

	// Name identifies the job in logs and telemetry.
	Name() string
}
