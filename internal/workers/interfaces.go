// Package workers provides abstractions for managing and running
// background workers in the client application.
// It defines the Worker interface and a Workers aggregate that allows
// running and stopping multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker's execution. Implementations are expected to spawn
// their goroutines internally and return immediately. Stop requests a
// shutdown and blocks until the worker's goroutines have exited. Stop is
// safe to call more than once and safe to call before Run.
type Worker interface {
	Run()
	Stop()
}

// Pinger probes the remote document store for reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
