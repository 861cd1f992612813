// Package workers runs the periodic background jobs of the server:
// deleting expired sessions and sweeping stale login-throttle records.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
