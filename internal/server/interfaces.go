package server

import "context"

// Server defines the lifecycle of the transport server.
type Server interface {
	// RunServer serves requests until ctx is cancelled, then shuts down
	// gracefully. It returns early with an error if the server fails.
	RunServer(ctx context.Context) error
}
