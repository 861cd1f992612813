// Package server runs the HTTP server and shuts it down gracefully when
// the run context is cancelled.
package server
