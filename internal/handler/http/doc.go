// Package http implements the HTML front of the application.
//
// It wires routes, page handlers and middleware. Every request gets a trace
// ID, a request-scoped logger and a lazily resolved principal before it
// reaches a handler; pages behind requireUser redirect anonymous visitors
// to the login form.
package http
