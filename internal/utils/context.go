// Package utils provides general-purpose helpers used across the application:
// type-safe context keys, the request-scoped principal, session token
// signing and parsing, JSON response writing and ID generation.
package utils

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-shipy/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey is the key under which the request [Principal] is stored.
var PrincipalCtxKey = contextKey("principal")

// ResolveFunc loads the user behind the current request.
// ok is false for anonymous requests.
type ResolveFunc func(ctx context.Context) (user models.User, ok bool, err error)

// Principal memoizes the current user of a single request.
//
// The resolver runs at most once no matter how many times User is called,
// so a request performs at most one session and one user lookup.
type Principal struct {
	once    sync.Once
	resolve ResolveFunc

	user models.User
	ok   bool
	err  error
}

// NewPrincipal returns a Principal that resolves lazily with fn.
func NewPrincipal(fn ResolveFunc) *Principal {
	return &Principal{resolve: fn}
}

// AnonymousPrincipal returns an already resolved Principal with no user.
func AnonymousPrincipal() *Principal {
	p := &Principal{}
	p.once.Do(func() {})
	return p
}

// User returns the memoized user, running the resolver on first use.
func (p *Principal) User(ctx context.Context) (models.User, bool, error) {
	p.once.Do(func() {
		if p.resolve == nil {
			return
		}
		p.user, p.ok, p.err = p.resolve(ctx)
	})
	return p.user, p.ok, p.err
}

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, p)
}

// PrincipalFromContext retrieves the Principal stored by [WithPrincipal].
//
// Returns ok == false when the value is missing or has an unexpected type.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(PrincipalCtxKey).(*Principal)
	return p, ok && p != nil
}

// CurrentUser is a shortcut for PrincipalFromContext followed by User.
// A context without a principal is treated as anonymous.
func CurrentUser(ctx context.Context) (models.User, bool, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return models.User{}, false, nil
	}
	return p.User(ctx)
}
