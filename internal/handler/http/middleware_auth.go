package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/service"
	"github.com/MKhiriev/go-shipy/internal/utils"
	"github.com/MKhiriev/go-shipy/models"
)

// withPrincipal attaches a request-scoped [utils.Principal] and resolves it
// right away. Handlers further down read the cached result and never touch
// the session store again. A storage failure ends the request with 500.
func (h *Handler) withPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)

		principal := utils.NewPrincipal(func(ctx context.Context) (models.User, bool, error) {
			return h.services.PrincipalService.CurrentUser(ctx, token)
		})
		ctx := utils.WithPrincipal(r.Context(), principal)
		r = r.WithContext(ctx)

		if _, _, err := principal.User(ctx); err != nil {
			logger.FromRequest(r).Err(err).Msg("error resolving current user")
			h.serverError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireUser redirects anonymous requests to the login page.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok, err := h.currentUser(r)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		if !ok {
			logger.FromRequest(r).Debug().Err(service.ErrUnauthorized).Str("uri", r.RequestURI).Msg("redirecting to login")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// currentUser reads the principal cached by withPrincipal. Without it the
// user is resolved directly for this call only.
func (h *Handler) currentUser(r *http.Request) (models.User, bool, error) {
	if principal, ok := utils.PrincipalFromContext(r.Context()); ok {
		return principal.User(r.Context())
	}
	return h.services.PrincipalService.CurrentUser(r.Context(), sessionToken(r))
}
