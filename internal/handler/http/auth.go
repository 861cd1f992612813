package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/render"
	"github.com/MKhiriev/go-shipy/internal/service"
	"github.com/MKhiriev/go-shipy/internal/validators"
)

func (h *Handler) signupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageSignup, http.StatusOK, nil)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	form, err := parseForm(w, r)
	if err != nil {
		log.Err(err).Msg("invalid form body")
		http.Error(w, ErrFormParsing.Error(), statusFromError(err))
		return
	}

	user, cookie, err := h.services.AuthService.Signup(r.Context(), form)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			h.render(w, r, pageSignup, render.FormStatus(r, statusFromError(err)), form)
			return
		}
		h.serverError(w, r, err)
		return
	}

	log.Debug().Int64("user_id", user.UserID).Msg("user signed up, redirecting home")

	h.applyCookie(w, r, cookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageLogin, http.StatusOK, nil)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	form, err := parseForm(w, r)
	if err != nil {
		log.Err(err).Msg("invalid form body")
		http.Error(w, ErrFormParsing.Error(), statusFromError(err))
		return
	}

	user, cookie, err := h.services.AuthService.Login(r.Context(), clientKey(r), form)
	if err != nil {
		// ErrThrottled and ErrInvalidCredentials share a status and a message
		if status := statusFromError(err); status < http.StatusInternalServerError {
			h.render(w, r, pageLogin, render.FormStatus(r, status), form)
			return
		}
		h.serverError(w, r, err)
		return
	}

	log.Debug().Int64("user_id", user.UserID).Msg("user logged in, redirecting home")

	h.applyCookie(w, r, cookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.services.AuthService.Logout(r.Context(), sessionToken(r))

	h.applyCookie(w, r, cookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// maxFormBytes caps the body of the credential forms.
const maxFormBytes = 64 << 10

func parseForm(w http.ResponseWriter, r *http.Request) (*validators.Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormParsing, err)
	}
	return validators.NewForm(r.PostForm), nil
}
