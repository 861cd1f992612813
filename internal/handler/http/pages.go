package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/render"
	"github.com/MKhiriev/go-shipy/internal/validators"
)

// docPages maps documentation paths to their templates. Each path is also
// served with a trailing slash.
var docPages = map[string]string{
	"/docs/manifesto":            "docs/manifesto.html",
	"/docs/tutorials":            "tutorials/index.html",
	"/docs/tutorials/todo":       "tutorials/todo.html",
	"/docs/get-started":          "docs/get-started.html",
	"/docs/get-started/install":  "docs/get-started/install.html",
	"/docs/guides/htmx-patterns": "docs/guides/htmx-patterns.html",
	"/docs/contributing":         "docs/contributing.html",
}

const (
	pageHome   = "home/index.html"
	pageSignup = "users/new.html"
	pageLogin  = "sessions/login.html"
	pageSecret = "secret.html"
	pageError  = "error.html"
)

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageHome, http.StatusOK, nil)
}

func (h *Handler) secret(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageSecret, http.StatusOK, nil)
}

// page serves a template that needs nothing but the common data.
func (h *Handler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, name, http.StatusOK, nil)
	}
}

// publicFiles serves embedded assets and hides directory listings.
func (h *Handler) publicFiles() http.Handler {
	files := http.StripPrefix("/public/", h.static)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// render fills in the data every page expects and writes the page.
// Render failures become a plain 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, status int, form *validators.Form) {
	data := render.Data{Form: form}

	user, ok, err := h.currentUser(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if ok {
		data.User = &user
	}
	if h.services.AppInfoService != nil {
		data.Version = h.services.AppInfoService.GetBuildInfo(r.Context()).BuildVersion
	}

	if err = h.renderer.Render(w, r, name, status, data); err != nil {
		logger.FromRequest(r).Err(err).Str("template", name).Msg("error rendering page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// serverError renders the generic error page. The cause is only logged.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Err(err).Msg("request failed")

	if err = h.renderer.Render(w, r, pageError, http.StatusInternalServerError, render.Data{}); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
