package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	if h.cfg.TrustForwardedHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(h.withTraceID)
	router.Use(middleware.Recoverer)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}
	router.Use(middleware.Compress(5, "text/html", "text/css", "image/svg+xml", "application/json"))
	router.Use(h.withPrincipal)
	router.Use(h.withLogging)

	router.Get("/", h.home)

	router.Get("/signup", h.signupForm)
	router.Post("/signup", h.signup)
	router.Get("/login", h.loginForm)
	router.Post("/login", h.login)
	router.Post("/logout", h.logout)

	// routes for signed-in users
	router.Group(func(r chi.Router) {
		r.Use(h.requireUser)
		r.Get("/secret", h.secret)
	})

	for path, name := range docPages {
		router.Get(path, h.page(name))
		router.Get(path+"/", h.page(name))
	}

	router.Get("/api/version", h.getServerVersion)
	router.Get("/public/*", h.publicFiles().ServeHTTP)

	router.MethodNotAllowed(h.methodNotAllowed)

	return router
}
