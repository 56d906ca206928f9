package routes

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/rcoury/quick-feedback/app"
	"github.com/rcoury/quick-feedback/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	// public: render an active form and accept a submission
	api.Get("/forms/{id}", PublicGetForm(app))
	api.Post("/forms/{id}/responses", PublicSubmitForm(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Authenticated(app.TokenSecret))

		// CRUD forms
		r.Post("/forms", CreateForm(app))
		r.Get("/forms", ListForms(app))
		r.Get("/forms/{id}", GetForm(app))
		r.Put("/forms/{id}", UpdateForm(app))
		r.Patch("/forms/{id}/active", SetFormActive(app))
		r.Delete("/forms/{id}", DeleteForm(app))

		// analytics
		r.Get("/forms/{id}/responses", GetFormResponses(app))
		r.Get("/forms/{id}/stats", GetFormStats(app))
		r.Get("/forms/{id}/export", ExportFormCsv(app))
		r.Get("/dashboard", GetDashboard(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}
