package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rcoury/quick-feedback/app"
	"github.com/rcoury/quick-feedback/form"
	"github.com/rcoury/quick-feedback/httpx"
	"github.com/rcoury/quick-feedback/log"
	"github.com/rcoury/quick-feedback/model"
	"github.com/rcoury/quick-feedback/routes/middlewares"
)

type formPayload struct {
	model.Form
	Questions []model.Question `json:"questions"`
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := formPayload{}
		err := render.DecodeJSON(r.Body, &payload)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err = form.ValidateForSave(payload.Form, payload.Questions, form.CreateRules); err != nil {
			httpx.LogAppError(w, "create_form.validate", err)
			return
		}

		owner := middlewares.CurrentUser(r)
		payload.Owner = owner

		created, err := app.Store.CreateForm(r.Context(), payload.Form)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form", err)
			return
		}

		plan := form.BuildSavePlan(created, payload.Questions)
		if err = app.Store.ApplySavePlan(r.Context(), plan, owner); err != nil {
			httpx.LogInternalError(w, "db.insert_form.questions", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": created.ID,
		})
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.Store.ListForms(r.Context(), middlewares.CurrentUser(r))
		if err != nil {
			httpx.LogInternalError(w, "db.get_forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "id")

		f, err := app.Store.LoadForm(r.Context(), formID, middlewares.CurrentUser(r))
		if err != nil {
			httpx.LogAppError(w, "get_form", err)
			return
		}

		questions, err := app.Store.LoadQuestions(r.Context(), formID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_form.questions", err)
			return
		}

		render.JSON(w, r, formPayload{
			Form:      f,
			Questions: form.SortForDisplay(questions),
		})
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "id")
		owner := middlewares.CurrentUser(r)

		payload := formPayload{}
		err := render.DecodeJSON(r.Body, &payload)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		// the editor insists on two options per choice question
		if err = form.ValidateForSave(payload.Form, payload.Questions, form.EditRules); err != nil {
			httpx.LogAppError(w, "update_form.validate", err)
			return
		}

		// make sure the form exists and belongs to the caller before planning
		existing, err := app.Store.LoadForm(r.Context(), formID, owner)
		if err != nil {
			httpx.LogAppError(w, "update_form", err)
			return
		}

		payload.ID = existing.ID
		plan := form.BuildSavePlan(payload.Form, payload.Questions)
		if err = app.Store.ApplySavePlan(r.Context(), plan, owner); err != nil {
			httpx.LogAppError(w, "db.update_form", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func SetFormActive(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "id")

		var body struct {
			Active bool `json:"active"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = app.Store.SetFormActive(r.Context(), formID, middlewares.CurrentUser(r), body.Active)
		if err != nil {
			httpx.LogAppError(w, "db.update_form.active", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "id")

		err := app.Store.DeleteForm(r.Context(), formID, middlewares.CurrentUser(r))
		if err != nil {
			httpx.LogAppError(w, "db.delete_form", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "id")

		_, err := app.Store.LoadForm(r.Context(), formID, middlewares.CurrentUser(r))
		if err != nil {
			httpx.LogAppError(w, "get_responses", err)
			return
		}

		responses, err := app.Store.LoadFormResponses(r.Context(), formID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"responses": responses,
		})
	}
}
