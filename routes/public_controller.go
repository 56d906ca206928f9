package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rcoury/quick-feedback/app"
	"github.com/rcoury/quick-feedback/form"
	"github.com/rcoury/quick-feedback/httpx"
	"github.com/rcoury/quick-feedback/log"
	"github.com/rcoury/quick-feedback/model"
)

// PublicGetForm renders an active form for respondents. Inactive and
// missing forms look identical from the outside.
func PublicGetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "id")

		f, err := app.Store.LoadActiveForm(r.Context(), formID)
		if err != nil {
			httpx.LogAppError(w, "public.get_form", err)
			return
		}

		questions, err := app.Store.LoadQuestions(r.Context(), formID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_form.questions", err)
			return
		}

		// respondents never see the owner
		f.Owner = ""
		render.JSON(w, r, formPayload{
			Form:      f,
			Questions: form.SortForDisplay(questions),
		})
	}
}

type submissionPayload struct {
	// question id -> raw answer value
	Answers map[string]string `json:"answers"`
}

func PublicSubmitForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "id")

		payload := submissionPayload{}
		err := render.DecodeJSON(r.Body, &payload)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		f, err := app.Store.LoadActiveForm(r.Context(), formID)
		if err != nil {
			httpx.LogAppError(w, "public.submit", err)
			return
		}

		questions, err := app.Store.LoadQuestions(r.Context(), f.ID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_form.questions", err)
			return
		}

		// all violations are reported at once, before anything is written
		if err = form.ValidateSubmission(questions, payload.Answers); err != nil {
			httpx.LogAppError(w, "public.submit.validate", err)
			return
		}

		answers := form.AssembleAnswers(questions, payload.Answers)

		response, err := app.Store.CreateResponse(r.Context(), model.Response{
			FormID:    f.ID,
			IP:        strings.Split(r.RemoteAddr, ":")[0],
			UserAgent: r.UserAgent(),
		})
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response", err)
			return
		}

		if err = app.Store.CreateAnswers(r.Context(), response.ID, answers); err != nil {
			httpx.LogInternalError(w, "db.insert_response.answers", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": response.ID,
		})
	}
}
