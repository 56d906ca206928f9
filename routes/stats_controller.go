package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rcoury/quick-feedback/app"
	"github.com/rcoury/quick-feedback/httpx"
	"github.com/rcoury/quick-feedback/routes/middlewares"
	"github.com/rcoury/quick-feedback/stats"
)

const trendDays = 7

func GetFormStats(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "id")

		_, err := app.Store.LoadForm(r.Context(), formID, middlewares.CurrentUser(r))
		if err != nil {
			httpx.LogAppError(w, "get_stats", err)
			return
		}

		responses, err := app.Store.LoadFormResponses(r.Context(), formID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_stats.responses", err)
			return
		}

		now := time.Now()
		render.JSON(w, r, map[string]any{
			"response_count": stats.ResponseCount(responses),
			"average_rating": stats.AverageRating(responses),
			"this_week":      stats.ResponsesSince(responses, now.AddDate(0, 0, -7)),
			"this_month":     stats.ResponsesSince(responses, now.AddDate(0, -1, 0)),
			"daily":          stats.TrailingDailyCounts(responses, trendDays, now),
		})
	}
}

func GetDashboard(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := middlewares.CurrentUser(r)

		forms, err := app.Store.ListForms(r.Context(), owner)
		if err != nil {
			httpx.LogInternalError(w, "db.dashboard.forms", err)
			return
		}

		responses, err := app.Store.LoadOwnerResponses(r.Context(), owner)
		if err != nil {
			httpx.LogInternalError(w, "db.dashboard.responses", err)
			return
		}

		now := time.Now()
		render.JSON(w, r, map[string]any{
			"form_count":     len(forms),
			"response_count": stats.ResponseCount(responses),
			"average_rating": stats.AverageRating(responses),
			"this_week":      stats.ResponsesSince(responses, now.AddDate(0, 0, -7)),
			"this_month":     stats.ResponsesSince(responses, now.AddDate(0, -1, 0)),
			"daily":          stats.TrailingDailyCounts(responses, trendDays, now),
			"top_form":       stats.TopPerformingForm(forms),
		})
	}
}

func ExportFormCsv(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "id")

		f, err := app.Store.LoadForm(r.Context(), formID, middlewares.CurrentUser(r))
		if err != nil {
			httpx.LogAppError(w, "export_csv", err)
			return
		}

		questions, err := app.Store.LoadQuestions(r.Context(), formID)
		if err != nil {
			httpx.LogInternalError(w, "db.export_csv.questions", err)
			return
		}

		responses, err := app.Store.LoadFormResponses(r.Context(), formID)
		if err != nil {
			httpx.LogInternalError(w, "db.export_csv.responses", err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-responses.csv"`, f.ID))
		w.Write([]byte(stats.ToCsv(responses, questions)))
	}
}
