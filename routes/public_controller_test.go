package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rcoury/quick-feedback/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPublicForm(s *fakeStore, active bool) model.Form {
	f, _ := s.CreateForm(context.Background(), model.Form{Owner: "alice", Title: "Feedback", Active: active})
	s.questions[f.ID] = []model.Question{
		{ID: "q1", FormID: f.ID, Text: "Comments", Type: model.TypeText, Required: true, OrderIndex: 0},
		{ID: "q2", FormID: f.ID, Text: "Rate us", Type: model.TypeRating, Required: true, OrderIndex: 1},
		{ID: "q3", FormID: f.ID, Text: "Anything else?", Type: model.TypeText, OrderIndex: 2},
	}
	return f
}

func TestPublicGetForm(t *testing.T) {
	t.Run("active form rendered without owner", func(t *testing.T) {
		s := newFakeStore()
		f := setupPublicForm(s, true)

		w := httptest.NewRecorder()
		req := authedRequest("GET", "/api/forms/"+f.ID, "", nil)
		PublicGetForm(newTestApp(s))(w, withURLParam(req, "id", f.ID))

		require.Equal(t, http.StatusOK, w.Code)
		var got formPayload
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Empty(t, got.Owner)
		require.Len(t, got.Questions, 3)
		assert.Equal(t, "Comments", got.Questions[0].Text)
	})

	t.Run("inactive form is not found", func(t *testing.T) {
		s := newFakeStore()
		f := setupPublicForm(s, false)

		w := httptest.NewRecorder()
		req := authedRequest("GET", "/api/forms/"+f.ID, "", nil)
		PublicGetForm(newTestApp(s))(w, withURLParam(req, "id", f.ID))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPublicSubmitForm(t *testing.T) {
	t.Run("missing required answers reported together", func(t *testing.T) {
		s := newFakeStore()
		f := setupPublicForm(s, true)

		w := httptest.NewRecorder()
		req := authedRequest("POST", "/api/forms/"+f.ID+"/responses", "", map[string]any{
			"answers": map[string]string{"q1": "   "},
		})
		PublicSubmitForm(newTestApp(s))(w, withURLParam(req, "id", f.ID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "1, 2")
		assert.Empty(t, s.responses[f.ID])
	})

	t.Run("valid submission stores trimmed non-empty answers", func(t *testing.T) {
		s := newFakeStore()
		f := setupPublicForm(s, true)

		w := httptest.NewRecorder()
		req := authedRequest("POST", "/api/forms/"+f.ID+"/responses", "", map[string]any{
			"answers": map[string]string{"q1": "  great  ", "q2": "5", "q3": "   "},
		})
		PublicSubmitForm(newTestApp(s))(w, withURLParam(req, "id", f.ID))

		require.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, s.responses[f.ID], 1)
		answers := s.responses[f.ID][0].Answers
		require.Len(t, answers, 2)
		assert.Equal(t, "great", answers[0].Value)
		assert.Equal(t, "5", answers[1].Value)
	})

	t.Run("inactive form rejects submissions", func(t *testing.T) {
		s := newFakeStore()
		f := setupPublicForm(s, false)

		w := httptest.NewRecorder()
		req := authedRequest("POST", "/api/forms/"+f.ID+"/responses", "", map[string]any{
			"answers": map[string]string{"q1": "x", "q2": "3"},
		})
		PublicSubmitForm(newTestApp(s))(w, withURLParam(req, "id", f.ID))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestExportFormCsv(t *testing.T) {
	s := newFakeStore()
	f := setupPublicForm(s, true)
	resp, _ := s.CreateResponse(context.Background(), model.Response{FormID: f.ID, IP: "10.0.0.1"})
	s.CreateAnswers(context.Background(), resp.ID, []model.Answer{
		{QuestionID: "q1", Value: `He said "hi"`},
		{QuestionID: "q2", Value: "4"},
	})

	w := httptest.NewRecorder()
	req := authedRequest("GET", "/api/admin/forms/"+f.ID+"/export", "alice", nil)
	ExportFormCsv(newTestApp(s))(w, withURLParam(req, "id", f.ID))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	body := w.Body.String()
	assert.Contains(t, body, `"Submitted At","IP Address","Comments","Rate us","Anything else?"`)
	assert.Contains(t, body, `"He said ""hi""","4",""`)
}

func TestGetDashboard(t *testing.T) {
	s := newFakeStore()
	f := setupPublicForm(s, true)
	resp, _ := s.CreateResponse(context.Background(), model.Response{FormID: f.ID})
	s.CreateAnswers(context.Background(), resp.ID, []model.Answer{{QuestionID: "q2", Value: "4"}})

	w := httptest.NewRecorder()
	req := authedRequest("GET", "/api/admin/dashboard", "alice", nil)
	GetDashboard(newTestApp(s))(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.EqualValues(t, 1, got["form_count"])
	assert.EqualValues(t, 1, got["response_count"])
	assert.EqualValues(t, 4.0, got["average_rating"])
	assert.Len(t, got["daily"], 7)

	top := got["top_form"].(map[string]any)
	assert.Equal(t, f.ID, top["id"])
}
