package routes

import (
	"context"
	"fmt"
	"time"

	"github.com/rcoury/quick-feedback/form"
	"github.com/rcoury/quick-feedback/model"
	"github.com/rcoury/quick-feedback/store"
)

// fakeStore is an in-memory Store for controller tests.
type fakeStore struct {
	forms     map[string]model.Form
	questions map[string][]model.Question
	responses map[string][]model.ResponseDetail
	nextID    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		forms:     map[string]model.Form{},
		questions: map[string][]model.Question{},
		responses: map[string][]model.ResponseDetail{},
	}
}

func (s *fakeStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *fakeStore) CreateForm(ctx context.Context, f model.Form) (model.Form, error) {
	f.ID = s.id("form")
	f.CreatedAt = time.Now()
	s.forms[f.ID] = f
	return f, nil
}

func (s *fakeStore) LoadForm(ctx context.Context, id, owner string) (model.Form, error) {
	f, ok := s.forms[id]
	if !ok || f.Owner != owner {
		return model.Form{}, store.ErrNotFound
	}
	return f, nil
}

func (s *fakeStore) LoadActiveForm(ctx context.Context, id string) (model.Form, error) {
	f, ok := s.forms[id]
	if !ok || !f.Active {
		return model.Form{}, store.ErrNotFound
	}
	return f, nil
}

func (s *fakeStore) LoadQuestions(ctx context.Context, formID string) ([]model.Question, error) {
	return s.questions[formID], nil
}

func (s *fakeStore) ApplySavePlan(ctx context.Context, plan form.SavePlan, owner string) error {
	f, ok := s.forms[plan.Form.ID]
	if !ok || f.Owner != owner {
		return store.ErrNotFound
	}
	f.Title = plan.Form.Title
	f.Description = plan.Form.Description
	f.Active = plan.Form.Active
	s.forms[f.ID] = f
	s.questions[plan.Deletes] = plan.Inserts
	return nil
}

func (s *fakeStore) SetFormActive(ctx context.Context, id, owner string, active bool) error {
	f, ok := s.forms[id]
	if !ok || f.Owner != owner {
		return store.ErrNotFound
	}
	f.Active = active
	s.forms[id] = f
	return nil
}

func (s *fakeStore) DeleteForm(ctx context.Context, id, owner string) error {
	f, ok := s.forms[id]
	if !ok || f.Owner != owner {
		return store.ErrNotFound
	}
	delete(s.forms, id)
	delete(s.questions, id)
	delete(s.responses, id)
	return nil
}

func (s *fakeStore) ListForms(ctx context.Context, owner string) ([]model.FormWithCount, error) {
	forms := []model.FormWithCount{}
	for _, f := range s.forms {
		if f.Owner != owner {
			continue
		}
		forms = append(forms, model.FormWithCount{
			Form:          f,
			ResponseCount: len(s.responses[f.ID]),
		})
	}
	return forms, nil
}

func (s *fakeStore) CreateResponse(ctx context.Context, r model.Response) (model.Response, error) {
	r.ID = s.id("response")
	r.SubmittedAt = time.Now()
	s.responses[r.FormID] = append(s.responses[r.FormID], model.ResponseDetail{Response: r})
	return r, nil
}

func (s *fakeStore) CreateAnswers(ctx context.Context, responseID string, answers []model.Answer) error {
	for formID, responses := range s.responses {
		for i, r := range responses {
			if r.ID != responseID {
				continue
			}
			byID := map[string]model.Question{}
			for _, q := range s.questions[formID] {
				byID[q.ID] = q
			}
			for _, a := range answers {
				q := byID[a.QuestionID]
				r.Answers = append(r.Answers, model.AnswerDetail{
					Answer:       model.Answer{ResponseID: responseID, QuestionID: a.QuestionID, Value: a.Value},
					QuestionText: q.Text,
					QuestionType: q.Type,
					OrderIndex:   q.OrderIndex,
				})
			}
			s.responses[formID][i] = r
		}
	}
	return nil
}

func (s *fakeStore) LoadFormResponses(ctx context.Context, formID string) ([]model.ResponseDetail, error) {
	return s.responses[formID], nil
}

func (s *fakeStore) LoadOwnerResponses(ctx context.Context, owner string) ([]model.ResponseDetail, error) {
	all := []model.ResponseDetail{}
	for id, f := range s.forms {
		if f.Owner == owner {
			all = append(all, s.responses[id]...)
		}
	}
	return all, nil
}
