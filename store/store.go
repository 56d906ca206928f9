// Package store is the persistence boundary of the application. Handlers
// depend on the Store interface only; the SQL implementation lives in
// sql.go. Missing rows and rows the caller does not own are both reported
// as ErrNotFound, so existence never leaks across owners.
package store

import (
	"context"
	"errors"

	"github.com/rcoury/quick-feedback/form"
	"github.com/rcoury/quick-feedback/model"
)

var ErrNotFound = errors.New("not found")

type Store interface {
	// CreateForm assigns an id and creation timestamp and persists the form.
	CreateForm(ctx context.Context, f model.Form) (model.Form, error)

	// LoadForm fetches a form scoped to its owner.
	LoadForm(ctx context.Context, id, owner string) (model.Form, error)

	// LoadActiveForm is the public path: no owner check, active forms only.
	LoadActiveForm(ctx context.Context, id string) (model.Form, error)

	// LoadQuestions returns a form's questions ordered by order index.
	LoadQuestions(ctx context.Context, formID string) ([]model.Question, error)

	// ApplySavePlan executes the full-replace save: update the form row,
	// delete all of its questions, insert the new list.
	ApplySavePlan(ctx context.Context, plan form.SavePlan, owner string) error

	SetFormActive(ctx context.Context, id, owner string, active bool) error
	DeleteForm(ctx context.Context, id, owner string) error

	// ListForms returns the owner's forms, each with its response count,
	// newest first.
	ListForms(ctx context.Context, owner string) ([]model.FormWithCount, error)

	// CreateResponse assigns an id and server timestamp and persists the
	// response row; answers are inserted separately by CreateAnswers.
	CreateResponse(ctx context.Context, r model.Response) (model.Response, error)
	CreateAnswers(ctx context.Context, responseID string, answers []model.Answer) error

	// Expanded reads for analytics and export.
	LoadFormResponses(ctx context.Context, formID string) ([]model.ResponseDetail, error)
	LoadOwnerResponses(ctx context.Context, owner string) ([]model.ResponseDetail, error)
}
