package form

import (
	"strings"

	"github.com/gofrs/uuid"
	"github.com/rcoury/quick-feedback/model"
)

// AssembleAnswers turns an in-progress answer map (question id -> raw
// value) into the rows to persist under a new response. Empty values are
// dropped entirely; text answers that trim to empty are dropped too, so no
// answer row is ever written for a skipped optional question. Stored
// values are always trimmed.
func AssembleAnswers(questions []model.Question, values map[string]string) []model.Answer {
	var answers []model.Answer
	for _, q := range SortForDisplay(questions) {
		raw, ok := values[q.ID]
		if !ok || raw == "" {
			continue
		}
		trimmed := strings.TrimSpace(raw)
		if q.Type == model.TypeText && trimmed == "" {
			continue
		}
		answers = append(answers, model.Answer{
			QuestionID: q.ID,
			Value:      trimmed,
		})
	}
	return answers
}

// SavePlan is the full-replace plan for persisting an edited form: update
// the form row, delete every existing question, insert the new list. Prior
// question identities are not preserved across an edit; the public
// renderer always re-fetches, so in-flight links keep working.
type SavePlan struct {
	Form    model.Form
	Deletes string // form id whose questions are wiped
	Inserts []model.Question
}

// BuildSavePlan validates nothing itself; callers run ValidateForSave
// first. Inserted questions get fresh ids and dense order indices in
// display order.
func BuildSavePlan(f model.Form, questions []model.Question) SavePlan {
	inserts := Renumber(SortForDisplay(questions))
	for i := range inserts {
		inserts[i].ID = uuid.Must(uuid.NewV4()).String()
		inserts[i].FormID = f.ID
		if inserts[i].Type != model.TypeMultipleChoice {
			inserts[i].Options = nil
		}
	}
	return SavePlan{
		Form:    f,
		Deletes: f.ID,
		Inserts: inserts,
	}
}
