package form

import (
	"testing"

	"github.com/rcoury/quick-feedback/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateForSave(t *testing.T) {
	choice := func(opts ...string) model.Question {
		return model.Question{ID: "q1", Text: "Pick one", Type: model.TypeMultipleChoice, Options: opts}
	}

	tests := []struct {
		name      string
		form      model.Form
		questions []model.Question
		rules     SaveRules
		wantErr   string
	}{
		{
			name:    "empty title fails before empty question list",
			form:    model.Form{Title: "   "},
			rules:   CreateRules,
			wantErr: "title required",
		},
		{
			name:    "no questions",
			form:    model.Form{Title: "Feedback"},
			rules:   CreateRules,
			wantErr: "at least one question required",
		},
		{
			name: "blank question text reported with 1-indexed number",
			form: model.Form{Title: "Feedback"},
			questions: []model.Question{
				{Text: "First", Type: model.TypeText, OrderIndex: 0},
				{Text: "  ", Type: model.TypeText, OrderIndex: 1},
			},
			rules:   CreateRules,
			wantErr: "question 2 text required",
		},
		{
			name:      "single option passes on the create path",
			form:      model.Form{Title: "Feedback"},
			questions: []model.Question{choice("Yes")},
			rules:     CreateRules,
		},
		{
			name:      "single option fails on the edit path",
			form:      model.Form{Title: "Feedback"},
			questions: []model.Question{choice("Yes")},
			rules:     EditRules,
			wantErr:   "question 1 needs options",
		},
		{
			name:      "whitespace options do not count",
			form:      model.Form{Title: "Feedback"},
			questions: []model.Question{choice("Yes", "   ")},
			rules:     EditRules,
			wantErr:   "question 1 needs options",
		},
		{
			name:      "two options pass on the edit path",
			form:      model.Form{Title: "Feedback"},
			questions: []model.Question{choice("Yes", "No")},
			rules:     EditRules,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForSave(tt.form, tt.questions, tt.rules)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateSubmission(t *testing.T) {
	questions := []model.Question{
		{ID: "q1", Text: "Comments", Type: model.TypeText, Required: true, OrderIndex: 0},
		{ID: "q2", Text: "Rate us", Type: model.TypeRating, Required: true, OrderIndex: 1},
		{ID: "q3", Text: "Optional", Type: model.TypeText, Required: false, OrderIndex: 2},
	}

	t.Run("whitespace-only text answer fails", func(t *testing.T) {
		err := ValidateSubmission(questions[:1], map[string]string{"q1": "   "})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1")
	})

	t.Run("rating value satisfies requirement", func(t *testing.T) {
		err := ValidateSubmission([]model.Question{questions[1]}, map[string]string{"q2": "3"})
		assert.NoError(t, err)
	})

	t.Run("falsy-looking rating value still counts", func(t *testing.T) {
		err := ValidateSubmission([]model.Question{questions[1]}, map[string]string{"q2": "0"})
		assert.NoError(t, err)
	})

	t.Run("collects all violations in question order", func(t *testing.T) {
		err := ValidateSubmission(questions, map[string]string{"q3": "fine"})
		require.Error(t, err)
		assert.Equal(t, "please answer required question(s): 1, 2", err.Error())
	})

	t.Run("skipped optional question is fine", func(t *testing.T) {
		err := ValidateSubmission(questions, map[string]string{"q1": "good", "q2": "5"})
		assert.NoError(t, err)
	})
}
