package form

import (
	"fmt"
	"strings"

	"github.com/rcoury/quick-feedback/model"
)

// SaveRules carries the per-path knobs for form validation. The create
// page historically accepted a single option on a multiple choice
// question while the editor insists on two; both rule sets are kept
// rather than silently unified.
type SaveRules struct {
	MinChoiceOptions int
}

var (
	CreateRules = SaveRules{MinChoiceOptions: 1}
	EditRules   = SaveRules{MinChoiceOptions: 2}
)

// ValidateForSave checks a form and its question list before any
// persistence call is made. The first violation wins; question numbers in
// messages are 1-indexed in display order.
func ValidateForSave(f model.Form, questions []model.Question, rules SaveRules) error {
	if strings.TrimSpace(f.Title) == "" {
		return validationErrorf("title required")
	}
	if len(questions) == 0 {
		return validationErrorf("at least one question required")
	}
	for i, q := range SortForDisplay(questions) {
		if strings.TrimSpace(q.Text) == "" {
			return validationErrorf(fmt.Sprintf("question %d text required", i+1))
		}
		if q.Type == model.TypeMultipleChoice && countNonEmpty(q.Options) < rules.MinChoiceOptions {
			return validationErrorf(fmt.Sprintf("question %d needs options", i+1))
		}
	}
	return nil
}

func countNonEmpty(options []string) (n int) {
	for _, opt := range options {
		if strings.TrimSpace(opt) != "" {
			n++
		}
	}
	return
}

// ValidateSubmission checks a respondent's answer map against the form's
// questions. All violations are collected before reporting: the error
// message lists every missing required question by its 1-indexed display
// number.
func ValidateSubmission(questions []model.Question, answers map[string]string) error {
	var missing []string
	for i, q := range SortForDisplay(questions) {
		if !q.Required {
			continue
		}
		value, ok := answers[q.ID]
		if !ok {
			missing = append(missing, fmt.Sprint(i+1))
			continue
		}
		// Text answers must have substance; rating and choice values are
		// canonical tokens, any non-empty value counts.
		if q.Type == model.TypeText {
			value = strings.TrimSpace(value)
		}
		if value == "" {
			missing = append(missing, fmt.Sprint(i+1))
		}
	}
	if len(missing) > 0 {
		return validationErrorf("please answer required question(s): " + strings.Join(missing, ", "))
	}
	return nil
}
