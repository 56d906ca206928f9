package form

import (
	"sort"

	"github.com/rcoury/quick-feedback/model"
)

// Move directions for MoveQuestion.
const (
	MoveUp   = -1
	MoveDown = +1
)

// AddQuestion appends a blank text question at the end of the list.
// The required default differs by call site: the create page seeds
// questions with required=true, the inline editor adds them with
// required=false.
func AddQuestion(questions []model.Question, formID string, required bool) []model.Question {
	return append(questions, model.Question{
		FormID:     formID,
		Type:       model.TypeText,
		Required:   required,
		OrderIndex: len(questions),
	})
}

// RemoveQuestion drops the question with the given id and renumbers the
// remaining ones to a dense 0..N-1 sequence. Unknown ids are a no-op.
func RemoveQuestion(questions []model.Question, id string) []model.Question {
	kept := questions[:0]
	for _, q := range questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	return Renumber(kept)
}

// MoveQuestion swaps the target question with its immediate neighbor in
// the given direction. Moving past either end of the list is a no-op.
func MoveQuestion(questions []model.Question, id string, direction int) []model.Question {
	sorted := SortForDisplay(questions)
	for i, q := range sorted {
		if q.ID != id {
			continue
		}
		j := i + direction
		if j < 0 || j >= len(sorted) {
			return questions
		}
		sorted[i], sorted[j] = sorted[j], sorted[i]
		return Renumber(sorted)
	}
	return questions
}

// Renumber reassigns order indices 0..N-1 in the list's current order.
func Renumber(questions []model.Question) []model.Question {
	for i := range questions {
		questions[i].OrderIndex = i
	}
	return questions
}

// SortForDisplay returns a fresh copy sorted ascending by order index.
// The editor, the preview and the public renderer all go through this, so
// they agree on ordering for the same stored state.
func SortForDisplay(questions []model.Question) []model.Question {
	sorted := make([]model.Question, len(questions))
	copy(sorted, questions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})
	return sorted
}
