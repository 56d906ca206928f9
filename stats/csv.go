package stats

import (
	"strings"
	"time"

	"github.com/rcoury/quick-feedback/form"
	"github.com/rcoury/quick-feedback/model"
)

// Export metadata columns, always first in the header row.
var csvMetaColumns = []string{"Submitted At", "IP Address"}

// ToCsv renders responses as CSV: the header carries the metadata columns
// followed by question texts in display order, then one row per response
// with an empty string for unanswered questions. Every field is quoted
// with internal quotes doubled, whether or not it contains a delimiter, so
// output is deterministic. (encoding/csv only quotes on demand, which is
// why the quoting is done by hand here.)
func ToCsv(responses []model.ResponseDetail, questions []model.Question) string {
	ordered := form.SortForDisplay(questions)

	var b strings.Builder
	writeCsvRow(&b, csvHeader(ordered))
	for _, r := range responses {
		byQuestion := make(map[string]string, len(r.Answers))
		for _, a := range r.Answers {
			byQuestion[a.QuestionID] = a.Value
		}

		row := []string{
			r.SubmittedAt.Format(time.RFC3339),
			r.IP,
		}
		for _, q := range ordered {
			row = append(row, byQuestion[q.ID])
		}
		writeCsvRow(&b, row)
	}
	return b.String()
}

func csvHeader(ordered []model.Question) []string {
	header := append([]string{}, csvMetaColumns...)
	for _, q := range ordered {
		header = append(header, q.Text)
	}
	return header
}

func writeCsvRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}
