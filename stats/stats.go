// Package stats computes read-only summary figures from stored responses.
// All functions are pure: they take already-loaded response data and never
// touch the database.
package stats

import (
	"math"
	"strconv"
	"time"

	"github.com/rcoury/quick-feedback/model"
)

const dayFormat = "2006-01-02"

func ResponseCount(responses []model.ResponseDetail) int {
	return len(responses)
}

// AverageRating is the mean of every parseable rating answer across the
// given responses, rounded to one decimal. Unparseable values are
// discarded; an empty set yields 0 rather than an error.
func AverageRating(responses []model.ResponseDetail) float64 {
	var sum, n int
	for _, r := range responses {
		for _, a := range r.Answers {
			if a.QuestionType != model.TypeRating {
				continue
			}
			v, err := strconv.Atoi(a.Value)
			if err != nil {
				continue
			}
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}

// ResponsesSince counts responses submitted at or after the given instant.
func ResponsesSince(responses []model.ResponseDetail, since time.Time) (n int) {
	for _, r := range responses {
		if !r.SubmittedAt.Before(since) {
			n++
		}
	}
	return
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TrailingDailyCounts buckets responses by calendar date for the `days`
// days ending at now, inclusive, oldest first. Matching is by date label,
// not by rolling 24h window: the labels are what the dashboard and CSV
// consumers display.
func TrailingDailyCounts(responses []model.ResponseDetail, days int, now time.Time) []DailyCount {
	counts := make([]DailyCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(dayFormat)
		n := 0
		for _, r := range responses {
			if r.SubmittedAt.Format(dayFormat) == day {
				n++
			}
		}
		counts = append(counts, DailyCount{Date: day, Count: n})
	}
	return counts
}

// TopPerformingForm picks the form with the highest response count,
// scanning in the given order; ties keep the first seen. Returns nil for
// an empty list.
func TopPerformingForm(forms []model.FormWithCount) *model.FormWithCount {
	var top *model.FormWithCount
	for i := range forms {
		if top == nil || forms[i].ResponseCount > top.ResponseCount {
			top = &forms[i]
		}
	}
	return top
}
