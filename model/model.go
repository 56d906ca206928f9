package model

import "time"

// Question types accepted by the form builder.
const (
	TypeText           = "text"
	TypeMultipleChoice = "multiple_choice"
	TypeRating         = "rating"
)

type Form struct {
	ID          string    `json:"id,omitempty"`
	Owner       string    `json:"owner,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type Question struct {
	ID         string   `json:"id,omitempty"`
	FormID     string   `json:"form_id,omitempty"`
	Text       string   `json:"text"`
	Type       string   `json:"type"`
	Options    []string `json:"options,omitempty"`
	Required   bool     `json:"required"`
	OrderIndex int      `json:"order_index"`
}

type Response struct {
	ID          string    `json:"id"`
	FormID      string    `json:"form_id"`
	SubmittedAt time.Time `json:"submitted_at"`
	IP          string    `json:"ip,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
}

type Answer struct {
	ID         string `json:"id,omitempty"`
	ResponseID string `json:"response_id,omitempty"`
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

// AnswerDetail is an answer expanded with the question it was given for,
// as read back for analytics and export.
type AnswerDetail struct {
	Answer
	QuestionText string `json:"question_text"`
	QuestionType string `json:"question_type"`
	OrderIndex   int    `json:"order_index"`
}

type ResponseDetail struct {
	Response
	Answers []AnswerDetail `json:"answers"`
}

// FormWithCount pairs a form with its response count, for list views and
// the dashboard's top form scan.
type FormWithCount struct {
	Form
	ResponseCount int `json:"response_count"`
}
