package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/rcoury/quick-feedback/form"
	"github.com/rcoury/quick-feedback/model"
)

type sqlStore struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) Store {
	return &sqlStore{db}
}

func (s *sqlStore) CreateForm(ctx context.Context, f model.Form) (model.Form, error) {
	f.ID = uuid.Must(uuid.NewV4()).String()
	f.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO form (id, owner, title, description, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.Owner, f.Title, f.Description, f.Active, f.CreatedAt,
	)
	if err != nil {
		return model.Form{}, errors.Wrap(err, "insert form")
	}
	return f, nil
}

func (s *sqlStore) LoadForm(ctx context.Context, id, owner string) (model.Form, error) {
	return s.loadForm(ctx, `
		SELECT id, owner, title, description, active, created_at
		FROM form
		WHERE id = ? AND owner = ?`,
		id, owner,
	)
}

func (s *sqlStore) LoadActiveForm(ctx context.Context, id string) (model.Form, error) {
	return s.loadForm(ctx, `
		SELECT id, owner, title, description, active, created_at
		FROM form
		WHERE id = ? AND active = 1`,
		id,
	)
}

func (s *sqlStore) loadForm(ctx context.Context, query string, args ...any) (f model.Form, err error) {
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&f.ID, &f.Owner, &f.Title, &f.Description, &f.Active, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Form{}, ErrNotFound
	}
	if err != nil {
		return model.Form{}, errors.Wrap(err, "select form")
	}
	return f, nil
}

func (s *sqlStore) LoadQuestions(ctx context.Context, formID string) ([]model.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, form_id, text, type, options, required, order_index
		FROM question
		WHERE form_id = ?
		ORDER BY order_index`,
		formID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "select questions")
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		var opts string
		err = rows.Scan(&q.ID, &q.FormID, &q.Text, &q.Type, &opts, &q.Required, &q.OrderIndex)
		if err != nil {
			return nil, errors.Wrap(err, "scan question")
		}
		if opts != "" {
			if err = json.Unmarshal([]byte(opts), &q.Options); err != nil {
				return nil, errors.Wrap(err, "parse question options")
			}
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *sqlStore) ApplySavePlan(ctx context.Context, plan form.SavePlan, owner string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE form
		SET title = ?, description = ?, active = ?
		WHERE id = ? AND owner = ?`,
		plan.Form.Title, plan.Form.Description, plan.Form.Active,
		plan.Form.ID, owner,
	)
	if err != nil {
		return errors.Wrap(err, "update form")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update form verify")
	}
	if n < 1 {
		return ErrNotFound
	}

	// full replace: wipe and reinsert, no diffing against prior questions
	_, err = tx.ExecContext(ctx, `DELETE FROM question WHERE form_id = ?`, plan.Deletes)
	if err != nil {
		return errors.Wrap(err, "delete questions")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO question (id, form_id, text, type, options, required, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "insert questions prepare")
	}
	defer stmt.Close()

	for _, q := range plan.Inserts {
		opts, err := marshalOptions(q.Options)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx, q.ID, q.FormID, q.Text, q.Type, opts, q.Required, q.OrderIndex)
		if err != nil {
			return errors.Wrap(err, "insert question")
		}
	}

	return errors.Wrap(tx.Commit(), "commit save plan")
}

func marshalOptions(options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	opts, err := json.Marshal(options)
	if err != nil {
		return "", errors.Wrap(err, "marshal question options")
	}
	return string(opts), nil
}

func (s *sqlStore) SetFormActive(ctx context.Context, id, owner string, active bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE form SET active = ? WHERE id = ? AND owner = ?`,
		active, id, owner,
	)
	if err != nil {
		return errors.Wrap(err, "update form active")
	}
	return checkFound(res)
}

func (s *sqlStore) DeleteForm(ctx context.Context, id, owner string) error {
	// questions, responses and answers go with it (ON DELETE CASCADE)
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM form WHERE id = ? AND owner = ?`,
		id, owner,
	)
	if err != nil {
		return errors.Wrap(err, "delete form")
	}
	return checkFound(res)
}

func checkFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}

func (s *sqlStore) ListForms(ctx context.Context, owner string) ([]model.FormWithCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.owner, f.title, f.description, f.active, f.created_at,
			(SELECT COUNT(*) FROM response r WHERE r.form_id = f.id)
		FROM form f
		WHERE f.owner = ?
		ORDER BY f.created_at DESC`,
		owner,
	)
	if err != nil {
		return nil, errors.Wrap(err, "select forms")
	}
	defer rows.Close()

	forms := []model.FormWithCount{}
	for rows.Next() {
		var f model.FormWithCount
		err = rows.Scan(&f.ID, &f.Owner, &f.Title, &f.Description, &f.Active, &f.CreatedAt, &f.ResponseCount)
		if err != nil {
			return nil, errors.Wrap(err, "scan form")
		}
		forms = append(forms, f)
	}
	return forms, rows.Err()
}

func (s *sqlStore) CreateResponse(ctx context.Context, r model.Response) (model.Response, error) {
	r.ID = uuid.Must(uuid.NewV4()).String()
	r.SubmittedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO response (id, form_id, submitted_at, ip, user_agent)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.FormID, r.SubmittedAt, r.IP, r.UserAgent,
	)
	if err != nil {
		return model.Response{}, errors.Wrap(err, "insert response")
	}
	return r, nil
}

func (s *sqlStore) CreateAnswers(ctx context.Context, responseID string, answers []model.Answer) error {
	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO answer (id, response_id, question_id, value)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "insert answers prepare")
	}
	defer stmt.Close()

	for _, a := range answers {
		id := uuid.Must(uuid.NewV4()).String()
		_, err = stmt.ExecContext(ctx, id, responseID, a.QuestionID, a.Value)
		if err != nil {
			return errors.Wrap(err, "insert answer")
		}
	}
	return nil
}

const responseDetailQuery = `
	SELECT r.id, r.form_id, r.submitted_at, r.ip, r.user_agent,
		a.id, a.question_id, a.value,
		q.text, q.type, q.order_index
	FROM response r
	LEFT OUTER JOIN answer a ON (a.response_id = r.id)
	LEFT OUTER JOIN question q ON (q.id = a.question_id)`

func (s *sqlStore) LoadFormResponses(ctx context.Context, formID string) ([]model.ResponseDetail, error) {
	return s.loadResponses(ctx, responseDetailQuery+`
		WHERE r.form_id = ?
		ORDER BY r.submitted_at, r.id, q.order_index`,
		formID,
	)
}

func (s *sqlStore) LoadOwnerResponses(ctx context.Context, owner string) ([]model.ResponseDetail, error) {
	return s.loadResponses(ctx, responseDetailQuery+`
		INNER JOIN form f ON (f.id = r.form_id)
		WHERE f.owner = ?
		ORDER BY r.submitted_at, r.id, q.order_index`,
		owner,
	)
}

func (s *sqlStore) loadResponses(ctx context.Context, query string, args ...any) ([]model.ResponseDetail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "select responses")
	}
	defer rows.Close()

	responses := []model.ResponseDetail{}
	for rows.Next() {
		var r model.Response
		var answerID, questionID, value, qText, qType sql.NullString
		var qOrder sql.NullInt64
		err = rows.Scan(
			&r.ID, &r.FormID, &r.SubmittedAt, &r.IP, &r.UserAgent,
			&answerID, &questionID, &value,
			&qText, &qType, &qOrder,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan response")
		}

		lastIdx := len(responses) - 1
		if lastIdx < 0 || responses[lastIdx].ID != r.ID {
			responses = append(responses, model.ResponseDetail{Response: r})
			lastIdx++
		}
		if answerID.Valid {
			responses[lastIdx].Answers = append(responses[lastIdx].Answers, model.AnswerDetail{
				Answer: model.Answer{
					ID:         answerID.String,
					ResponseID: r.ID,
					QuestionID: questionID.String,
					Value:      value.String,
				},
				QuestionText: qText.String,
				QuestionType: qType.String,
				OrderIndex:   int(qOrder.Int64),
			})
		}
	}
	return responses, rows.Err()
}
