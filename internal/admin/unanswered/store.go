// Package unanswered persists escalated questions and supports the staff
// answer workflow.
package unanswered

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	apperrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/models"
)

// Store keeps unanswered questions in Postgres.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{db: db, logger: log}
}

// EnsureSchema creates the backing table if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS unanswered_questions (
			id          TEXT PRIMARY KEY,
			session_id  TEXT NOT NULL DEFAULT '',
			mobile_no   TEXT NOT NULL DEFAULT 'unknown',
			question    TEXT NOT NULL,
			reason      TEXT NOT NULL DEFAULT '',
			notify_user BOOLEAN NOT NULL DEFAULT TRUE,
			status      TEXT NOT NULL DEFAULT 'pending',
			answer      TEXT NOT NULL DEFAULT '',
			answered_by TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL,
			answered_at TIMESTAMPTZ
		)`)
	if err != nil {
		return apperrors.NewQueryExecutionError(err)
	}
	return nil
}

// Save inserts a new pending question and implements the escalation sink.
func (s *Store) Save(ctx context.Context, q models.UnansweredQuestion) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.Status == "" {
		q.Status = models.QuestionStatusPending
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO unanswered_questions
			(id, session_id, mobile_no, question, reason, notify_user, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		q.ID, q.SessionID, q.MobileNo, q.Question, q.Reason, q.NotifyUser, q.Status, q.CreatedAt,
	)
	if err != nil {
		return apperrors.NewEscalationPersistFailedError(err)
	}

	s.logger.Info("unanswered question saved", map[string]interface{}{
		"id":     q.ID,
		"reason": q.Reason,
	})
	return nil
}

// List returns questions, optionally filtered by status, newest first.
func (s *Store) List(ctx context.Context, status string, limit int) ([]models.UnansweredQuestion, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, mobile_no, question, reason, notify_user,
		       status, answer, answered_by, created_at, answered_at
		FROM unanswered_questions
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2`, status, limit)
	if err != nil {
		return nil, apperrors.NewQueryExecutionError(err)
	}
	defer rows.Close()

	var questions []models.UnansweredQuestion
	for rows.Next() {
		var q models.UnansweredQuestion
		var answeredAt sql.NullTime
		err := rows.Scan(&q.ID, &q.SessionID, &q.MobileNo, &q.Question, &q.Reason,
			&q.NotifyUser, &q.Status, &q.Answer, &q.AnsweredBy, &q.CreatedAt, &answeredAt)
		if err != nil {
			return nil, apperrors.NewQueryExecutionError(err)
		}
		if answeredAt.Valid {
			q.AnsweredAt = &answeredAt.Time
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Get returns one question by id.
func (s *Store) Get(ctx context.Context, id string) (*models.UnansweredQuestion, error) {
	var q models.UnansweredQuestion
	var answeredAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, mobile_no, question, reason, notify_user,
		       status, answer, answered_by, created_at, answered_at
		FROM unanswered_questions
		WHERE id = $1`, id).Scan(
		&q.ID, &q.SessionID, &q.MobileNo, &q.Question, &q.Reason,
		&q.NotifyUser, &q.Status, &q.Answer, &q.AnsweredBy, &q.CreatedAt, &answeredAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionError(err)
	}
	if answeredAt.Valid {
		q.AnsweredAt = &answeredAt.Time
	}
	return &q, nil
}

// Answer records a staff answer and returns the updated question.
func (s *Store) Answer(ctx context.Context, id, answer, answeredBy string) (*models.UnansweredQuestion, error) {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE unanswered_questions
		SET answer = $2, answered_by = $3, status = $4, answered_at = $5
		WHERE id = $1`,
		id, answer, answeredBy, models.QuestionStatusAnswered, now,
	)
	if err != nil {
		return nil, apperrors.NewQueryExecutionError(err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return s.Get(ctx, id)
}
