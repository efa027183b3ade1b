// Package session stores chat sessions and the user contact details used for
// escalation follow-up.
package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	apperrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/models"
)

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
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL DEFAULT '',
			name       TEXT NOT NULL DEFAULT '',
			mobile_no  TEXT NOT NULL DEFAULT '',
			email      TEXT NOT NULL DEFAULT '',
			language   TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return apperrors.NewQueryExecutionError(err)
	}
	return nil
}

// Create inserts a session, generating an id when none is supplied.
func (s *Store) Create(ctx context.Context, sess models.Session) (*models.Session, error) {
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sess.CreatedAt = now
	sess.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, name, mobile_no, email, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sess.ID, sess.User.ID, sess.User.Name, sess.User.MobileNo, sess.User.Email,
		sess.Language, sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewQueryExecutionError(err)
	}
	return &sess, nil
}

// Get returns the session or nil when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, mobile_no, email, language, created_at, updated_at
		FROM sessions
		WHERE id = $1`, id).Scan(
		&sess.ID, &sess.User.ID, &sess.User.Name, &sess.User.MobileNo, &sess.User.Email,
		&sess.Language, &sess.CreatedAt, &sess.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionError(err)
	}
	return &sess, nil
}

// MobileNo implements the escalation phone lookup against local storage.
func (s *Store) MobileNo(ctx context.Context, sessionID string) (string, error) {
	var mobileNo string
	err := s.db.QueryRowContext(ctx,
		`SELECT mobile_no FROM sessions WHERE id = $1`, sessionID).Scan(&mobileNo)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewSessionLookupFailedError(err)
	}
	return mobileNo, nil
}
