// internal/admin/session/store_test.go
package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/models"
)

func newStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db, logger.NewNoOpLogger()), mock
}

func TestStore_CreateGeneratesID(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(sqlmock.AnyArg(), "user-1", "Asha", "+919876543210", "asha@example.com",
			"mr", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sess, err := store.Create(context.Background(), models.Session{
		User:     models.User{ID: "user-1", Name: "Asha", MobileNo: "+919876543210", Email: "asha@example.com"},
		Language: "mr",
	})
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.ID)
	assert.False(t, sess.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get(t *testing.T) {
	store, mock := newStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("sess-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "name", "mobile_no", "email", "language", "created_at", "updated_at",
		}).AddRow("sess-1", "user-1", "Asha", "+919876543210", "asha@example.com", "mr", now, now))

	sess, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "Asha", sess.User.Name)
	assert.Equal(t, "mr", sess.Language)
}

func TestStore_GetNotFound(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	sess, err := store.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStore_MobileNo(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		expected string
		wantErr  bool
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT mobile_no FROM sessions").
					WithArgs("sess-1").
					WillReturnRows(sqlmock.NewRows([]string{"mobile_no"}).AddRow("+919876543210"))
			},
			expected: "+919876543210",
		},
		{
			name: "unknown session yields empty string, no error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT mobile_no FROM sessions").
					WithArgs("sess-1").
					WillReturnError(sql.ErrNoRows)
			},
			expected: "",
		},
		{
			name: "query failure surfaces as lookup error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT mobile_no FROM sessions").
					WithArgs("sess-1").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newStore(t)
			tt.setup(mock)

			mobileNo, err := store.MobileNo(context.Background(), "sess-1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, mobileNo)
		})
	}
}
