package antiflood

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applio/applio_bot/internal/db"
)

func newGateWithMock(t *testing.T, window time.Duration, now time.Time) (*Gate, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	gate := NewGate(db.NewUserRepository(sqlx.NewDb(mockDB, "sqlmock")), window)
	gate.now = func() time.Time { return now }

	return gate, mock
}

func userRow(userID int64, lastSubmission any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "language", "last_submission_time", "created_at"}).
		AddRow(userID, "en", lastSubmission, time.Now())
}

func TestGate_Check(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	window := 300 * time.Second
	ctx := context.Background()

	t.Run("UnknownUserIsNeverThrottled", func(t *testing.T) {
		gate, mock := newGateWithMock(t, window, now)
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs(int64(100)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "language", "last_submission_time", "created_at"}))

		remaining, throttled, err := gate.Check(ctx, 100)
		assert.NoError(t, err)
		assert.False(t, throttled)
		assert.Zero(t, remaining)
	})

	t.Run("NoPriorSubmission", func(t *testing.T) {
		gate, mock := newGateWithMock(t, window, now)
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs(int64(100)).
			WillReturnRows(userRow(100, nil))

		_, throttled, err := gate.Check(ctx, 100)
		assert.NoError(t, err)
		assert.False(t, throttled)
	})

	t.Run("InsideWindow", func(t *testing.T) {
		gate, mock := newGateWithMock(t, window, now)
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs(int64(100)).
			WillReturnRows(userRow(100, now.Add(-100*time.Second)))

		remaining, throttled, err := gate.Check(ctx, 100)
		assert.NoError(t, err)
		assert.True(t, throttled)
		assert.Equal(t, 200, remaining)
	})

	t.Run("ExactlyAtWindowEdgeIsOpen", func(t *testing.T) {
		gate, mock := newGateWithMock(t, window, now)
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs(int64(100)).
			WillReturnRows(userRow(100, now.Add(-window)))

		_, throttled, err := gate.Check(ctx, 100)
		assert.NoError(t, err)
		assert.False(t, throttled)
	})

	t.Run("PastWindow", func(t *testing.T) {
		gate, mock := newGateWithMock(t, window, now)
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs(int64(100)).
			WillReturnRows(userRow(100, now.Add(-window-time.Minute)))

		_, throttled, err := gate.Check(ctx, 100)
		assert.NoError(t, err)
		assert.False(t, throttled)
	})

	t.Run("LookupErrorPropagates", func(t *testing.T) {
		gate, mock := newGateWithMock(t, window, now)
		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs(int64(100)).
			WillReturnError(assert.AnError)

		_, throttled, err := gate.Check(ctx, 100)
		assert.Error(t, err)
		assert.False(t, throttled)
	})
}
