package bot

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applio/applio_bot/internal/db"
)

func pendingApplication() *db.Application {
	return &db.Application{
		ID:        7,
		UserID:    testUserID,
		Name:      "Jane Doe",
		Contact:   "jane@example.com",
		Purpose:   "I want to join the community",
		Status:    db.StatusPending,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNotifyAdmins_FanOut(t *testing.T) {
	svc, api, mock := newTestService(t)
	ctx := context.Background()

	// One added admin besides the primary; each gets a lookup for their
	// language.
	mock.ExpectQuery("SELECT (.+) FROM admins").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "added_by", "created_at"}).
			AddRow(int64(1), int64(600), testAdminID, time.Now()))
	expectNoUserRow(mock, testAdminID)
	expectUserRow(mock, 600, "ru", nil)

	deliveries := svc.notifyAdmins(ctx, pendingApplication())

	assert.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, deliveries, 2)
	assert.Equal(t, testAdminID, deliveries[0].Recipient)
	assert.Equal(t, int64(600), deliveries[1].Recipient)
	for _, d := range deliveries {
		assert.NoError(t, d.Err)
	}

	require.Len(t, api.sent, 2)
	first := api.sent[0].(tgbotapi.MessageConfig)
	second := api.sent[1].(tgbotapi.MessageConfig)
	assert.Equal(t, testAdminID, first.ChatID)
	assert.Equal(t, int64(600), second.ChatID)
	assert.Contains(t, first.Text, "Jane Doe")
	assert.NotEqual(t, first.Text, second.Text, "each admin gets their own language")
}

// One unreachable recipient never aborts the fan-out: the remaining sends
// are still attempted and the failure surfaces in its Delivery.
func TestNotifyAdmins_FailureDoesNotAbortFanOut(t *testing.T) {
	svc, api, mock := newTestService(t)
	api.sendErr = map[int64]error{testAdminID: assert.AnError}

	mock.ExpectQuery("SELECT (.+) FROM admins").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "added_by", "created_at"}).
			AddRow(int64(1), int64(600), testAdminID, time.Now()))
	expectNoUserRow(mock, testAdminID)
	expectUserRow(mock, 600, "en", nil)

	deliveries := svc.notifyAdmins(context.Background(), pendingApplication())

	assert.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, deliveries, 2)
	assert.Equal(t, testAdminID, deliveries[0].Recipient)
	assert.ErrorIs(t, deliveries[0].Err, assert.AnError)
	assert.Equal(t, int64(600), deliveries[1].Recipient)
	assert.NoError(t, deliveries[1].Err)

	require.Len(t, api.sent, 2, "the second send is still attempted")
}

func TestNotifyApplicant(t *testing.T) {
	svc, api, mock := newTestService(t)

	expectUserRow(mock, testUserID, "en", nil)

	d := svc.notifyApplicant(context.Background(), pendingApplication(), "application_approved")

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, testUserID, d.Recipient)
	assert.NoError(t, d.Err)

	require.Len(t, api.sent, 1)
	msg := api.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, testUserID, msg.ChatID)
}

func TestApplicationDetail(t *testing.T) {
	detail := applicationDetail("en", pendingApplication())

	assert.Contains(t, detail, "Jane Doe")
	assert.Contains(t, detail, "jane@example.com")
	assert.Contains(t, detail, "I want to join the community")
	assert.Contains(t, detail, "2025-06-01 12:00:00")
}
