package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/applio/applio_bot/internal/db"
	"github.com/applio/applio_bot/internal/locales"
	"github.com/applio/applio_bot/internal/logger"
)

// Delivery is the per-recipient outcome of a notification fan-out. A failed
// delivery never aborts the operation that triggered it.
type Delivery struct {
	Recipient int64
	Err       error
}

// notifyAdmins tells every authorized admin about a new application, each
// in their own language, with the review actions attached.
func (s *Service) notifyAdmins(ctx context.Context, app *db.Application) []Delivery {
	handles, err := s.admins.AllHandles(ctx)
	if err != nil {
		logger.Error("cannot list admins for fan-out", "app_id", app.ID, "error", err)
		return nil
	}

	deliveries := make([]Delivery, 0, len(handles))
	for _, adminID := range handles {
		lang := s.users.Language(ctx, adminID, locales.LangEN)

		text := locales.Get(lang, "new_application_title", app.ID) + "\n\n" + applicationDetail(lang, app)

		msg := tgbotapi.NewMessage(adminID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = ApplicationActionsKeyboard(app.ID, lang)

		_, sendErr := s.api.Send(msg)
		deliveries = append(deliveries, Delivery{Recipient: adminID, Err: sendErr})
	}

	return deliveries
}

// notifyApplicant tells the owner about the decision, best effort.
func (s *Service) notifyApplicant(ctx context.Context, app *db.Application, statusKey string) Delivery {
	lang := s.users.Language(ctx, app.UserID, locales.LangEN)

	msg := tgbotapi.NewMessage(app.UserID, locales.Get(lang, statusKey))
	msg.ParseMode = tgbotapi.ModeHTML

	_, err := s.api.Send(msg)
	return Delivery{Recipient: app.UserID, Err: err}
}

// applicationDetail renders the full field block shown to admins.
func applicationDetail(lang string, app *db.Application) string {
	return fmt.Sprintf(
		"👤 <b>%s:</b> %s\n📞 <b>%s:</b> %s\n📄 <b>%s:</b> %s\n\n🕐 <b>%s:</b> %s",
		locales.Get(lang, "field_name"), app.Name,
		locales.Get(lang, "field_contact"), app.Contact,
		locales.Get(lang, "field_purpose"), app.Purpose,
		locales.Get(lang, "field_submitted"), app.CreatedAt.Format("2006-01-02 15:04:05"),
	)
}
