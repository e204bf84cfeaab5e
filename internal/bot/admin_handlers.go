package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/applio/applio_bot/internal/db"
	"github.com/applio/applio_bot/internal/locales"
	"github.com/applio/applio_bot/internal/logger"
	"github.com/applio/applio_bot/internal/session"
)

const pendingListLimit = 10

func (s *Service) cmdAdmin(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	lang := s.users.Language(ctx, userID, locales.LangEN)

	isAdmin, err := s.admins.IsAdmin(ctx, userID)
	if err != nil {
		logger.Error("admin check failed", "user_id", userID, "error", err)
		s.reply(msg.Chat.ID, locales.Get(lang, "admin_error"), nil)
		return
	}

	if !isAdmin {
		s.reply(msg.Chat.ID, locales.Get(lang, "access_denied"), nil)
		return
	}

	pending, err := s.apps.CountPending(ctx)
	if err != nil {
		logger.Error("cannot count pending applications", "error", err)
		s.reply(msg.Chat.ID, locales.Get(lang, "admin_error"), nil)
		return
	}

	s.reply(msg.Chat.ID, locales.Get(lang, "admin_panel_title"),
		AdminMainKeyboard(pending, lang, s.admins.IsPrimary(userID)))
}

// handleAdminCallback routes the review-workflow callbacks. Authorization
// is re-checked on every single transition: an admin demoted mid-session
// loses access on their next press.
func (s *Service) handleAdminCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		s.ack(cb.ID, "")
		return
	}

	userID := cb.From.ID
	lang := s.users.Language(ctx, userID, locales.LangEN)

	isAdmin, err := s.admins.IsAdmin(ctx, userID)
	if err != nil {
		logger.Error("admin check failed", "user_id", userID, "error", err)
		s.ack(cb.ID, locales.Get(lang, "error_occurred"))
		return
	}

	if !isAdmin {
		s.ack(cb.ID, locales.Get(lang, "access_denied"))
		return
	}

	data := cb.Data

	switch {
	case data == "admin_menu":
		s.showAdminMenu(ctx, cb, lang)
	case data == "admin_new_apps":
		s.showPendingList(ctx, cb, lang)
	case data == "admin_stats":
		s.showStats(ctx, cb, lang)
	case data == "admin_exit":
		s.exitPanel(cb, lang)
	case data == "admin_manage":
		s.showAdminManagement(ctx, cb, lang)
	case data == "admin_add":
		s.promptAddAdmin(ctx, cb, lang)
	case data == "admin_remove":
		s.showRemovableAdmins(ctx, cb, lang)
	case strings.HasPrefix(data, "admin_remove_"):
		s.removeAdmin(ctx, cb, lang)
	case strings.HasPrefix(data, "view_app_"):
		s.showApplication(ctx, cb, lang)
	case strings.HasPrefix(data, "admin_approve_"):
		s.decide(ctx, cb, lang, db.StatusApproved)
	case strings.HasPrefix(data, "admin_reject_"):
		s.decide(ctx, cb, lang, db.StatusRejected)
	}
}

func (s *Service) showAdminMenu(ctx context.Context, cb *tgbotapi.CallbackQuery, lang string) {
	pending, err := s.apps.CountPending(ctx)
	if err != nil {
		logger.Error("cannot count pending applications", "error", err)
		s.ack(cb.ID, locales.Get(lang, "error_occurred"))
		return
	}

	markup := AdminMainKeyboard(pending, lang, s.admins.IsPrimary(cb.From.ID))
	s.safeEdit(cb.Message.Chat.ID, cb.Message.MessageID, locales.Get(lang, "admin_panel_title"), &markup)
	s.ack(cb.ID, "")
}

func (s *Service) showPendingList(ctx context.Context, cb *tgbotapi.CallbackQuery, lang string) {
	apps, err := s.apps.ListPending(ctx, pendingListLimit)
	if err != nil {
		logger.Error("cannot list pending applications", "error", err)
		s.ack(cb.ID, locales.Get(lang, "error_occurred"))
		return
	}

	if len(apps) == 0 {
		markup := BackToMenuKeyboard(lang)
		s.safeEdit(cb.Message.Chat.ID, cb.Message.MessageID, locales.Get(lang, "no_pending_apps"), &markup)
		s.ack(cb.ID, "")
		return
	}

	markup := ApplicationsListKeyboard(apps, lang)
	s.safeEdit(cb.Message.Chat.ID, cb.Message.MessageID, locales.Get(lang, "applications_list_title"), &markup)
	s.ack(cb.ID, "")
}

func (s *Service) showApplication(ctx context.Context, cb *tgbotapi.CallbackQuery, lang string) {
	appID, ok := trailingID(cb.Data)
	if !ok {
		s.ack(cb.ID, locales.Get(lang, "app_not_found"))
		return
	}

	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		logger.Error("cannot load application", "app_id", appID, "error", err)
		s.ack(cb.ID, locales.Get(lang, "error_occurred"))
		return
	}

	if app == nil {
		s.ack(cb.ID, locales.Get(lang, "app_not_found"))
		return
	}

	text := locales.Get(lang, "view_app_title", app.ID) + "\n\n" + applicationDetail(lang, app)
	markup := ApplicationActionsKeyboard(app.ID, lang)
	s.safeEdit(cb.Message.Chat.ID, cb.Message.MessageID, text, &markup)
	s.ack(cb.ID, "")
}

// decide performs the pending -> terminal transition. The conditional
// update in the store is the only arbiter when two admins race; the loser
// gets the already-processed toast and no notification goes out twice.
func (s *Service) decide(ctx context.Context, cb *tgbotapi.CallbackQuery, lang, status string) {
	appID, ok := trailingID(cb.Data)
	if !ok {
		s.ack(cb.ID, locales.Get(lang, "app_not_found"))
		return
	}

	err := s.apps.UpdateStatusIfPending(ctx, appID, status)
	if errors.Is(err, db.ErrAlreadyProcessed) {
		// Zero rows covers both a decided application and a vanished id;
		// only the follow-up read can tell them apart.
		app, lookupErr := s.apps.GetByID(ctx, appID)
		if lookupErr == nil && app == nil {
			s.ack(cb.ID, locales.Get(lang, "app_not_found"))
			return
		}

		s.ack(cb.ID, locales.Get(lang, "app_already_processed"))
		return
	}
	if err != nil {
		logger.Error("cannot update application status", "app_id", appID, "error", err)
		s.ack(cb.ID, locales.Get(lang, "error_occurred"))
		return
	}

	app, err := s.apps.GetByID(ctx, appID)
	if err != nil || app == nil {
		logger.Error("cannot reload application after decision", "app_id", appID, "error", err)
		s.ack(cb.ID, locales.Get(lang, "error_occurred"))
		return
	}

	titleKey, notifyKey := "app_approved_title", "application_approved"
	if status == db.StatusRejected {
		titleKey, notifyKey = "app_rejected_title", "application_rejected"
	}

	if d := s.notifyApplicant(ctx, app, notifyKey); d.Err != nil {
		logger.Warn("applicant notification failed", "user_id", d.Recipient, "app_id", app.ID, "error", d.Err)
	}

	text := locales.Get(lang, titleKey, app.ID) + "\n\n" +
		applicationDetail(lang, app) + "\n\n" +
		locales.Get(lang, "user_notified") + "\n" +
		locales.Get(lang, "processed_by_admin", cb.From.ID)

	markup := BackToMenuKeyboard(lang)
	s.safeEdit(cb.Message.Chat.ID, cb.Message.MessageID, text, &markup)
	s.ack(cb.ID, locales.Get(lang, titleKey, app.ID))
}

func (s *Service) showStats(ctx context.Context, cb *tgbotapi.CallbackQuery, lang string) {
	stats, err := s.apps.GetStats(ctx)
	if err != nil {
		logger.Error("cannot load stats", "error", err)
		s.ack(cb.ID, locales.Get(lang, "error_occurred"))
		return
	}

	users, err := s.users.CountAll(ctx)
	if err != nil {
		logger.Error("cannot count users", "error", err)
		s.ack(cb.ID, locales.Get(lang, "error_occurred"))
		return
	}

	var approvalRate, rejectionRate float64
	if stats.Total > 0 {
		approvalRate = float64(stats.Approved) / float64(stats.Total) * 100
		rejectionRate = float64(stats.Rejected) / float64(stats.Total) * 100
	}

	text := fmt.Sprintf(
		"%s\n\n━━━━━━━━━━━━━━━━━━━━\n\n%s\n%s <b>%d</b>\n\n━━━━━━━━━━━━━━━━━━━━\n\n%s\n%s <b>%d</b>\n\n%s\n\n%s <b>%d</b>\n%s <b>%d</b> (%.1f%%)\n%s <b>%d</b> (%.1f%%)",
		locales.Get(lang, "bot_statistics"),
		locales.Get(lang, "users_overview"),
		locales.Get(lang, "total_registered_users"), users,
		locales.Get(lang, "applications_overview"),
		locales.Get(lang, "total_applications_submitted"), stats.Total,
		locales.Get(lang, "status_breakdown"),
		locales.Get(lang, "pending_review"), stats.Pending,
		locales.Get(lang, "approved"), stats.Approved, approvalRate,
		locales.Get(lang, "rejected"), stats.Rejected, rejectionRate,
	)

	markup := BackToMenuKeyboard(lang)
	s.safeEdit(cb.Message.Chat.ID, cb.Message.MessageID, text, &markup)
	s.ack(cb.ID, "")
}

func (s *Service) exitPanel(cb *tgbotapi.CallbackQuery, lang string) {
	if _, err := s.api.Request(tgbotapi.NewDeleteMessage(cb.Message.Chat.ID, cb.Message.MessageID)); err != nil {
		logger.Debug("cannot delete panel message", "error", err)
	}
	s.ack(cb.ID, locales.Get(lang, "admin_panel_closed"))
}

func (s *Service) showAdminManagement(ctx context.Context, cb *tgbotapi.CallbackQuery, lang string) {
	if !s.admins.IsPrimary(cb.From.ID) {
		s.ack(cb.ID, locales.Get(lang, "access_denied"))
		return
	}

	if s.renderAdminManagement(ctx, cb, lang) {
		s.ack(cb.ID, "")
	}
}

// renderAdminManagement redraws the management view. It reports whether the
// redraw succeeded and leaves answering the callback to the caller, since
// removal wants a toast with the outcome instead of a silent ack.
func (s *Service) renderAdminManagement(ctx context.Context, cb *tgbotapi.CallbackQuery, lang string) bool {
	admins, err := s.admins.ListAdded(ctx)
	if err != nil {
		logger.Error("cannot list admins", "error", err)
		s.ack(cb.ID, locales.Get(lang, "error_occurred"))
		return false
	}

	var b strings.Builder
	b.WriteString(locales.Get(lang, "admin_management_title"))
	b.WriteString("\n\n")
	b.WriteString(locales.Get(lang, "admin_list_main", strconv.FormatInt(s.admins.PrimaryID(), 10)))
	b.WriteString("\n")

	if len(admins) == 0 {
		b.WriteString("\n")
		b.WriteString(locales.Get(lang, "no_additional_admins"))
	} else {
		for _, admin := range admins {
			b.WriteString(locales.Get(lang, "admin_list_item", strconv.FormatInt(admin.UserID, 10)))
			b.WriteString("\n")
		}
	}

	markup := AdminManagementKeyboard(lang)
	s.safeEdit(cb.Message.Chat.ID, cb.Message.MessageID, b.String(), &markup)

	return true
}

func (s *Service) promptAddAdmin(ctx context.Context, cb *tgbotapi.CallbackQuery, lang string) {
	userID := cb.From.ID

	if !s.admins.IsPrimary(userID) {
		s.ack(cb.ID, locales.Get(lang, "access_denied"))
		return
	}

	if err := s.sessions.Put(ctx, userID, &session.State{Step: StepAwaitingAdminID}); err != nil {
		logger.Error("cannot store session", "user_id", userID, "error", err)
		s.ack(cb.ID, locales.Get(lang, "error_occurred"))
		return
	}

	markup := BackToMenuKeyboard(lang)
	s.safeEdit(cb.Message.Chat.ID, cb.Message.MessageID, locales.Get(lang, "add_admin_prompt"), &markup)
	s.ack(cb.ID, "")
}

func (s *Service) stepAdminID(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	lang := s.users.Language(ctx, userID, locales.LangEN)

	if !s.admins.IsPrimary(userID) {
		s.sessions.Clear(ctx, userID)
		return
	}

	if isCancelText(msg.Text) {
		s.cancelFlow(ctx, msg.Chat.ID, userID, lang)
		return
	}

	newAdminID, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil || newAdminID <= 0 {
		s.reply(msg.Chat.ID, locales.Get(lang, "admin_invalid_id"), nil)
		return
	}

	_, err = s.admins.Add(ctx, newAdminID, userID)
	switch {
	case errors.Is(err, db.ErrAdminExists):
		s.reply(msg.Chat.ID, locales.Get(lang, "admin_already_exists"), nil)
	case err != nil:
		logger.Error("cannot add admin", "new_admin_id", newAdminID, "error", err)
		s.reply(msg.Chat.ID, locales.Get(lang, "error_occurred"), nil)
	default:
		s.reply(msg.Chat.ID, locales.Get(lang, "admin_added", strconv.FormatInt(newAdminID, 10)), nil)
	}

	if err := s.sessions.Clear(ctx, userID); err != nil {
		logger.Warn("cannot clear session", "user_id", userID, "error", err)
	}
}

func (s *Service) showRemovableAdmins(ctx context.Context, cb *tgbotapi.CallbackQuery, lang string) {
	if !s.admins.IsPrimary(cb.From.ID) {
		s.ack(cb.ID, locales.Get(lang, "access_denied"))
		return
	}

	admins, err := s.admins.ListAdded(ctx)
	if err != nil {
		logger.Error("cannot list admins", "error", err)
		s.ack(cb.ID, locales.Get(lang, "error_occurred"))
		return
	}

	if len(admins) == 0 {
		s.ack(cb.ID, locales.Get(lang, "no_additional_admins"))
		return
	}

	markup := AdminRemoveKeyboard(admins, lang)
	s.safeEdit(cb.Message.Chat.ID, cb.Message.MessageID, locales.Get(lang, "remove_admin_prompt"), &markup)
	s.ack(cb.ID, "")
}

func (s *Service) removeAdmin(ctx context.Context, cb *tgbotapi.CallbackQuery, lang string) {
	if !s.admins.IsPrimary(cb.From.ID) {
		s.ack(cb.ID, locales.Get(lang, "access_denied"))
		return
	}

	targetID, ok := trailingID(cb.Data)
	if !ok {
		s.ack(cb.ID, locales.Get(lang, "admin_not_found"))
		return
	}

	removed, err := s.admins.Remove(ctx, targetID)
	if err != nil {
		logger.Error("cannot remove admin", "admin_id", targetID, "error", err)
		s.ack(cb.ID, locales.Get(lang, "error_occurred"))
		return
	}

	if !removed {
		s.ack(cb.ID, locales.Get(lang, "admin_not_found"))
		return
	}

	if s.renderAdminManagement(ctx, cb, lang) {
		s.ack(cb.ID, locales.Get(lang, "admin_removed", strconv.FormatInt(targetID, 10)))
	}
}

// trailingID parses the numeric suffix of callback data like
// "admin_approve_42".
func trailingID(data string) (int64, bool) {
	idx := strings.LastIndex(data, "_")
	if idx < 0 || idx == len(data)-1 {
		return 0, false
	}

	id, err := strconv.ParseInt(data[idx+1:], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
