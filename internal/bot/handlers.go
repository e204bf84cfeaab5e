package bot

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/applio/applio_bot/internal/antiflood"
	"github.com/applio/applio_bot/internal/db"
	"github.com/applio/applio_bot/internal/locales"
	"github.com/applio/applio_bot/internal/logger"
	"github.com/applio/applio_bot/internal/session"
)

const handlerTimeout = 15 * time.Second

// api is the slice of the Telegram client the service needs. Satisfied by
// *tgbotapi.BotAPI; tests substitute a recorder.
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Service struct {
	api        api
	users      *db.UserRepository
	apps       *db.ApplicationRepository
	admins     *db.AdminRepository
	sessions   session.Store
	gate       *antiflood.Gate
	maxTextLen int

	// Per-chat locks: events for the same user are serialized, independent
	// chats proceed in parallel.
	locks sync.Map
}

func New(
	botAPI api,
	users *db.UserRepository,
	apps *db.ApplicationRepository,
	admins *db.AdminRepository,
	sessions session.Store,
	gate *antiflood.Gate,
	maxTextLen int,
) *Service {
	return &Service{
		api:        botAPI,
		users:      users,
		apps:       apps,
		admins:     admins,
		sessions:   sessions,
		gate:       gate,
		maxTextLen: maxTextLen,
	}
}

// Run consumes the update channel until it is closed.
func (s *Service) Run(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		update := update

		userID := updateUserID(update)
		if userID == 0 {
			continue
		}

		go func() {
			mu := s.lockFor(userID)
			mu.Lock()
			defer mu.Unlock()

			ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
			defer cancel()

			s.handleUpdate(ctx, update)
		}()
	}
}

func (s *Service) lockFor(userID int64) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func updateUserID(update tgbotapi.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return update.CallbackQuery.From.ID
	}
	return 0
}

func (s *Service) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	// The event id scopes the receipt and panic lines of this update; step
	// handlers log with the plain package logger.
	log := logger.With("event_id", uuid.NewString(), "user_id", updateUserID(update))
	log.Debug("update received")

	defer func() {
		if r := recover(); r != nil {
			log.Error("handler panicked", "panic", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		s.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		s.handleCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		s.handleText(ctx, update.Message)
	}
}

func (s *Service) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	// Commands interrupt any running conversation.
	if err := s.sessions.Clear(ctx, userID); err != nil {
		logger.Warn("cannot clear session", "user_id", userID, "error", err)
	}

	switch msg.Command() {
	case "start":
		if s.throttled(ctx, msg) {
			return
		}
		s.cmdStart(ctx, msg)
	case "apply":
		if s.throttled(ctx, msg) {
			return
		}
		s.cmdApply(ctx, msg)
	case "language":
		s.cmdLanguage(ctx, msg)
	case "admin":
		s.cmdAdmin(ctx, msg)
	}
}

// throttled applies the cooldown gate to submission-initiating commands and
// answers with the localized wait message when the user has to wait.
func (s *Service) throttled(ctx context.Context, msg *tgbotapi.Message) bool {
	userID := msg.From.ID

	remaining, blocked, err := s.gate.Check(ctx, userID)
	if err != nil {
		logger.Error("cooldown check failed", "user_id", userID, "error", err)
		return false
	}

	if !blocked {
		return false
	}

	lang := s.users.Language(ctx, userID, locales.LangEN)
	s.reply(msg.Chat.ID, locales.Get(lang, "cooldown_active", remaining), nil)

	return true
}

func (s *Service) cmdStart(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	user, err := s.users.GetOrCreate(ctx, userID, locales.Normalize(msg.From.LanguageCode))
	if err != nil {
		logger.Error("cannot create user", "user_id", userID, "error", err)
		s.reply(msg.Chat.ID, locales.Get(locales.LangEN, "error_occurred"), nil)
		return
	}

	lang := locales.Normalize(user.Language)
	s.reply(msg.Chat.ID, locales.Get(lang, "welcome"), nil)

	isAdmin, err := s.admins.IsAdmin(ctx, userID)
	if err == nil && isAdmin {
		s.reply(msg.Chat.ID, locales.Get(lang, "admin_welcome"), nil)
	}
}

func (s *Service) cmdApply(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	user, err := s.users.GetOrCreate(ctx, userID, locales.Normalize(msg.From.LanguageCode))
	if err != nil {
		logger.Error("cannot create user", "user_id", userID, "error", err)
		s.reply(msg.Chat.ID, locales.Get(locales.LangEN, "error_occurred"), nil)
		return
	}

	lang := locales.Normalize(user.Language)

	if err := s.sessions.Put(ctx, userID, &session.State{Step: StepAwaitingName}); err != nil {
		logger.Error("cannot store session", "user_id", userID, "error", err)
		s.reply(msg.Chat.ID, locales.Get(lang, "error_occurred"), nil)
		return
	}

	s.reply(msg.Chat.ID, locales.Get(lang, "apply_start"), CancelKeyboard(lang))
}

func (s *Service) cmdLanguage(ctx context.Context, msg *tgbotapi.Message) {
	lang := s.users.Language(ctx, msg.From.ID, locales.LangEN)
	s.reply(msg.Chat.ID, locales.Get(lang, "select_language"), LanguageKeyboard())
}

func (s *Service) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	state, err := s.sessions.Get(ctx, userID)
	if err != nil {
		logger.Error("cannot load session", "user_id", userID, "error", err)
		return
	}

	// Free text outside any flow, stray cancel presses included, is ignored.
	if state == nil {
		return
	}

	switch state.Step {
	case StepAwaitingName:
		s.stepName(ctx, msg, state)
	case StepAwaitingContact:
		s.stepContact(ctx, msg, state)
	case StepAwaitingPurpose:
		s.stepPurpose(ctx, msg, state)
	case StepAwaitingAdminID:
		s.stepAdminID(ctx, msg)
	default:
		logger.Warn("unknown step", "user_id", userID, "step", state.Step)
		s.sessions.Clear(ctx, userID)
	}
}

// isCancelText matches the cancel button in any supported language, so a
// user who switched languages mid-flow can still bail out.
func isCancelText(text string) bool {
	for code := range locales.AvailableLanguages {
		if text == locales.Get(code, "cancel") {
			return true
		}
	}
	return false
}

// cancelFlow discards the accumulated payload and returns the user to idle.
func (s *Service) cancelFlow(ctx context.Context, chatID, userID int64, lang string) {
	if err := s.sessions.Clear(ctx, userID); err != nil {
		logger.Warn("cannot clear session", "user_id", userID, "error", err)
	}

	s.reply(chatID, locales.Get(lang, "application_cancelled"), tgbotapi.NewRemoveKeyboard(true))
}

func (s *Service) stepName(ctx context.Context, msg *tgbotapi.Message, state *session.State) {
	userID := msg.From.ID
	lang := s.users.Language(ctx, userID, locales.LangEN)

	if isCancelText(msg.Text) {
		s.cancelFlow(ctx, msg.Chat.ID, userID, lang)
		return
	}

	name := strings.TrimSpace(msg.Text)
	if len([]rune(name)) < 2 {
		s.reply(msg.Chat.ID, locales.Get(lang, "invalid_input"), nil)
		return
	}

	if !IsValidName(name) {
		s.reply(msg.Chat.ID, locales.Get(lang, "error_name_format"), nil)
		return
	}

	state.Name = name
	state.Step = StepAwaitingContact
	if err := s.sessions.Put(ctx, userID, state); err != nil {
		logger.Error("cannot store session", "user_id", userID, "error", err)
		s.reply(msg.Chat.ID, locales.Get(lang, "error_occurred"), nil)
		return
	}

	s.reply(msg.Chat.ID, locales.Get(lang, "step_2_of_3"), ContactStepKeyboard(lang))
}

func (s *Service) stepContact(ctx context.Context, msg *tgbotapi.Message, state *session.State) {
	userID := msg.From.ID
	lang := s.users.Language(ctx, userID, locales.LangEN)

	if isCancelText(msg.Text) {
		s.cancelFlow(ctx, msg.Chat.ID, userID, lang)
		return
	}

	contact := strings.TrimSpace(msg.Text)
	if len([]rune(contact)) < 3 {
		s.reply(msg.Chat.ID, locales.Get(lang, "invalid_input"), nil)
		return
	}

	if !IsValidContact(contact) {
		s.reply(msg.Chat.ID, locales.Get(lang, "error_contact_format"), nil)
		return
	}

	s.advanceToPurpose(ctx, msg.Chat.ID, userID, lang, state, contact)
}

func (s *Service) advanceToPurpose(ctx context.Context, chatID, userID int64, lang string, state *session.State, contact string) {
	state.Contact = contact
	state.Step = StepAwaitingPurpose
	if err := s.sessions.Put(ctx, userID, state); err != nil {
		logger.Error("cannot store session", "user_id", userID, "error", err)
		s.reply(chatID, locales.Get(lang, "error_occurred"), nil)
		return
	}

	s.reply(chatID, locales.Get(lang, "step_3_of_3"), nil)
}

func (s *Service) stepPurpose(ctx context.Context, msg *tgbotapi.Message, state *session.State) {
	userID := msg.From.ID
	lang := s.users.Language(ctx, userID, locales.LangEN)

	if isCancelText(msg.Text) {
		s.cancelFlow(ctx, msg.Chat.ID, userID, lang)
		return
	}

	purpose := strings.TrimSpace(msg.Text)
	runes := len([]rune(purpose))

	// Two-tier length check: very short input gets the generic error, a
	// slightly longer one the field-specific prompt.
	if runes < 5 {
		s.reply(msg.Chat.ID, locales.Get(lang, "invalid_input"), nil)
		return
	}

	if runes < 10 {
		s.reply(msg.Chat.ID, locales.Get(lang, "error_purpose_format"), nil)
		return
	}

	if runes > s.maxTextLen {
		s.reply(msg.Chat.ID, locales.Get(lang, "error_text_too_long", s.maxTextLen), nil)
		return
	}

	app, err := s.apps.Create(ctx, userID, state.Name, state.Contact, purpose)
	if err != nil {
		logger.Error("cannot create application", "user_id", userID, "error", err)
		s.reply(msg.Chat.ID, locales.Get(lang, "error_occurred"), nil)
		return
	}

	if err := s.sessions.Clear(ctx, userID); err != nil {
		logger.Warn("cannot clear session", "user_id", userID, "error", err)
	}

	// The application is durably saved; admin fan-out is best effort.
	deliveries := s.notifyAdmins(ctx, app)
	for _, d := range deliveries {
		if d.Err != nil {
			logger.Warn("admin notification failed", "admin_id", d.Recipient, "app_id", app.ID, "error", d.Err)
		}
	}

	s.reply(msg.Chat.ID, locales.Get(lang, "application_received"), tgbotapi.NewRemoveKeyboard(true))
}

func (s *Service) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data

	switch {
	case strings.HasPrefix(data, "lang_"):
		s.callbackLanguage(ctx, cb)
	case data == "continue_with_telegram":
		s.callbackContinueWithTelegram(ctx, cb)
	case strings.HasPrefix(data, "admin_") || strings.HasPrefix(data, "view_app_"):
		s.handleAdminCallback(ctx, cb)
	}
}

func (s *Service) callbackLanguage(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	code := strings.TrimPrefix(cb.Data, "lang_")
	if !locales.IsSupported(code) {
		s.ack(cb.ID, locales.Get(locales.LangEN, "invalid_language"))
		return
	}

	userID := cb.From.ID

	if _, err := s.users.GetOrCreate(ctx, userID, code); err != nil {
		logger.Error("cannot create user", "user_id", userID, "error", err)
		s.ack(cb.ID, locales.Get(code, "error_occurred"))
		return
	}

	if err := s.users.UpdateLanguage(ctx, userID, code); err != nil {
		logger.Error("cannot update language", "user_id", userID, "error", err)
		s.ack(cb.ID, locales.Get(code, "error_occurred"))
		return
	}

	s.ack(cb.ID, locales.Get(code, "language_changed"))
	if cb.Message != nil {
		s.safeEdit(cb.Message.Chat.ID, cb.Message.MessageID, locales.Get(code, "language_changed"), nil)
	}
}

// callbackContinueWithTelegram is the structured alternate path on the
// contact step: the sender's own identity fills the field without any
// pattern check.
func (s *Service) callbackContinueWithTelegram(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	userID := cb.From.ID
	lang := s.users.Language(ctx, userID, locales.LangEN)

	state, err := s.sessions.Get(ctx, userID)
	if err != nil || state == nil || state.Step != StepAwaitingContact {
		s.ack(cb.ID, locales.Get(lang, "invalid_input"))
		return
	}

	contact := strconv.FormatInt(userID, 10)
	if cb.From.UserName != "" {
		contact = "@" + cb.From.UserName
	}

	s.ack(cb.ID, "")
	if cb.Message != nil {
		s.advanceToPurpose(ctx, cb.Message.Chat.ID, userID, lang, state, contact)
	}
}

// reply sends a text message with HTML parse mode and an optional reply
// markup.
func (s *Service) reply(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	if _, err := s.api.Send(msg); err != nil {
		logger.Warn("cannot send message", "chat_id", chatID, "error", err)
	}
}

// safeEdit edits a message in place, falling back to a fresh message when
// the edit target is gone or too old.
func (s *Service) safeEdit(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = markup

	if _, err := s.api.Send(edit); err != nil {
		logger.Debug("edit failed, sending new message", "chat_id", chatID, "error", err)
		if markup != nil {
			s.reply(chatID, text, *markup)
		} else {
			s.reply(chatID, text, nil)
		}
	}
}

// ack answers a callback query with a transient toast.
func (s *Service) ack(callbackID, text string) {
	if _, err := s.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		logger.Debug("cannot answer callback", "error", err)
	}
}
