package bot

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/applio/applio_bot/internal/db"
	"github.com/applio/applio_bot/internal/locales"
)

func LanguageKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, code := range []string{locales.LangEN, locales.LangRU} {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(locales.AvailableLanguages[code], "lang_"+code),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func CancelKeyboard(lang string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(locales.Get(lang, "cancel")),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true

	return kb
}

func ContactStepKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_continue_telegram"), "continue_with_telegram"),
		),
	)
}

func AdminMainKeyboard(pendingCount int64, lang string, isPrimary bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_new_applications", pendingCount), "admin_new_apps"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_show_stats"), "admin_stats"),
		),
	}

	if isPrimary {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_manage_admins"), "admin_manage"),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_exit"), "admin_exit"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func ApplicationActionsKeyboard(appID int64, lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_approve"), fmt.Sprintf("admin_approve_%d", appID)),
			tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_reject"), fmt.Sprintf("admin_reject_%d", appID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_back_to_list"), "admin_new_apps"),
		),
	)
}

func ApplicationsListKeyboard(apps []db.Application, lang string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(apps)+1)
	for i, app := range apps {
		label := fmt.Sprintf("%d. %s", i+1, app.Name)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("view_app_%d", app.ID)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_back_to_menu"), "admin_menu"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func BackToMenuKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_back_to_menu"), "admin_menu"),
		),
	)
}

func AdminManagementKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_add_admin"), "admin_add"),
			tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_remove_admin"), "admin_remove"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_back_to_menu"), "admin_menu"),
		),
	)
}

// AdminRemoveKeyboard lists removable admins. The primary admin is never in
// the input by construction (ListAdded excludes it).
func AdminRemoveKeyboard(admins []db.Admin, lang string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(admins)+1)
	for _, admin := range admins {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				locales.Get(lang, "admin_list_item", strconv.FormatInt(admin.UserID, 10)),
				fmt.Sprintf("admin_remove_%d", admin.UserID),
			),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(locales.Get(lang, "btn_back_to_menu"), "admin_menu"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
