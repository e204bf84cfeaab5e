// Package locales holds the localized string tables for the bot.
// Lookup is a pure function over immutable maps: unknown languages fall back
// to English, unknown keys fall back to the key itself.
package locales

import "fmt"

const (
	LangEN = "en"
	LangRU = "ru"
)

// AvailableLanguages maps language codes to display names for the picker.
var AvailableLanguages = map[string]string{
	LangEN: "English",
	LangRU: "Русский",
}

// IsSupported reports whether lang is one of the selectable languages.
func IsSupported(lang string) bool {
	_, ok := AvailableLanguages[lang]
	return ok
}

// Normalize maps an arbitrary locale hint to a supported language code.
func Normalize(lang string) string {
	if IsSupported(lang) {
		return lang
	}
	return LangEN
}

// Get returns the localized string for key, formatted with args when the
// entry carries fmt verbs. It never fails: missing entries degrade to the
// English table and finally to the key itself.
func Get(lang, key string, args ...any) string {
	table, ok := tables[lang]
	if !ok {
		table = tables[LangEN]
	}

	s, ok := table[key]
	if !ok {
		s, ok = tables[LangEN][key]
		if !ok {
			return key
		}
	}

	if len(args) == 0 {
		return s
	}

	return fmt.Sprintf(s, args...)
}

var tables = map[string]map[string]string{
	LangEN: {
		"welcome": "👋 <b>Welcome to Applio Bot!</b>\n\n" +
			"This bot allows you to submit applications. " +
			"Use /apply to start the application process.\n\n" +
			"Use /language to change your language settings.",
		"admin_welcome": "🔐 <b>Admin Notice</b>\n\n" +
			"You have administrator privileges.\n" +
			"Use /admin to open the admin panel.",

		"select_language":  "🌐 <b>Select your language:</b>",
		"language_changed": "✅ Language has been changed successfully!",
		"invalid_language": "Invalid language",

		"apply_start": "<b>📝 Application Submission</b>\n\n" +
			"Thank you for deciding to submit an application!\n\n" +
			"You will go through 3 quick steps to provide the necessary information.\n\n" +
			"➡️ Please prepare the following:\n\n" +
			"1. Your Full Name\n" +
			"2. Contact Information (Email/Phone)\n" +
			"3. Purpose of the Request\n\n" +
			"To start, please enter your name below.",
		"step_2_of_3": "<b>📝 Step 2 of 3</b>\n\n" +
			"Thank you! Now please provide your contact information.\n\n" +
			"➡️ Please enter your <b>contact information</b>:\n" +
			"(Email, Phone, or Telegram username)\n\n" +
			"💡 <i>Or click the button below to use your Telegram account.</i>",
		"step_3_of_3": "<b>📝 Step 3 of 3</b>\n\n" +
			"Almost done! Please describe the purpose of your request.\n\n" +
			"➡️ Please enter the <b>purpose</b> of your application:",
		"application_received": "✅ <b>Application Received!</b>\n\n" +
			"Your application has been submitted successfully. " +
			"An administrator will review it shortly.\n\n" +
			"You will be notified once a decision is made.",
		"application_cancelled": "❌ Application submission cancelled.",
		"cooldown_active": "⏳ <b>Please wait</b>\n\n" +
			"You can submit a new application in %d seconds.\n" +
			"This is to prevent spam.",

		"error_occurred":       "❌ An error occurred. Please try again.",
		"invalid_input":        "⚠️ Invalid input. Please try again.",
		"error_name_format":    "⚠️ Please enter your full name (letters, spaces, hyphen).",
		"error_contact_format": "⚠️ Please provide a valid email, phone number, or Telegram username.",
		"error_purpose_format": "⚠️ Please provide a more detailed purpose (at least 10 characters).",
		"error_text_too_long":  "⚠️ Text is too long (maximum %d characters).",
		"cancel":               "Cancel",

		"application_approved": "✅ <b>Your application has been approved!</b>\n\n" +
			"Thank you for your submission.",
		"application_rejected": "❌ <b>Your application has been rejected.</b>\n\n" +
			"If you have questions, please contact the administrator.",

		"access_denied":         "❌ Access denied. This command is only available for administrators.",
		"admin_panel_title":     "🔐 <b>Admin Panel</b>\n\nSelect an action:",
		"admin_error":           "❌ An error occurred while opening admin panel. Please try again.",
		"app_not_found":         "Application not found.",
		"app_already_processed": "Application already processed.",
		"admin_panel_closed":    "Admin panel closed.",
		"no_pending_apps":       "📋 <b>No Pending Applications</b>\n\nAll applications have been reviewed.",
		"applications_list_title": "📋 <b>Pending Applications</b>\n\n" +
			"Select an application to review:",
		"view_app_title":        "📋 <b>Application #%d</b>",
		"new_application_title": "📋 <b>New Application #%d</b>",
		"app_approved_title":    "✅ <b>Application #%d Approved</b>",
		"app_rejected_title":    "❌ <b>Application #%d Rejected</b>",
		"user_notified":         "User has been notified.",
		"processed_by_admin":    "Processed by Admin ID: %d",
		"field_name":            "Name",
		"field_contact":         "Contact",
		"field_purpose":         "Purpose",
		"field_submitted":       "Submitted",

		"bot_statistics":               "📊 <b>Bot Statistics</b>",
		"users_overview":               "👥 <b>Users Overview</b>",
		"total_registered_users":       "Total registered users:",
		"applications_overview":        "📋 <b>Applications Overview</b>",
		"total_applications_submitted": "Total applications submitted:",
		"status_breakdown":             "<b>Application Status Breakdown:</b>",
		"pending_review":               "⏳ Pending review:",
		"approved":                     "✅ Approved:",
		"rejected":                     "❌ Rejected:",

		"btn_new_applications":   "📋 New Applications (%d)",
		"btn_show_stats":         "📊 Show Stats",
		"btn_exit":               "❌ Exit",
		"btn_approve":            "✅ Approve",
		"btn_reject":             "❌ Reject",
		"btn_back_to_list":       "🔙 Back to List",
		"btn_back_to_menu":       "🔙 Back to Menu",
		"btn_continue_telegram":  "📱 Continue with Telegram",
		"btn_manage_admins":      "👥 Manage Admins",
		"btn_add_admin":          "➕ Add Admin",
		"btn_remove_admin":       "➖ Remove Admin",
		"admin_management_title": "👥 <b>Admin Management</b>\n\nCurrent administrators:",
		"admin_list_main":        "👑 %s (Main Admin)",
		"admin_list_item":        "👤 %s",
		"no_additional_admins":   "No additional administrators.",
		"add_admin_prompt": "👤 <b>Add New Admin</b>\n\n" +
			"Send the Telegram User ID of the new administrator.",
		"remove_admin_prompt": "👤 <b>Remove Admin</b>\n\n" +
			"Select an administrator to remove:",
		"admin_added":          "✅ Admin <b>%s</b> has been added successfully.",
		"admin_removed":        "✅ Admin <b>%s</b> has been removed.",
		"admin_already_exists": "⚠️ This user is already an administrator.",
		"admin_invalid_id":     "⚠️ Invalid User ID. Please enter a valid number.",
		"admin_not_found":      "⚠️ Administrator not found.",
	},
	LangRU: {
		"welcome": "👋 <b>Добро пожаловать в Applio Bot!</b>\n\n" +
			"Этот бот позволяет подавать заявки. " +
			"Используйте /apply, чтобы начать процесс подачи заявки.\n\n" +
			"Используйте /language, чтобы изменить настройки языка.",
		"admin_welcome": "🔐 <b>Уведомление администратора</b>\n\n" +
			"У вас есть права администратора.\n" +
			"Используйте /admin, чтобы открыть панель администратора.",

		"select_language":  "🌐 <b>Выберите ваш язык:</b>",
		"language_changed": "✅ Язык успешно изменен!",
		"invalid_language": "Неверный язык",

		"apply_start": "<b>📝 Подача заявки</b>\n\n" +
			"Спасибо, что решили подать заявку!\n\n" +
			"Вы пройдете 3 быстрых шага, чтобы предоставить необходимую информацию.\n\n" +
			"➡️ Пожалуйста, подготовьте следующее:\n\n" +
			"1. Ваше полное имя\n" +
			"2. Контактная информация (Email/Телефон)\n" +
			"3. Цель запроса\n\n" +
			"Для начала, пожалуйста, введите ваше имя ниже.",
		"step_2_of_3": "<b>📝 Шаг 2 из 3</b>\n\n" +
			"Спасибо! Теперь, пожалуйста, предоставьте вашу контактную информацию.\n\n" +
			"➡️ Пожалуйста, введите вашу <b>контактную информацию</b>:\n" +
			"(Email, Телефон или Telegram username)\n\n" +
			"💡 <i>Или нажмите кнопку ниже, чтобы использовать ваш Telegram аккаунт.</i>",
		"step_3_of_3": "<b>📝 Шаг 3 из 3</b>\n\n" +
			"Почти готово! Пожалуйста, опишите цель вашего запроса.\n\n" +
			"➡️ Пожалуйста, введите <b>цель</b> вашей заявки:",
		"application_received": "✅ <b>Заявка получена!</b>\n\n" +
			"Ваша заявка успешно отправлена. " +
			"Администратор рассмотрит её в ближайшее время.\n\n" +
			"Вы будете уведомлены, когда будет принято решение.",
		"application_cancelled": "❌ Подача заявки отменена.",
		"cooldown_active": "⏳ <b>Пожалуйста, подождите</b>\n\n" +
			"Вы можете подать новую заявку через %d секунд.\n" +
			"Это сделано для предотвращения спама.",

		"error_occurred":       "❌ Произошла ошибка. Попробуйте снова.",
		"invalid_input":        "⚠️ Неверный ввод. Попробуйте снова.",
		"error_name_format":    "⚠️ Пожалуйста, введите ваше полное имя (буквы, пробелы, дефис).",
		"error_contact_format": "⚠️ Пожалуйста, укажите корректный email, номер телефона или Telegram username.",
		"error_purpose_format": "⚠️ Пожалуйста, опишите цель подробнее (не менее 10 символов).",
		"error_text_too_long":  "⚠️ Текст слишком длинный (максимум %d символов).",
		"cancel":               "Отмена",

		"application_approved": "✅ <b>Ваша заявка одобрена!</b>\n\n" +
			"Спасибо за вашу заявку.",
		"application_rejected": "❌ <b>Ваша заявка отклонена.</b>\n\n" +
			"Если у вас есть вопросы, свяжитесь с администратором.",

		"access_denied":         "❌ Доступ запрещен. Эта команда доступна только администраторам.",
		"admin_panel_title":     "🔐 <b>Панель администратора</b>\n\nВыберите действие:",
		"admin_error":           "❌ Произошла ошибка при открытии панели администратора. Попробуйте снова.",
		"app_not_found":         "Заявка не найдена.",
		"app_already_processed": "Заявка уже обработана.",
		"admin_panel_closed":    "Панель администратора закрыта.",
		"no_pending_apps":       "📋 <b>Нет новых заявок</b>\n\nВсе заявки рассмотрены.",
		"applications_list_title": "📋 <b>Ожидающие заявки</b>\n\n" +
			"Выберите заявку для рассмотрения:",
		"view_app_title":        "📋 <b>Заявка #%d</b>",
		"new_application_title": "📋 <b>Новая заявка #%d</b>",
		"app_approved_title":    "✅ <b>Заявка #%d одобрена</b>",
		"app_rejected_title":    "❌ <b>Заявка #%d отклонена</b>",
		"user_notified":         "Пользователь уведомлен.",
		"processed_by_admin":    "Обработано администратором: %d",
		"field_name":            "Имя",
		"field_contact":         "Контакт",
		"field_purpose":         "Цель",
		"field_submitted":       "Отправлено",

		"bot_statistics":               "📊 <b>Статистика бота</b>",
		"users_overview":               "👥 <b>Пользователи</b>",
		"total_registered_users":       "Всего зарегистрировано:",
		"applications_overview":        "📋 <b>Заявки</b>",
		"total_applications_submitted": "Всего подано заявок:",
		"status_breakdown":             "<b>Статусы заявок:</b>",
		"pending_review":               "⏳ Ожидают рассмотрения:",
		"approved":                     "✅ Одобрено:",
		"rejected":                     "❌ Отклонено:",

		"btn_new_applications":   "📋 Новые заявки (%d)",
		"btn_show_stats":         "📊 Статистика",
		"btn_exit":               "❌ Выход",
		"btn_approve":            "✅ Одобрить",
		"btn_reject":             "❌ Отклонить",
		"btn_back_to_list":       "🔙 К списку",
		"btn_back_to_menu":       "🔙 В меню",
		"btn_continue_telegram":  "📱 Продолжить через Telegram",
		"btn_manage_admins":      "👥 Управление админами",
		"btn_add_admin":          "➕ Добавить админа",
		"btn_remove_admin":       "➖ Удалить админа",
		"admin_management_title": "👥 <b>Управление администраторами</b>\n\nТекущие администраторы:",
		"admin_list_main":        "👑 %s (Главный админ)",
		"admin_list_item":        "👤 %s",
		"no_additional_admins":   "Дополнительных администраторов нет.",
		"add_admin_prompt": "👤 <b>Добавить администратора</b>\n\n" +
			"Отправьте Telegram User ID нового администратора.",
		"remove_admin_prompt": "👤 <b>Удалить администратора</b>\n\n" +
			"Выберите администратора для удаления:",
		"admin_added":          "✅ Администратор <b>%s</b> успешно добавлен.",
		"admin_removed":        "✅ Администратор <b>%s</b> удален.",
		"admin_already_exists": "⚠️ Этот пользователь уже является администратором.",
		"admin_invalid_id":     "⚠️ Некорректный User ID. Введите корректное число.",
		"admin_not_found":      "⚠️ Администратор не найден.",
	},
}
