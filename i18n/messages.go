// Package i18n maps the core's message keys to localized strings. It is a
// pure presentation concern: locale resolution and rendering happen at the
// transport edge, never inside the authentication core.
package i18n

import "github.com/adminkit/adminauth"

// DefaultLocale is used when a requested locale has no bundle or is empty.
const DefaultLocale = "en"

var bundles = map[string]map[string]string{
	"en": {
		"errors.USER.NOT_FOUND":           "User not found",
		"errors.AUTH.INVALID_PASSWORD":    "Invalid password",
		"errors.AUTH.INVALID_CREDENTIALS": "Invalid credentials",
		"errors.AUTH.TOKEN_INVALID":       "Invalid or expired token",
		"errors.AUTH.REFRESH_INVALID":     "Invalid or expired refresh token",
		"errors.INFRA.CREDENTIAL_STORE":   "Service temporarily unavailable",
		"errors.INFRA.SESSION_REGISTRY":   "Service temporarily unavailable",
		"errors.INFRA.NOT_READY":          "Service temporarily unavailable",
		"errors.INTERNAL":                 "Internal error",
		"success.AUTH.LOGOUT":             "Signed out successfully",
	},
	"ru": {
		"errors.USER.NOT_FOUND":           "Пользователь не найден",
		"errors.AUTH.INVALID_PASSWORD":    "Неверный пароль",
		"errors.AUTH.INVALID_CREDENTIALS": "Неверные учетные данные",
		"errors.AUTH.TOKEN_INVALID":       "Недействительный или истекший токен",
		"errors.AUTH.REFRESH_INVALID":     "Недействительный или истекший refresh-токен",
		"errors.INFRA.CREDENTIAL_STORE":   "Сервис временно недоступен",
		"errors.INFRA.SESSION_REGISTRY":   "Сервис временно недоступен",
		"errors.INFRA.NOT_READY":          "Сервис временно недоступен",
		"errors.INTERNAL":                 "Внутренняя ошибка",
		"success.AUTH.LOGOUT":             "Выход выполнен успешно",
	},
}

// Localizer renders message keys for one locale.
type Localizer struct {
	messages map[string]string
	fallback map[string]string
}

// New returns a Localizer for the given locale, falling back to
// [DefaultLocale] for unknown locales and missing keys.
func New(locale string) *Localizer {
	msgs, ok := bundles[locale]
	if !ok {
		msgs = bundles[DefaultLocale]
	}
	return &Localizer{messages: msgs, fallback: bundles[DefaultLocale]}
}

// Message resolves a message key. Unknown keys render as the key itself so
// a missing translation is visible rather than silent.
func (l *Localizer) Message(key string) string {
	if msg, ok := l.messages[key]; ok {
		return msg
	}
	if msg, ok := l.fallback[key]; ok {
		return msg
	}
	return key
}

// Localize renders the user-facing message for a core error.
func (l *Localizer) Localize(err error) string {
	return l.Message(adminauth.MessageKeyOf(err))
}
