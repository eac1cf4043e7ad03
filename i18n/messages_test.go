package i18n

import (
	"fmt"
	"testing"

	"github.com/adminkit/adminauth"
)

func TestMessageKnownLocales(t *testing.T) {
	en := New("en")
	if got := en.Message("errors.USER.NOT_FOUND"); got != "User not found" {
		t.Errorf("en: %q", got)
	}

	ru := New("ru")
	if got := ru.Message("errors.USER.NOT_FOUND"); got != "Пользователь не найден" {
		t.Errorf("ru: %q", got)
	}
}

func TestUnknownLocaleFallsBackToDefault(t *testing.T) {
	l := New("de")
	if got := l.Message("success.AUTH.LOGOUT"); got != "Signed out successfully" {
		t.Errorf("fallback: %q", got)
	}
}

func TestUnknownKeyRendersAsItself(t *testing.T) {
	l := New("en")
	if got := l.Message("errors.SOMETHING.NEW"); got != "errors.SOMETHING.NEW" {
		t.Errorf("unknown key: %q", got)
	}
}

func TestLocalizeCoreErrors(t *testing.T) {
	l := New("en")

	tests := []struct {
		err  error
		want string
	}{
		{adminauth.ErrUserNotFound, "User not found"},
		{adminauth.ErrInvalidPassword, "Invalid password"},
		{adminauth.ErrRefreshInvalid, "Invalid or expired refresh token"},
		{fmt.Errorf("wrapped: %w", adminauth.ErrTokenInvalid), "Invalid or expired token"},
		{fmt.Errorf("some io failure"), "Internal error"},
	}
	for _, tt := range tests {
		if got := l.Localize(tt.err); got != tt.want {
			t.Errorf("Localize(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestEveryBundleCoversEveryDefaultKey(t *testing.T) {
	for locale, msgs := range bundles {
		if locale == DefaultLocale {
			continue
		}
		for key := range bundles[DefaultLocale] {
			if _, ok := msgs[key]; !ok {
				t.Errorf("locale %q is missing key %q", locale, key)
			}
		}
	}
}
