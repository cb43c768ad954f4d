package cmd

import (
	"strings"
	"testing"

	"pomo/internal/domain"
)

func TestApplySetting(t *testing.T) {
	t.Run("numeric keys", func(t *testing.T) {
		settings := domain.DefaultSettings()
		if err := applySetting(&settings, "work_minutes", "45"); err != nil {
			t.Fatalf("applySetting() error = %v", err)
		}
		if settings.WorkMinutes != 45 {
			t.Errorf("WorkMinutes = %d, want 45", settings.WorkMinutes)
		}
	})

	t.Run("boolean keys", func(t *testing.T) {
		settings := domain.DefaultSettings()
		if err := applySetting(&settings, "sound", "false"); err != nil {
			t.Fatalf("applySetting() error = %v", err)
		}
		if settings.SoundEnabled {
			t.Error("SoundEnabled should be false")
		}
	})

	t.Run("bad value type", func(t *testing.T) {
		settings := domain.DefaultSettings()
		if err := applySetting(&settings, "work_minutes", "lots"); err == nil {
			t.Error("expected error for non-numeric value")
		}
	})

	t.Run("unknown key suggests a close match", func(t *testing.T) {
		settings := domain.DefaultSettings()
		err := applySetting(&settings, "work_mins", "30")
		if err == nil {
			t.Fatal("expected error for unknown key")
		}
		if !strings.Contains(err.Error(), "work_minutes") {
			t.Errorf("expected suggestion in error, got %q", err.Error())
		}
	})
}

func TestSuggestKey(t *testing.T) {
	if got := suggestKey("sessions"); got != "sessions_before_long_break" {
		t.Errorf("suggestKey(sessions) = %q", got)
	}
	if got := suggestKey("zzz"); got != "" {
		t.Errorf("suggestKey(zzz) = %q, want empty", got)
	}
}
