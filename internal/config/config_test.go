package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.MealRate != 80 {
		t.Errorf("MealRate = %d, want 80", cfg.MealRate)
	}
	if cfg.CycleDays != 30 {
		t.Errorf("CycleDays = %d, want 30", cfg.CycleDays)
	}
	if cfg.AccessTTL != 15*time.Minute {
		t.Errorf("AccessTTL = %s, want 15m", cfg.AccessTTL)
	}
	if len(cfg.AdminEmails) != 0 {
		t.Errorf("AdminEmails = %v, want empty", cfg.AdminEmails)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MEAL_RATE", "95")
	t.Setenv("ACCESS_TTL", "30m")
	t.Setenv("ADMIN_EMAILS", "a@mess.example, b@mess.example ,")

	cfg := Load()
	if cfg.MealRate != 95 {
		t.Errorf("MealRate = %d, want 95", cfg.MealRate)
	}
	if cfg.AccessTTL != 30*time.Minute {
		t.Errorf("AccessTTL = %s, want 30m", cfg.AccessTTL)
	}
	if len(cfg.AdminEmails) != 2 || cfg.AdminEmails[0] != "a@mess.example" || cfg.AdminEmails[1] != "b@mess.example" {
		t.Errorf("AdminEmails = %v", cfg.AdminEmails)
	}
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("MEAL_RATE", "not-a-number")
	t.Setenv("ACCESS_TTL", "soon")

	cfg := Load()
	if cfg.MealRate != 80 {
		t.Errorf("MealRate = %d, want fallback 80", cfg.MealRate)
	}
	if cfg.AccessTTL != 15*time.Minute {
		t.Errorf("AccessTTL = %s, want fallback 15m", cfg.AccessTTL)
	}
}

func TestIsAdminEmail(t *testing.T) {
	cfg := App{AdminEmails: []string{"admin@mess.example"}}
	if !cfg.IsAdminEmail("Admin@Mess.Example") {
		t.Error("case-insensitive match failed")
	}
	if cfg.IsAdminEmail("student@mess.example") {
		t.Error("non-admin matched")
	}
}
