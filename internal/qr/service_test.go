package qr

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValueFormat(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	v := Value(now)
	if !strings.HasPrefix(v, "meal-attendance-2024-03-05-") {
		t.Fatalf("value = %q", v)
	}
	// The trailing token is the millisecond timestamp.
	token := strings.TrimPrefix(v, "meal-attendance-2024-03-05-")
	if token == "" {
		t.Fatal("missing uniqueness token")
	}
}

func TestCheckDate(t *testing.T) {
	tests := []struct {
		name     string
		codeDate string
		today    string
		wantErr  error
	}{
		{"same day", "2024-03-05", "2024-03-05", nil},
		{"yesterday's code", "2024-03-04", "2024-03-05", ErrNotToday},
		{"tomorrow's code", "2024-03-06", "2024-03-05", ErrNotToday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDate(tt.codeDate, tt.today)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckDate(%q, %q) = %v, want %v", tt.codeDate, tt.today, err, tt.wantErr)
			}
		})
	}

	if err := CheckDate("garbage", "2024-03-05"); err == nil {
		t.Error("expected error for malformed code date")
	}
}

func TestPNG(t *testing.T) {
	png, err := PNG("meal-attendance-2024-03-05-1709640000000", 0)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("empty image")
	}
	// PNG magic bytes.
	if string(png[1:4]) != "PNG" {
		t.Errorf("not a png: % x", png[:8])
	}
}
