package attendance

import (
	"strings"
	"testing"
	"time"
)

func TestCSVFormat(t *testing.T) {
	records := []Record{
		{Date: "2024-03-01", Time: "12:30:00", UserEmail: "a@example.com", MealType: "lunch"},
		{Date: "2024-03-02", Time: "19:05:10", UserEmail: "b@example.com", MealType: ""},
	}

	out := CSV(records)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != "Date,Time,Email,MealType" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2024-03-01,12:30:00,a@example.com,lunch" {
		t.Errorf("row 1 = %q", lines[1])
	}
	// Empty meal type falls back to general.
	if lines[2] != "2024-03-02,19:05:10,b@example.com,general" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestCSVEmpty(t *testing.T) {
	if out := CSV(nil); out != "Date,Time,Email,MealType" {
		t.Errorf("empty export = %q, want header only", out)
	}
}

func TestCSVFilename(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	if got := CSVFilename(now); got != "attendance-data-2024-03-05.csv" {
		t.Errorf("filename = %q", got)
	}
}
