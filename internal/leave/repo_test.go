package leave

import (
	"testing"
	"time"
)

func TestMonthWindow(t *testing.T) {
	ist := time.FixedZone("UTC+5:30", 5*3600+1800)

	start, end := monthWindow(2024, time.March, ist)
	if !start.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, ist)) {
		t.Errorf("start = %s, want local midnight of March 1", start)
	}
	if !end.Equal(time.Date(2024, time.April, 1, 0, 0, 0, 0, ist)) {
		t.Errorf("end = %s, want local midnight of April 1", end)
	}

	// Created 2024-02-29 20:00 UTC, which is already March 1 locally:
	// a UTC window would misfile it into February.
	created := time.Date(2024, time.February, 29, 20, 0, 0, 0, time.UTC)
	if created.Before(start) || !created.Before(end) {
		t.Errorf("%s not inside local March window [%s, %s)", created, start, end)
	}

	// December rolls into the next year.
	start, end = monthWindow(2024, time.December, ist)
	if end.Year() != 2025 || end.Month() != time.January {
		t.Errorf("December window ends at %s, want January 2025", end)
	}
	if end.Sub(start) != 31*24*time.Hour {
		t.Errorf("December window spans %s, want 744h", end.Sub(start))
	}
}
