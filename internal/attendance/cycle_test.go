package attendance

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCurrentCycleWindows(t *testing.T) {
	first := day("2024-01-01")

	tests := []struct {
		name      string
		now       time.Time
		wantIndex int
		wantStart string
	}{
		{"first day", day("2024-01-01"), 0, "2024-01-01"},
		{"mid first window", day("2024-01-15"), 0, "2024-01-01"},
		{"day 30 starts second window", day("2024-01-31"), 1, "2024-01-31"},
		{"day 40 still second window", day("2024-02-10"), 1, "2024-01-31"},
		{"day 60 starts third window", day("2024-03-01"), 2, "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CurrentCycle(first, tt.now, 30)
			if c.Index != tt.wantIndex {
				t.Errorf("index = %d, want %d", c.Index, tt.wantIndex)
			}
			if got := c.Start.Format(DateLayout); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if want := c.Start.AddDate(0, 0, 30); !c.End.Equal(want) {
				t.Errorf("end = %v, want %v", c.End, want)
			}
		})
	}
}

func TestFilterCycleSplitsWindows(t *testing.T) {
	// Attendance on days 1, 15, 31, 40 relative to a first attendance on day 1.
	records := []Record{
		{ID: "a", Date: "2024-01-01"},
		{ID: "b", Date: "2024-01-15"},
		{ID: "c", Date: "2024-01-31"},
		{ID: "d", Date: "2024-02-09"},
	}
	first := day(records[0].Date)

	window0 := CurrentCycle(first, day("2024-01-15"), 30)
	got := FilterCycle(records, window0)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("window 0 = %v, want records a and b", ids(got))
	}

	window1 := CurrentCycle(first, day("2024-02-09"), 30)
	got = FilterCycle(records, window1)
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "d" {
		t.Fatalf("window 1 = %v, want records c and d", ids(got))
	}
}

func TestFilterCycleSkipsBadDates(t *testing.T) {
	records := []Record{
		{ID: "a", Date: "2024-01-01"},
		{ID: "b", Date: "not-a-date"},
	}
	c := CurrentCycle(day("2024-01-01"), day("2024-01-02"), 30)
	got := FilterCycle(records, c)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("got %v, want only record a", ids(got))
	}
}

func TestEstimateBill(t *testing.T) {
	tests := []struct {
		name       string
		attendance int
		leaves     int
		rate       int
		want       int
	}{
		{"ten meals two leaves", 10, 2, 80, 640},
		{"no leaves", 5, 0, 80, 400},
		{"all on leave", 3, 3, 80, 0},
		{"custom rate", 4, 1, 100, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateBill(tt.attendance, tt.leaves, tt.rate); got != tt.want {
				t.Errorf("EstimateBill(%d, %d, %d) = %d, want %d", tt.attendance, tt.leaves, tt.rate, got, tt.want)
			}
		})
	}
}

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
