package attendance

import "time"

// DateLayout is the calendar-day format used on records and QR codes.
const DateLayout = "2006-01-02"

// Cycle is one rolling billing window anchored at the first-ever attendance.
type Cycle struct {
	Index int       `json:"index"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"` // exclusive
}

// CurrentCycle computes the rolling window containing now. Windows repeat
// every cycleDays days from the first attendance date; membership is
// [start, start+cycleDays).
func CurrentCycle(first, now time.Time, cycleDays int) Cycle {
	if cycleDays <= 0 {
		cycleDays = 30
	}
	days := int(now.Sub(first).Hours() / 24)
	idx := 0
	if days > 0 {
		idx = days / cycleDays
	}
	start := first.AddDate(0, 0, idx*cycleDays)
	return Cycle{
		Index: idx,
		Start: start,
		End:   start.AddDate(0, 0, cycleDays),
	}
}

// FilterCycle returns the records whose date falls inside the cycle window.
// Records with unparseable dates are skipped.
func FilterCycle(records []Record, c Cycle) []Record {
	var out []Record
	for _, rec := range records {
		d, err := time.Parse(DateLayout, rec.Date)
		if err != nil {
			continue
		}
		if !d.Before(c.Start) && d.Before(c.End) {
			out = append(out, rec)
		}
	}
	return out
}

// EstimateBill prices the current cycle: attended meals minus approved
// leaves, times the per-meal rate. The leave count is calendar-month based
// while attendance is rolling-window based; that mismatch matches the
// deployed behavior and is kept until product says otherwise.
func EstimateBill(cycleAttendance, approvedLeaves, mealRate int) int {
	return (cycleAttendance - approvedLeaves) * mealRate
}
