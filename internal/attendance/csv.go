package attendance

import (
	"strings"
	"time"
)

// csvHeader is the fixed column order of the attendance export.
const csvHeader = "Date,Time,Email,MealType"

// CSV renders records in the fixed export format: a header line then one
// line per record, fields comma-joined. Fields are written raw, without
// quoting; the format is part of the download contract.
func CSV(records []Record) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, csvHeader)
	for _, rec := range records {
		mealType := rec.MealType
		if mealType == "" {
			mealType = "general"
		}
		lines = append(lines, strings.Join([]string{rec.Date, rec.Time, rec.UserEmail, mealType}, ","))
	}
	return strings.Join(lines, "\n")
}

// CSVFilename names the download after the export day.
func CSVFilename(now time.Time) string {
	return "attendance-data-" + now.Format(DateLayout) + ".csv"
}
