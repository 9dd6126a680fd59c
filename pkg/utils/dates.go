package utils

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// IndiaLocation is the timezone journal dates are displayed in.
var IndiaLocation *time.Location

func init() {
	var err error
	IndiaLocation, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback to UTC+5:30
		IndiaLocation = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// ParseTime parses a backend timestamp or date. It returns the zero time and
// false when the value is empty or unparsable.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := cast.ToTimeInDefaultLocationE(s, IndiaLocation)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today returns the current date in IST at midnight.
func Today() time.Time {
	now := time.Now().In(IndiaLocation)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, IndiaLocation)
}

// FormatISODate formats a date as YYYY-MM-DD, the form the backend accepts.
func FormatISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDate formats a date for display.
func FormatDate(t time.Time) string {
	return t.In(IndiaLocation).Format("02-Jan-2006")
}
