package circulation

import "time"

// ToDate normalizes t to its calendar day: midnight UTC of the date t shows in its own location.
// All loan dates are compared with day granularity.
func ToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from "from" to "to", negative if "to" lies before "from".
func DaysBetween(from time.Time, to time.Time) int {
	return int(ToDate(to).Sub(ToDate(from)).Hours() / 24)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}

	return ToDate(t), nil
}
