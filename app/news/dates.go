package news

import "time"

// DateRange returns the from/to calendar dates (YYYY-MM-DD) covering
// the last days days up to now, in now's location. The strings match
// the upstream API's date parameters, where both bounds are inclusive.
func DateRange(now time.Time, days int) (from, to string) {
	to = now.Format("2006-01-02")
	from = now.AddDate(0, 0, -days).Format("2006-01-02")
	return from, to
}
