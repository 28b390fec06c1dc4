package sam

import "time"

// dateLayout is the MM/DD/YYYY format the search API expects for the
// postedFrom/postedTo query parameters.
const dateLayout = "01/02/2006"

// WindowFor derives the posted-date search window from now: from is shifted
// monthsBack calendar months into the past, to is shifted monthsForward into
// the future. Day-of-month is preserved; when it overflows the target month,
// Go's AddDate normalization applies (Jan 31 back one month is Dec 31, but
// Jan 31 forward one month rolls into early March).
func WindowFor(now time.Time, monthsBack, monthsForward int) (from, to time.Time) {
	return now.AddDate(0, -monthsBack, 0), now.AddDate(0, monthsForward, 0)
}

// FormatDate renders a time as MM/DD/YYYY for the query protocol.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
