package analytics

import "time"

// DiaUtil reports whether t falls on a business day (Mon–Fri).
// The daily report trigger is gated on this predicate: weekend
// invocations skip silently instead of sending.
func DiaUtil(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// dataLocal truncates t to its local calendar date.
func dataLocal(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// inicioSemana returns the local date of the Sunday that starts the week of t.
func inicioSemana(t time.Time) time.Time {
	d := dataLocal(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// diasEntre returns the whole calendar days from a to b.
func diasEntre(a, b time.Time) int {
	return int(dataLocal(b).Sub(dataLocal(a)).Hours() / 24)
}
