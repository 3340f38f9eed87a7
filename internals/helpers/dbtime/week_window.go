// file: internals/helpers/dbtime/week_window.go
package dbtime

import "time"

// WeekWindow returns the Monday 00:00 and Sunday 23:59 bounds of the
// calendar week containing t, in t's location. Pure; used to scope all
// week-based slot and availability queries.
func WeekWindow(t time.Time) (time.Time, time.Time) {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute)
	return monday, sunday
}

// NowIn returns the current time in loc, defaulting to UTC when loc is
// nil. Week anchors must all resolve "today" in the same location or a
// request near midnight lands in a different week per handler.
func NowIn(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}

// WeekDates returns the seven dates of the week containing t, Monday first.
func WeekDates(t time.Time) []time.Time {
	monday, _ := WeekWindow(t)
	out := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, monday.AddDate(0, 0, i))
	}
	return out
}
