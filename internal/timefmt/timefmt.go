package timefmt

import "time"

var weekdays = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

// Label renders a conversation timestamp the way the chat list shows it:
// time of day for today, "Ontem" for yesterday, the weekday name for the
// last six days, the full date beyond that. Day boundaries are calendar
// days in t's location, not 24h windows.
func Label(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	switch d := daysBetween(t, now); {
	case d <= 0:
		return t.Format("15:04")
	case d == 1:
		return "Ontem"
	case d < 7:
		return weekdays[t.Weekday()]
	default:
		return t.Format("02/01/2006")
	}
}

// TimeOfDay is the label on individual message bubbles.
func TimeOfDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}

func daysBetween(t, now time.Time) int {
	loc := t.Location()
	a := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	n := now.In(loc)
	b := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	// round so a DST-shortened day still counts as one day
	return int(b.Sub(a).Round(24*time.Hour) / (24 * time.Hour))
}
