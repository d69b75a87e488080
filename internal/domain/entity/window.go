package entity

import "time"

const dateLayout = "2006-01-02"

// Window is the one-day period queried from the billing API. Start is
// inclusive and End exclusive, both at midnight in the report timezone.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveWindow returns the full calendar day before now, in loc.
// A nil loc means UTC.
func ResolveWindow(now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return WindowForDate(time.Date(local.Year(), local.Month(), local.Day()-1, 0, 0, 0, 0, loc))
}

// WindowForDate returns the window covering the calendar day of day.
func WindowForDate(day time.Time) Window {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return Window{
		Start: start,
		// AddDate mantém meia-noite mesmo em dias com mudança de horário
		End: start.AddDate(0, 0, 1),
	}
}

// StartDate renders the window start as YYYY-MM-DD.
func (w Window) StartDate() string {
	return w.Start.Format(dateLayout)
}

// EndDate renders the window end as YYYY-MM-DD.
func (w Window) EndDate() string {
	return w.End.Format(dateLayout)
}

// Location returns the timezone name the window was resolved in.
func (w Window) Location() string {
	return w.Start.Location().String()
}
