package schedule

import (
	"fmt"
	"strings"
	"time"

	"gatepass/core/model"
)

// Selection describes a recurring schedule: which weekdays to reserve and
// for how many weeks from the anchor date.
type Selection struct {
	Weekdays []time.Weekday `json:"weekdays"`
	Weeks    int            `json:"weeks"`
}

// Expand returns every calendar date from anchor through anchor plus
// weeks*7 days inclusive whose weekday is selected, ascending. An empty
// weekday set yields an empty result, not an error. Pure: same inputs,
// same output.
//
// Upper bounds on Weeks are caller policy; the CLI clamps before calling.
func Expand(sel Selection, anchor time.Time) []time.Time {
	if len(sel.Weekdays) == 0 {
		return nil
	}
	want := make(map[time.Weekday]bool, len(sel.Weekdays))
	for _, wd := range sel.Weekdays {
		want[wd] = true
	}
	start := model.Day(anchor)
	end := start.AddDate(0, 0, sel.Weeks*7)
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if want[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekdays parses a comma-separated list of weekday names, short or
// long form, case-insensitive. Duplicates collapse.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var out []time.Weekday
	seen := make(map[time.Weekday]bool)
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		wd, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		if !seen[wd] {
			seen[wd] = true
			out = append(out, wd)
		}
	}
	return out, nil
}
