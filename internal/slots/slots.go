package slots

import (
	"fmt"
	"time"
)

// Clinic business constants.
const (
	// IntervalMinutes is the bookable slot width.
	IntervalMinutes = 20

	// Duration of a single appointment.
	Duration = IntervalMinutes * time.Minute

	// ClosedDay is the weekly day the clinic does not take bookings.
	ClosedDay = time.Sunday

	// DateLayout is the wire format for appointment dates.
	DateLayout = "2006-01-02"
)

// Range is an inclusive clinic-hours window. Slot arithmetic restarts at the
// start of each range, so ranges never blend their offsets.
type Range struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// ClinicHours are the three daily booking windows: morning, afternoon, evening.
var ClinicHours = []Range{
	{StartHour: 9, StartMinute: 0, EndHour: 11, EndMinute: 30},
	{StartHour: 14, StartMinute: 0, EndHour: 16, EndMinute: 30},
	{StartHour: 17, StartMinute: 0, EndHour: 18, EndMinute: 30},
}

// Generate expands the clinic-hours ranges into the day's ordered slot labels
// in 12-hour "HH:MM AM/PM" format. Deterministic; 21 labels for the default
// ranges.
func Generate() []string {
	return GenerateFor(ClinicHours)
}

// GenerateFor expands the given ranges at the fixed interval.
func GenerateFor(ranges []Range) []string {
	var labels []string
	for _, r := range ranges {
		for hour := r.StartHour; hour <= r.EndHour; hour++ {
			minute := 0
			if hour == r.StartHour {
				minute = r.StartMinute
			}
			for ; minute < 60; minute += IntervalMinutes {
				if hour == r.EndHour && minute > r.EndMinute {
					break
				}
				labels = append(labels, FormatLabel(hour, minute))
			}
		}
	}
	return labels
}

// FormatLabel renders a 24-hour clock time as a 12-hour slot label,
// e.g. (14, 20) -> "02:20 PM".
func FormatLabel(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour12 := hour
	switch {
	case hour > 12:
		hour12 = hour - 12
	case hour == 0:
		hour12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", hour12, minute, period)
}

// ParseLabel converts a slot label back to 24-hour clock values.
func ParseLabel(label string) (hour, minute int, err error) {
	var period string
	if _, err = fmt.Sscanf(label, "%d:%d %s", &hour, &minute, &period); err != nil {
		return 0, 0, fmt.Errorf("invalid slot label %q: %w", label, err)
	}
	switch period {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, 0, fmt.Errorf("invalid slot label %q: bad period %q", label, period)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid slot label %q: out of range", label)
	}
	return hour, minute, nil
}

// At resolves a slot label on a calendar date to a wall-clock instant in the
// date's location.
func At(date time.Time, label string) (time.Time, error) {
	hour, minute, err := ParseLabel(label)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, date.Location()), nil
}

// FilterPast drops labels that are no longer bookable at the given instant.
// Only same-day selections are filtered: future dates pass through untouched.
// Unparseable labels are dropped rather than propagated.
func FilterPast(labels []string, date, now time.Time) []string {
	if !sameDay(date, now) {
		return labels
	}
	filtered := make([]string, 0, len(labels))
	for _, label := range labels {
		at, err := At(date, label)
		if err != nil {
			continue
		}
		if at.After(now) {
			filtered = append(filtered, label)
		}
	}
	return filtered
}

// Selectable reports whether a date may be booked: not strictly before today
// (midnight-normalized) and not on the clinic's closed day. Gates the date
// picker and is re-checked before slot generation and at booking time.
func Selectable(date, now time.Time) bool {
	today := midnight(now)
	return !midnight(date).Before(today) && date.Weekday() != ClosedDay
}

// Available is the full availability pipeline for a date: eligibility check,
// generation, then same-day filtering. An ineligible date yields nil.
func Available(date, now time.Time) []string {
	if !Selectable(date, now) {
		return nil
	}
	return FilterPast(Generate(), date, now)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
