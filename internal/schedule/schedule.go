// Package schedule gates levels 3 to 6 by calendar. Levels 3 and 4 share the
// weekday tier, levels 5 and 6 share the day-of-month tier.
package schedule

import (
	"fmt"
	"slices"
	"time"

	"github.com/vytor/nihaocards/internal/models"
)

// Weekdays are the weekday names stored in a schedule, Monday first.
var Weekdays = []string{"จันทร์", "อังคาร", "พุธ", "พฤหัส", "ศุกร์", "เสาร์", "อาทิตย์"}

const (
	Lv3Capacity = 2
	Lv4Capacity = 1
	Lv5Capacity = 2
	Lv6Capacity = 1

	MinDate = 1
	MaxDate = 30
)

// WeekdayName returns the stored name of t's weekday.
func WeekdayName(t time.Time) string {
	// time.Weekday starts on Sunday.
	return Weekdays[(int(t.Weekday())+6)%7]
}

// IsLevelAvailable reports whether a session at level may start on today.
func IsLevelAvailable(s models.Schedule, level models.Level, today time.Time) bool {
	switch level {
	case 3:
		return slices.Contains(s.Lv3, WeekdayName(today))
	case 4:
		return slices.Contains(s.Lv4, WeekdayName(today))
	case 5:
		return slices.Contains(s.Lv5, today.Day())
	case 6:
		return slices.Contains(s.Lv6, today.Day())
	default:
		return true
	}
}

// ToggleWeekday applies a tap on day to the weekday tier.
func ToggleWeekday(s models.Schedule, day string) (models.Schedule, error) {
	if !slices.Contains(Weekdays, day) {
		return s, fmt.Errorf("unknown weekday %q", day)
	}
	s.Lv3, s.Lv4 = toggle(s.Lv3, s.Lv4, day, Lv3Capacity, Lv4Capacity)
	return s, nil
}

// ToggleDate applies a tap on a day of month to the monthly tier.
func ToggleDate(s models.Schedule, date int) (models.Schedule, error) {
	if date < MinDate || date > MaxDate {
		return s, fmt.Errorf("date must be between %d and %d, got %d", MinDate, MaxDate, date)
	}
	s.Lv5, s.Lv6 = toggle(s.Lv5, s.Lv6, date, Lv5Capacity, Lv6Capacity)
	return s, nil
}

// toggle removes v from whichever list holds it; otherwise it adds v to the
// first list with room. A removal from b never reassigns v to a.
func toggle[T comparable](a, b []T, v T, capA, capB int) ([]T, []T) {
	if i := slices.Index(a, v); i >= 0 {
		return slices.Delete(slices.Clone(a), i, i+1), b
	}
	if i := slices.Index(b, v); i >= 0 {
		return a, slices.Delete(slices.Clone(b), i, i+1)
	}
	if len(a) < capA {
		return append(slices.Clone(a), v), b
	}
	if len(b) < capB {
		return a, append(slices.Clone(b), v)
	}
	return a, b
}

// Normalize drops unknown names, out of range dates, duplicates, cross-tier
// overlaps and entries beyond capacity from a schedule read from storage.
func Normalize(s models.Schedule) models.Schedule {
	valid := func(d string) bool { return slices.Contains(Weekdays, d) }
	s.Lv3 = keep(s.Lv3, nil, Lv3Capacity, valid)
	s.Lv4 = keep(s.Lv4, s.Lv3, Lv4Capacity, valid)

	inRange := func(d int) bool { return d >= MinDate && d <= MaxDate }
	s.Lv5 = keep(s.Lv5, nil, Lv5Capacity, inRange)
	s.Lv6 = keep(s.Lv6, s.Lv5, Lv6Capacity, inRange)
	return s
}

func keep[T comparable](list, taken []T, capacity int, valid func(T) bool) []T {
	out := make([]T, 0, capacity)
	for _, v := range list {
		if len(out) == capacity {
			break
		}
		if valid(v) && !slices.Contains(out, v) && !slices.Contains(taken, v) {
			out = append(out, v)
		}
	}
	return out
}
