package domain

import (
	"fmt"
	"strings"
	"time"
)

// SameDay reports whether d falls on the same calendar day as now, in
// now's location. A nil d is treated as "today".
func SameDay(d *time.Time, now time.Time) bool {
	if d == nil {
		return true
	}
	y1, m1, d1 := d.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// PrevDay shifts the reference date one calendar day backward.
func PrevDay(d time.Time) time.Time {
	return d.AddDate(0, 0, -1)
}

// NextDay shifts the reference date one calendar day forward.
// Inverse of PrevDay for any calendar date.
func NextDay(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// StartOfDay returns midnight at the start of d's calendar day.
func StartOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}

// EndOfDay returns midnight at the start of the following calendar day.
// Day ranges are half-open: [StartOfDay, EndOfDay).
func EndOfDay(d time.Time) time.Time {
	return StartOfDay(d).AddDate(0, 0, 1)
}

// MorningOf normalizes d to 08:00:00 of its calendar day. Used as the
// default working-day start when a record is logged for a past date.
func MorningOf(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 8, 0, 0, 0, d.Location())
}

// FormatHours renders an hour count with two-decimal precision, e.g. "7.50".
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

// WeekdayKey returns the translation key for d's short weekday label,
// e.g. "common.weekday.short.monday".
func WeekdayKey(d time.Time) string {
	return "common.weekday.short." + strings.ToLower(d.Weekday().String())
}

// DateLabel renders d as "day.month.year" without zero padding, e.g. "2.1.2026".
func DateLabel(d time.Time) string {
	return d.Format("2.1.2006")
}

// ClockLabel renders the time-of-day component of d as "HH:MM".
func ClockLabel(d time.Time) string {
	return d.Format("15:04")
}
