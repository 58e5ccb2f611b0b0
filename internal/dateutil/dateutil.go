// Package dateutil provides the calendar arithmetic used everywhere in the
// bot. All values live in a single reference zone so that day boundaries are
// stable regardless of where the process runs.
package dateutil

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// DateLayout is the canonical serialization used in storage keys and
// interaction custom IDs.
const DateLayout = "2006-01-02"

var paris = mustLoadZone("Europe/Paris")

func mustLoadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("dateutil: load zone %s: %v", name, err))
	}
	return loc
}

// Date is an immutable instant pinned to the reference zone. Day arithmetic
// uses calendar days, not 24h offsets, so DST transitions do not shift the
// day boundary.
type Date struct {
	t time.Time
}

// Now returns the current instant in the reference zone.
func Now() Date {
	return Date{t: time.Now().In(paris)}
}

// FromTime pins an arbitrary instant to the reference zone.
func FromTime(t time.Time) Date {
	return Date{t: t.In(paris)}
}

// New builds a Date from calendar components, at midnight.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, paris)}
}

// Parse reads a YYYY-MM-DD string. The second return value is false on
// malformed input; Parse never panics.
func Parse(s string) (Date, bool) {
	t, err := time.ParseInLocation(DateLayout, s, paris)
	if err != nil {
		return Date{}, false
	}
	return Date{t: t}, true
}

// AddDays returns a new Date shifted by n calendar days. n may be negative.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Weekday reports the day of the business week, 1 = Monday .. 7 = Sunday.
func (d Date) Weekday() int {
	wd := int(d.t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// StartOfWeek returns the Monday of the week containing d.
func (d Date) StartOfWeek() Date {
	return d.AddDays(1 - d.Weekday())
}

// FirstDayOfMonth returns the 1st of the month containing d.
func (d Date) FirstDayOfMonth() Date {
	return New(d.t.Year(), d.t.Month(), 1)
}

// DaysInMonth returns the number of days in the month containing d.
func (d Date) DaysInMonth() int {
	first := d.FirstDayOfMonth()
	return first.t.AddDate(0, 1, -1).Day()
}

// SameDay reports date-only equality, ignoring time of day.
func (d Date) SameDay(o Date) bool {
	return d.t.Year() == o.t.Year() && d.t.YearDay() == o.t.YearDay()
}

// Before reports date-only ordering.
func (d Date) Before(o Date) bool {
	return d.String() < o.String()
}

// Hour returns the hour of day (0..23) in the reference zone, used by the
// scheduler thresholds.
func (d Date) Hour() int {
	return d.t.Hour()
}

// Day returns the day of month, 1-based.
func (d Date) Day() int {
	return d.t.Day()
}

// Time exposes the underlying instant.
func (d Date) Time() time.Time {
	return d.t
}

// String renders the canonical YYYY-MM-DD form. Parse(d.String()) yields the
// same calendar day.
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// ClockString renders HH:MM, used in reminder messages.
func (d Date) ClockString() string {
	return d.t.Format("15:04")
}

var frenchDays = [7]string{"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"}

var frenchMonths = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// DayLetters are the short column labels for charts, Monday first.
var DayLetters = [7]string{"Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"}

// FormatFull renders "lundi 2 mars 2026".
func (d Date) FormatFull() string {
	return fmt.Sprintf("%s %d %s %d",
		frenchDays[d.Weekday()-1], d.t.Day(), frenchMonths[int(d.t.Month())-1], d.t.Year())
}

// FormatMonthYear renders "mars 2026".
func (d Date) FormatMonthYear() string {
	return fmt.Sprintf("%s %d", frenchMonths[int(d.t.Month())-1], d.t.Year())
}
