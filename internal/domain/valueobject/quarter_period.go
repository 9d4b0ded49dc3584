// Package valueobject contains domain value objects for the back-office system.
package valueobject

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// MonthLayout is the layout used for salary payment months (YYYY-MM).
const MonthLayout = "2006-01"

// ErrInvalidQuarterID is returned when a quarter identifier cannot be parsed.
var ErrInvalidQuarterID = errors.New("quarter id must look like Q<1-4>-<year>")

var quarterIDPattern = regexp.MustCompile(`^Q([1-4])-(\d{4})$`)

// QuarterPeriod is the canonical calendar quarter containing a date.
// StartDate and EndDate are both inclusive and expressed as UTC midnights.
type QuarterPeriod struct {
	Number    int
	Year      int
	StartDate time.Time
	EndDate   time.Time
	QuarterID string
}

// ResolveQuarter maps a calendar date to the quarter containing it.
// Dates are read in UTC, the zone records are stored and queried in.
func ResolveQuarter(date time.Time) QuarterPeriod {
	date = date.UTC()
	number := (int(date.Month())-1)/3 + 1
	return NewQuarterPeriod(number, date.Year())
}

// NewQuarterPeriod builds the period for quarter number (1-4) of year.
// Callers are expected to validate number; see ParseQuarterID.
func NewQuarterPeriod(number, year int) QuarterPeriod {
	firstMonth := time.Month((number-1)*3 + 1)
	start := time.Date(year, firstMonth, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the month after the third month is the last day of the quarter.
	end := time.Date(year, firstMonth+3, 0, 0, 0, 0, 0, time.UTC)

	return QuarterPeriod{
		Number:    number,
		Year:      year,
		StartDate: start,
		EndDate:   end,
		QuarterID: FormatQuarterID(number, year),
	}
}

// FormatQuarterID returns the canonical identifier, e.g. "Q1-2025".
func FormatQuarterID(number, year int) string {
	return fmt.Sprintf("Q%d-%d", number, year)
}

// ParseQuarterID parses an identifier such as "Q3-2024" into its period.
func ParseQuarterID(id string) (QuarterPeriod, error) {
	matches := quarterIDPattern.FindStringSubmatch(id)
	if matches == nil {
		return QuarterPeriod{}, ErrInvalidQuarterID
	}

	number, _ := strconv.Atoi(matches[1])
	year, _ := strconv.Atoi(matches[2])
	return NewQuarterPeriod(number, year), nil
}

// QuarterMonths returns the three YYYY-MM months belonging to a quarter.
func QuarterMonths(number, year int) []string {
	months := make([]string, 0, 3)
	first := time.Month((number-1)*3 + 1)
	for i := 0; i < 3; i++ {
		months = append(months, time.Date(year, first+time.Month(i), 1, 0, 0, 0, 0, time.UTC).Format(MonthLayout))
	}
	return months
}

// Months returns the three YYYY-MM months of the period.
func (p QuarterPeriod) Months() []string {
	return QuarterMonths(p.Number, p.Year)
}

// Contains reports whether date falls within [StartDate, EndDate], compared by UTC calendar day.
func (p QuarterPeriod) Contains(date time.Time) bool {
	day := truncateToDay(date)
	return !day.Before(p.StartDate) && !day.After(p.EndDate)
}

// ContainsMonth reports whether a YYYY-MM month string belongs to the period.
func (p QuarterPeriod) ContainsMonth(month string) bool {
	for _, m := range p.Months() {
		if m == month {
			return true
		}
	}
	return false
}

// EndOfRange returns the last instant of EndDate, for range queries against timestamps.
func (p QuarterPeriod) EndOfRange() time.Time {
	return p.EndDate.Add(24*time.Hour - time.Nanosecond)
}

// String implements fmt.Stringer.
func (p QuarterPeriod) String() string {
	return p.QuarterID
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
