// Package dates turns the date strings found on news pages into timestamps.
package dates

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Tried in order after case folding. DD/MM wins over MM/DD when both parse.
var absoluteLayouts = []string{
	"January 2, 2006",
	"2 January 2006",
	"2006-1-2",
	"2/1/2006",
	"1/2/2006",
}

// Machine-readable values from datetime attributes and embedded metadata.
var machineLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

var (
	relativeExpr = regexp.MustCompile(`(\d+)\s+(\w+)\s+ago`)
	looseExpr    = regexp.MustCompile(`(?:^|\D)(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})(?:\D|$)`)
)

const (
	day   = 24 * time.Hour
	month = 30 * day
	year  = 365 * day
)

var relativeUnits = map[string]time.Duration{
	"second": time.Second,
	"sec":    time.Second,
	"minute": time.Minute,
	"min":    time.Minute,
	"hour":   time.Hour,
	"hr":     time.Hour,
	"day":    day,
	"week":   7 * day,
	"wk":     7 * day,
	"month":  month,
	"mo":     month,
	"year":   year,
	"yr":     year,
}

// Interpreter parses date text relative to a clock.
type Interpreter struct {
	Now func() time.Time
}

// New returns an Interpreter using the wall clock.
func New() *Interpreter {
	return &Interpreter{Now: time.Now}
}

// Parse interprets raw with the wall clock.
func Parse(raw string) (time.Time, bool) {
	return New().Interpret(raw)
}

// Interpret returns the timestamp described by raw, or false when nothing matches.
// Absolute dates are read in the location of the interpreter's clock.
func (i *Interpreter) Interpret(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	text := strings.ToLower(trimmed)
	now := i.now()
	loc := now.Location()

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t, true
		}
	}

	for _, layout := range machineLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return t, true
		}
	}

	if strings.Contains(text, "ago") {
		if t, ok := relative(text, now); ok {
			return t, true
		}
	}

	if strings.Contains(text, "yesterday") {
		return now.Add(-day), true
	}
	if strings.Contains(text, "today") {
		return now, true
	}

	return loose(text, loc)
}

func (i *Interpreter) now() time.Time {
	if i == nil || i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

func relative(text string, now time.Time) (time.Time, bool) {
	m := relativeExpr.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	unit, ok := relativeUnits[strings.TrimRight(m[2], "s")]
	if !ok {
		return time.Time{}, false
	}
	if unit >= day {
		days := int(unit / day)
		// Offsets past MaxInt32 days are reported as absent.
		if n > math.MaxInt32/days {
			return time.Time{}, false
		}
		return now.AddDate(0, 0, -n*days), true
	}
	if int64(n) > math.MaxInt64/int64(unit) {
		return time.Time{}, false
	}
	return now.Add(-time.Duration(n) * unit), true
}

func loose(text string, loc *time.Location) (time.Time, bool) {
	m := looseExpr.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	d, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(m[3])
	if y < 100 {
		if y < 50 {
			y += 2000
		} else {
			y += 1900
		}
	}
	if mo < 1 || mo > 12 || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, loc)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}
