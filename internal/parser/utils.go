package parser

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts covers the formats the Aloha and Zoho exports have been seen to
// emit, plus the common ISO fallback.
var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
	"1/2/06",
	"01-02-06",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02 15:04:05",
}

// clockLayouts covers the time-of-day column formats.
var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"15:04",
	"3:04:05 PM",
	"15:04:05",
}

// excel serial date epoch (1899-12-30, accounting for the 1900 leap-year bug)
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// NormalizeHeader lowercases and trims a column header.
func NormalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseDate parses a date cell. Returns nil on anything unparseable; bad
// values are excluded from derived features downstream, never fatal.
func ParseDate(text string) *time.Time {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}

	// Unformatted date cells come through as excel serial numbers
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < 200000 {
		d := excelEpoch.AddDate(0, 0, int(serial))
		return &d
	}

	return nil
}

// ParseClock parses a time-of-day cell into an offset from midnight.
func ParseClock(text string) (time.Duration, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second
			return d, true
		}
	}

	// Fractional-day serial, e.g. 0.5 for noon
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 0 && serial < 1 {
		return time.Duration(serial * 24 * float64(time.Hour)), true
	}

	return 0, false
}

// CombineDateTime builds a full timestamp from a date cell and a time-of-day
// cell. Either side failing to parse yields nil, not an error.
func CombineDateTime(dateText, timeText string) *time.Time {
	date := ParseDate(dateText)
	if date == nil {
		return nil
	}
	clock, ok := ParseClock(timeText)
	if !ok {
		return nil
	}
	t := date.Add(clock)
	return &t
}

// ParseFloat coerces a numeric cell, nil on non-numeric content.
func ParseFloat(text string) *float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
