package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSlotKey is returned when a slot key string cannot be parsed
var ErrInvalidSlotKey = errors.New("invalid slot key")

// slotKeyDateLen is the fixed width of the date part ("2006-01-02")
const slotKeyDateLen = 10

// SlotKey identifies a slot by calendar date and time band. The string
// form is "YYYY-MM-DD_<bandID>". The date part has a fixed width, so
// parsing stays unambiguous even when band identifiers contain '_' or '-'.
type SlotKey struct {
	Date       time.Time // calendar day, midnight UTC
	TimeBandID string
}

// NewSlotKey builds a key, truncating date to its calendar day
func NewSlotKey(date time.Time, timeBandID string) SlotKey {
	return SlotKey{Date: DateOnly(date), TimeBandID: timeBandID}
}

// ParseSlotKey parses the "YYYY-MM-DD_<bandID>" string form
func ParseSlotKey(s string) (SlotKey, error) {
	if len(s) < slotKeyDateLen+2 || s[slotKeyDateLen] != '_' {
		return SlotKey{}, fmt.Errorf("%w: %q", ErrInvalidSlotKey, s)
	}

	date, err := time.ParseInLocation(DateFormat, s[:slotKeyDateLen], time.UTC)
	if err != nil {
		return SlotKey{}, fmt.Errorf("%w: %q", ErrInvalidSlotKey, s)
	}

	return SlotKey{Date: date, TimeBandID: s[slotKeyDateLen+1:]}, nil
}

// String renders the canonical "YYYY-MM-DD_<bandID>" form
func (k SlotKey) String() string {
	return k.Date.Format(DateFormat) + "_" + k.TimeBandID
}

// IsZero reports whether the key is empty
func (k SlotKey) IsZero() bool {
	return k.Date.IsZero() && k.TimeBandID == ""
}

// DateOnly strips the clock part of t, keeping the calendar day in UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
