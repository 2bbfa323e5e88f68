package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

var errInvalidRange = errors.New("invalid time range format")

// TimeRange is a half-open interval of the day in "HH:MM-HH:MM" form
// ("06:00-07:00"). Start is inclusive, End exclusive.
type TimeRange struct {
	Start TimeString
	End   TimeString
}

// NewTimeRangeFromString parses s as "HH:MM-HH:MM"
func NewTimeRangeFromString(s string) (TimeRange, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("%w: %q", errInvalidRange, s)
	}

	start, err := NewTimeStringFromString(parts[0])
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q", errInvalidRange, s)
	}
	end, err := NewTimeStringFromString(parts[1])
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q", errInvalidRange, s)
	}
	if !start.IsBefore(end) {
		return TimeRange{}, fmt.Errorf("%w: start must precede end in %q", errInvalidRange, s)
	}

	return TimeRange{Start: start, End: end}, nil
}

// IsZero reports whether the range is empty
func (r TimeRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Overlaps reports whether two ranges share any time. Touching
// boundaries (one ends exactly where the other starts) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// EndOn returns the concrete instant at which the range ends on the given day
func (r TimeRange) EndOn(day time.Time) (time.Time, error) {
	return r.End.On(day)
}

// String implements fmt.Stringer, producing the canonical "HH:MM-HH:MM" form
func (r TimeRange) String() string {
	return string(r.Start) + "-" + string(r.End)
}

// Value implements driver.Valuer
func (r TimeRange) Value() (driver.Value, error) {
	return r.String(), nil
}

// Scan implements sql.Scanner
func (r *TimeRange) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*r = TimeRange{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeRange", src)
	}

	parsed, err := NewTimeRangeFromString(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for JSON round-trips
func (r TimeRange) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *TimeRange) UnmarshalText(text []byte) error {
	parsed, err := NewTimeRangeFromString(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
