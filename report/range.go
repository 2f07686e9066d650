package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the accepted format for report dates
const DateLayout = "2006-01-02"

var (
	ErrMissingDate = errors.New("start and end dates are required (format: YYYY-MM-DD)")
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
)

// Range is an inclusive span of calendar days in a given location
type Range struct {
	Start time.Time // midnight of the first day
	End   time.Time // midnight of the last day
}

// ParseRange parses start and end dates in loc. A nil loc means UTC.
// An end before start is accepted and selects no orders.
func ParseRange(start, end string, loc *time.Location) (Range, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" || end == "" {
		return Range{}, ErrMissingDate
	}
	if loc == nil {
		loc = time.UTC
	}

	from, err := time.ParseInLocation(DateLayout, start, loc)
	if err != nil {
		return Range{}, fmt.Errorf("%w: start %q", ErrInvalidDate, start)
	}
	to, err := time.ParseInLocation(DateLayout, end, loc)
	if err != nil {
		return Range{}, fmt.Errorf("%w: end %q", ErrInvalidDate, end)
	}
	return Range{Start: from, End: to}, nil
}

// ResolveRange converts calendar dates into a half-open interval of instants:
// [start 00:00, end 00:00 + 1 day). The extra day keeps every order placed on
// the end date.
func ResolveRange(start, end time.Time) (time.Time, time.Time) {
	from := midnight(start)
	to := midnight(end).AddDate(0, 0, 1)
	return from, to
}

// Bounds returns the half-open interval covered by r
func (r Range) Bounds() (time.Time, time.Time) {
	return ResolveRange(r.Start, r.End)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
