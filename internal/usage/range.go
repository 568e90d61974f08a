package usage

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Range is an optional, inclusive created_at window. A nil bound means the
// window is open on that side.
type Range struct {
	From *time.Time
	To   *time.Time
}

// ParseRange reads YYYY-MM-DD bounds. A bound that is empty or does not
// parse is dropped without error. From starts at 00:00:00 UTC and To ends
// at 23:59:59 UTC of the given day.
func ParseRange(from, to string) Range {
	var r Range
	if d, ok := parseDate(from); ok {
		r.From = &d
	}
	if d, ok := parseDate(to); ok {
		end := d.Add(24*time.Hour - time.Second)
		r.To = &end
	}
	return r
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func (r Range) IsZero() bool {
	return r.From == nil && r.To == nil
}

// Contains applies the same predicate as the aggregate query.
func (r Range) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// FromDate returns the From bound as YYYY-MM-DD, or "" when open.
func (r Range) FromDate() string {
	if r.From == nil {
		return ""
	}
	return r.From.Format(dateLayout)
}

// ToDate returns the To bound as YYYY-MM-DD, or "" when open.
func (r Range) ToDate() string {
	if r.To == nil {
		return ""
	}
	return r.To.Format(dateLayout)
}
