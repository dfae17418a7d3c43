// Package calendar models civil dates exchanged as YYYY-MM-DD strings.
//
// A Date is anchored at 12:00 local time. Noon keeps the calendar day stable
// when a value passes through a timezone conversion of up to twelve hours, and
// String always renders from the date's own components, never from UTC.
package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dErrors "plantcare/pkg/domain-errors"
)

// Layout is the wire format for dates.
const Layout = "2006-01-02"

// InvalidDate is shown in place of a date that cannot be rendered.
const InvalidDate = "invalid date"

const anchorHour = 12

// Date is a calendar day. The zero value means "absent".
type Date struct {
	t time.Time
}

// New builds a Date from its components. Out-of-range values normalize the
// way time.Date does (month 13 rolls into next year).
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, anchorHour, 0, 0, 0, time.Local)}
}

// Of takes the calendar day of t as t itself sees it.
func Of(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return New(y, m, d)
}

// Today is the calendar day of now in the local zone.
func Today(now time.Time) Date {
	return Of(now.In(time.Local))
}

// Parse accepts YYYY-MM-DD or an ISO-8601 timestamp whose date part is taken
// as written.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(Layout) && (s[len(Layout)] == 'T' || s[len(Layout)] == ' ') {
		s = s[:len(Layout)]
	}
	if len(s) != len(Layout) {
		return Date{}, dErrors.New(dErrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD")
	}
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return Date{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD")
	}
	return Of(t), nil
}

// ParseOptional treats a blank string as an absent date.
func ParseOptional(s string) (Date, error) {
	if strings.TrimSpace(s) == "" {
		return Date{}, nil
	}
	return Parse(s)
}

// MustParse is Parse for literals in tests and fixtures.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns the anchored instant (noon local).
func (d Date) Time() time.Time { return d.t }

func (d Date) Year() int          { return d.t.Year() }
func (d Date) Month() time.Month  { return d.t.Month() }
func (d Date) Day() int           { return d.t.Day() }
func (d Date) AddDays(n int) Date { return New(d.t.Year(), d.t.Month(), d.t.Day()+n) }

func (d Date) Before(o Date) bool { return d.civil().Before(o.civil()) }
func (d Date) After(o Date) bool  { return d.civil().After(o.civil()) }
func (d Date) Equal(o Date) bool  { return d.civil().Equal(o.civil()) }

// Compare returns -1, 0 or +1. Usable with slices.SortFunc.
func (d Date) Compare(o Date) int { return d.civil().Compare(o.civil()) }

// String renders YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.t.Year(), int(d.t.Month()), d.t.Day())
}

// civil projects the date onto UTC midnight so differences are exact whole
// days regardless of DST transitions in the local zone.
func (d Date) civil() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns to - from in whole calendar days. It works on Unix
// seconds since time.Duration cannot span more than about 292 years.
func DaysBetween(from, to Date) int {
	return int((to.civil().Unix() - from.civil().Unix()) / secondsPerDay)
}

// Display formats d with layout, or returns InvalidDate for the zero Date.
func Display(d Date, layout string) string {
	if d.IsZero() {
		return InvalidDate
	}
	return d.t.Format(layout)
}

// Reformat parses a wire date and formats it with layout. Malformed or absent
// input yields InvalidDate; it never returns an error.
func Reformat(s, layout string) string {
	d, err := Parse(s)
	if err != nil {
		return InvalidDate
	}
	return Display(d, layout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "date must be a string")
	}
	parsed, err := ParseOptional(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer. Dates are stored in DATE columns.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		// DATE columns come back as UTC midnight; take the components as-is.
		y, m, day := v.Date()
		*d = New(y, m, day)
		return nil
	case string:
		parsed, err := ParseOptional(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	}
	return fmt.Errorf("calendar: cannot scan %T into Date", src)
}
