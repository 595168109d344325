package expr

import (
	"fmt"
	"strings"
	"time"

	"github.com/marcus/datemath/internal/calendar"
)

// Unit is a calendar duration unit.
type Unit int

const (
	Day Unit = iota
	Week
	Month
	Year
)

var unitStrings = map[Unit]string{
	Day:   "day",
	Week:  "week",
	Month: "month",
	Year:  "year",
}

func (u Unit) String() string {
	if s, ok := unitStrings[u]; ok {
		return s
	}
	return fmt.Sprintf("Unit(%d)", u)
}

// unitNames maps accepted unit spellings (lowercased) to units.
// Singular and plural forms only; no abbreviations.
var unitNames = map[string]Unit{
	"day":    Day,
	"days":   Day,
	"week":   Week,
	"weeks":  Week,
	"month":  Month,
	"months": Month,
	"year":   Year,
	"years":  Year,
}

// LookupUnit resolves a unit word case-insensitively.
func LookupUnit(word string) (Unit, bool) {
	u, ok := unitNames[strings.ToLower(word)]
	return u, ok
}

// monthNames maps full and three-letter English month names (lowercased)
// to months.
var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// LookupMonth resolves a month name case-insensitively.
func LookupMonth(word string) (time.Month, bool) {
	m, ok := monthNames[strings.ToLower(word)]
	return m, ok
}

// Term is one arithmetic step: a signed count of a unit.
type Term struct {
	Count int
	Unit  Unit
}

func (t Term) String() string {
	unit := t.Unit.String()
	n := t.Count
	if n != 1 && n != -1 {
		unit += "s"
	}
	if n >= 0 {
		return fmt.Sprintf("+%d %s", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}

// AnchorKind identifies how an anchor resolves to a concrete date.
type AnchorKind int

const (
	// AnchorDate is an explicit year/month/day from the input.
	AnchorDate AnchorKind = iota
	// AnchorMonthDay is a month+day with the year taken from "today".
	AnchorMonthDay
	AnchorToday
	AnchorYesterday
	AnchorTomorrow
)

// Anchor is the base date a sequence of terms applies to.
type Anchor struct {
	Kind  AnchorKind
	Date  calendar.Date // set when Kind == AnchorDate
	Month time.Month    // set when Kind == AnchorMonthDay
	Day   int           // set when Kind == AnchorMonthDay
}

// Resolve turns the anchor into a concrete date. The injected today supplies
// the date for keyword anchors and the year for month-day anchors.
func (a Anchor) Resolve(today calendar.Date) (calendar.Date, error) {
	switch a.Kind {
	case AnchorDate:
		return a.Date, nil
	case AnchorMonthDay:
		d, err := calendar.New(today.Year, a.Month, a.Day)
		if err != nil {
			return calendar.Date{}, &Error{
				Kind:     KindMalformedDate,
				Message:  err.Error(),
				Fragment: fmt.Sprintf("%s %d", strings.ToLower(a.Month.String()[:3]), a.Day),
			}
		}
		return d, nil
	case AnchorToday:
		return today, nil
	case AnchorYesterday:
		d, err := today.AddDays(-1)
		if err != nil {
			return calendar.Date{}, overflowErr("yesterday", err)
		}
		return d, nil
	case AnchorTomorrow:
		d, err := today.AddDays(1)
		if err != nil {
			return calendar.Date{}, overflowErr("tomorrow", err)
		}
		return d, nil
	default:
		return calendar.Date{}, fmt.Errorf("unknown anchor kind %d", a.Kind)
	}
}

func (a Anchor) String() string {
	switch a.Kind {
	case AnchorDate:
		return a.Date.String()
	case AnchorMonthDay:
		return fmt.Sprintf("%s %d", strings.ToLower(a.Month.String()), a.Day)
	case AnchorToday:
		return "today"
	case AnchorYesterday:
		return "yesterday"
	case AnchorTomorrow:
		return "tomorrow"
	default:
		return fmt.Sprintf("Anchor(%d)", a.Kind)
	}
}

// Expr is a parsed date expression, evaluated against an injected today.
type Expr interface {
	Eval(today calendar.Date) (Result, error)
	String() string
}

// Offset applies an ordered sequence of terms to an anchor date.
// A nil anchor means "today".
type Offset struct {
	Anchor *Anchor
	Terms  []Term
}

func (o *Offset) String() string {
	var parts []string
	if o.Anchor != nil {
		parts = append(parts, o.Anchor.String())
	}
	for _, t := range o.Terms {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " ")
}

// Diff is the absolute distance in days between two anchors.
type Diff struct {
	From Anchor
	To   Anchor
}

func (d *Diff) String() string {
	return fmt.Sprintf("%s - %s", d.From.String(), d.To.String())
}

// Result is the outcome of evaluating an expression: a date, or a day count
// for difference expressions.
type Result struct {
	IsDiff bool
	Date   calendar.Date
	Days   int
}

func (r Result) String() string {
	if !r.IsDiff {
		return r.Date.String()
	}
	if r.Days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", r.Days)
}
