package expr

import (
	"fmt"

	"github.com/marcus/datemath/internal/calendar"
)

// Eval resolves the anchor (the injected today when none was given) and
// folds the terms onto it strictly left to right. Each step's output is the
// next step's input, so month clamping happens before the following term
// advances the date.
func (o *Offset) Eval(today calendar.Date) (Result, error) {
	date := today
	if o.Anchor != nil {
		resolved, err := o.Anchor.Resolve(today)
		if err != nil {
			return Result{}, err
		}
		date = resolved
	}

	for _, term := range o.Terms {
		next, err := term.apply(date)
		if err != nil {
			return Result{}, err
		}
		date = next
	}
	return Result{Date: date}, nil
}

// Eval resolves both anchors and returns their absolute distance in days.
func (d *Diff) Eval(today calendar.Date) (Result, error) {
	from, err := d.From.Resolve(today)
	if err != nil {
		return Result{}, err
	}
	to, err := d.To.Resolve(today)
	if err != nil {
		return Result{}, err
	}
	return Result{IsDiff: true, Days: from.DaysBetween(to)}, nil
}

// apply advances date by one term as a single calendar step.
func (t Term) apply(date calendar.Date) (calendar.Date, error) {
	var next calendar.Date
	var err error
	switch t.Unit {
	case Day:
		next, err = date.AddDays(t.Count)
	case Week:
		next, err = date.AddWeeks(t.Count)
	case Month:
		next, err = date.AddMonths(t.Count)
	case Year:
		next, err = date.AddYears(t.Count)
	default:
		return calendar.Date{}, fmt.Errorf("unknown unit %v", t.Unit)
	}
	if err != nil {
		return calendar.Date{}, overflowErr(t.String(), err)
	}
	return next, nil
}

func overflowErr(fragment string, err error) *Error {
	return &Error{
		Kind:     KindCalendarOverflow,
		Message:  err.Error(),
		Fragment: fragment,
	}
}
