package expr

import "fmt"

// Kind classifies expression failures. Every parse or evaluation error
// carries exactly one kind; none are retryable.
type Kind string

const (
	// KindEmptyInput: input is blank after trimming.
	KindEmptyInput Kind = "empty_input"
	// KindUnknownUnit: a term's unit word is not day/week/month/year.
	KindUnknownUnit Kind = "unknown_unit"
	// KindMalformedDate: a date-looking prefix has an invalid
	// day/month/year combination or an unparseable shape.
	KindMalformedDate Kind = "malformed_date"
	// KindMalformedTerm: a term segment is not "<integer> <unit>".
	KindMalformedTerm Kind = "malformed_term"
	// KindTrailingGarbage: unconsumed input remains after the last
	// recognized term.
	KindTrailingGarbage Kind = "trailing_garbage"
	// KindCalendarOverflow: arithmetic left the representable date range.
	KindCalendarOverflow Kind = "calendar_overflow"
)

// Error is a parse or evaluation failure with the offending input fragment.
type Error struct {
	Kind     Kind
	Message  string
	Fragment string // offending substring, when identifiable
	Pos      int    // byte offset of Fragment in the input
}

func (e *Error) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("%s: %s (near %q)", e.Kind, e.Message, e.Fragment)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf extracts the Kind from an error, or empty string for foreign errors.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}
