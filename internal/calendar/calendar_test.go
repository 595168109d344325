package calendar

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, year int, month time.Month, day int) Date {
	t.Helper()
	d, err := New(year, month, day)
	if err != nil {
		t.Fatalf("New(%d, %s, %d): unexpected error: %v", year, month, day, err)
	}
	return d
}

func TestIsLeap(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2020, true},
		{2021, false},
		{2000, true},  // divisible by 400
		{1900, false}, // divisible by 100 but not 400
		{2400, true},
		{1, false},
		{4, true},
	}
	for _, tt := range tests {
		if got := IsLeap(tt.year); got != tt.want {
			t.Errorf("IsLeap(%d) = %t, want %t", tt.year, got, tt.want)
		}
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2021, time.January, 31},
		{2021, time.February, 28},
		{2020, time.February, 29},
		{2021, time.April, 30},
		{2021, time.December, 31},
		{1900, time.February, 28},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	invalids := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2021, time.February, 30},
		{2021, time.February, 29}, // not a leap year
		{2021, time.April, 31},
		{2021, time.January, 0},
		{2021, time.January, 32},
		{2021, time.Month(13), 1},
		{2021, time.Month(0), 1},
		{0, time.January, 1},
		{10000, time.January, 1},
	}
	for _, tt := range invalids {
		if _, err := New(tt.year, tt.month, tt.day); err == nil {
			t.Errorf("New(%d, %d, %d): expected error, got nil", tt.year, int(tt.month), tt.day)
		}
	}
}

func TestString(t *testing.T) {
	d := mustDate(t, 33, time.July, 2)
	if got := d.String(); got != "0033-07-02" {
		t.Errorf("String() = %q, want %q", got, "0033-07-02")
	}
}

func TestAddDaysRollover(t *testing.T) {
	tests := []struct {
		start Date
		n     int
		want  string
	}{
		{mustDate(t, 2021, time.December, 30), 15, "2022-01-14"},
		{mustDate(t, 2021, time.January, 1), -1, "2020-12-31"},
		{mustDate(t, 2020, time.February, 28), 1, "2020-02-29"}, // leap year
		{mustDate(t, 2021, time.February, 28), 1, "2021-03-01"},
		{mustDate(t, 2021, time.July, 2), 0, "2021-07-02"},
	}
	for _, tt := range tests {
		got, err := tt.start.AddDays(tt.n)
		if err != nil {
			t.Errorf("%s.AddDays(%d): unexpected error: %v", tt.start, tt.n, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("%s.AddDays(%d) = %s, want %s", tt.start, tt.n, got, tt.want)
		}
	}
}

func TestAddWeeks(t *testing.T) {
	start := mustDate(t, 2021, time.July, 2)
	got, err := start.AddWeeks(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "2021-07-16" {
		t.Errorf("AddWeeks(2) = %s, want 2021-07-16", got)
	}
}

func TestAddMonthsClamping(t *testing.T) {
	tests := []struct {
		start Date
		n     int
		want  string
	}{
		{mustDate(t, 2021, time.January, 31), 1, "2021-02-28"},
		{mustDate(t, 2020, time.January, 31), 1, "2020-02-29"}, // leap target
		{mustDate(t, 2021, time.January, 31), 3, "2021-04-30"},
		{mustDate(t, 2021, time.December, 30), 1, "2022-01-30"}, // year rollover
		{mustDate(t, 2021, time.December, 30), -1, "2021-11-30"},
		{mustDate(t, 2021, time.March, 31), -1, "2021-02-28"},
		{mustDate(t, 2021, time.January, 15), -13, "2019-12-15"},
		{mustDate(t, 2021, time.January, 15), 0, "2021-01-15"},
		{mustDate(t, 2021, time.January, 15), 24, "2023-01-15"},
	}
	for _, tt := range tests {
		got, err := tt.start.AddMonths(tt.n)
		if err != nil {
			t.Errorf("%s.AddMonths(%d): unexpected error: %v", tt.start, tt.n, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("%s.AddMonths(%d) = %s, want %s", tt.start, tt.n, got, tt.want)
		}
	}
}

func TestAddYearsLeapClamping(t *testing.T) {
	tests := []struct {
		start Date
		n     int
		want  string
	}{
		{mustDate(t, 2020, time.February, 29), 1, "2021-02-28"},
		{mustDate(t, 2020, time.February, 29), 4, "2024-02-29"},
		{mustDate(t, 2021, time.July, 2), 10, "2031-07-02"},
		{mustDate(t, 2021, time.July, 2), -21, "2000-07-02"},
	}
	for _, tt := range tests {
		got, err := tt.start.AddYears(tt.n)
		if err != nil {
			t.Errorf("%s.AddYears(%d): unexpected error: %v", tt.start, tt.n, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("%s.AddYears(%d) = %s, want %s", tt.start, tt.n, got, tt.want)
		}
	}
}

func TestArithmeticOverflow(t *testing.T) {
	top := mustDate(t, 9999, time.December, 31)
	if _, err := top.AddDays(1); err != ErrOutOfRange {
		t.Errorf("AddDays past max: got %v, want ErrOutOfRange", err)
	}
	if _, err := top.AddMonths(1); err != ErrOutOfRange {
		t.Errorf("AddMonths past max: got %v, want ErrOutOfRange", err)
	}
	if _, err := top.AddYears(1); err != ErrOutOfRange {
		t.Errorf("AddYears past max: got %v, want ErrOutOfRange", err)
	}

	bottom := mustDate(t, 1, time.January, 1)
	if _, err := bottom.AddDays(-1); err != ErrOutOfRange {
		t.Errorf("AddDays before min: got %v, want ErrOutOfRange", err)
	}
	if _, err := bottom.AddYears(-1); err != ErrOutOfRange {
		t.Errorf("AddYears before min: got %v, want ErrOutOfRange", err)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b Date
		want int
	}{
		{mustDate(t, 2021, time.March, 1), mustDate(t, 2021, time.January, 15), 45},
		{mustDate(t, 2021, time.January, 15), mustDate(t, 2021, time.March, 1), 45}, // symmetric
		{mustDate(t, 2021, time.January, 16), mustDate(t, 2021, time.January, 15), 1},
		{mustDate(t, 2021, time.January, 15), mustDate(t, 2021, time.January, 15), 0},
		{mustDate(t, 2021, time.March, 1), mustDate(t, 2020, time.March, 1), 365}, // spans Feb 29
	}
	for _, tt := range tests {
		if got := tt.a.DaysBetween(tt.b); got != tt.want {
			t.Errorf("%s.DaysBetween(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFromTime(t *testing.T) {
	tm := time.Date(2021, time.July, 2, 23, 59, 59, 0, time.UTC)
	d := FromTime(tm)
	if d.String() != "2021-07-02" {
		t.Errorf("FromTime = %s, want 2021-07-02", d)
	}
}
