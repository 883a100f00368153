package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const yearMonthLayout = "2006-01"

// YearMonth is a calendar month. The zero value is not a valid month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth builds a YearMonth, normalising month overflow (e.g. month 13 -> January next year).
func NewYearMonth(year int, month time.Month) YearMonth {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// YearMonthOf returns the calendar month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a strict "YYYY-MM" value.
func ParseYearMonth(s string) (YearMonth, error) {
	if len(s) != len(yearMonthLayout) {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: expected YYYY-MM", s)
	}
	t, err := time.Parse(yearMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	return YearMonthOf(t), nil
}

// IsZero reports whether ym is the zero value.
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// AddMonths returns ym shifted by n months.
func (ym YearMonth) AddMonths(n int) YearMonth {
	return NewYearMonth(ym.Year, ym.Month+time.Month(n))
}

// Next returns the following month.
func (ym YearMonth) Next() YearMonth {
	return ym.AddMonths(1)
}

// Compare returns -1, 0 or +1.
func (ym YearMonth) Compare(other YearMonth) int {
	switch {
	case ym.Year < other.Year:
		return -1
	case ym.Year > other.Year:
		return 1
	case ym.Month < other.Month:
		return -1
	case ym.Month > other.Month:
		return 1
	}
	return 0
}

func (ym YearMonth) Before(other YearMonth) bool { return ym.Compare(other) < 0 }

func (ym YearMonth) After(other YearMonth) bool { return ym.Compare(other) > 0 }

// MonthsUntil returns the number of months from ym to other (negative if other is earlier).
func (ym YearMonth) MonthsUntil(other YearMonth) int {
	return (other.Year-ym.Year)*12 + int(other.Month-ym.Month)
}

// FirstDay returns midnight UTC on the first day of the month.
func (ym YearMonth) FirstDay() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls within the month.
func (ym YearMonth) Contains(t time.Time) bool {
	return YearMonthOf(t) == ym
}

// String formats as YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Label formats as "Jan 2024" for human-readable notes.
func (ym YearMonth) Label() string {
	return ym.FirstDay().Format("Jan 2006")
}

func (ym YearMonth) MarshalJSON() ([]byte, error) {
	if ym.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ym.String())
}

func (ym *YearMonth) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ym = YearMonth{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseYearMonth(s)
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}
