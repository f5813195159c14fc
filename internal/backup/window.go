// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package backup

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	// ErrInvalidMonth is returned for month values not matching YYYY-MM
	// with a real month number. Callers map it to a 400 before touching
	// the store.
	ErrInvalidMonth = errors.New("invalid month format")

	// ErrInvalidRange is returned for malformed range dates.
	ErrInvalidRange = errors.New("invalid date range")
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Window is the resolved time span of one export. Timestamp bounds select
// trees by createdAt; the string bounds select updates by their calendar
// date field, which is compared lexicographically.
type Window struct {
	Start time.Time
	End   time.Time

	// FromDate and ToDate bound the update date field. When EndInclusive
	// is false the upper bound is exclusive (month mode, where ToDate is
	// the first day of the next month).
	FromDate     string
	ToDate       string
	EndInclusive bool
}

// MonthWindow resolves a YYYY-MM month into its UTC window. The span is
// [first of month, first of next month), so December rolls the year over
// and February lengths follow the calendar.
func MonthWindow(month string) (Window, error) {
	if !monthPattern.MatchString(month) {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	start, err := time.ParseInLocation("2006-01", month, time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	end := start.AddDate(0, 1, 0)
	return Window{
		Start:        start,
		End:          end,
		FromDate:     start.Format("2006-01-02"),
		ToDate:       end.Format("2006-01-02"),
		EndInclusive: false,
	}, nil
}

// RangeWindow resolves a YYYY-MM-DD start and end date into an inclusive
// UTC window. The end timestamp is pushed to the last millisecond of its
// day so records created on the end date are not dropped. A reversed range
// is not an error; it yields a window that matches nothing.
func RangeWindow(startDate, endDate string) (Window, error) {
	start, err := time.ParseInLocation("2006-01-02", startDate, time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("%w: start %q", ErrInvalidRange, startDate)
	}
	end, err := time.ParseInLocation("2006-01-02", endDate, time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("%w: end %q", ErrInvalidRange, endDate)
	}
	end = end.Add(24*time.Hour - time.Millisecond)
	return Window{
		Start:        start,
		End:          end,
		FromDate:     startDate,
		ToDate:       endDate,
		EndInclusive: true,
	}, nil
}
