package models

import (
	"errors"
	"fmt"
	"time"
)

// Requirements builds the requirement table for the input. With explicit
// start and end dates every day in the range gets a row and days outside it
// are rejected; otherwise the range spans the earliest to the latest listed
// day. maxDays of zero disables the length check.
func (in ScheduleInput) Requirements(maxDays int) (*RequirementTable, error) {
	start, end, err := in.bounds()
	if err != nil {
		return nil, err
	}
	if maxDays > 0 {
		if days := int(end.Sub(start).Hours()/24) + 1; days > maxDays {
			return nil, fmt.Errorf("%w: %d days exceeds limit of %d", ErrDateRange, days, maxDays)
		}
	}

	rt, err := NewRequirementTableForRange(start, end)
	if err != nil {
		return nil, err
	}
	for _, day := range in.Days {
		d, err := ParseDate(day.Date)
		if err != nil {
			return nil, err
		}
		key := d.Format(DateLayout)
		if !rt.Has(key) {
			return nil, fmt.Errorf("%w: %s is outside %s..%s", ErrDateRange, key, start.Format(DateLayout), end.Format(DateLayout))
		}
		if err := rt.SetDay(key, day.Needs()); err != nil {
			return nil, err
		}
	}
	return rt, nil
}

func (in ScheduleInput) bounds() (time.Time, time.Time, error) {
	if in.StartDate != "" || in.EndDate != "" {
		if in.StartDate == "" || in.EndDate == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date and end_date must be given together", ErrDateRange)
		}
		start, err := ParseDate(in.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := ParseDate(in.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date is before start_date", ErrDateRange)
		}
		return start, end, nil
	}

	if len(in.Days) == 0 {
		return time.Time{}, time.Time{}, errors.New("either a date range or at least one day is required")
	}
	var start, end time.Time
	for i, day := range in.Days {
		d, err := ParseDate(day.Date)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if i == 0 || d.Before(start) {
			start = d
		}
		if i == 0 || d.After(end) {
			end = d
		}
	}
	return start, end, nil
}
