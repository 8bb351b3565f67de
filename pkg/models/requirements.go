package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for requirement and
// assignment keys.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, v)
	}
	return t, nil
}

// DateRange lists every date from start to end inclusive.
func DateRange(start, end time.Time) ([]string, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrDateRange, end.Format(DateLayout), start.Format(DateLayout))
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// SlotNeeds holds the remaining headcount per slot for one date
type SlotNeeds [SlotCount]int

// Total sums the remaining need across slots.
func (n SlotNeeds) Total() int {
	return n[Breakfast] + n[Lunch] + n[Dinner]
}

// RequirementTable maps dates, in insertion order, to the remaining
// headcount per slot. The scheduler decrements it as it assigns, so after a
// run it holds whatever demand could not be met.
type RequirementTable struct {
	dates []string
	needs map[string]*SlotNeeds
}

// NewRequirementTable creates an empty table
func NewRequirementTable() *RequirementTable {
	return &RequirementTable{needs: make(map[string]*SlotNeeds)}
}

// NewRequirementTableForRange creates a table with one zeroed row per date
// from start to end inclusive.
func NewRequirementTableForRange(start, end time.Time) (*RequirementTable, error) {
	dates, err := DateRange(start, end)
	if err != nil {
		return nil, err
	}
	rt := NewRequirementTable()
	for _, d := range dates {
		rt.AddDate(d)
	}
	return rt, nil
}

// AddDate appends date with zero need if it is not present yet.
func (rt *RequirementTable) AddDate(date string) {
	if _, ok := rt.needs[date]; ok {
		return
	}
	rt.dates = append(rt.dates, date)
	rt.needs[date] = &SlotNeeds{}
}

// Has reports whether date is part of the table
func (rt *RequirementTable) Has(date string) bool {
	_, ok := rt.needs[date]
	return ok
}

// Set stores the required headcount, adding date if needed.
func (rt *RequirementTable) Set(date string, slot ShiftSlot, count int) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownSlot, int(slot))
	}
	if count < 0 {
		return fmt.Errorf("%w: %s %s = %d", ErrNegativeCount, date, slot, count)
	}
	rt.AddDate(date)
	rt.needs[date][slot] = count
	return nil
}

// SetDay stores all three slot counts for date.
func (rt *RequirementTable) SetDay(date string, needs SlotNeeds) error {
	for _, slot := range AllSlots {
		if err := rt.Set(date, slot, needs[slot]); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the remaining need, zero for unknown dates.
func (rt *RequirementTable) Get(date string, slot ShiftSlot) int {
	n, ok := rt.needs[date]
	if !ok || !slot.Valid() {
		return 0
	}
	return n[slot]
}

// Day returns a copy of the remaining needs for date
func (rt *RequirementTable) Day(date string) SlotNeeds {
	if n, ok := rt.needs[date]; ok {
		return *n
	}
	return SlotNeeds{}
}

// Decrement lowers the remaining need by one. The value may go below zero,
// which readers treat as satisfied.
func (rt *RequirementTable) Decrement(date string, slot ShiftSlot) {
	if n, ok := rt.needs[date]; ok && slot.Valid() {
		n[slot]--
	}
}

// Dates returns the dates in insertion order.
func (rt *RequirementTable) Dates() []string {
	out := make([]string, len(rt.dates))
	copy(out, rt.dates)
	return out
}

// Len returns the number of dates.
func (rt *RequirementTable) Len() int {
	return len(rt.dates)
}

// Clone returns an independent copy, handy for keeping the requested
// amounts around before a run consumes them.
func (rt *RequirementTable) Clone() *RequirementTable {
	c := NewRequirementTable()
	for _, d := range rt.dates {
		c.AddDate(d)
		*c.needs[d] = *rt.needs[d]
	}
	return c
}

// TotalRequired sums positive remaining need over every date and slot.
func (rt *RequirementTable) TotalRequired() int {
	total := 0
	for _, d := range rt.dates {
		for _, v := range rt.needs[d] {
			if v > 0 {
				total += v
			}
		}
	}
	return total
}
