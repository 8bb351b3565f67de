package models

import (
	"fmt"
	"strings"
)

// OffCode is rendered for a date with no shifts.
const OffCode = "OFF"

// Employee represents a person on the roster
type Employee struct {
	Name          string                 `json:"name"`
	Lead          bool                   `json:"lead"`
	TotalAssigned int                    `json:"total_assigned"`
	Assignments   map[string][]ShiftSlot `json:"assignments,omitempty"` // date -> slots
}

// NewEmployee creates an employee with no assignments
func NewEmployee(name string, lead bool) *Employee {
	return &Employee{
		Name:        name,
		Lead:        lead,
		Assignments: make(map[string][]ShiftSlot),
	}
}

// AddShift records slot on date and bumps the running total. Capacity and
// duplicate checks are the caller's job.
func (e *Employee) AddShift(date string, slot ShiftSlot) {
	if e.Assignments == nil {
		e.Assignments = make(map[string][]ShiftSlot)
	}
	e.Assignments[date] = append(e.Assignments[date], slot)
	e.TotalAssigned++
}

// Holds reports whether slot is already assigned on date
func (e *Employee) Holds(date string, slot ShiftSlot) bool {
	for _, s := range e.Assignments[date] {
		if s == slot {
			return true
		}
	}
	return false
}

// ShiftCodes renders the slots held on date in B, L, D order, or OFF.
func (e *Employee) ShiftCodes(date string) string {
	held := e.Assignments[date]
	if len(held) == 0 {
		return OffCode
	}
	var sb strings.Builder
	for _, slot := range AllSlots {
		if e.Holds(date, slot) {
			sb.WriteString(slot.Code())
		}
	}
	return sb.String()
}

// AssignmentCount counts every (date, slot) entry. It equals TotalAssigned
// for any employee only mutated through AddShift.
func (e *Employee) AssignmentCount() int {
	n := 0
	for _, slots := range e.Assignments {
		n += len(slots)
	}
	return n
}

// ValidateRoster rejects empty rosters and repeated names
func ValidateRoster(roster []*Employee) error {
	if len(roster) == 0 {
		return ErrEmptyRoster
	}
	seen := make(map[string]bool, len(roster))
	for _, e := range roster {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return ErrEmptyName
		}
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrDuplicateEmployee, name)
		}
		seen[name] = true
	}
	return nil
}
