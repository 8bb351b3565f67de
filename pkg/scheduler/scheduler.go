package scheduler

import (
	"math"

	"github.com/arnavshah/roster-scheduler-go/pkg/models"
)

// Default lifetime caps on TotalAssigned per employee class
const (
	MaxLeadShifts  = 15
	MaxOtherShifts = 12
)

// bundleSize is the number of slots handed out by one full-day assignment.
const bundleSize = models.SlotCount

// Scheduler handles the logic of assigning employees to shifts
type Scheduler struct {
	Roster       []*models.Employee
	Requirements *models.RequirementTable

	maxLead  int
	maxOther int

	leads  []*models.Employee
	others []*models.Employee
}

// NewScheduler creates a new scheduler instance. Employees are split into
// lead and other groups once, keeping roster order inside each group.
func NewScheduler(roster []*models.Employee, requirements *models.RequirementTable, opts ...Option) *Scheduler {
	s := &Scheduler{
		Roster:       roster,
		Requirements: requirements,
		maxLead:      MaxLeadShifts,
		maxOther:     MaxOtherShifts,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, e := range roster {
		if e.Lead {
			s.leads = append(s.leads, e)
		} else {
			s.others = append(s.others, e)
		}
	}
	return s
}

// GenerateSchedule runs the default policy over roster and requirements,
// mutating both in place.
func GenerateSchedule(roster []*models.Employee, requirements *models.RequirementTable) {
	NewScheduler(roster, requirements).Generate()
}

// Generate fills requirements date by date in table order. Demand that can
// not be covered is left in the table.
func (s *Scheduler) Generate() {
	for _, date := range s.Requirements.Dates() {
		s.bundleFullDays(date)
		s.backfill(date)
	}
}

// bundleFullDays hands out all three slots at once while the day still
// needs at least a full day's worth of shifts. Every bundle lowers each
// slot's count by one even if that slot was already covered. The cap is
// checked once per bundle, so the last bundle can take an employee up to two
// past it.
func (s *Scheduler) bundleFullDays(date string) {
	totalNeeded := s.Requirements.Day(date).Total()
	for totalNeeded >= bundleSize {
		e := s.PickNextAvailable()
		if e == nil {
			return
		}
		for _, slot := range models.AllSlots {
			e.AddShift(date, slot)
			s.Requirements.Decrement(date, slot)
		}
		totalNeeded -= bundleSize
	}
}

// backfill covers what is left per slot: one lead first, then whoever is
// least loaded.
func (s *Scheduler) backfill(date string) {
	for _, slot := range models.AllSlots {
		needed := s.Requirements.Get(date, slot)
		if needed <= 0 {
			continue
		}

		if lead := s.PickLeastLoadedLead(date, slot); lead != nil {
			s.assign(lead, date, slot)
			needed--
		}

		for needed > 0 {
			e := s.PickNextAvailable()
			if e == nil {
				break
			}
			s.assign(e, date, slot)
			needed--
		}
	}
}

func (s *Scheduler) assign(e *models.Employee, date string, slot models.ShiftSlot) {
	e.AddShift(date, slot)
	s.Requirements.Decrement(date, slot)
}

// Cap returns the lifetime cap that applies to e
func (s *Scheduler) Cap(e *models.Employee) int {
	if e.Lead {
		return s.maxLead
	}
	return s.maxOther
}

// Available reports whether e is still below its cap
func (s *Scheduler) Available(e *models.Employee) bool {
	return e.TotalAssigned < s.Cap(e)
}

// PickNextAvailable returns the least loaded employee under cap across both
// groups. Ties go to the earliest employee, leads before others.
func (s *Scheduler) PickNextAvailable() *models.Employee {
	best := leastLoaded(nil, s.leads, s.Available)
	return leastLoaded(best, s.others, s.Available)
}

// PickLeastLoadedLead returns the least loaded lead under cap who does not
// already hold slot on date.
func (s *Scheduler) PickLeastLoadedLead(date string, slot models.ShiftSlot) *models.Employee {
	return leastLoaded(nil, s.leads, func(e *models.Employee) bool {
		return s.Available(e) && !e.Holds(date, slot)
	})
}

// leastLoaded scans group in order and keeps the first employee with the
// strictly lowest total, starting from best.
func leastLoaded(best *models.Employee, group []*models.Employee, eligible func(*models.Employee) bool) *models.Employee {
	for _, e := range group {
		if !eligible(e) {
			continue
		}
		if best == nil || e.TotalAssigned < best.TotalAssigned {
			best = e
		}
	}
	return best
}

// Shortfalls lists every date and slot whose remaining need is still
// positive, in table order.
func (s *Scheduler) Shortfalls() []models.Shortfall {
	var out []models.Shortfall
	for _, date := range s.Requirements.Dates() {
		for _, slot := range models.AllSlots {
			if remaining := s.Requirements.Get(date, slot); remaining > 0 {
				out = append(out, models.Shortfall{Date: date, Slot: slot, Remaining: remaining})
			}
		}
	}
	return out
}

// MaxAssigned returns the highest TotalAssigned on the roster
func (s *Scheduler) MaxAssigned() int {
	most := 0
	for _, e := range s.Roster {
		if e.TotalAssigned > most {
			most = e.TotalAssigned
		}
	}
	return most
}

// CalculateFairnessScore returns a percentage (0-100) representing how evenly
// shifts are distributed. 100% is perfectly fair (Standard Deviation = 0).
func (s *Scheduler) CalculateFairnessScore() float64 {
	if len(s.Roster) == 0 {
		return 100.0
	}

	var sum float64
	for _, e := range s.Roster {
		sum += float64(e.TotalAssigned)
	}
	if sum == 0 {
		return 100.0
	}

	mean := sum / float64(len(s.Roster))

	var varianceSum float64
	for _, e := range s.Roster {
		diff := float64(e.TotalAssigned) - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(s.Roster)))

	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
