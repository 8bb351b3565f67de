package scheduler

import (
	"testing"

	"github.com/arnavshah/roster-scheduler-go/pkg/models"
)

func newTable(t *testing.T, days map[string]models.SlotNeeds, order ...string) *models.RequirementTable {
	t.Helper()
	rt := models.NewRequirementTable()
	for _, d := range order {
		if err := rt.SetDay(d, days[d]); err != nil {
			t.Fatalf("SetDay(%s): %v", d, err)
		}
	}
	return rt
}

func TestGenerateSchedule_SingleBundle(t *testing.T) {
	a := models.NewEmployee("Alfonso", true)
	b := models.NewEmployee("Victor", true)
	roster := []*models.Employee{a, b}

	rt := newTable(t, map[string]models.SlotNeeds{"2025-01-06": {1, 1, 1}}, "2025-01-06")
	GenerateSchedule(roster, rt)

	if a.ShiftCodes("2025-01-06") != "BLD" {
		t.Errorf("Expected first lead to work the full day, got %s", a.ShiftCodes("2025-01-06"))
	}
	if b.ShiftCodes("2025-01-06") != models.OffCode {
		t.Errorf("Expected second lead to be off, got %s", b.ShiftCodes("2025-01-06"))
	}
	if got := rt.Day("2025-01-06"); got != (models.SlotNeeds{}) {
		t.Errorf("Expected all needs to be met, got %v", got)
	}
}

func TestGenerateSchedule_LeadPreferenceThenLeastLoaded(t *testing.T) {
	lead := models.NewEmployee("Kate", true)
	o1 := models.NewEmployee("Nikita", false)
	o2 := models.NewEmployee("Anna", false)
	o3 := models.NewEmployee("Brooke", false)
	roster := []*models.Employee{o1, lead, o2, o3}

	rt := newTable(t, map[string]models.SlotNeeds{"2025-01-06": {2, 0, 0}}, "2025-01-06")
	GenerateSchedule(roster, rt)

	if lead.ShiftCodes("2025-01-06") != "B" {
		t.Errorf("Expected lead on breakfast, got %s", lead.ShiftCodes("2025-01-06"))
	}
	if o1.ShiftCodes("2025-01-06") != "B" {
		t.Errorf("Expected first other on breakfast, got %s", o1.ShiftCodes("2025-01-06"))
	}
	if o2.TotalAssigned != 0 || o3.TotalAssigned != 0 {
		t.Errorf("Expected remaining others to be unassigned, got %d and %d", o2.TotalAssigned, o3.TotalAssigned)
	}
}

func TestPickLeastLoadedLead_SkipsHeldSlot(t *testing.T) {
	l1 := models.NewEmployee("Alfonso", true)
	l2 := models.NewEmployee("Victor", true)
	l1.AddShift("2025-01-06", models.Breakfast)
	l2.AddShift("2025-01-05", models.Lunch)
	l2.AddShift("2025-01-05", models.Dinner)

	s := NewScheduler([]*models.Employee{l1, l2}, models.NewRequirementTable())

	if got := s.PickLeastLoadedLead("2025-01-06", models.Breakfast); got != l2 {
		t.Errorf("Expected Victor, got %v", got)
	}
	if got := s.PickLeastLoadedLead("2025-01-06", models.Lunch); got != l1 {
		t.Errorf("Expected Alfonso, got %v", got)
	}
}

func TestPickNextAvailable_TieGoesToLead(t *testing.T) {
	other := models.NewEmployee("Nikita", false)
	lead := models.NewEmployee("Max", true)
	s := NewScheduler([]*models.Employee{other, lead}, models.NewRequirementTable())

	if got := s.PickNextAvailable(); got != lead {
		t.Errorf("Expected lead to win the tie, got %s", got.Name)
	}

	lead.AddShift("2025-01-06", models.Breakfast)
	if got := s.PickNextAvailable(); got != other {
		t.Errorf("Expected less loaded other, got %s", got.Name)
	}
}

func TestCaps(t *testing.T) {
	lead := models.NewEmployee("Max", true)
	other := models.NewEmployee("Nikita", false)
	s := NewScheduler([]*models.Employee{lead, other}, models.NewRequirementTable(), WithLeadCap(2), WithOtherCap(1))

	if s.Cap(lead) != 2 || s.Cap(other) != 1 {
		t.Fatalf("Expected caps 2/1, got %d/%d", s.Cap(lead), s.Cap(other))
	}

	other.AddShift("2025-01-06", models.Lunch)
	lead.AddShift("2025-01-06", models.Breakfast)
	lead.AddShift("2025-01-06", models.Dinner)
	if got := s.PickNextAvailable(); got != nil {
		t.Errorf("Expected nobody under cap, got %s", got.Name)
	}

	d := NewScheduler(nil, models.NewRequirementTable(), WithLeadCap(0), WithOtherCap(-3))
	if d.maxLead != MaxLeadShifts || d.maxOther != MaxOtherShifts {
		t.Errorf("Expected defaults for non-positive caps, got %d/%d", d.maxLead, d.maxOther)
	}
}

func TestCalculateFairnessScore(t *testing.T) {
	a := models.NewEmployee("A", false)
	b := models.NewEmployee("B", false)
	s := NewScheduler([]*models.Employee{a, b}, models.NewRequirementTable())

	if s.CalculateFairnessScore() != 100.0 {
		t.Errorf("Expected 100 for an empty schedule, got %f", s.CalculateFairnessScore())
	}

	a.AddShift("2025-01-06", models.Breakfast)
	b.AddShift("2025-01-06", models.Lunch)
	if s.CalculateFairnessScore() != 100.0 {
		t.Errorf("Expected 100 for equal load, got %f", s.CalculateFairnessScore())
	}

	a.AddShift("2025-01-06", models.Dinner)
	a.AddShift("2025-01-07", models.Dinner)
	// totals 3 and 1: mean 2, stddev 1
	if got := s.CalculateFairnessScore(); got != 50.0 {
		t.Errorf("Expected 50, got %f", got)
	}
	if s.MaxAssigned() != 3 {
		t.Errorf("Expected max assigned 3, got %d", s.MaxAssigned())
	}
}
