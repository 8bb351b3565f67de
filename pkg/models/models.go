package models

// EmployeeInput is a roster entry as supplied by a client
type EmployeeInput struct {
	Name string `json:"name" yaml:"name"`
	Lead bool   `json:"lead" yaml:"lead"`
}

// DayRequirement is the required headcount per slot for one date
type DayRequirement struct {
	Date      string `json:"date" yaml:"date"`
	Breakfast int    `json:"B" yaml:"B"`
	Lunch     int    `json:"L" yaml:"L"`
	Dinner    int    `json:"D" yaml:"D"`
}

// Needs converts the row to per-slot counts
func (d DayRequirement) Needs() SlotNeeds {
	return SlotNeeds{Breakfast: d.Breakfast, Lunch: d.Lunch, Dinner: d.Dinner}
}

// Shortfall is demand left unmet for one date and slot after a run
type Shortfall struct {
	Date      string    `json:"date"`
	Slot      ShiftSlot `json:"slot"`
	Remaining int       `json:"remaining"`
}

// ScheduleInput is the data structure for the scheduling endpoint
type ScheduleInput struct {
	Employees      []EmployeeInput  `json:"employees" yaml:"employees"`
	StartDate      string           `json:"start_date" yaml:"start_date"`
	EndDate        string           `json:"end_date" yaml:"end_date"`
	Days           []DayRequirement `json:"days" yaml:"days"`
	MaxLeadShifts  int              `json:"max_lead_shifts,omitempty" yaml:"max_lead_shifts"`
	MaxOtherShifts int              `json:"max_other_shifts,omitempty" yaml:"max_other_shifts"`
}

// EmployeeSchedule is one row of the rendered schedule
type EmployeeSchedule struct {
	Name          string            `json:"name"`
	Lead          bool              `json:"lead"`
	TotalAssigned int               `json:"total_assigned"`
	Shifts        map[string]string `json:"shifts"` // date -> "BLD" / "OFF"
}

// ScheduleResponse is the data structure for the scheduling result
type ScheduleResponse struct {
	RunID         string             `json:"run_id"`
	Dates         []string           `json:"dates"`
	Schedule      []EmployeeSchedule `json:"schedule"`
	Unmet         []Shortfall        `json:"unmet"`
	FairnessScore float64            `json:"fairness_score"`
	MaxAssigned   int                `json:"max_assigned"`
}

// BuildRoster converts client entries into fresh employees, keeping order
func BuildRoster(entries []EmployeeInput) ([]*Employee, error) {
	roster := make([]*Employee, 0, len(entries))
	for _, in := range entries {
		roster = append(roster, NewEmployee(in.Name, in.Lead))
	}
	if err := ValidateRoster(roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// ScheduleRows renders each employee's shift codes for the given dates
func ScheduleRows(roster []*Employee, dates []string) []EmployeeSchedule {
	rows := make([]EmployeeSchedule, 0, len(roster))
	for _, e := range roster {
		shifts := make(map[string]string, len(dates))
		for _, d := range dates {
			shifts[d] = e.ShiftCodes(d)
		}
		rows = append(rows, EmployeeSchedule{
			Name:          e.Name,
			Lead:          e.Lead,
			TotalAssigned: e.TotalAssigned,
			Shifts:        shifts,
		})
	}
	return rows
}
