// Package roster supplies employee rosters and requirement rows to the
// scheduler: the built-in staff list plus YAML and CSV readers.
package roster

import (
	"github.com/arnavshah/roster-scheduler-go/pkg/models"
)

// defaultStaff is the house roster; the first four are head waiters.
var defaultStaff = []models.EmployeeInput{
	{Name: "Alfonso", Lead: true},
	{Name: "Victor", Lead: true},
	{Name: "Max", Lead: true},
	{Name: "Kate", Lead: true},
	{Name: "Nikita"},
	{Name: "Anna"},
	{Name: "Brooke"},
	{Name: "Amelia"},
	{Name: "Dogan"},
	{Name: "Mihajlo"},
	{Name: "Dusan"},
	{Name: "Janja"},
	{Name: "Mateja M"},
	{Name: "Lity"},
	{Name: "Cooper"},
	{Name: "Jameson"},
	{Name: "Laci"},
	{Name: "Isabella"},
	{Name: "Gianna"},
	{Name: "Gio"},
	{Name: "Addison"},
	{Name: "Cameron"},
	{Name: "Jane"},
	{Name: "Roman"},
}

// DefaultEntries returns a copy of the built-in roster entries
func DefaultEntries() []models.EmployeeInput {
	out := make([]models.EmployeeInput, len(defaultStaff))
	copy(out, defaultStaff)
	return out
}

// Default returns fresh employees for the built-in roster
func Default() []*models.Employee {
	roster := make([]*models.Employee, 0, len(defaultStaff))
	for _, in := range defaultStaff {
		roster = append(roster, models.NewEmployee(in.Name, in.Lead))
	}
	return roster
}

// Resolve builds employees from entries, falling back to the built-in
// roster when none are given.
func Resolve(entries []models.EmployeeInput) ([]*models.Employee, error) {
	if len(entries) == 0 {
		return Default(), nil
	}
	return models.BuildRoster(entries)
}
