package roster

import (
	"fmt"
	"io"
	"os"

	"github.com/arnavshah/roster-scheduler-go/pkg/models"
	"gopkg.in/yaml.v3"
)

// DecodePlan reads a schedule plan (employees, date range, days) as YAML.
func DecodePlan(r io.Reader) (models.ScheduleInput, error) {
	var plan models.ScheduleInput
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil {
		if err == io.EOF {
			return plan, nil
		}
		return plan, fmt.Errorf("roster: decode plan: %w", err)
	}
	return plan, nil
}

// LoadPlan reads a YAML plan from path.
func LoadPlan(path string) (models.ScheduleInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ScheduleInput{}, fmt.Errorf("roster: open plan: %w", err)
	}
	defer f.Close()
	return DecodePlan(f)
}

// EncodePlan writes plan as YAML, for example to seed a file for editing.
func EncodePlan(w io.Writer, plan models.ScheduleInput) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("roster: encode plan: %w", err)
	}
	return enc.Close()
}
