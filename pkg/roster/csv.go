package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arnavshah/roster-scheduler-go/pkg/models"
)

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

func readHeader(r *csv.Reader) (map[string]int, error) {
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols, nil
}

func column(cols map[string]int, names ...string) (int, error) {
	for _, n := range names {
		if i, ok := cols[n]; ok {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrMissingColumn, names[0])
}

func parseLead(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "lead", "head":
		return true
	}
	return false
}

// ReadEmployeesCSV reads name,lead rows. The lead column is optional.
func ReadEmployeesCSV(r io.Reader) ([]models.EmployeeInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	cols, err := readHeader(reader)
	if err != nil {
		return nil, err
	}
	nameCol, err := column(cols, "name")
	if err != nil {
		return nil, err
	}
	leadCol, hasLead := cols["lead"]

	var out []models.EmployeeInput
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if nameCol >= len(record) || strings.TrimSpace(record[nameCol]) == "" {
			continue
		}
		in := models.EmployeeInput{Name: strings.TrimSpace(record[nameCol])}
		if hasLead && leadCol < len(record) {
			in.Lead = parseLead(record[leadCol])
		}
		out = append(out, in)
	}
	return out, nil
}

// ReadRequirementsCSV reads date,B,L,D rows (breakfast, lunch and dinner
// are accepted as column names too). Empty counts are zero.
func ReadRequirementsCSV(r io.Reader) ([]models.DayRequirement, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	cols, err := readHeader(reader)
	if err != nil {
		return nil, err
	}
	dateCol, err := column(cols, "date")
	if err != nil {
		return nil, err
	}
	var slotCols [models.SlotCount]int
	for _, slot := range models.AllSlots {
		i, err := column(cols, strings.ToLower(slot.Code()), slot.String())
		if err != nil {
			return nil, err
		}
		slotCols[slot] = i
	}

	var out []models.DayRequirement
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if dateCol >= len(record) || strings.TrimSpace(record[dateCol]) == "" {
			continue
		}
		var needs models.SlotNeeds
		for _, slot := range models.AllSlots {
			i := slotCols[slot]
			if i >= len(record) || strings.TrimSpace(record[i]) == "" {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(record[i]))
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, slot, err)
			}
			if n < 0 {
				return nil, fmt.Errorf("line %d: %w", line, models.ErrNegativeCount)
			}
			needs[slot] = n
		}
		out = append(out, models.DayRequirement{
			Date:      strings.TrimSpace(record[dateCol]),
			Breakfast: needs[models.Breakfast],
			Lunch:     needs[models.Lunch],
			Dinner:    needs[models.Dinner],
		})
	}
	return out, nil
}
