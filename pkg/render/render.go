// Package render turns a scheduled roster into console tables and CSV.
package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/arnavshah/roster-scheduler-go/pkg/models"
	"github.com/charmbracelet/lipgloss"
)

const (
	nameWidth = 15
	dayWidth  = 12
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	leadStyle   = lipgloss.NewStyle().Bold(true)
	offStyle    = lipgloss.NewStyle().Faint(true)
	shiftStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Table renders the roster as a bordered grid: a name column followed by
// one column per date holding the shift codes or OFF.
func Table(roster []*models.Employee, dates []string) string {
	names := []string{headerStyle.Render("Name")}
	for _, e := range roster {
		style := lipgloss.NewStyle()
		if e.Lead {
			style = leadStyle
		}
		names = append(names, style.Render(e.Name))
	}
	columns := []string{column(names, nameWidth)}

	for _, d := range dates {
		cells := []string{headerStyle.Render(d)}
		for _, e := range roster {
			code := e.ShiftCodes(d)
			if code == models.OffCode {
				cells = append(cells, offStyle.Render(code))
			} else {
				cells = append(cells, shiftStyle.Render(code))
			}
		}
		columns = append(columns, column(cells, dayWidth))
	}

	return boxStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
}

func column(cells []string, width int) string {
	style := lipgloss.NewStyle().Width(width)
	for i := range cells {
		cells[i] = style.Render(cells[i])
	}
	return lipgloss.JoinVertical(lipgloss.Left, cells...)
}

// Shortfalls renders unmet demand one line per date and slot, or nothing.
func Shortfalls(unmet []models.Shortfall) string {
	if len(unmet) == 0 {
		return ""
	}
	lines := []string{headerStyle.Render("Unfilled")}
	for _, s := range unmet {
		lines = append(lines, fmt.Sprintf("%s %s: %d short", s.Date, s.Slot.Code(), s.Remaining))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// WritePlain writes the schedule as fixed-width text without styling.
func WritePlain(w io.Writer, roster []*models.Employee, dates []string) error {
	if _, err := fmt.Fprintf(w, "%-*s", nameWidth, "Name"); err != nil {
		return err
	}
	for _, d := range dates {
		fmt.Fprintf(w, "%-*s", dayWidth, d)
	}
	fmt.Fprintln(w)

	for _, e := range roster {
		fmt.Fprintf(w, "%-*s", nameWidth, e.Name)
		for _, d := range dates {
			fmt.Fprintf(w, "%-*s", dayWidth, e.ShiftCodes(d))
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes a name,lead,total header followed by one column per date.
func WriteCSV(w io.Writer, roster []*models.Employee, dates []string) error {
	writer := csv.NewWriter(w)
	header := append([]string{"name", "lead", "total_assigned"}, dates...)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, e := range roster {
		row := []string{e.Name, fmt.Sprintf("%t", e.Lead), fmt.Sprintf("%d", e.TotalAssigned)}
		for _, d := range dates {
			row = append(row, e.ShiftCodes(d))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
