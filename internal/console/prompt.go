package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/arnavshah/roster-scheduler-go/pkg/models"
)

// ErrNoInput is returned when the input stream ends mid-prompt.
var ErrNoInput = errors.New("input closed")

// Prompter asks for dates and headcounts line by line, re-asking until the
// answer parses.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Date asks until a YYYY-MM-DD answer is given.
func (p *Prompter) Date(question string) (time.Time, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return time.Time{}, err
		}
		d, err := models.ParseDate(answer)
		if err == nil {
			return d, nil
		}
		fmt.Fprintln(p.out, "Please use the YYYY-MM-DD format.")
	}
}

// Count asks until a non-negative whole number is given.
func (p *Prompter) Count(question string) (int, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 0 {
			return n, nil
		}
		fmt.Fprintln(p.out, "Please enter a whole number of 0 or more.")
	}
}

// Collect asks for a date range and then the headcount for every slot of
// every day in it.
func (p *Prompter) Collect() (models.ScheduleInput, error) {
	var in models.ScheduleInput

	start, err := p.Date("Start date (YYYY-MM-DD): ")
	if err != nil {
		return in, err
	}
	var end time.Time
	for {
		end, err = p.Date("End date (YYYY-MM-DD): ")
		if err != nil {
			return in, err
		}
		if !end.Before(start) {
			break
		}
		fmt.Fprintln(p.out, "The end date must not be before the start date.")
	}

	dates, err := models.DateRange(start, end)
	if err != nil {
		return in, err
	}
	in.StartDate, in.EndDate = dates[0], dates[len(dates)-1]

	for _, d := range dates {
		var needs models.SlotNeeds
		for _, slot := range models.AllSlots {
			n, err := p.Count(fmt.Sprintf("Staff needed on %s (%s): ", d, slot.Code()))
			if err != nil {
				return in, err
			}
			needs[slot] = n
		}
		in.Days = append(in.Days, models.DayRequirement{
			Date:      d,
			Breakfast: needs[models.Breakfast],
			Lunch:     needs[models.Lunch],
			Dinner:    needs[models.Dinner],
		})
	}
	return in, nil
}
