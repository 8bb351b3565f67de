// Package console runs the scheduler from the terminal: it gathers a plan
// from a YAML file or interactive prompts and prints the resulting roster.
package console

import (
	"context"
	"fmt"
	"io"

	"github.com/arnavshah/roster-scheduler-go/pkg/logger"
	"github.com/arnavshah/roster-scheduler-go/pkg/models"
	"github.com/arnavshah/roster-scheduler-go/pkg/render"
	"github.com/arnavshah/roster-scheduler-go/pkg/roster"
	"github.com/arnavshah/roster-scheduler-go/pkg/scheduler"
)

// Output formats
const (
	FormatTable = "table"
	FormatPlain = "plain"
	FormatCSV   = "csv"
)

// Options controls one console run. Caps resolve as MaxLead/MaxOther, then
// the plan file, then the configured defaults.
type Options struct {
	PlanPath string
	Format   string
	MaxLead  int
	MaxOther int

	DefaultLead  int
	DefaultOther int
}

// Runner ties the prompts, scheduler and renderers together.
type Runner struct {
	In  io.Reader
	Out io.Writer
	Log logger.Logger
}

// Run loads or asks for a plan, schedules it and writes the result.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	plan, err := r.plan(opts)
	if err != nil {
		return err
	}

	emps, err := roster.Resolve(plan.Employees)
	if err != nil {
		return err
	}
	rt, err := plan.Requirements(0)
	if err != nil {
		return err
	}

	lead := firstPositive(opts.MaxLead, plan.MaxLeadShifts, opts.DefaultLead)
	other := firstPositive(opts.MaxOther, plan.MaxOtherShifts, opts.DefaultOther)

	s := scheduler.NewScheduler(emps, rt, scheduler.WithLeadCap(lead), scheduler.WithOtherCap(other))
	s.Generate()
	dates := rt.Dates()
	unmet := s.Shortfalls()

	r.Log.Debug(ctx, "schedule generated",
		logger.Int("days", len(dates)),
		logger.Int("employees", len(emps)),
		logger.Int("shortfalls", len(unmet)),
		logger.Float64("fairness", s.CalculateFairnessScore()),
	)

	switch opts.Format {
	case FormatCSV:
		return render.WriteCSV(r.Out, emps, dates)
	case FormatPlain:
		if err := render.WritePlain(r.Out, emps, dates); err != nil {
			return err
		}
	case "", FormatTable:
		fmt.Fprintln(r.Out, render.Table(emps, dates))
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}

	if text := render.Shortfalls(unmet); text != "" {
		fmt.Fprintln(r.Out, text)
	}
	return nil
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

func (r *Runner) plan(opts Options) (models.ScheduleInput, error) {
	if opts.PlanPath != "" {
		return roster.LoadPlan(opts.PlanPath)
	}
	return NewPrompter(r.In, r.Out).Collect()
}

// SamplePlan is a starting point for a plan file: the house roster and one
// week of typical demand.
func SamplePlan(start string) (models.ScheduleInput, error) {
	first, err := models.ParseDate(start)
	if err != nil {
		return models.ScheduleInput{}, err
	}
	plan := models.ScheduleInput{
		Employees: roster.DefaultEntries(),
		StartDate: first.Format(models.DateLayout),
		EndDate:   first.AddDate(0, 0, 6).Format(models.DateLayout),
	}
	dates, err := models.DateRange(first, first.AddDate(0, 0, 6))
	if err != nil {
		return plan, err
	}
	for _, d := range dates {
		plan.Days = append(plan.Days, models.DayRequirement{Date: d, Breakfast: 3, Lunch: 5, Dinner: 6})
	}
	return plan, nil
}
