package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/arnavshah/roster-scheduler-go/internal/console"
	"github.com/arnavshah/roster-scheduler-go/pkg/config"
	"github.com/arnavshah/roster-scheduler-go/pkg/logger"
	"github.com/arnavshah/roster-scheduler-go/pkg/models"
	"github.com/arnavshah/roster-scheduler-go/pkg/roster"
)

func main() {
	planPath := flag.String("plan", "", "YAML plan file (employees, start_date, end_date, days); prompts when empty")
	format := flag.String("format", console.FormatTable, "output format: table, plain or csv")
	leadCap := flag.Int("lead-cap", 0, "lifetime shift cap for leads (default from config)")
	otherCap := flag.Int("other-cap", 0, "lifetime shift cap for everyone else (default from config)")
	initFrom := flag.String("init", "", "print a sample plan starting at this date (YYYY-MM-DD) and exit")
	flag.Parse()

	ctx := context.Background()
	config.LoadDotEnv(config.DefaultEnvPaths...)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *initFrom != "" {
		if *initFrom == "today" {
			*initFrom = time.Now().Format(models.DateLayout)
		}
		plan, err := console.SamplePlan(*initFrom)
		if err == nil {
			err = roster.EncodePlan(os.Stdout, plan)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	r := &console.Runner{In: os.Stdin, Out: os.Stdout, Log: logger.Named("console")}
	err = r.Run(ctx, console.Options{
		PlanPath: *planPath,
		Format:   *format,
		MaxLead:  *leadCap,
		MaxOther: *otherCap,

		DefaultLead:  cfg.MaxLeadShifts,
		DefaultOther: cfg.MaxOtherShifts,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "schedule:", err)
		os.Exit(1)
	}
}
