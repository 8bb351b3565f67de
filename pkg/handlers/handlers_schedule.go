package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/arnavshah/roster-scheduler-go/pkg/database"
	"github.com/arnavshah/roster-scheduler-go/pkg/logger"
	"github.com/arnavshah/roster-scheduler-go/pkg/models"
	"github.com/arnavshah/roster-scheduler-go/pkg/render"
	"github.com/arnavshah/roster-scheduler-go/pkg/roster"
	"github.com/arnavshah/roster-scheduler-go/pkg/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// run is one finished scheduling pass
type run struct {
	id        string
	roster    []*models.Employee
	dates     []string
	scheduler *scheduler.Scheduler
	unmet     []models.Shortfall
}

func (r *run) response() models.ScheduleResponse {
	unmet := r.unmet
	if unmet == nil {
		unmet = []models.Shortfall{}
	}
	return models.ScheduleResponse{
		RunID:         r.id,
		Dates:         r.dates,
		Schedule:      models.ScheduleRows(r.roster, r.dates),
		Unmet:         unmet,
		FairnessScore: r.scheduler.CalculateFairnessScore(),
		MaxAssigned:   r.scheduler.MaxAssigned(),
	}
}

func (r *run) usage() database.UsageDelta {
	d := database.UsageDelta{Employees: len(r.roster)}
	for _, e := range r.roster {
		d.Slots += e.TotalAssigned
	}
	for _, s := range r.unmet {
		d.Unmet += s.Remaining
	}
	return d
}

// inputError marks failures caused by the request body.
type inputError struct{ err error }

func (e inputError) Error() string { return e.err.Error() }
func (e inputError) Unwrap() error { return e.err }

func (h *Handler) caps(input models.ScheduleInput) (int, int, error) {
	if input.MaxLeadShifts < 0 || input.MaxOtherShifts < 0 {
		return 0, 0, errors.New("shift caps must not be negative")
	}
	lead, other := h.Config.MaxLeadShifts, h.Config.MaxOtherShifts
	if input.MaxLeadShifts > 0 {
		lead = input.MaxLeadShifts
	}
	if input.MaxOtherShifts > 0 {
		other = input.MaxOtherShifts
	}
	return lead, other, nil
}

// prepare turns the input into a roster and requirement table
func (h *Handler) prepare(input models.ScheduleInput) ([]*models.Employee, *models.RequirementTable, int, int, error) {
	lead, other, err := h.caps(input)
	if err != nil {
		return nil, nil, 0, 0, inputError{err}
	}
	emps, err := roster.Resolve(input.Employees)
	if err != nil {
		return nil, nil, 0, 0, inputError{err}
	}
	rt, err := input.Requirements(h.Config.MaxDays)
	if err != nil {
		return nil, nil, 0, 0, inputError{err}
	}
	return emps, rt, lead, other, nil
}

// schedule runs the engine for input and records metrics and usage.
func (h *Handler) schedule(c *gin.Context, input models.ScheduleInput, source string) (*run, error) {
	emps, rt, lead, other, err := h.prepare(input)
	if err != nil {
		return nil, err
	}

	r := &run{id: uuid.NewString(), roster: emps, dates: rt.Dates()}
	r.scheduler = scheduler.NewScheduler(emps, rt, scheduler.WithLeadCap(lead), scheduler.WithOtherCap(other))

	start := time.Now()
	r.scheduler.Generate()
	took := time.Since(start)
	r.unmet = r.scheduler.Shortfalls()

	usage := r.usage()
	fairness := r.scheduler.CalculateFairnessScore()
	h.Metrics.ObserveRun(source, usage.Slots, usage.Unmet, fairness, took)
	h.RecordUsage(c, usage)

	log := h.Log.Named("schedule")
	log.Info(c, "schedule generated",
		logger.String("run_id", r.id),
		logger.String("source", source),
		logger.Int("days", len(r.dates)),
		logger.Int("employees", usage.Employees),
		logger.Int("assigned", usage.Slots),
		logger.Int("unmet", usage.Unmet),
		logger.Float64("fairness", fairness),
	)
	if usage.Unmet > 0 {
		log.Warn(c, "demand left unmet", logger.String("run_id", r.id), logger.Int("shortfalls", len(r.unmet)))
	}
	return r, nil
}

func (h *Handler) fail(c *gin.Context, err error) {
	var ie inputError
	if errors.As(err, &ie) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Log.Error(c, "schedule failed", logger.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate schedule"})
}

// ScheduleJSON handles the JSON-based scheduling request
func (h *Handler) ScheduleJSON(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := h.schedule(c, input, "json")
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r.response())
}

// RecordUsage adds the run's slot counts to the calling key's usage for
// today. The request itself was already counted by APIKeyMiddleware.
func (h *Handler) RecordUsage(c *gin.Context, d database.UsageDelta) {
	apiKey, ok := c.Get("apiKey")
	if !ok {
		return
	}
	if err := database.RecordUsage(h.DB, apiKey.(*database.APIKey).ID, time.Now(), d); err != nil {
		h.Log.Warn(c, "could not record usage", logger.Error(err))
	}
}

// ScheduleCSV handles CSV uploads: requirements_file (date,B,L,D) and an
// optional employees_file (name,lead). start_date and end_date may be sent
// as form fields.
func (h *Handler) ScheduleCSV(c *gin.Context) {
	reqFile, _ := c.FormFile("requirements_file")
	if reqFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requirements_file is required"})
		return
	}

	input := models.ScheduleInput{
		StartDate: strings.TrimSpace(c.PostForm("start_date")),
		EndDate:   strings.TrimSpace(c.PostForm("end_date")),
	}

	days, err := readUpload(reqFile, roster.ReadRequirementsCSV)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("requirements_file: %v", err)})
		return
	}
	input.Days = days

	if empFile, _ := c.FormFile("employees_file"); empFile != nil {
		emps, err := readUpload(empFile, roster.ReadEmployeesCSV)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("employees_file: %v", err)})
			return
		}
		if len(emps) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "employees_file: " + models.ErrEmptyRoster.Error()})
			return
		}
		input.Employees = emps
	}

	r, err := h.schedule(c, input, "csv")
	if err != nil {
		h.fail(c, err)
		return
	}

	var out strings.Builder
	if err := render.WriteCSV(&out, r.roster, r.dates); err != nil {
		h.fail(c, err)
		return
	}
	resp := r.response()
	c.JSON(http.StatusOK, gin.H{"run_id": r.id, "csv": out.String(), "unmet": resp.Unmet})
}

func readUpload[T any](fh *multipart.FileHeader, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}
