package handlers

import (
	"net/http"

	"github.com/arnavshah/roster-scheduler-go/pkg/models"
	"github.com/gin-gonic/gin"
)

// ValidateInput checks a scheduling request without running it
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	emps, rt, lead, other, err := h.prepare(input)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	leads := 0
	for _, e := range emps {
		if e.Lead {
			leads++
		}
	}
	required := rt.TotalRequired()
	capacity := leads*lead + (len(emps)-leads)*other

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"employee_count":  len(emps),
			"lead_count":      leads,
			"day_count":       rt.Len(),
			"required_slots":  required,
			"roster_capacity": capacity,
			"over_capacity":   required > capacity,
		},
	})
}
