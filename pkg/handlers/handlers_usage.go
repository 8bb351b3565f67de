package handlers

import (
	"net/http"
	"strconv"

	"github.com/arnavshah/roster-scheduler-go/pkg/database"
	"github.com/gin-gonic/gin"
)

// usageReport is the body of both usage endpoints
type usageReport struct {
	KeyID     uint                 `json:"key_id"`
	KeyName   string               `json:"key_name,omitempty"`
	RateLimit int                  `json:"rate_limit,omitempty"`
	Usage     []database.APIUsage  `json:"usage"`
	Totals    database.UsageTotals `json:"totals"`
}

func (h *Handler) writeUsage(c *gin.Context, report usageReport) {
	rows, err := database.RecentUsage(h.DB, report.KeyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage"})
		return
	}
	if rows == nil {
		rows = []database.APIUsage{}
	}
	report.Usage = rows
	report.Totals = database.SumUsage(rows)
	c.JSON(http.StatusOK, report)
}

// GetMyUsage reports the last 30 days for the calling API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	raw, ok := c.Get("apiKey")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}
	key := raw.(*database.APIKey)
	h.writeUsage(c, usageReport{KeyID: key.ID, KeyName: key.Name, RateLimit: key.RateLimit})
}

// GetUsage reports the last 30 days for the key in the path (admin only)
func (h *Handler) GetUsage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key id"})
		return
	}
	h.writeUsage(c, usageReport{KeyID: uint(id)})
}
