package server

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	reportdomain "github.com/staffdeck/staffdeck/internal/report/domain"
	taskdomain "github.com/staffdeck/staffdeck/internal/task/domain"
)

const dateLayout = "2006-01-02"

func parseIDParam(c *gin.Context, name string) (snowflake.ID, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, newValidationError(name, "invalid_id", "invalid id")
	}
	return id, nil
}

func parseOptionalID(raw string) (snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return snowflake.ParseString(raw)
}

func parseOptionalDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, raw)
}

func parseStatusFilter(raw string) taskdomain.StatusFilter {
	switch taskdomain.StatusFilter(strings.TrimSpace(raw)) {
	case taskdomain.StatusPending:
		return taskdomain.StatusPending
	case taskdomain.StatusCompleted:
		return taskdomain.StatusCompleted
	default:
		return taskdomain.StatusAll
	}
}

// resolveDateRange prefers explicit from/to parameters and falls back to a
// named preset, defaulting to this month.
func (s *Server) resolveDateRange(c *gin.Context) (reportdomain.DateRange, error) {
	from, err := parseOptionalDate(c.Query("from"))
	if err != nil {
		return reportdomain.DateRange{}, newValidationError("from", "invalid_date", "invalid from date")
	}
	to, err := parseOptionalDate(c.Query("to"))
	if err != nil {
		return reportdomain.DateRange{}, newValidationError("to", "invalid_date", "invalid to date")
	}
	if !from.IsZero() && !to.IsZero() {
		return reportdomain.DateRange{From: from, To: to}, nil
	}

	preset := reportdomain.RangePreset(strings.TrimSpace(c.Query("range")))
	if preset == "" {
		preset = reportdomain.PresetThisMonth
	}
	return s.reportSvc.ResolvePreset(preset, time.Now().UTC()), nil
}
