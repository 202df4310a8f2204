package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
	"github.com/BruksfildServices01/lavanderia-scheduler/internal/middleware"
)

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseDateTime accepts RFC3339 or a local wall time read in loc.
func parseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, laundry.ErrInvalidDateTime
}

// parseDuration accepts Go durations ("1h30m") or clock notation
// ("01:30" or "01:30:00").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		if err := laundry.ValidateDuration(d); err != nil {
			return 0, err
		}
		return d, nil
	}

	neg := strings.HasPrefix(s, "-")
	parts := strings.Split(strings.TrimPrefix(s, "-"), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, laundry.ErrInvalidDuration
	}

	units := []time.Duration{time.Hour, time.Minute, time.Second}
	var d time.Duration
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, laundry.ErrInvalidDuration
		}
		d += time.Duration(n) * units[i]
	}

	if neg {
		return 0, laundry.ErrInvalidDuration
	}
	return d, nil
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, laundry.ErrInvalidRequest
	}
	return uint(id), nil
}

// actorID is the authenticated user id; routes using it sit behind Require.
func actorID(c *gin.Context) uint {
	return c.GetUint(middleware.ContextUserID)
}
