package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/relvacode/iso8601"

	"sensor-telemetry/pkg/telemetrydb"
)

func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, raw)
	}
	return uint(v), nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func queryUint(c *gin.Context, name string) (*uint, error) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return nil, fmt.Errorf("%s must be a non-negative integer, got %q", name, raw)
	}
	id := uint(v)
	return &id, nil
}

// queryTime parses an optional ISO-8601 timestamp. Values without a zone
// are taken as UTC.
func queryTime(c *gin.Context, name string) (*time.Time, error) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := iso8601.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%s must be an ISO-8601 timestamp: %v", name, err)
	}
	return &t, nil
}

func pageParams(c *gin.Context) (telemetrydb.Page, error) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return telemetrydb.Page{}, err
	}
	if skip < 0 {
		return telemetrydb.Page{}, fmt.Errorf("skip must be >= 0, got %d", skip)
	}
	limit, err := queryInt(c, "limit", telemetrydb.DefaultLimit)
	if err != nil {
		return telemetrydb.Page{}, err
	}
	if limit <= 0 {
		return telemetrydb.Page{}, fmt.Errorf("limit must be > 0, got %d", limit)
	}
	return telemetrydb.Page{Skip: skip, Limit: limit}, nil
}

func timeWindow(c *gin.Context) (start, end *time.Time, err error) {
	if start, err = queryTime(c, "start"); err != nil {
		return nil, nil, err
	}
	if end, err = queryTime(c, "end"); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}
