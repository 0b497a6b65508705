package telemetrydb

import (
	"context"
	"encoding/json"
	"time"

	"sensor-telemetry/internal/model"
)

// SensorStats is the acceleration aggregate of one sensor. Aggregates are
// null when no reading matched.
type SensorStats struct {
	SensorID  uint     `json:"sensor_id"`
	Count     int64    `json:"count"`
	MinAccelX *float64 `json:"min_accel_x"`
	MaxAccelX *float64 `json:"max_accel_x"`
	AvgAccelX *float64 `json:"avg_accel_x"`
	MinAccelY *float64 `json:"min_accel_y"`
	MaxAccelY *float64 `json:"max_accel_y"`
	AvgAccelY *float64 `json:"avg_accel_y"`
	MinAccelZ *float64 `json:"min_accel_z"`
	MaxAccelZ *float64 `json:"max_accel_z"`
	AvgAccelZ *float64 `json:"avg_accel_z"`
}

// Empty reports whether the aggregate covered zero readings.
func (s *SensorStats) Empty() bool { return s.Count == 0 }

func fromModelStats(sensorID uint, st *model.AccelerationStats) *SensorStats {
	return &SensorStats{
		SensorID:  sensorID,
		Count:     st.Count,
		MinAccelX: st.MinAccelX,
		MaxAccelX: st.MaxAccelX,
		AvgAccelX: st.AvgAccelX,
		MinAccelY: st.MinAccelY,
		MaxAccelY: st.MaxAccelY,
		AvgAccelY: st.AvgAccelY,
		MinAccelZ: st.MinAccelZ,
		MaxAccelZ: st.MaxAccelZ,
		AvgAccelZ: st.AvgAccelZ,
	}
}

// SensorStats returns ErrNotFound only when the sensor itself is absent.
func (c *Client) SensorStats(ctx context.Context, sensorID uint, start, end *time.Time) (*SensorStats, error) {
	st, err := c.db.SensorStats(ctx, sensorID, start, end)
	if err != nil {
		return nil, err
	}
	return fromModelStats(sensorID, st), nil
}

// StatsJSON returns SensorStats encoded as JSON.
func (c *Client) StatsJSON(ctx context.Context, sensorID uint, start, end *time.Time) ([]byte, error) {
	st, err := c.SensorStats(ctx, sensorID, start, end)
	if err != nil {
		return nil, err
	}
	return json.Marshal(st)
}
