package telemetrydb

import (
	"context"
	"time"

	"sensor-telemetry/internal/model"
)

// --------------------
// Reading DTOs
// --------------------

type Reading struct {
	ID            uint      `json:"id"`
	SensorID      uint      `json:"sensor_id"`
	Timestamp     time.Time `json:"timestamp"`
	AccelerationX float64   `json:"acceleration_x"`
	AccelerationY float64   `json:"acceleration_y"`
	AccelerationZ float64   `json:"acceleration_z"`
	GyroscopeX    float64   `json:"gyroscope_x"`
	GyroscopeY    float64   `json:"gyroscope_y"`
	GyroscopeZ    float64   `json:"gyroscope_z"`
}

// NewReading carries the caller-supplied fields of a reading.
type NewReading struct {
	SensorID      uint    `json:"sensor_id"`
	AccelerationX float64 `json:"acceleration_x"`
	AccelerationY float64 `json:"acceleration_y"`
	AccelerationZ float64 `json:"acceleration_z"`
	GyroscopeX    float64 `json:"gyroscope_x"`
	GyroscopeY    float64 `json:"gyroscope_y"`
	GyroscopeZ    float64 `json:"gyroscope_z"`
}

// --------------------
// Converters
// --------------------

func fromModelReading(r *model.Reading) *Reading {
	if r == nil {
		return nil
	}
	return &Reading{
		ID:            r.ID,
		SensorID:      r.SensorID,
		Timestamp:     r.Timestamp,
		AccelerationX: r.AccelerationX,
		AccelerationY: r.AccelerationY,
		AccelerationZ: r.AccelerationZ,
		GyroscopeX:    r.GyroscopeX,
		GyroscopeY:    r.GyroscopeY,
		GyroscopeZ:    r.GyroscopeZ,
	}
}

func toModelReadingInput(n NewReading) model.ReadingInput {
	return model.ReadingInput{
		SensorID:      n.SensorID,
		AccelerationX: n.AccelerationX,
		AccelerationY: n.AccelerationY,
		AccelerationZ: n.AccelerationZ,
		GyroscopeX:    n.GyroscopeX,
		GyroscopeY:    n.GyroscopeY,
		GyroscopeZ:    n.GyroscopeZ,
	}
}

// --------------------
// Reading operations
// --------------------

// CreateReading fails with ErrConstraintViolation when the sensor does not exist.
func (c *Client) CreateReading(ctx context.Context, n NewReading) (*Reading, error) {
	r, err := c.db.CreateReading(ctx, toModelReadingInput(n))
	if err != nil {
		return nil, err
	}
	return fromModelReading(r), nil
}

func (c *Client) GetReading(ctx context.Context, id uint) (*Reading, error) {
	r, err := c.db.GetReading(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromModelReading(r), nil
}

// ListReadings returns readings matching every set filter, ordered by id.
func (c *Client) ListReadings(ctx context.Context, f ReadingFilter, page Page) ([]Reading, error) {
	rows, err := c.db.ListReadings(ctx, f, page)
	if err != nil {
		return nil, err
	}
	out := make([]Reading, 0, len(rows))
	for i := range rows {
		out = append(out, *fromModelReading(&rows[i]))
	}
	return out, nil
}

func (c *Client) DeleteReading(ctx context.Context, id uint) (*Reading, error) {
	r, err := c.db.DeleteReading(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromModelReading(r), nil
}
