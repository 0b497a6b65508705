package telemetrydb

import (
	"context"
	"time"

	"sensor-telemetry/internal/model"
)

// --------------------
// Sensor DTOs and converters
// --------------------

type Sensor struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

func fromModelSensor(s *model.Sensor) *Sensor {
	if s == nil {
		return nil
	}
	return &Sensor{
		ID:        s.ID,
		Name:      s.Name,
		Location:  s.Location,
		CreatedAt: s.CreatedAt,
	}
}

// --------------------
// Sensor management
// --------------------

func (c *Client) CreateSensor(ctx context.Context, name, location string) (*Sensor, error) {
	s, err := c.db.CreateSensor(ctx, name, location)
	if err != nil {
		return nil, err
	}
	return fromModelSensor(s), nil
}

func (c *Client) GetSensor(ctx context.Context, id uint) (*Sensor, error) {
	s, err := c.db.GetSensor(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromModelSensor(s), nil
}

func (c *Client) ListSensors(ctx context.Context, page Page) ([]Sensor, error) {
	list, err := c.db.ListSensors(ctx, page)
	if err != nil {
		return nil, err
	}
	out := make([]Sensor, 0, len(list))
	for i := range list {
		out = append(out, *fromModelSensor(&list[i]))
	}
	return out, nil
}

// DeleteSensor removes the sensor and its readings, returning the deleted sensor.
func (c *Client) DeleteSensor(ctx context.Context, id uint) (*Sensor, error) {
	s, err := c.db.DeleteSensor(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromModelSensor(s), nil
}
