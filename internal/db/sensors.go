package db

import (
	"context"

	"gorm.io/gorm"

	"sensor-telemetry/internal/model"
)

// CreateSensor inserts a sensor and returns it with id and created_at set.
func (d *DB) CreateSensor(ctx context.Context, name, location string) (*model.Sensor, error) {
	s := &model.Sensor{Name: name, Location: location}
	if err := d.ORM.WithContext(ctx).Create(s).Error; err != nil {
		return nil, classify("create sensor", err)
	}
	return s, nil
}

// GetSensor returns the sensor with the given id or ErrNotFound.
func (d *DB) GetSensor(ctx context.Context, id uint) (*model.Sensor, error) {
	var s model.Sensor
	if err := d.ORM.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, classify("get sensor", err)
	}
	return &s, nil
}

// ListSensors returns one page of sensors ordered by id.
func (d *DB) ListSensors(ctx context.Context, page Page) ([]model.Sensor, error) {
	var out []model.Sensor
	q := d.ORM.WithContext(ctx).Order("id")
	if err := page.apply(q).Find(&out).Error; err != nil {
		return nil, classify("list sensors", err)
	}
	return out, nil
}

// DeleteSensor removes a sensor and all of its readings in one transaction
// and returns the sensor as it was before deletion.
func (d *DB) DeleteSensor(ctx context.Context, id uint) (*model.Sensor, error) {
	var s model.Sensor
	err := d.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		// explicit so the cascade holds even where ON DELETE CASCADE is not enforced
		if err := tx.Where("sensor_id = ?", id).Delete(&model.Reading{}).Error; err != nil {
			return err
		}
		return deleted(tx.Delete(&model.Sensor{}, id))
	})
	if err != nil {
		return nil, classify("delete sensor", err)
	}
	return &s, nil
}
