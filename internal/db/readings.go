package db

import (
	"context"

	"gorm.io/gorm"

	"sensor-telemetry/internal/model"
)

// CreateReading inserts a reading. The sensor reference is not checked up
// front; a missing sensor fails the insert with ErrConstraintViolation.
func (d *DB) CreateReading(ctx context.Context, in model.ReadingInput) (*model.Reading, error) {
	r := &model.Reading{
		SensorID:      in.SensorID,
		AccelerationX: in.AccelerationX,
		AccelerationY: in.AccelerationY,
		AccelerationZ: in.AccelerationZ,
		GyroscopeX:    in.GyroscopeX,
		GyroscopeY:    in.GyroscopeY,
		GyroscopeZ:    in.GyroscopeZ,
	}
	if err := d.ORM.WithContext(ctx).Create(r).Error; err != nil {
		return nil, classify("create reading", err)
	}
	return r, nil
}

// GetReading returns the reading with the given id or ErrNotFound.
func (d *DB) GetReading(ctx context.Context, id uint) (*model.Reading, error) {
	var r model.Reading
	if err := d.ORM.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, classify("get reading", err)
	}
	return &r, nil
}

// ListReadings returns one page of readings matching every set filter,
// ordered by id. An unknown sensor yields an empty slice.
func (d *DB) ListReadings(ctx context.Context, f ReadingFilter, page Page) ([]model.Reading, error) {
	out := []model.Reading{}
	q := f.Predicates().Apply(d.ORM.WithContext(ctx).Model(&model.Reading{}))
	if err := page.apply(q.Order("id")).Find(&out).Error; err != nil {
		return nil, classify("list readings", err)
	}
	return out, nil
}

// DeleteReading removes a reading and returns it as it was before deletion.
func (d *DB) DeleteReading(ctx context.Context, id uint) (*model.Reading, error) {
	var r model.Reading
	err := d.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&r, id).Error; err != nil {
			return err
		}
		return deleted(tx.Delete(&model.Reading{}, id))
	})
	if err != nil {
		return nil, classify("delete reading", err)
	}
	return &r, nil
}
