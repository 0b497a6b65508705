package db

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sensor-telemetry/internal/model"
)

// Only the acceleration axes are aggregated; gyroscope fields are left out.
const accelerationStatsColumns = "COUNT(*) AS count, " +
	"MIN(acceleration_x) AS min_accel_x, MAX(acceleration_x) AS max_accel_x, AVG(acceleration_x) AS avg_accel_x, " +
	"MIN(acceleration_y) AS min_accel_y, MAX(acceleration_y) AS max_accel_y, AVG(acceleration_y) AS avg_accel_y, " +
	"MIN(acceleration_z) AS min_accel_z, MAX(acceleration_z) AS max_accel_z, AVG(acceleration_z) AS avg_accel_z"

// SensorStats aggregates the acceleration axes of one sensor's readings
// within the optional inclusive [start, end] window.
//
// An unknown sensor returns ErrNotFound. A known sensor without matching
// readings returns Count 0 and nil aggregates.
func (d *DB) SensorStats(ctx context.Context, sensorID uint, start, end *time.Time) (*model.AccelerationStats, error) {
	var st model.AccelerationStats
	err := d.transaction(ctx, func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&model.Sensor{}).Where("id = ?", sensorID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrNotFound
		}
		f := ReadingFilter{SensorID: &sensorID, Start: start, End: end}
		q := f.Predicates().Apply(tx.Model(&model.Reading{}).Select(accelerationStatsColumns))
		return q.Scan(&st).Error
	})
	if err != nil {
		return nil, classify("sensor stats", err)
	}
	return &st, nil
}
