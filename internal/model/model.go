package model

import "time"

// Sensor is a named, located telemetry source.
// Table: sensors
type Sensor struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null;index"`
	Location  string    `gorm:"column:location;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime;<-:create"`

	Readings []Reading `gorm:"foreignKey:SensorID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Sensor) TableName() string { return "sensors" }

// Reading is one timestamped six-axis sample belonging to a Sensor.
// Table: readings
type Reading struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement"`
	SensorID      uint      `gorm:"column:sensor_id;not null;index;index:idx_readings_sensor_ts,priority:1"`
	Timestamp     time.Time `gorm:"column:timestamp;not null;autoCreateTime;<-:create;index;index:idx_readings_sensor_ts,priority:2"`
	AccelerationX float64   `gorm:"column:acceleration_x;not null"`
	AccelerationY float64   `gorm:"column:acceleration_y;not null"`
	AccelerationZ float64   `gorm:"column:acceleration_z;not null"`
	GyroscopeX    float64   `gorm:"column:gyroscope_x;not null"`
	GyroscopeY    float64   `gorm:"column:gyroscope_y;not null"`
	GyroscopeZ    float64   `gorm:"column:gyroscope_z;not null"`
}

func (Reading) TableName() string { return "readings" }

// ReadingInput carries the caller-supplied fields of a new Reading.
// ID and Timestamp are assigned by the store.
type ReadingInput struct {
	SensorID      uint
	AccelerationX float64
	AccelerationY float64
	AccelerationZ float64
	GyroscopeX    float64
	GyroscopeY    float64
	GyroscopeZ    float64
}

// AccelerationStats is the aggregate over the acceleration axes of a filtered
// set of readings. Pointers are nil when the set is empty.
type AccelerationStats struct {
	Count     int64    `gorm:"column:count"`
	MinAccelX *float64 `gorm:"column:min_accel_x"`
	MaxAccelX *float64 `gorm:"column:max_accel_x"`
	AvgAccelX *float64 `gorm:"column:avg_accel_x"`
	MinAccelY *float64 `gorm:"column:min_accel_y"`
	MaxAccelY *float64 `gorm:"column:max_accel_y"`
	AvgAccelY *float64 `gorm:"column:avg_accel_y"`
	MinAccelZ *float64 `gorm:"column:min_accel_z"`
	MaxAccelZ *float64 `gorm:"column:max_accel_z"`
	AvgAccelZ *float64 `gorm:"column:avg_accel_z"`
}

// AllModels returns the persisted models in dependency order.
func AllModels() []any {
	return []any{&Sensor{}, &Reading{}}
}
