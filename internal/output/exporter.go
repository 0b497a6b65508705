package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"sensor-telemetry/pkg/telemetrydb"
)

// CSVHeader lists the columns written by WriteCSV.
var CSVHeader = []string{
	"id", "sensor_id", "timestamp",
	"acceleration_x", "acceleration_y", "acceleration_z",
	"gyroscope_x", "gyroscope_y", "gyroscope_z",
}

// WriteJSON writes readings to a JSON file with pretty formatting.
func WriteJSON(path string, readings []telemetrydb.Reading) error {
	if readings == nil {
		readings = []telemetrydb.Reading{}
	}
	b, err := json.MarshalIndent(readings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteCSV writes one row per reading, header first.
func WriteCSV(path string, readings []telemetrydb.Reading) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range readings {
		if err := w.Write(csvRow(r)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func csvRow(r telemetrydb.Reading) []string {
	return []string{
		strconv.FormatUint(uint64(r.ID), 10),
		strconv.FormatUint(uint64(r.SensorID), 10),
		timeToRFC3339(r.Timestamp),
		ftoa(r.AccelerationX), ftoa(r.AccelerationY), ftoa(r.AccelerationZ),
		ftoa(r.GyroscopeX), ftoa(r.GyroscopeY), ftoa(r.GyroscopeZ),
	}
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func timeToRFC3339(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }
