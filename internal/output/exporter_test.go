package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sensor-telemetry/pkg/telemetrydb"
)

var sample = []telemetrydb.Reading{
	{ID: 1, SensorID: 2, Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), AccelerationX: 0.5, AccelerationY: -1, AccelerationZ: 9.81, GyroscopeX: 0.01, GyroscopeY: 0, GyroscopeZ: -0.25},
	{ID: 2, SensorID: 2, Timestamp: time.Date(2024, 1, 2, 3, 4, 6, 500, time.UTC), AccelerationX: 1},
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "readings.csv")
	if err := WriteCSV(path, sample); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	want := []string{"1", "2", "2024-01-02T03:04:05Z", "0.5", "-1", "9.81", "0.01", "0", "-0.25"}
	for i := range want {
		if records[1][i] != want[i] {
			t.Fatalf("column %s: want %q, got %q", CSVHeader[i], want[i], records[1][i])
		}
	}
	if records[2][2] != "2024-01-02T03:04:06.0000005Z" {
		t.Fatalf("unexpected timestamp %q", records[2][2])
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "readings.json")
	if err := WriteJSON(path, sample); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 2 || got[0]["acceleration_z"] != 9.81 {
		t.Fatalf("unexpected content %v", got)
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := WriteJSON(empty, nil); err != nil {
		t.Fatalf("WriteJSON(nil) failed: %v", err)
	}
	if b, _ := os.ReadFile(empty); string(b) != "[]" {
		t.Fatalf("expected empty array, got %q", b)
	}
}
