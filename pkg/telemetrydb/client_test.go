package telemetrydb_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"sensor-telemetry/pkg/telemetrydb"
)

// testClock hands out a settable time so reading timestamps are predictable.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T) (*telemetrydb.Client, *testClock) {
	t.Helper()
	clock := &testClock{t: base}
	dbPath := filepath.Join(t.TempDir(), "telemetry_test.sqlite")
	client, err := telemetrydb.Open(telemetrydb.Options{
		Dialect: telemetrydb.DialectSQLite,
		DSN:     dbPath,
		Now:     clock.Now,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, clock
}

func mustSensor(t *testing.T, client *telemetrydb.Client, name string) *telemetrydb.Sensor {
	t.Helper()
	s, err := client.CreateSensor(context.Background(), name, "lab")
	if err != nil {
		t.Fatalf("CreateSensor(%s) failed: %v", name, err)
	}
	return s
}

func mustReading(t *testing.T, client *telemetrydb.Client, sensorID uint, ax float64) *telemetrydb.Reading {
	t.Helper()
	r, err := client.CreateReading(context.Background(), telemetrydb.NewReading{
		SensorID:      sensorID,
		AccelerationX: ax,
		AccelerationY: ax * 10,
		AccelerationZ: -ax,
		GyroscopeX:    100,
		GyroscopeY:    200,
		GyroscopeZ:    300,
	})
	if err != nil {
		t.Fatalf("CreateReading failed: %v", err)
	}
	return r
}

func uintPtr(v uint) *uint           { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestSensorCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, _ := newTestClient(t)

	created, err := client.CreateSensor(ctx, "imu-1", "bridge deck")
	if err != nil {
		t.Fatalf("CreateSensor failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected generated id")
	}
	if !created.CreatedAt.Equal(base) {
		t.Fatalf("expected created_at %v, got %v", base, created.CreatedAt)
	}

	got, err := client.GetSensor(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetSensor failed: %v", err)
	}
	if got.ID != created.ID || got.Name != "imu-1" || got.Location != "bridge deck" {
		t.Fatalf("unexpected sensor %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected created_at %v, got %v", created.CreatedAt, got.CreatedAt)
	}

	deleted, err := client.DeleteSensor(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteSensor failed: %v", err)
	}
	if deleted.Name != "imu-1" {
		t.Fatalf("expected pre-image of deleted sensor, got %+v", deleted)
	}

	if _, err := client.GetSensor(ctx, created.ID); !errors.Is(err, telemetrydb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := client.DeleteSensor(ctx, created.ID); !errors.Is(err, telemetrydb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListSensorsPagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, _ := newTestClient(t)

	var want []uint
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		want = append(want, mustSensor(t, client, name).ID)
	}

	all, err := client.ListSensors(ctx, telemetrydb.Page{})
	if err != nil {
		t.Fatalf("ListSensors failed: %v", err)
	}
	if len(all) != len(want) {
		t.Fatalf("expected %d sensors, got %d", len(want), len(all))
	}

	var paged []uint
	for skip := 0; ; skip += 3 {
		page, err := client.ListSensors(ctx, telemetrydb.Page{Skip: skip, Limit: 3})
		if err != nil {
			t.Fatalf("ListSensors(skip=%d) failed: %v", skip, err)
		}
		if len(page) == 0 {
			break
		}
		for _, s := range page {
			paged = append(paged, s.ID)
		}
	}
	if len(paged) != len(want) {
		t.Fatalf("expected %d paged sensors, got %d", len(want), len(paged))
	}
	for i := range want {
		if paged[i] != want[i] {
			t.Fatalf("page order mismatch at %d: want %d, got %d", i, want[i], paged[i])
		}
	}
}

func TestReadingCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, _ := newTestClient(t)

	s := mustSensor(t, client, "imu")
	r := mustReading(t, client, s.ID, 1.5)
	if r.ID == 0 || r.SensorID != s.ID {
		t.Fatalf("unexpected reading %+v", r)
	}
	if !r.Timestamp.Equal(base) {
		t.Fatalf("expected timestamp %v, got %v", base, r.Timestamp)
	}

	got, err := client.GetReading(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetReading failed: %v", err)
	}
	if got.AccelerationX != 1.5 || got.GyroscopeZ != 300 {
		t.Fatalf("unexpected reading %+v", got)
	}

	deleted, err := client.DeleteReading(ctx, r.ID)
	if err != nil {
		t.Fatalf("DeleteReading failed: %v", err)
	}
	if deleted.ID != r.ID {
		t.Fatalf("expected deleted reading %d, got %d", r.ID, deleted.ID)
	}
	if _, err := client.GetReading(ctx, r.ID); !errors.Is(err, telemetrydb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := client.DeleteReading(ctx, r.ID); !errors.Is(err, telemetrydb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCreateReadingUnknownSensor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, _ := newTestClient(t)

	_, err := client.CreateReading(ctx, telemetrydb.NewReading{SensorID: 4242, AccelerationX: 1})
	if !errors.Is(err, telemetrydb.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}

	rows, err := client.ListReadings(ctx, telemetrydb.ReadingFilter{}, telemetrydb.Page{})
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no persisted readings, got %d", len(rows))
	}
}

func TestDeleteSensorCascades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, _ := newTestClient(t)

	doomed := mustSensor(t, client, "doomed")
	kept := mustSensor(t, client, "kept")
	var ids []uint
	for i := 0; i < 4; i++ {
		ids = append(ids, mustReading(t, client, doomed.ID, float64(i)).ID)
	}
	survivor := mustReading(t, client, kept.ID, 9)

	if _, err := client.DeleteSensor(ctx, doomed.ID); err != nil {
		t.Fatalf("DeleteSensor failed: %v", err)
	}
	for _, id := range ids {
		if _, err := client.GetReading(ctx, id); !errors.Is(err, telemetrydb.ErrNotFound) {
			t.Fatalf("expected reading %d to be gone, got %v", id, err)
		}
	}
	if _, err := client.GetReading(ctx, survivor.ID); err != nil {
		t.Fatalf("expected other sensor's reading to survive: %v", err)
	}
}

func TestListReadingsFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, clock := newTestClient(t)

	s1 := mustSensor(t, client, "s1")
	s2 := mustSensor(t, client, "s2")
	for i := 0; i < 5; i++ {
		clock.Set(base.Add(time.Duration(i) * time.Minute))
		mustReading(t, client, s1.ID, float64(i))
		mustReading(t, client, s2.ID, float64(i))
	}

	all, err := client.ListReadings(ctx, telemetrydb.ReadingFilter{}, telemetrydb.Page{})
	if err != nil {
		t.Fatalf("ListReadings failed: %v", err)
	}
	if len(all) != 10 {
		t.Fatalf("expected 10 readings, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Fatalf("expected ascending ids, got %d before %d", all[i-1].ID, all[i].ID)
		}
	}

	bySensor, err := client.ListReadings(ctx, telemetrydb.ReadingFilter{SensorID: uintPtr(s1.ID)}, telemetrydb.Page{})
	if err != nil {
		t.Fatalf("ListReadings by sensor failed: %v", err)
	}
	if len(bySensor) != 5 {
		t.Fatalf("expected 5 readings for s1, got %d", len(bySensor))
	}
	for _, r := range bySensor {
		if r.SensorID != s1.ID {
			t.Fatalf("reading %d leaked from sensor %d", r.ID, r.SensorID)
		}
	}

	// bounds are inclusive on both ends
	windowed, err := client.ListReadings(ctx, telemetrydb.ReadingFilter{
		SensorID: uintPtr(s1.ID),
		Start:    timePtr(base.Add(1 * time.Minute)),
		End:      timePtr(base.Add(3 * time.Minute)),
	}, telemetrydb.Page{})
	if err != nil {
		t.Fatalf("ListReadings windowed failed: %v", err)
	}
	if len(windowed) != 3 {
		t.Fatalf("expected 3 readings in window, got %d", len(windowed))
	}
	for _, r := range windowed {
		if r.Timestamp.Before(base.Add(time.Minute)) || r.Timestamp.After(base.Add(3*time.Minute)) {
			t.Fatalf("reading %d at %v outside window", r.ID, r.Timestamp)
		}
	}

	openEnd, err := client.ListReadings(ctx, telemetrydb.ReadingFilter{Start: timePtr(base.Add(3 * time.Minute))}, telemetrydb.Page{})
	if err != nil {
		t.Fatalf("ListReadings open end failed: %v", err)
	}
	if len(openEnd) != 4 {
		t.Fatalf("expected 4 readings from minute 3 on, got %d", len(openEnd))
	}

	unknown, err := client.ListReadings(ctx, telemetrydb.ReadingFilter{SensorID: uintPtr(9999)}, telemetrydb.Page{})
	if err != nil {
		t.Fatalf("ListReadings unknown sensor failed: %v", err)
	}
	if len(unknown) != 0 {
		t.Fatalf("expected empty result for unknown sensor, got %d", len(unknown))
	}

	page, err := client.ListReadings(ctx, telemetrydb.ReadingFilter{SensorID: uintPtr(s2.ID)}, telemetrydb.Page{Skip: 3, Limit: 10})
	if err != nil {
		t.Fatalf("ListReadings paged failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 readings after skip=3, got %d", len(page))
	}
}

func TestSensorStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client, clock := newTestClient(t)

	s := mustSensor(t, client, "stats")
	other := mustSensor(t, client, "other")
	for i, ax := range []float64{1, 2, 3} {
		clock.Set(base.Add(time.Duration(i) * time.Hour))
		mustReading(t, client, s.ID, ax)
	}
	mustReading(t, client, other.ID, 1000)

	st, err := client.SensorStats(ctx, s.ID, nil, nil)
	if err != nil {
		t.Fatalf("SensorStats failed: %v", err)
	}
	if st.Count != 3 {
		t.Fatalf("expected count 3, got %d", st.Count)
	}
	if *st.MinAccelX != 1 || *st.MaxAccelX != 3 || *st.AvgAccelX != 2 {
		t.Fatalf("unexpected x stats min=%v max=%v avg=%v", *st.MinAccelX, *st.MaxAccelX, *st.AvgAccelX)
	}
	if *st.MinAccelY != 10 || *st.MaxAccelY != 30 || *st.AvgAccelY != 20 {
		t.Fatalf("unexpected y stats min=%v max=%v avg=%v", *st.MinAccelY, *st.MaxAccelY, *st.AvgAccelY)
	}
	if *st.MinAccelZ != -3 || *st.MaxAccelZ != -1 || *st.AvgAccelZ != -2 {
		t.Fatalf("unexpected z stats min=%v max=%v avg=%v", *st.MinAccelZ, *st.MaxAccelZ, *st.AvgAccelZ)
	}

	windowed, err := client.SensorStats(ctx, s.ID, timePtr(base.Add(time.Hour)), nil)
	if err != nil {
		t.Fatalf("SensorStats windowed failed: %v", err)
	}
	if windowed.Count != 2 || *windowed.MinAccelX != 2 || *windowed.AvgAccelX != 2.5 {
		t.Fatalf("unexpected windowed stats %+v", windowed)
	}

	empty, err := client.SensorStats(ctx, s.ID, timePtr(base.Add(48*time.Hour)), nil)
	if err != nil {
		t.Fatalf("SensorStats on empty window failed: %v", err)
	}
	if !empty.Empty() || empty.MinAccelX != nil || empty.MaxAccelZ != nil || empty.AvgAccelY != nil {
		t.Fatalf("expected null aggregates, got %+v", empty)
	}

	if _, err := client.SensorStats(ctx, 9999, nil, nil); !errors.Is(err, telemetrydb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown sensor, got %v", err)
	}

	raw, err := client.StatsJSON(ctx, s.ID, timePtr(base.Add(48*time.Hour)), nil)
	if err != nil {
		t.Fatalf("StatsJSON failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("StatsJSON produced invalid JSON: %v", err)
	}
	if v, ok := decoded["min_accel_x"]; !ok || v != nil {
		t.Fatalf("expected min_accel_x to be null, got %v", v)
	}
	if _, ok := decoded["min_gyro_x"]; ok {
		t.Fatalf("gyroscope axes must not be aggregated")
	}
}

func TestReopenKeepsData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.sqlite")

	first, err := telemetrydb.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s, err := first.CreateSensor(ctx, "persist", "roof")
	if err != nil {
		t.Fatalf("CreateSensor failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := telemetrydb.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if err := second.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	if _, err := second.GetSensor(ctx, s.ID); err != nil {
		t.Fatalf("expected sensor to survive reopen: %v", err)
	}
}
