package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/relvacode/iso8601"

	"sensor-telemetry/internal/config"
	"sensor-telemetry/internal/output"
	"sensor-telemetry/pkg/telemetrydb"
)

func main() {
	var cfgPath string
	var outJSON string
	var outCSV string
	var sensorID uint
	var start, end string
	var pageSize int
	flag.StringVar(&cfgPath, "config", "", "path to YAML config (optional)")
	flag.StringVar(&outJSON, "json", "", "path to write JSON export (optional)")
	flag.StringVar(&outCSV, "csv", "", "path to write CSV export (optional)")
	flag.UintVar(&sensorID, "sensor", 0, "only export readings of this sensor (0 = all)")
	flag.StringVar(&start, "start", "", "inclusive ISO-8601 lower bound")
	flag.StringVar(&end, "end", "", "inclusive ISO-8601 upper bound")
	flag.IntVar(&pageSize, "page-size", 1000, "rows fetched per query")
	flag.Parse()

	if outJSON == "" && outCSV == "" {
		log.Fatalf("no output specified: set --json and/or --csv")
	}
	if pageSize <= 0 {
		pageSize = telemetrydb.DefaultLimit
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	filter := telemetrydb.ReadingFilter{}
	if sensorID != 0 {
		filter.SensorID = &sensorID
	}
	if filter.Start, err = parseBound(start); err != nil {
		log.Fatalf("-start: %v", err)
	}
	if filter.End, err = parseBound(end); err != nil {
		log.Fatalf("-end: %v", err)
	}

	client, err := telemetrydb.Open(telemetrydb.Options{
		Dialect:     cfg.Database.Dialect,
		DSN:         cfg.Database.ConnString(),
		SkipMigrate: true,
	})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// offset pages are not a snapshot; rows inserted meanwhile may shift
	var readings []telemetrydb.Reading
	for skip := 0; ; skip += pageSize {
		page, err := client.ListReadings(ctx, filter, telemetrydb.Page{Skip: skip, Limit: pageSize})
		if err != nil {
			log.Fatalf("list readings: %v", err)
		}
		readings = append(readings, page...)
		if len(page) < pageSize {
			break
		}
	}
	log.Printf("exporting %d readings", len(readings))

	if outJSON != "" {
		if err := output.WriteJSON(outJSON, readings); err != nil {
			log.Printf("write json error: %v", err)
		}
	}
	if outCSV != "" {
		if err := output.WriteCSV(outCSV, readings); err != nil {
			log.Printf("write csv error: %v", err)
		}
	}
}

func parseBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := iso8601.ParseString(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
