package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"sensor-telemetry/pkg/telemetrydb"
)

// Store is the set of access operations the HTTP layer calls.
// *telemetrydb.Client satisfies it.
type Store interface {
	Ping(ctx context.Context) error

	CreateSensor(ctx context.Context, name, location string) (*telemetrydb.Sensor, error)
	GetSensor(ctx context.Context, id uint) (*telemetrydb.Sensor, error)
	ListSensors(ctx context.Context, page telemetrydb.Page) ([]telemetrydb.Sensor, error)
	DeleteSensor(ctx context.Context, id uint) (*telemetrydb.Sensor, error)

	CreateReading(ctx context.Context, n telemetrydb.NewReading) (*telemetrydb.Reading, error)
	GetReading(ctx context.Context, id uint) (*telemetrydb.Reading, error)
	ListReadings(ctx context.Context, f telemetrydb.ReadingFilter, page telemetrydb.Page) ([]telemetrydb.Reading, error)
	DeleteReading(ctx context.Context, id uint) (*telemetrydb.Reading, error)

	SensorStats(ctx context.Context, sensorID uint, start, end *time.Time) (*telemetrydb.SensorStats, error)
}

type Server struct {
	config  *ServerConfig
	metrics *metrics
	router  *gin.Engine
}

func NewServer(options ...ConfigOption) (*Server, error) {
	config := &ServerConfig{
		Addr:            ":8000",
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}

	for _, option := range options {
		if err := option(config); err != nil {
			return nil, err
		}
	}
	if config.Store == nil {
		return nil, errors.New("api: store is required")
	}
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	server := &Server{
		config:  config,
		metrics: newMetrics(config.Registry),
		router:  gin.New(),
	}
	server.router.Use(gin.Logger(), gin.Recovery(), server.metrics.middleware())

	server.setupRoutes()
	return server, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealthz)
	s.router.GET("/metrics", metricsHandler(s.config.Registry))

	sensors := s.router.Group("/sensors")
	{
		sensors.POST("/", s.handleCreateSensor)
		sensors.GET("/", s.handleListSensors)
		sensors.GET("/:sensor_id", s.handleGetSensor)
		sensors.DELETE("/:sensor_id", s.handleDeleteSensor)
	}

	readings := s.router.Group("/readings")
	{
		readings.POST("/", s.handleCreateReading)
		readings.GET("/", s.handleListReadings)
		readings.GET("/:reading_id", s.handleGetReading)
		readings.DELETE("/:reading_id", s.handleDeleteReading)
	}

	s.router.GET("/stats/sensors/:sensor_id", s.handleSensorStats)
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown: %v", err)
		}
	}()

	log.Printf("Server starting on %s", s.config.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// requestContext bounds a handler's storage work by the request timeout.
func (s *Server) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.config.RequestTimeout)
}
