package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sensor-telemetry/pkg/telemetrydb"
)

type createSensorRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
}

// Pointers so that an explicit 0.0 passes the required check.
type createReadingRequest struct {
	SensorID      *uint    `json:"sensor_id" binding:"required"`
	AccelerationX *float64 `json:"acceleration_x" binding:"required"`
	AccelerationY *float64 `json:"acceleration_y" binding:"required"`
	AccelerationZ *float64 `json:"acceleration_z" binding:"required"`
	GyroscopeX    *float64 `json:"gyroscope_x" binding:"required"`
	GyroscopeY    *float64 `json:"gyroscope_y" binding:"required"`
	GyroscopeZ    *float64 `json:"gyroscope_z" binding:"required"`
}

func (r createReadingRequest) toNewReading() telemetrydb.NewReading {
	return telemetrydb.NewReading{
		SensorID:      *r.SensorID,
		AccelerationX: *r.AccelerationX,
		AccelerationY: *r.AccelerationY,
		AccelerationZ: *r.AccelerationZ,
		GyroscopeX:    *r.GyroscopeX,
		GyroscopeY:    *r.GyroscopeY,
		GyroscopeZ:    *r.GyroscopeZ,
	}
}

func detail(msg string) gin.H { return gin.H{"detail": msg} }

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, detail(err.Error()))
}

// fail maps a storage error to a response. notFound is the body detail used
// for ErrNotFound.
func fail(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, telemetrydb.ErrNotFound):
		c.JSON(http.StatusNotFound, detail(notFound))
	case errors.Is(err, telemetrydb.ErrConstraintViolation):
		c.JSON(http.StatusConflict, detail("constraint violation: referenced sensor does not exist"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, detail("internal server error"))
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	ctx, cancel := s.requestContext(c)
	defer cancel()

	if err := s.config.Store.Ping(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateSensor(c *gin.Context) {
	var req createSensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	sensor, err := s.config.Store.CreateSensor(ctx, req.Name, req.Location)
	if err != nil {
		fail(c, err, "Sensor not found")
		return
	}
	c.JSON(http.StatusOK, sensor)
}

func (s *Server) handleGetSensor(c *gin.Context) {
	id, err := pathID(c, "sensor_id")
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	sensor, err := s.config.Store.GetSensor(ctx, id)
	if err != nil {
		fail(c, err, "Sensor not found")
		return
	}
	c.JSON(http.StatusOK, sensor)
}

func (s *Server) handleListSensors(c *gin.Context) {
	page, err := pageParams(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	sensors, err := s.config.Store.ListSensors(ctx, page)
	if err != nil {
		fail(c, err, "Sensor not found")
		return
	}
	c.JSON(http.StatusOK, sensors)
}

func (s *Server) handleDeleteSensor(c *gin.Context) {
	id, err := pathID(c, "sensor_id")
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	sensor, err := s.config.Store.DeleteSensor(ctx, id)
	if err != nil {
		fail(c, err, "Sensor not found")
		return
	}
	c.JSON(http.StatusOK, sensor)
}

func (s *Server) handleCreateReading(c *gin.Context) {
	var req createReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	reading, err := s.config.Store.CreateReading(ctx, req.toNewReading())
	if err != nil {
		fail(c, err, "Reading not found")
		return
	}
	c.JSON(http.StatusOK, reading)
}

func (s *Server) handleListReadings(c *gin.Context) {
	sensorID, err := queryUint(c, "sensor_id")
	if err != nil {
		badRequest(c, err)
		return
	}
	start, end, err := timeWindow(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	page, err := pageParams(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	filter := telemetrydb.ReadingFilter{SensorID: sensorID, Start: start, End: end}
	readings, err := s.config.Store.ListReadings(ctx, filter, page)
	if err != nil {
		fail(c, err, "Reading not found")
		return
	}
	c.JSON(http.StatusOK, readings)
}

func (s *Server) handleGetReading(c *gin.Context) {
	id, err := pathID(c, "reading_id")
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	reading, err := s.config.Store.GetReading(ctx, id)
	if err != nil {
		fail(c, err, "Reading not found")
		return
	}
	c.JSON(http.StatusOK, reading)
}

func (s *Server) handleDeleteReading(c *gin.Context) {
	id, err := pathID(c, "reading_id")
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	reading, err := s.config.Store.DeleteReading(ctx, id)
	if err != nil {
		fail(c, err, "Reading not found")
		return
	}
	c.JSON(http.StatusOK, reading)
}

// handleSensorStats answers 404 only for an unknown sensor; a sensor without
// readings in the window gets null aggregates.
func (s *Server) handleSensorStats(c *gin.Context) {
	id, err := pathID(c, "sensor_id")
	if err != nil {
		badRequest(c, err)
		return
	}
	start, end, err := timeWindow(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	stats, err := s.config.Store.SensorStats(ctx, id, start, end)
	if err != nil {
		fail(c, err, "Sensor not found")
		return
	}
	c.JSON(http.StatusOK, stats)
}
