package daemon

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sproutlab/sprout/pkg/events"
	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/history"
	"github.com/sproutlab/sprout/pkg/journal"
)

// Logger is the logrus logger handler
func ginLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// other handler can change c.Path so:
		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		stop := time.Since(start)
		latency := int(math.Ceil(float64(stop.Nanoseconds()) / 1000000.0))
		statusCode := c.Writer.Status()
		dataLength := c.Writer.Size()
		if dataLength < 0 {
			dataLength = 0
		}

		entry := logger.WithFields(logrus.Fields{
			"statusCode": statusCode,
			"latency":    latency, // time to process
			"method":     c.Request.Method,
			"path":       path,
			"dataLength": dataLength,
		})

		if len(c.Errors) > 0 {
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		} else {
			msg := fmt.Sprintf("%s %s %d (%dms)", c.Request.Method, path, statusCode, latency)
			//nolint:gocritic
			if statusCode >= http.StatusInternalServerError {
				entry.Error(msg)
			} else if statusCode >= http.StatusBadRequest {
				entry.Warn(msg)
			} else {
				entry.Debug(msg)
			}
		}
	}
}

var errBadQuery = errors.New("invalid query parameter")

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case growth.IsInvalidInput(err),
		errors.Is(err, errBadQuery),
		errors.Is(err, history.ErrBirthDateUnset),
		errors.Is(err, journal.ErrEmptyEntry),
		errors.Is(err, journal.ErrNegativeValue):
		return http.StatusBadRequest
	case errors.Is(err, journal.ErrEntryNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, code int, err error) {
	c.IndentedJSON(code, err.Error())
	_ = c.AbortWithError(code, err)
}

func abortWithDomainError(c *gin.Context, err error) {
	abortWithError(c, statusFor(err), err)
}

func queryMetric(c *gin.Context, key string) (growth.Metric, error) {
	raw := c.Query(key)
	if raw == "" {
		raw = c.Param(key)
	}
	return growth.ParseMetric(raw)
}

// querySex falls back to the configured sex.
func querySex(c *gin.Context) (growth.Sex, error) {
	raw := c.Query("sex")
	if raw == "" {
		return conf.Sex(), nil
	}
	return growth.ParseSex(raw)
}

// queryUseMetric falls back to the configured unit preference.
func queryUseMetric(c *gin.Context) (bool, error) {
	raw := c.Query("metric_units")
	if raw == "" {
		return conf.UseMetric(), nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.Wrapf(errBadQuery, "metric_units=%q", raw)
	}
	return b, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrapf(errBadQuery, "%s=%q", key, raw)
	}
	return v, nil
}

func queryFloat(c *gin.Context, key string) (float64, error) {
	raw := c.Query(key)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, pkgerrors.Wrapf(errBadQuery, "%s=%q", key, raw)
	}
	return v, nil
}

// saveConfig persists conf and announces the change.
func saveConfig(key string, value any) error {
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		return err
	}
	hub.Publish(events.ConfigChanged, events.ConfigEvent{Key: key, Value: value, Ts: time.Now().Unix()})
	return nil
}
