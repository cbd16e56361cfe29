package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sproutlab/sprout/pkg/config"
	"github.com/sproutlab/sprout/pkg/events"
	"github.com/sproutlab/sprout/pkg/journal"
)

var (
	conf     config.Config
	entries  *journal.File
	hub      = events.NewEventHub()
	reminder = NewScheduler(remind, func(err error) {
		logrus.Errorf("reminder failed: %v", err)
	})
	curves = newCurveCache()
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/version", getVersion)
	router.GET("/config", getConfig)
	router.PUT("/sex", setSex)
	router.PUT("/use-metric", setUseMetric)
	router.PUT("/birth-date", setBirthDate)
	router.PUT("/baby-name", setBabyName)
	router.PUT("/reminder", setReminder)
	router.GET("/reminder", getReminder)
	router.POST("/reminder/skip", skipReminder)

	router.GET("/percentile/value", getPercentileValue)
	router.GET("/percentile/rank", getPercentileRank)
	router.GET("/curves", getCurves)

	router.GET("/entries", listEntries)
	router.POST("/entries", addEntry)
	router.GET("/entries/:id", getEntry)
	router.DELETE("/entries/:id", removeEntry)

	router.GET("/series/:metric", getSeries)
	router.GET("/latest", getLatest)
	router.GET("/chart/:metric", getChart)

	router.GET("/events", streamEvents)

	return router
}

func Run(configPath, journalPath, unixSocketPath string, allowNonRoot bool) error {
	router := setupRoutes()

	var err error
	conf, err = config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	entries, err = journal.NewFile(journalPath)
	if err != nil {
		logrus.Fatalf("failed to load journal during startup: %v", err)
	}
	logrus.WithField("entries", len(entries.List())).Infof("journal loaded from %s", journalPath)

	// Receive SIGHUP to reload config and journal
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			if err := conf.Load(); err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			if err := entries.Load(); err != nil {
				logrus.Errorf("failed to reload journal: %v", err)
				continue
			}
			applyReminder(conf.ReminderCron())
			logrus.Infof("config and journal reloaded")
		}
	}()

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// A socket left behind by a crashed daemon would make Listen fail.
	if _, err := os.Stat(unixSocketPath); err == nil {
		logrus.Warnf("removing stale socket %s", unixSocketPath)
		if err := os.Remove(unixSocketPath); err != nil {
			logrus.Fatal(err)
		}
	}

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			logrus.Fatal(err)
		}
	}

	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	reminder.Start()
	applyReminder(conf.ReminderCron())

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("stopping reminder scheduler")
	reminder.Stop()

	if err := entries.Save(); err != nil {
		logrus.Errorf("failed to save journal before exiting: %v", err)
	}

	logrus.Info("exiting")
	return nil
}
