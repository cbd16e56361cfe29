package daemon

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sproutlab/sprout/pkg/config"
	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/history"
	"github.com/sproutlab/sprout/pkg/types"
	"github.com/sproutlab/sprout/pkg/version"
)

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func setSex(c *gin.Context) {
	var raw string
	if err := c.BindJSON(&raw); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	sex, err := growth.ParseSex(raw)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	conf.SetSex(sex)
	if err := saveConfig("sex", sex); err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set sex to %s", sex)
	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set sex to %s", sex))
}

func setUseMetric(c *gin.Context) {
	var useMetric bool
	if err := c.BindJSON(&useMetric); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	conf.SetUseMetric(useMetric)
	if err := saveConfig("useMetric", useMetric); err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	msg := "imperial units (lb, in)"
	if useMetric {
		msg = "metric units (kg, cm)"
	}
	logrus.Infof("switched to %s", msg)
	c.IndentedJSON(http.StatusCreated, "switched to "+msg)
}

func setBirthDate(c *gin.Context) {
	var raw string
	if err := c.BindJSON(&raw); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		conf.SetBirthDate(time.Time{})
		if err := saveConfig("birthDate", ""); err != nil {
			abortWithError(c, http.StatusInternalServerError, err)
			return
		}
		logrus.Info("cleared birth date")
		c.IndentedJSON(http.StatusCreated, "cleared birth date")
		return
	}

	birth, err := time.Parse(config.DateLayout, raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, pkgerrors.Wrapf(err, "birth date must look like %s", config.DateLayout))
		return
	}
	if birth.After(time.Now()) {
		abortWithDomainError(c, pkgerrors.Wrapf(growth.ErrNegativeAge, "birth date %s is in the future", raw))
		return
	}
	// Entries are sorted by date, so only the first one can predate birth.
	if list := entries.List(); len(list) > 0 {
		if _, err := history.MonthsBetween(birth, list[0].Date); err != nil {
			abortWithDomainError(c, pkgerrors.Wrapf(err, "entry %s", list[0].ID))
			return
		}
	}

	conf.SetBirthDate(birth)
	if err := saveConfig("birthDate", raw); err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set birth date to %s", raw)
	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set birth date to %s", raw))
}

func setBabyName(c *gin.Context) {
	var name string
	if err := c.BindJSON(&name); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	name = strings.TrimSpace(name)
	conf.SetBabyName(name)
	if err := saveConfig("babyName", name); err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set baby name to %q", name)
	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set name to %q", name))
}

func setReminder(c *gin.Context) {
	var expr string
	if err := c.BindJSON(&expr); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	expr = strings.TrimSpace(expr)
	if expr != "" {
		if err := ValidateCron(expr); err != nil {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}
	}

	conf.SetReminderCron(expr)
	if err := saveConfig("reminderCron", expr); err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	applyReminder(expr)

	if expr == "" {
		c.IndentedJSON(http.StatusCreated, "disabled measurement reminder")
		return
	}
	next, _ := reminder.Status()
	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("reminder scheduled, next at %s", next.Format(time.DateTime)))
}

func getReminder(c *gin.Context) {
	next, running := reminder.Status()
	c.IndentedJSON(http.StatusOK, types.ReminderStatus{
		Cron:    conf.ReminderCron(),
		Running: running,
		NextRun: next,
	})
}

func skipReminder(c *gin.Context) {
	if err := reminder.Skip(); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	next, _ := reminder.Status()
	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("skipped, next reminder at %s", next.Format(time.DateTime)))
}
