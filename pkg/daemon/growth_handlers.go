package daemon

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sproutlab/sprout/pkg/chart"
	"github.com/sproutlab/sprout/pkg/events"
	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/history"
	"github.com/sproutlab/sprout/pkg/journal"
	"github.com/sproutlab/sprout/pkg/percentile"
	"github.com/sproutlab/sprout/pkg/types"
	"github.com/sproutlab/sprout/pkg/units"
)

func getPercentileValue(c *gin.Context) {
	metric, err := queryMetric(c, "metric")
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	month, err := queryInt(c, "month")
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	rank, err := queryFloat(c, "rank")
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	sex, err := querySex(c)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	useMetric, err := queryUseMetric(c)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	v, err := percentile.Value(metric, month, rank, sex, useMetric)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, types.PercentileValue{
		Metric: metric,
		Sex:    sex,
		Month:  month,
		Rank:   rank,
		Value:  v,
		Unit:   units.Symbol(metric, useMetric),
	})
}

func getPercentileRank(c *gin.Context) {
	metric, err := queryMetric(c, "metric")
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	month, err := queryInt(c, "month")
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	value, err := queryFloat(c, "value")
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	sex, err := querySex(c)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	z, err := percentile.ZScore(metric, month, value, sex)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	rank, err := percentile.Rank(metric, month, value, sex)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, types.PercentileRank{
		Metric:     metric,
		Sex:        sex,
		Month:      month,
		Value:      value,
		ZScore:     z,
		Percentile: rank,
	})
}

func getCurves(c *gin.Context) {
	metric, err := queryMetric(c, "metric")
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	sex, err := querySex(c)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	useMetric, err := queryUseMetric(c)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	cs, err := curves.get(metric, sex, useMetric)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, types.CurveSet{
		Metric: metric,
		Sex:    sex,
		Unit:   units.Symbol(metric, useMetric),
		Curves: cs,
	})
}

func listEntries(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, entries.List())
}

func getEntry(c *gin.Context) {
	e, err := entries.Get(c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, e)
}

func addEntry(c *gin.Context) {
	var e journal.Entry
	if err := c.BindJSON(&e); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	// Measurements before birth cannot be placed on a chart.
	if birth := conf.BirthDate(); !birth.IsZero() && !e.Date.IsZero() {
		if _, err := history.MonthsBetween(birth, e.Date); err != nil {
			abortWithDomainError(c, err)
			return
		}
	}

	added, err := entries.Add(e)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	if err := entries.Save(); err != nil {
		logrus.Errorf("failed to save journal: %v", err)
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	logrus.WithField("id", added.ID).Infof("added entry for %s", added.Date.Format(time.DateOnly))
	hub.Publish(events.EntryAdded, events.EntryEvent{
		ID:   added.ID,
		Date: added.Date.Format(time.DateOnly),
		Ts:   time.Now().Unix(),
	})
	c.IndentedJSON(http.StatusCreated, added)
}

func removeEntry(c *gin.Context) {
	removed, err := entries.Remove(c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	if err := entries.Save(); err != nil {
		logrus.Errorf("failed to save journal: %v", err)
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	logrus.WithField("id", removed.ID).Info("removed entry")
	hub.Publish(events.EntryRemoved, events.EntryEvent{
		ID:   removed.ID,
		Date: removed.Date.Format(time.DateOnly),
		Ts:   time.Now().Unix(),
	})
	c.IndentedJSON(http.StatusOK, removed)
}

func builder() history.Builder {
	return history.Builder{
		Birth:     conf.BirthDate(),
		Sex:       conf.Sex(),
		UseMetric: conf.UseMetric(),
	}
}

func getSeries(c *gin.Context) {
	metric, err := queryMetric(c, "metric")
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	points, err := builder().Series(metric, entries.List())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, points)
}

func getLatest(c *gin.Context) {
	b := builder()
	list := entries.List()

	cards := make([]types.LatestCard, 0, len(growth.Metrics))
	for _, m := range growth.Metrics {
		p, found, err := b.Latest(m, list)
		if err != nil {
			abortWithDomainError(c, err)
			return
		}
		cards = append(cards, types.LatestCard{
			Metric: m,
			Unit:   units.Symbol(m, b.UseMetric),
			Found:  found,
			Point:  p,
		})
	}
	c.IndentedJSON(http.StatusOK, cards)
}

func getChart(c *gin.Context) {
	metric, err := queryMetric(c, "metric")
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	var opts []chart.Option
	if w, h := c.Query("width"), c.Query("height"); w != "" && h != "" {
		width, werr := strconv.Atoi(w)
		height, herr := strconv.Atoi(h)
		if werr != nil || herr != nil || width <= 0 || height <= 0 {
			abortWithError(c, http.StatusBadRequest, errBadQuery)
			return
		}
		opts = append(opts, chart.WithSize(width, height))
	}

	ch, err := builder().Chart(metric, entries.List())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, ch, opts...); err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
