package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/sproutlab/sprout/pkg/config"
	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/history"
	"github.com/sproutlab/sprout/pkg/journal"
	"github.com/sproutlab/sprout/pkg/types"
)

func (c *Client) SetSex(sex growth.Sex) (string, error) {
	return c.putJSON("/sex", string(sex))
}

func (c *Client) SetUseMetric(useMetric bool) (string, error) {
	return c.Put("/use-metric", strconv.FormatBool(useMetric))
}

// SetBirthDate sets the birth date. A zero time clears it.
func (c *Client) SetBirthDate(t time.Time) (string, error) {
	raw := ""
	if !t.IsZero() {
		raw = t.Format(config.DateLayout)
	}
	return c.putJSON("/birth-date", raw)
}

func (c *Client) SetBabyName(name string) (string, error) {
	return c.putJSON("/baby-name", name)
}

// SetReminder schedules the measurement reminder. An empty expression
// disables it.
func (c *Client) SetReminder(cronExpr string) (string, error) {
	return c.putJSON("/reminder", cronExpr)
}

func (c *Client) GetReminder() (*types.ReminderStatus, error) {
	var status types.ReminderStatus
	if err := c.getJSON("/reminder", &status); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get reminder status")
	}
	return &status, nil
}

func (c *Client) SkipReminder() (string, error) {
	return c.Post("/reminder/skip", "")
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	var conf config.RawFileConfig
	if err := c.getJSON("/config", &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}
	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	var v string
	if err := c.getJSON("/version", &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}
	return v, nil
}

// PercentileValue asks the daemon for the measurement at rank. A nil useMetric
// uses the daemon's unit preference.
func (c *Client) PercentileValue(metric growth.Metric, month int, rank float64, sex growth.Sex, useMetric *bool) (*types.PercentileValue, error) {
	q := url.Values{}
	q.Set("metric", string(metric))
	q.Set("month", strconv.Itoa(month))
	q.Set("rank", strconv.FormatFloat(rank, 'f', -1, 64))
	setSexAndUnits(q, sex, useMetric)

	var v types.PercentileValue
	if err := c.getJSON("/percentile/value?"+q.Encode(), &v); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get percentile value")
	}
	return &v, nil
}

// PercentileRank asks the daemon for the rank of a measurement in kg or cm.
func (c *Client) PercentileRank(metric growth.Metric, month int, value float64, sex growth.Sex) (*types.PercentileRank, error) {
	q := url.Values{}
	q.Set("metric", string(metric))
	q.Set("month", strconv.Itoa(month))
	q.Set("value", strconv.FormatFloat(value, 'f', -1, 64))
	setSexAndUnits(q, sex, nil)

	var r types.PercentileRank
	if err := c.getJSON("/percentile/rank?"+q.Encode(), &r); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get percentile rank")
	}
	return &r, nil
}

func (c *Client) GetCurves(metric growth.Metric, sex growth.Sex, useMetric *bool) (*types.CurveSet, error) {
	q := url.Values{}
	q.Set("metric", string(metric))
	setSexAndUnits(q, sex, useMetric)

	var cs types.CurveSet
	if err := c.getJSON("/curves?"+q.Encode(), &cs); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get curves")
	}
	return &cs, nil
}

func (c *Client) ListEntries() ([]journal.Entry, error) {
	var list []journal.Entry
	if err := c.getJSON("/entries", &list); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list entries")
	}
	return list, nil
}

func (c *Client) GetEntry(id string) (*journal.Entry, error) {
	var e journal.Entry
	if err := c.getJSON("/entries/"+url.PathEscape(id), &e); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get entry %s", id)
	}
	return &e, nil
}

func (c *Client) AddEntry(e journal.Entry) (*journal.Entry, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	ret, err := c.Post("/entries", string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to add entry")
	}

	var added journal.Entry
	if err := json.Unmarshal([]byte(ret), &added); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal entry")
	}
	return &added, nil
}

func (c *Client) RemoveEntry(id string) (*journal.Entry, error) {
	ret, err := c.Delete("/entries/" + url.PathEscape(id))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to remove entry %s", id)
	}

	var removed journal.Entry
	if err := json.Unmarshal([]byte(ret), &removed); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal entry")
	}
	return &removed, nil
}

func (c *Client) GetSeries(metric growth.Metric) ([]history.Point, error) {
	var points []history.Point
	if err := c.getJSON("/series/"+string(metric), &points); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get %s series", metric)
	}
	return points, nil
}

func (c *Client) GetLatest() ([]types.LatestCard, error) {
	var cards []types.LatestCard
	if err := c.getJSON("/latest", &cards); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get latest percentiles")
	}
	return cards, nil
}

// GetChart returns the PNG growth chart of metric. Zero width or height uses
// the daemon's default size.
func (c *Client) GetChart(metric growth.Metric, width, height int) ([]byte, error) {
	path := "/chart/" + string(metric)
	if width > 0 && height > 0 {
		q := url.Values{}
		q.Set("width", strconv.Itoa(width))
		q.Set("height", strconv.Itoa(height))
		path += "?" + q.Encode()
	}

	b, err := c.do(context.Background(), http.MethodGet, path, "")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get %s chart", metric)
	}
	return b, nil
}

func (c *Client) putJSON(path string, v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return c.Put(path, string(payload))
}

func (c *Client) getJSON(path string, v any) error {
	ret, err := c.Get(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(ret), v); err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal response of %s", path)
	}
	return nil
}

func setSexAndUnits(q url.Values, sex growth.Sex, useMetric *bool) {
	if sex != "" {
		q.Set("sex", string(sex))
	}
	if useMetric != nil {
		q.Set("metric_units", strconv.FormatBool(*useMetric))
	}
}

// ParseMessage strips the JSON quotes of a plain message response.
func ParseMessage(resp string) string {
	var msg string
	if err := json.Unmarshal([]byte(resp), &msg); err != nil {
		return resp
	}
	return msg
}
