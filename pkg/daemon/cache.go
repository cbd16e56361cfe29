package daemon

import (
	"sync"

	"github.com/sproutlab/sprout/pkg/growth"
	"github.com/sproutlab/sprout/pkg/percentile"
)

type curveKey struct {
	metric    growth.Metric
	sex       growth.Sex
	useMetric bool
}

// curveCache memoizes reference curves. They only depend on the key, so
// entries never go stale.
type curveCache struct {
	mu sync.Mutex
	m  map[curveKey][]percentile.Curve
}

func newCurveCache() *curveCache {
	return &curveCache{m: make(map[curveKey][]percentile.Curve)}
}

func (cc *curveCache) get(metric growth.Metric, sex growth.Sex, useMetric bool) ([]percentile.Curve, error) {
	key := curveKey{metric: metric, sex: sex, useMetric: useMetric}

	cc.mu.Lock()
	defer cc.mu.Unlock()

	if c, ok := cc.m[key]; ok {
		return c, nil
	}

	c, err := percentile.Curves(metric, sex, useMetric)
	if err != nil {
		return nil, err
	}
	cc.m[key] = c
	return c, nil
}

func (cc *curveCache) len() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return len(cc.m)
}
