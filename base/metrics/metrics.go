/*
Package metrics wraps datadog-go to facilitate metric recording.
Naming convention:
  - internal process time: *.time
  - external latency: *.latency
  - error: *.err
  - warning: *.warn
*/
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/motorline/goapi/base/env"
	"github.com/motorline/goapi/base/log"
)

const (
	// ddRate is the rate to pass metrics to the datadog agent. 1 means always.
	ddRate = 1
	// buffer this many metrics before flushing to the statsd agent
	bufferMetrics = 10

	ddPort = 8125
)

var (
	initOnce sync.Once
	ddClient statsCli
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

func initDDClient() {
	addr := fmt.Sprintf("%s:%d", viper.GetString("datadog_host"), ddPort)
	log.Log().WithField("addr", addr).Info("connecting to datadog agent")

	var err error
	ddClient, err = statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
	}
}

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client with the package name as prefix
func New(pkgName string) Service {
	return &metricsImpl{
		pkgName: pkgName,
		baseTags: []string{
			// using host removes all tags associated with host
			"host:",
			"pod:" + env.PodName(),
			"env:" + viper.GetString("env_name"),
			"app:" + viper.GetString("app_name"),
		},
	}
}

type metricsImpl struct {
	pkgName  string
	baseTags []string
}

func (mt *metricsImpl) makeTags(tags []string) []string {
	res := append([]string{}, mt.baseTags...)
	// accepts pairwise "key", "value" arguments the way callers write them inline
	for i := 0; i+1 < len(tags); i += 2 {
		res = append(res, tags[i]+":"+tags[i+1])
	}
	return res
}

// BumpAvg bumps the average for the given key.
func (mt *metricsImpl) BumpAvg(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	// datadog has no average-only metric; histogram covers it
	ddClient.Histogram(mt.pkgName+"."+key, val, mt.makeTags(tags), ddRate)
}

// BumpSum bumps the sum for the given key.
func (mt *metricsImpl) BumpSum(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	ddClient.Count(mt.pkgName+"."+key, int64(val), mt.makeTags(tags), ddRate)
}

// BumpHistogram bumps the histogram for the given key.
func (mt *metricsImpl) BumpHistogram(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	ddClient.Histogram(mt.pkgName+"."+key, val, mt.makeTags(tags), ddRate)
}

// BumpTime starts a timer. Calling End() on the returned value records the
// duration under the given key:
//
//	defer met.BumpTime("placeBid.time").End()
func (mt *metricsImpl) BumpTime(key string, tags ...string) Ender {
	initOnce.Do(initDDClient)
	return &timeTracker{
		start: time.Now(),
		key:   mt.pkgName + "." + key,
		tags:  mt.makeTags(tags),
	}
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
}

func (t *timeTracker) End() {
	ddClient.TimeInMilliseconds(t.key, float64(time.Since(t.start))/float64(time.Millisecond), t.tags, ddRate)
}
