// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the services depend on.
type Recorder interface {
	RecordReaction(entity, kind string)
	RecordRatingUpdate()
	RecordCacheEviction()
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	requests       *prometheus.CounterVec
	reactions      *prometheus.CounterVec
	ratingUpdates  prometheus.Counter
	cacheEvictions prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsportal_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		reactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsportal_reactions_total",
			Help: "Likes and dislikes by entity.",
		}, []string{"entity", "kind"}),
		ratingUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsportal_rating_updates_total",
			Help: "Author rating recomputations.",
		}),
		cacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsportal_cache_evictions_total",
			Help: "Cache entries evicted after a save.",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.reactions,
		c.ratingUpdates,
		c.cacheEvictions,
	)

	return c
}

func (c *Collector) RecordRequest(method string, status int) {
	c.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (c *Collector) RecordReaction(entity, kind string) {
	c.reactions.WithLabelValues(entity, kind).Inc()
}

func (c *Collector) RecordRatingUpdate() {
	c.ratingUpdates.Inc()
}

func (c *Collector) RecordCacheEviction() {
	c.cacheEvictions.Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Noop discards everything. Useful where metrics are not under test.
type Noop struct{}

func (Noop) RecordReaction(entity, kind string) {}
func (Noop) RecordRatingUpdate()                {}
func (Noop) RecordCacheEviction()               {}
