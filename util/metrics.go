package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	replayOpenedCounter        prometheus.Counter
	navCommandCounter          prometheus.Counter
	autoplayTickCounter        prometheus.Counter
	replayCacheHitCounter      prometheus.Counter
	replayCacheMissCounter     prometheus.Counter
	viewUpdatePublishedCounter prometheus.Counter
	activeSessionsCountGauge   prometheus.Gauge
}

func (m *metrics) ReplayOpened() {
	m.replayOpenedCounter.Inc()
}

func (m *metrics) NavCommandReceived() {
	m.navCommandCounter.Inc()
}

func (m *metrics) AutoplayTick() {
	m.autoplayTickCounter.Inc()
}

func (m *metrics) ReplayCacheHit() {
	m.replayCacheHitCounter.Inc()
}

func (m *metrics) ReplayCacheMiss() {
	m.replayCacheMissCounter.Inc()
}

func (m *metrics) ViewUpdatePublished() {
	m.viewUpdatePublishedCounter.Inc()
}

func (m *metrics) SetActiveSessionsCount(count int) {
	m.activeSessionsCountGauge.Set(float64(count))
}

var Metrics = &metrics{
	replayOpenedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "replays_opened_total",
		Help: "Total number of replay sessions opened",
	}),
	navCommandCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "nav_commands_total",
		Help: "Total number of navigation commands received",
	}),
	autoplayTickCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoplay_ticks_total",
		Help: "Total number of autoplay ticks processed",
	}),
	replayCacheHitCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "replay_cache_hits_total",
		Help: "Total number of hand replay cache hits",
	}),
	replayCacheMissCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "replay_cache_misses_total",
		Help: "Total number of hand replay cache misses",
	}),
	viewUpdatePublishedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "view_updates_published_total",
		Help: "Total number of view model updates published to NATS",
	}),
	activeSessionsCountGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "active_replay_sessions_count",
		Help: "Count of the entries in the session manager activeSessions map",
	}),
}
