package common

import "github.com/prometheus/client_golang/prometheus"

const (
	DiscordRequestTotal              = "discord_requests_total"
	DiscordRequestDurationSeconds    = "discord_request_duration_seconds"
	DiscordCachePopulationFailures   = "discord_cache_population_failures_total"
	DiscordInteractionsReceivedTotal = "discord_interactions_received_total"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{}

	PromCounters = map[string]*prometheus.CounterVec{
		DiscordRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: DiscordRequestTotal,
			Help: "Count of all requests sent to the chat service",
		}, []string{"method", "route", "status_code"}),
		DiscordCachePopulationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: DiscordCachePopulationFailures,
			Help: "Count of failed cache populations",
		}, []string{"manager"}),
		DiscordInteractionsReceivedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: DiscordInteractionsReceivedTotal,
			Help: "Count of all interactions received by the webhook handler",
		}, []string{"type"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		DiscordRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: DiscordRequestDurationSeconds,
			Help: "Duration of all requests sent to the chat service",
		}, []string{"method", "route"}),
	}

	PromSummaries = map[string]*prometheus.SummaryVec{}
)
