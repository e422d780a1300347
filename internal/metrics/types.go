package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	PlayersRegistered   prometheus.Counter
	RoundsGenerated     prometheus.Counter
	RoundsSubmitted     prometheus.Counter
	MatchesApplied      prometheus.Counter
	MatchesSkipped      prometheus.Counter
	CurrentRound        prometheus.Gauge
	RosterSize          prometheus.Gauge
	OperationDuration   *prometheus.HistogramVec
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	EventsPublished     prometheus.Counter
	EventsPublishFailed prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
