package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PlayersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mexicano_players_registered_total",
			Help: "The total number of players registered.",
		}),
		RoundsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mexicano_rounds_generated_total",
			Help: "The total number of times matches were generated for a round.",
		}),
		RoundsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mexicano_rounds_submitted_total",
			Help: "The total number of score submissions.",
		}),
		MatchesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mexicano_matches_applied_total",
			Help: "The total number of matches whose scores were applied to the leaderboard.",
		}),
		MatchesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mexicano_matches_skipped_total",
			Help: "The total number of submitted matches skipped for missing or invalid scores.",
		}),
		CurrentRound: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mexicano_current_round",
			Help: "The current round number.",
		}),
		RosterSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mexicano_roster_size",
			Help: "The number of registered players.",
		}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mexicano_operation_duration_seconds",
			Help:    "The duration of tournament operations.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"operation"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mexicano_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mexicano_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mexicano_events_published_total",
			Help: "The total number of tournament events published to Pub/Sub.",
		}),
		EventsPublishFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mexicano_events_publish_failed_total",
			Help: "The total number of tournament events that failed to publish.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mexicano_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PlayersRegistered,
		s.RoundsGenerated,
		s.RoundsSubmitted,
		s.MatchesApplied,
		s.MatchesSkipped,
		s.CurrentRound,
		s.RosterSize,
		s.OperationDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.EventsPublished,
		s.EventsPublishFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPlayersRegistered() {
	s.PlayersRegistered.Inc()
}

func (s *Service) IncRoundsGenerated() {
	s.RoundsGenerated.Inc()
}

func (s *Service) IncRoundsSubmitted() {
	s.RoundsSubmitted.Inc()
}

func (s *Service) AddMatchesApplied(n int) {
	s.MatchesApplied.Add(float64(n))
}

func (s *Service) AddMatchesSkipped(n int) {
	s.MatchesSkipped.Add(float64(n))
}

func (s *Service) SetCurrentRound(round int) {
	s.CurrentRound.Set(float64(round))
}

func (s *Service) SetRosterSize(size int) {
	s.RosterSize.Set(float64(size))
}

func (s *Service) ObserveOperationDuration(operation string, seconds float64) {
	s.OperationDuration.WithLabelValues(operation).Observe(seconds)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncEventsPublished() {
	s.EventsPublished.Inc()
}

func (s *Service) IncEventsPublishFailed() {
	s.EventsPublishFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
