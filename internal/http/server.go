package http

import (
	"net/http"

	"github.com/mauv0809/mexicano/internal/config"
	"github.com/mauv0809/mexicano/internal/history"
	"github.com/mauv0809/mexicano/internal/metrics"
	"github.com/mauv0809/mexicano/internal/notifier"
	"github.com/mauv0809/mexicano/internal/playtomic"
	"github.com/mauv0809/mexicano/internal/pubsub"
	"github.com/mauv0809/mexicano/internal/tournament"
)

func NewServer(t *tournament.Tournament, journal history.Journal, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, playtomicClient playtomic.PlaytomicClient, n notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Tournament:      t,
		Journal:         journal,
		Metrics:         metricsSvc,
		MetricsHandler:  metricsHandler,
		Cfg:             cfg,
		PlaytomicClient: playtomicClient,
		Notifier:        n,
		Router:          http.NewServeMux(),
		pubsub:          pubsub,
		announcer:       notifier.NewAnnouncer(n, cfg.DryRun),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	slackAuth := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(s.AddPlayerHandler(), paramsMiddleware))
	s.Router.Handle("POST /players/import", Chain(s.ImportPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /reset", Chain(s.ResetHandler(), paramsMiddleware))

	s.Router.Handle("GET /settings", Chain(s.GetSettingsHandler(), paramsMiddleware))
	s.Router.Handle("PUT /settings", Chain(s.UpdateSettingsHandler(), paramsMiddleware))

	s.Router.Handle("GET /round", Chain(s.CurrentRoundHandler(), paramsMiddleware))
	s.Router.Handle("POST /round/generate", Chain(s.GenerateRoundHandler(), paramsMiddleware))
	s.Router.Handle("PUT /round/matches/{id}/score", Chain(s.RecordScoreHandler(), paramsMiddleware))
	s.Router.Handle("POST /round/submit", Chain(s.SubmitRoundHandler(), paramsMiddleware))

	s.Router.Handle("GET /leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("POST /leaderboard/announce", Chain(s.AnnounceLeaderboardHandler(), paramsMiddleware))

	s.Router.Handle("GET /history", Chain(s.HistoryHandler(), paramsMiddleware))
	s.Router.Handle("GET /history/verify", Chain(s.VerifyHistoryHandler(), paramsMiddleware))

	s.Router.Handle("POST /slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/round", Chain(s.RoundCommandHandler(), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/join", Chain(s.JoinCommandHandler(), paramsMiddleware, slackAuth))

	s.Router.Handle("POST /pubsub/push", Chain(s.PubSubPushHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
