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

type Server struct {
	Tournament      *tournament.Tournament
	Journal         history.Journal
	Metrics         metrics.Metrics
	MetricsHandler  http.Handler
	Cfg             config.Config
	PlaytomicClient playtomic.PlaytomicClient
	Notifier        notifier.Notifier
	Router          *http.ServeMux
	pubsub          pubsub.PubSubClient
	// announcer handles snapshots delivered through the Pub/Sub push endpoint.
	announcer tournament.Subscriber
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

type importResponse struct {
	Added      []string `json:"added"`
	Duplicates []string `json:"duplicates"`
	Invalid    []string `json:"invalid"`
	DryRun     bool     `json:"dry_run"`
}

type roundResponse struct {
	Round    int                 `json:"round"`
	Matches  []tournament.Match  `json:"matches"`
	Settings tournament.Settings `json:"settings"`
}

type recordScoreRequest struct {
	ScoreA tournament.Score `json:"score_a"`
	ScoreB tournament.Score `json:"score_b"`
}

// submitRequest submits the pending round. Scores are overlaid on the pending
// matches by ID; Matches, when given, are submitted as they are instead.
type submitRequest struct {
	Scores  []tournament.ScoreEntry `json:"scores"`
	Matches []tournament.Match      `json:"matches"`
}

type errorResponse struct {
	Error string `json:"error"`
}
