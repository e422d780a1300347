package pubsub

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/mexicano/internal/metrics"
	"github.com/mauv0809/mexicano/internal/tournament"
)

var _ tournament.Subscriber = (*Publisher)(nil)

// Publisher forwards every tournament snapshot to the topic of its event.
type Publisher struct {
	client  PubSubClient
	metrics metrics.Metrics
}

func NewPublisher(client PubSubClient, metrics metrics.Metrics) *Publisher {
	return &Publisher{client: client, metrics: metrics}
}

func (p *Publisher) OnSnapshot(snapshot tournament.Snapshot) {
	if err := p.client.SendMessage(EventType(snapshot.Event), snapshot); err != nil {
		p.metrics.IncEventsPublishFailed()
		log.Error("Failed to publish snapshot", "error", err, "event", snapshot.Event, "round", snapshot.Round)
		return
	}
	p.metrics.IncEventsPublished()
}
