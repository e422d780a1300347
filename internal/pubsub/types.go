package pubsub

import (
	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/mexicano/internal/tournament"
)

type client struct {
	client      *pubsub.Client
	topicPrefix string
	teardown    func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventPlayerAdded     EventType = EventType(tournament.EventPlayerAdded)
	EventRoundGenerated  EventType = EventType(tournament.EventRoundGenerated)
	EventScoresSubmitted EventType = EventType(tournament.EventScoresSubmitted)
	EventReset           EventType = EventType(tournament.EventReset)
	EventSettingsUpdated EventType = EventType(tournament.EventSettingsUpdated)
)

// PushRequest is the body Pub/Sub posts to a push subscription endpoint.
type PushRequest struct {
	Message struct {
		Data        []byte            `json:"data"`
		Attributes  map[string]string `json:"attributes"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
