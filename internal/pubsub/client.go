package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Pub/Sub. Topics are named "<topicPrefix>-<event>".
func New(projectID, topicPrefix string) PubSubClient {
	ctx := context.Background()
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	teardown := func() {
		if err := pubSubC.Close(); err != nil {
			log.Error("Failed to close pubsub client", "error", err)
		}
	}

	return &client{
		client:      pubSubC,
		topicPrefix: topicPrefix,
		teardown:    teardown,
	}
}

// TopicName returns the topic an event is published to.
func TopicName(prefix string, event EventType) string {
	if prefix == "" {
		return string(event)
	}
	return prefix + "-" + string(event)
}

func (c *client) SendMessage(topic EventType, data any) error {
	ctx := context.Background()
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{"event": string(topic)},
	}
	name := TopicName(c.topicPrefix, topic)
	result := c.client.Topic(name).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", name)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "topic", name)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

// Decode unmarshals MessagePack data into the provided pointer.
func Decode(data []byte, returnValue any) error {
	err := msgpack.Unmarshal(data, returnValue)
	if err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

func (c *client) Close() {
	if c.teardown != nil {
		c.teardown()
	}
}
