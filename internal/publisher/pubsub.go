package publisher

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/goccy/go-json"
)

// PubSub publishes to a Google Cloud Pub/Sub topic.
type PubSub struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPubSub creates a client for the project and binds the topic.
func NewPubSub(ctx context.Context, projectID, topicName string) (*PubSub, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}
	return &PubSub{client: client, topic: client.Topic(topicName)}, nil
}

// Publish marshals the payload to JSON and publishes it. The configured
// topic wins over the argument when the argument is empty.
func (p *PubSub) Publish(ctx context.Context, topic string, payload any) (string, error) {
	t := p.topic
	if topic != "" && topic != t.ID() {
		t = p.client.Topic(topic)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	result := t.Publish(ctx, &pubsub.Message{Data: data})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("publish message: %w", err)
	}
	return id, nil
}

// Close stops the topic's publish goroutines and the client.
func (p *PubSub) Close() error {
	p.topic.Stop()
	if err := p.client.Close(); err != nil {
		return fmt.Errorf("close pubsub client: %w", err)
	}
	return nil
}
