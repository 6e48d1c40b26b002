// Package events publishes domain events for interested consumers (feeds,
// realtime listeners). Publishing is best-effort: a failure is logged and the
// request proceeds.
package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"vidtube/internal/config"
)

// Channel is the pub/sub channel all domain events go to.
const Channel = "vidtube.events"

// Event is a typed envelope published as one JSON object.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Publisher sends events over Redis pub/sub. A nil client disables publishing.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher connects the event publisher. An empty Addr returns a disabled
// publisher rather than an error; events are an optional concern.
func NewPublisher(cfg config.RedisConfig) *Publisher {
	if cfg.Addr == "" {
		return &Publisher{}
	}
	return &Publisher{rdb: redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})}
}

// Publish sends one event. Marshal or publish failures are logged, never returned.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) {
	if p == nil || p.rdb == nil {
		return
	}
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("events: marshal %s: %v", eventType, err)
		return
	}
	if err := p.rdb.Publish(ctx, Channel, string(data)).Err(); err != nil {
		log.Printf("events: publish %s: %v", eventType, err)
	}
}

// Close releases the underlying connection.
func (p *Publisher) Close() error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}
