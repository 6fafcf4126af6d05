package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/feedstream/feed-api/internal/core/ports"
)

// DefaultChannel is the Redis pub/sub channel carrying post events.
const DefaultChannel = "feed:posts"

// Bridge relays events through a Redis pub/sub channel so hubs in every
// instance see mutations from every other instance. Published events come
// back through the subscription, including this instance's own, which is
// what feeds the local hub.
type Bridge struct {
	client  *redis.Client
	hub     *Hub
	channel string
	log     zerolog.Logger
}

func NewBridge(client *redis.Client, hub *Hub, channel string, log zerolog.Logger) *Bridge {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Bridge{client: client, hub: hub, channel: channel, log: log}
}

// Publish sends the event to Redis. When Redis is unreachable the event is
// delivered straight to the local hub instead, keeping publish
// fire-and-forget either way.
func (b *Bridge) Publish(event ports.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		b.log.Error().Err(err).Msg("failed to marshal event")
		return
	}
	if err := b.client.Publish(context.Background(), b.channel, payload).Err(); err != nil {
		b.log.Warn().Err(err).Msg("redis publish failed, delivering locally")
		b.hub.Publish(event)
	}
}

// Run consumes the Redis channel and feeds received events into the local
// hub until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event ports.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.log.Error().Err(err).Msg("failed to decode relayed event")
				continue
			}
			b.hub.Publish(event)
		}
	}
}
