package events

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Channel is the pub/sub channel carrying one payment's events.
func Channel(merchantTxnNo string) string {
	return "payment:" + merchantTxnNo
}

const broadcastChannel = "payment:events"

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type RedisPublisher struct {
	client redisPublisher
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish sends to the payment's own channel, or to the broadcast channel when
// the event carries no key.
func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	body, err := ev.encode()
	if err != nil {
		return err
	}
	channel := broadcastChannel
	if ev.Key != "" {
		channel = Channel(ev.Key)
	}
	return p.client.Publish(ctx, channel, body).Err()
}
