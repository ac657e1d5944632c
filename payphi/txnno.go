package payphi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TxnNoGenerator hands out merchantTxnNo values. Values must not repeat across
// concurrent initiations.
type TxnNoGenerator interface {
	Next(ctx context.Context) (string, error)
}

// UUIDTxnNo generates 32 hex characters from a random UUID.
type UUIDTxnNo struct{}

func (UUIDTxnNo) Next(context.Context) (string, error) {
	return strings.ReplaceAll(uuid.NewString(), "-", ""), nil
}

const sequenceKey = "payphi:merchant_txn_seq"

// RedisSequence prefixes a persisted Redis counter with the current date.
type RedisSequence struct {
	Client *redis.Client
	Now    func() time.Time
}

func NewRedisSequence(client *redis.Client) *RedisSequence {
	return &RedisSequence{Client: client, Now: time.Now}
}

func (s *RedisSequence) Next(ctx context.Context) (string, error) {
	seq, err := s.Client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		return "", fmt.Errorf("merchant txn sequence: %w", err)
	}
	return fmt.Sprintf("%s%010d", s.Now().Format("20060102"), seq), nil
}
