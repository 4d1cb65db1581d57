package lock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sharpcut/booking-api/internal/domain/schedule"
)

const keyPrefix = "booking_lock:"

// RedisLocker serializes booking mutations per (barber, date) ahead of the
// database transaction, so two concurrent approvals for the same calendar
// day never race to the overlap check. The transaction's row locks remain
// the authoritative guard; this keeps contention off the database.
type RedisLocker struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisLocker(client *redis.Client, log zerolog.Logger) *RedisLocker {
	return &RedisLocker{client: client, log: log}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	full := keyPrefix + key

	ok, err := l.client.SetNX(ctx, full, token, ttl).Result()
	if err != nil {
		// Redis being down must not take bookings down with it; the
		// transaction still guarantees correctness.
		l.log.Warn().Err(err).Str("key", key).Msg("booking lock unavailable, proceeding without it")
		return func() {}, nil
	}
	if !ok {
		return nil, schedule.Conflict("booking_in_progress", "another booking for this barber and date is being processed")
	}

	release := func() {
		current, err := l.client.Get(ctx, full).Result()
		if err != nil || current != token {
			return
		}
		l.client.Del(ctx, full)
	}

	return release, nil
}
