package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"fundbrief/internal/model"
)

const briefsKey = "fundbrief:daily-briefs"

// RedisStore keeps the full brief collection as a JSON array under a single
// key. Writes replace the whole document, so concurrent readers see either
// the previous or the new collection, never a partial one.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client, now: time.Now}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Get() ([]model.DailyBrief, error) {
	raw, err := s.client.Get(context.Background(), briefsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return []model.DailyBrief{}, nil
	}
	if err != nil {
		slog.Error("error reading briefs from redis", "error", err)
		return []model.DailyBrief{}, nil
	}

	var briefs []model.DailyBrief
	if err := json.Unmarshal(raw, &briefs); err != nil {
		slog.Error("error decoding stored briefs", "error", err)
		return []model.DailyBrief{}, nil
	}

	return briefs, nil
}

func (s *RedisStore) set(briefs []model.DailyBrief) error {
	raw, err := json.Marshal(briefs)
	if err != nil {
		return fmt.Errorf("encode briefs: %w", err)
	}

	if err := s.client.Set(context.Background(), briefsKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("write briefs: %w", err)
	}

	return nil
}

func (s *RedisStore) Append(newBriefs []model.DailyBrief) error {
	briefs, _ := s.Get()
	return s.set(append(briefs, newBriefs...))
}

func (s *RedisStore) Prune(maxAgeDays int) error {
	briefs, _ := s.Get()
	return s.set(pruneExpired(briefs, maxAgeDays, s.now()))
}
