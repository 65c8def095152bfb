package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// ErrCacheMiss is returned by Get when the key is absent or the cache is
// degraded. Callers always fall through to authoritative computation.
var ErrCacheMiss = errors.New("cache miss")

// CacheService wraps Redis behind a circuit breaker. The cache is advisory:
// every failure mode, including an open breaker, is reported as a miss and
// never surfaced to callers as an error of its own.
type CacheService struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
}

func NewCacheService(client *redis.Client) *CacheService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "redis-cache",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.Warnf("Cache breaker %s: %s -> %s", name, from, to)
		},
	})
	return &CacheService{
		client:  client,
		breaker: breaker,
	}
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.breaker.Execute(func() (interface{}, error) {
		return s.client.Get(ctx, key).Result()
	})
	if err != nil {
		if err != redis.Nil {
			logrus.Debugf("Cache get %s degraded to miss: %v", key, err)
		}
		return ErrCacheMiss
	}

	if err := json.Unmarshal([]byte(data.(string)), dest); err != nil {
		logrus.Warnf("Cache get %s: undecodable payload treated as miss: %v", key, err)
		return ErrCacheMiss
	}
	return nil
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, key, data, expiration).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, keys...).Err()
	})
	return err
}

// InvalidatePrefix actively deletes every key under a prefix, rather than
// waiting for TTL expiry.
func (s *CacheService) InvalidatePrefix(ctx context.Context, prefix string) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			return nil, nil
		}
		return nil, s.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		logrus.Warnf("Cache invalidate %s*: %v", prefix, err)
	}
	return err
}

// Memoize runs load to populate dest unless a fresh cached copy exists.
// Cache reads and writes are both best-effort; the loaded result is
// authoritative either way.
func (s *CacheService) Memoize(ctx context.Context, key string, ttl time.Duration, dest interface{}, load func() error) error {
	if err := s.Get(ctx, key, dest); err == nil {
		return nil
	}

	if err := load(); err != nil {
		return err
	}

	if err := s.Set(ctx, key, dest, ttl); err != nil {
		logrus.Debugf("Cache memoize %s: store skipped: %v", key, err)
	}
	return nil
}

// Cache key generators

const cacheVersion = "v1"

func LeaderboardCacheKey(view string, season int) string {
	return fmt.Sprintf("%s:cache:leaderboard:%s:%d", cacheVersion, view, season)
}

func TournamentLeaderboardCacheKey(season int, tournamentID string) string {
	return fmt.Sprintf("%s:cache:leaderboard:tournament:%d:%s", cacheVersion, season, tournamentID)
}

func SettingCacheKey(key string) string {
	return fmt.Sprintf("%s:cache:settings:%s", cacheVersion, key)
}

func OTPCacheKey(phoneNumber string) string {
	return fmt.Sprintf("%s:cache:otp:%s", cacheVersion, phoneNumber)
}

func LeaderboardCachePrefix() string {
	return cacheVersion + ":cache:leaderboard:"
}

func SettingsCachePrefix() string {
	return cacheVersion + ":cache:settings:"
}
