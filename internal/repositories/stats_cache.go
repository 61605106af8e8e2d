package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/internal/models"
)

// ErrStatsNotCached is returned when no stats are cached for a profile.
var ErrStatsNotCached = errors.New("transaction stats not found in cache")

// StatsCacheRepository caches per-profile transaction stats in Redis
type StatsCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewStatsCacheRepository creates a cache whose entries expire after expiration.
func NewStatsCacheRepository(client *redis.Client, expiration time.Duration) *StatsCacheRepository {
	return &StatsCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func statsKey(profileID string) string {
	return fmt.Sprintf("transaction_stats:%s", profileID)
}

// GetStats returns the cached stats or ErrStatsNotCached.
func (r *StatsCacheRepository) GetStats(ctx context.Context, profileID string) (*models.TransactionStats, error) {
	key := statsKey(profileID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow("cache get", "key", key, "error", err)
		if errors.Is(err, redis.Nil) {
			return nil, ErrStatsNotCached
		}
		return nil, err
	}

	var stats models.TransactionStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		logger.Log.Infow("cache get", "key", key, "value", val, "error", err)
		return nil, err
	}

	logger.Log.Infow("cache get", "key", key, "result", stats)
	return &stats, nil
}

// SetStats stores stats for a profile.
func (r *StatsCacheRepository) SetStats(ctx context.Context, profileID string, stats models.TransactionStats) error {
	key := statsKey(profileID)

	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("cache set", "key", key, "stats", stats, "error", err)

	return err
}

// DeleteStats drops the cached stats of a profile.
func (r *StatsCacheRepository) DeleteStats(ctx context.Context, profileID string) error {
	key := statsKey(profileID)

	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("cache delete", "key", key, "error", err)

	return err
}
