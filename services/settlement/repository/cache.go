package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/cardsettle/internal/pkg/constants"
	"github.com/piresc/cardsettle/internal/pkg/database"
	"github.com/piresc/cardsettle/internal/pkg/models"
)

// CacheRepo keeps exchange rates and points award guards in Redis
type CacheRepo struct {
	redisClient *database.RedisClient
}

// NewCacheRepository creates a new Redis cache repository
func NewCacheRepository(redisClient *database.RedisClient) *CacheRepo {
	return &CacheRepo{redisClient: redisClient}
}

func rateKey(base, quote string) string {
	return fmt.Sprintf(constants.KeyFXRate, strings.ToUpper(base), strings.ToUpper(quote))
}

// GetRate returns the cached rate or nil on a miss
func (r *CacheRepo) GetRate(ctx context.Context, base, quote string) (*models.FXRate, error) {
	raw, err := r.redisClient.Get(ctx, rateKey(base, quote))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached rate: %w", err)
	}

	var rate models.FXRate
	if err := json.Unmarshal([]byte(raw), &rate); err != nil {
		return nil, fmt.Errorf("failed to decode cached rate: %w", err)
	}
	return &rate, nil
}

// SetRate caches a rate for ttl
func (r *CacheRepo) SetRate(ctx context.Context, rate models.FXRate, ttl time.Duration) error {
	data, err := json.Marshal(rate)
	if err != nil {
		return fmt.Errorf("failed to encode rate: %w", err)
	}
	if err := r.redisClient.Set(ctx, rateKey(rate.Base, rate.Quote), data, ttl); err != nil {
		return fmt.Errorf("failed to cache rate: %w", err)
	}
	return nil
}

// ClaimPointsAward sets the award guard for a payment if it is not set yet
func (r *CacheRepo) ClaimPointsAward(ctx context.Context, paymentID string, ttl time.Duration) (bool, error) {
	ok, err := r.redisClient.SetNX(ctx, fmt.Sprintf(constants.KeyPointsAward, paymentID), time.Now().UTC().Format(time.RFC3339), ttl)
	if err != nil {
		return false, fmt.Errorf("failed to claim points award: %w", err)
	}
	return ok, nil
}

// ReleasePointsAward removes the award guard so the award can be replayed
func (r *CacheRepo) ReleasePointsAward(ctx context.Context, paymentID string) error {
	if err := r.redisClient.Delete(ctx, fmt.Sprintf(constants.KeyPointsAward, paymentID)); err != nil {
		return fmt.Errorf("failed to release points award: %w", err)
	}
	return nil
}
