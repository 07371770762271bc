package rates

import (
	"context"
	"encoding/json"
	"time"

	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	"github.com/swiftcargo/swiftcargo-backend/pkg/enums"
	"github.com/swiftcargo/swiftcargo-backend/pkg/logger"
	"github.com/swiftcargo/swiftcargo-backend/pkg/redis"
)

// CachedFinder fronts the rate repository with a short-lived redis cache
// keyed per lane and day. Cache failures fall through to the repository so
// redis never blocks quoting.
type CachedFinder struct {
	repo  ActiveFinder
	cache *redis.Client
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCachedFinder wraps the finder. A nil cache disables caching entirely.
func NewCachedFinder(repo ActiveFinder, cache *redis.Client, ttl time.Duration, logg *logger.Logger) *CachedFinder {
	return &CachedFinder{repo: repo, cache: cache, ttl: ttl, logg: logg}
}

func (f *CachedFinder) FindActive(ctx context.Context, originZone, destZone string, serviceLevel *enums.ServiceLevel, asOf time.Time) ([]models.Tariff, error) {
	// Level-filtered lookups bypass the cache; the quote path always asks
	// for the whole lane and filters in the pricing engine.
	if f.cache == nil || serviceLevel != nil {
		return f.repo.FindActive(ctx, originZone, destZone, serviceLevel, asOf)
	}

	key := f.cache.TariffLaneKey(originZone, destZone, asOf.UTC().Format("2006-01-02"))

	if raw, err := f.cache.Get(ctx, key); err == nil {
		var tariffs []models.Tariff
		if unmarshalErr := json.Unmarshal([]byte(raw), &tariffs); unmarshalErr == nil {
			return tariffs, nil
		}
	} else if !redis.IsMiss(err) && f.logg != nil {
		f.logg.Warn(ctx, "tariff cache read failed")
	}

	tariffs, err := f.repo.FindActive(ctx, originZone, destZone, nil, asOf)
	if err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(tariffs); marshalErr == nil {
		if setErr := f.cache.Set(ctx, key, payload, f.ttl); setErr != nil && f.logg != nil {
			f.logg.Warn(ctx, "tariff cache write failed")
		}
	}
	return tariffs, nil
}
