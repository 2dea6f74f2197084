package geocode

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const cacheTTL = 24 * time.Hour

// CachedGeocoder is a read-through Redis cache in front of another
// Geocoder. Cache failures are swallowed: a Redis outage degrades to
// calling the provider directly, it never fails a request.
type CachedGeocoder struct {
	inner Geocoder
	rdb   *redis.Client
}

func NewCachedGeocoder(inner Geocoder, rdb *redis.Client) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, rdb: rdb}
}

func cacheKey(description, district, province string) string {
	norm := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return "geocode:" + norm(description) + "|" + norm(district) + "|" + norm(province)
}

func (g *CachedGeocoder) Geocode(
	ctx context.Context,
	description, district, province string,
) (*Result, error) {

	key := cacheKey(description, district, province)

	if raw, err := g.rdb.Get(ctx, key).Result(); err == nil {
		var cached Result
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := g.inner.Geocode(ctx, description, district, province)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(result); err == nil {
		g.rdb.Set(ctx, key, b, cacheTTL)
	}

	return result, nil
}
