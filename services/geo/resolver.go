package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"servicehub/models"
	"servicehub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultGeoService acquires coordinates with a bounded wait, reverse
// geocodes them, and caches geocode results by rounded coordinates.
type DefaultGeoService struct {
	Source   CoordinateSource
	Geocoder ReverseGeocoder
	Cache    *redis.Client
	Timeout  time.Duration
	Logger   *zap.Logger
}

func NewDefaultGeoService(source CoordinateSource, geocoder ReverseGeocoder, cache *redis.Client, timeout time.Duration, logger *zap.Logger) *DefaultGeoService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DefaultGeoService{
		Source:   source,
		Geocoder: geocoder,
		Cache:    cache,
		Timeout:  timeout,
		Logger:   logger,
	}
}

// geoCacheKey rounds to ~100 m so nearby fixes share one geocode entry.
func geoCacheKey(lat, lon float64) string {
	return fmt.Sprintf("%s%.3f:%.3f", utils.GeoCachePrefix, lat, lon)
}

// Resolve waits up to the configured timeout for coordinates and then
// reverse geocodes them. Every failure path degrades to a not-detected
// location rather than an error: manual search must always remain possible.
func (s *DefaultGeoService) Resolve(ctx context.Context) *models.GeoLocation {
	acquireCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	coords, err := s.Source.Coordinates(acquireCtx)
	if err != nil {
		s.Logger.Warn("Coordinate acquisition failed; continuing without position", zap.Error(err))
		return &models.GeoLocation{Detected: false}
	}
	return s.Locate(ctx, coords)
}

// Locate reverse-geocodes explicit coordinates through the cache.
func (s *DefaultGeoService) Locate(ctx context.Context, coords models.Coordinates) *models.GeoLocation {
	key := geoCacheKey(coords.Latitude, coords.Longitude)

	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var loc models.GeoLocation
			if err := json.Unmarshal([]byte(data), &loc); err == nil {
				return &loc
			}
		}
	}

	loc, err := s.Geocoder.Reverse(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		s.Logger.Warn("Reverse geocoding failed; keeping raw coordinates",
			zap.Float64("lat", coords.Latitude), zap.Float64("lon", coords.Longitude), zap.Error(err))
		// Coordinates are still usable for radius search even without an
		// address.
		return &models.GeoLocation{
			Latitude:  coords.Latitude,
			Longitude: coords.Longitude,
			Detected:  true,
		}
	}

	if s.Cache != nil {
		if data, err := json.Marshal(loc); err == nil {
			if err := s.Cache.Set(ctx, key, data, utils.GeoCacheTTL).Err(); err != nil {
				s.Logger.Warn("Failed to cache geocode result", zap.Error(err))
			}
		}
	}
	return loc
}
