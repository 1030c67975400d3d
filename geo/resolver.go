package geo

import (
	"context"
	"math/rand"
	"time"

	"github.com/Mercury86-sudo/Real-State-Scraper/utils"
)

const (
	// FallbackZone labels listings whose card text matched no known zone.
	FallbackZone = "Mérida"

	// Mérida city centre, used when geocoding fails entirely.
	cityCenterLat = 20.9676
	cityCenterLon = -89.6237

	// cacheJitter spreads co-zoned listings by tens of meters so map
	// markers do not stack exactly.
	cacheJitter = 0.0005

	// fallbackJitter spreads unresolvable listings around the city
	// centre by a couple of kilometres.
	fallbackJitter = 0.02
)

// Resolver turns a listing's card text into a zone label and a
// coordinate. Resolution order: cache match, live geocode, city-centre
// fallback. Resolve never fails; every listing gets some coordinate.
type Resolver struct {
	cache    *Cache
	geocoder Geocoder
	city     string
	timeout  time.Duration
	logger   *utils.Logger
}

// NewResolver wires a resolver over the given cache and geocoder. city
// qualifies geocoding queries ("<zone>, <city>").
func NewResolver(cache *Cache, geocoder Geocoder, city string, timeout time.Duration, logger *utils.Logger) *Resolver {
	return &Resolver{
		cache:    cache,
		geocoder: geocoder,
		city:     city,
		timeout:  timeout,
		logger:   logger,
	}
}

// Zone returns the zone label for a candidate block's text.
func (r *Resolver) Zone(blockText string) string {
	return r.cache.ZoneFor(blockText, FallbackZone)
}

// Resolve maps a zone label to a coordinate. Cache hits receive a small
// random offset; fresh geocoding results are stored exact and returned
// exact; the fallback is the jittered city centre.
func (r *Resolver) Resolve(ctx context.Context, zone string) (lat, lon float64) {
	if e, ok := r.cache.Match(zone); ok {
		return e.Lat + jitter(cacheJitter), e.Lon + jitter(cacheJitter)
	}

	gctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	lat, lon, err := r.geocoder.Geocode(gctx, zone+", "+r.city)
	if err == nil {
		r.cache.Append(zone, lat, lon)
		r.logger.Debug("[geo] Geocoded %q → (%.4f, %.4f), cached", zone, lat, lon)
		return lat, lon
	}

	r.logger.Skip("geocode-fallback", "zone %q: %v — using city-centre fallback", zone, err)
	return cityCenterLat + jitter(fallbackJitter), cityCenterLon + jitter(fallbackJitter)
}

// jitter returns a uniform random offset in [-bound, bound].
func jitter(bound float64) float64 {
	return (rand.Float64()*2 - 1) * bound
}
