package geo

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Mercury86-sudo/Real-State-Scraper/utils"
)

type fakeGeocoder struct {
	lat, lon float64
	err      error
	calls    int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) (float64, float64, error) {
	f.calls++
	return f.lat, f.lon, f.err
}

func newTestResolver(cache *Cache, g Geocoder) *Resolver {
	return NewResolver(cache, g, "Mérida, Yucatán", time.Second, utils.NewLogger())
}

func TestResolveCacheHitJitter(t *testing.T) {
	g := &fakeGeocoder{}
	r := newTestResolver(NewCache(SeedEntries()), g)

	lat, lon := r.Resolve(context.Background(), "Altabrisa")
	if math.Abs(lat-21.0182) > cacheJitter || math.Abs(lon+89.5855) > cacheJitter {
		t.Errorf("coords (%.5f, %.5f) outside jitter bounds of Altabrisa", lat, lon)
	}
	if g.calls != 0 {
		t.Errorf("geocoder called %d times for a cache hit; want 0", g.calls)
	}
}

func TestResolveFallbackOnGeocodeError(t *testing.T) {
	g := &fakeGeocoder{err: errors.New("service timeout")}
	cache := NewCache(SeedEntries())
	r := newTestResolver(cache, g)

	lat, lon := r.Resolve(context.Background(), "Unknown Colony")
	if math.Abs(lat-cityCenterLat) > fallbackJitter || math.Abs(lon-cityCenterLon) > fallbackJitter {
		t.Errorf("coords (%.5f, %.5f) outside fallback bounds of city centre", lat, lon)
	}
	if g.calls != 1 {
		t.Errorf("geocoder calls = %d; want 1", g.calls)
	}

	// Failed lookups must not poison the cache.
	if _, ok := cache.Match("Unknown Colony"); ok {
		t.Error("failed geocode was cached")
	}
}

func TestResolveGeocodeSuccessIsCached(t *testing.T) {
	g := &fakeGeocoder{lat: 21.1234, lon: -89.4321}
	cache := NewCache(SeedEntries())
	r := newTestResolver(cache, g)

	lat, lon := r.Resolve(context.Background(), "Colonia Nueva")
	if lat != 21.1234 || lon != -89.4321 {
		t.Errorf("fresh geocode coords = (%.4f, %.4f); want exact (21.1234, -89.4321)", lat, lon)
	}

	// Second resolution of the same zone hits the cache (jittered) and
	// skips the service.
	lat, lon = r.Resolve(context.Background(), "Colonia Nueva")
	if g.calls != 1 {
		t.Errorf("geocoder calls = %d; want 1", g.calls)
	}
	if math.Abs(lat-21.1234) > cacheJitter || math.Abs(lon+89.4321) > cacheJitter {
		t.Errorf("cached coords (%.5f, %.5f) outside jitter bounds", lat, lon)
	}
}

func TestResolveAlwaysFinite(t *testing.T) {
	g := &fakeGeocoder{err: ErrNoResult}
	r := newTestResolver(NewCache(nil), g)

	for _, zone := range []string{"", "Mérida", "Colonia X", "???"} {
		lat, lon := r.Resolve(context.Background(), zone)
		if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
			t.Errorf("Resolve(%q) returned non-finite coords (%v, %v)", zone, lat, lon)
		}
	}
}

func TestZoneLabel(t *testing.T) {
	r := newTestResolver(NewCache(SeedEntries()), &fakeGeocoder{})

	if got := r.Zone("Hermosa casa en Altabrisa"); got != "Altabrisa" {
		t.Errorf("Zone = %q; want Altabrisa", got)
	}
	if got := r.Zone("Sin referencias"); got != FallbackZone {
		t.Errorf("Zone = %q; want fallback %q", got, FallbackZone)
	}
}
