package geo

import "strings"

// Entry maps a zone label to its canonical coordinate.
type Entry struct {
	Zone string
	Lat  float64
	Lon  float64
}

// Cache is an ordered, append-only mapping from zone labels to canonical
// coordinates. Entry order matters: zone matching walks entries in the
// order they were added, so the seed order is the tie-break when several
// zone names occur in the same card text. Entries are never overwritten;
// the cache lives for one run only.
type Cache struct {
	entries []Entry
}

// SeedEntries returns the known Mérida zones and their coordinates.
func SeedEntries() []Entry {
	return []Entry{
		{"Temozón Norte", 21.0655, -89.6338},
		{"Cholul", 21.0456, -89.5516},
		{"Mérida Centro", 20.9676, -89.6237},
		{"Centro", 20.9676, -89.6237},
		{"Altabrisa", 21.0182, -89.5855},
		{"Montes de Amé", 21.0205, -89.6102},
		{"Cabo Norte", 21.0378, -89.5935},
		{"Dzityá", 21.0505, -89.6805},
		{"Country Club", 21.0805, -89.6005},
		{"Santa Gertrudis Copó", 21.0255, -89.5955},
		{"Caucel", 20.9905, -89.7005},
		{"Las Américas", 21.0555, -89.6555},
		{"Conkal", 21.0735, -89.5205},
		{"Campestre", 21.0005, -89.6155},
		{"Montebello", 21.0285, -89.5905},
		{"Benito Juárez Norte", 21.0105, -89.6055},
		{"Itzimná", 20.9925, -89.6125},
		{"Pensiones", 20.9855, -89.6605},
		{"Los Héroes", 20.9805, -89.5405},
	}
}

// NewCache creates a cache pre-populated with the given entries.
func NewCache(seed []Entry) *Cache {
	c := &Cache{entries: make([]Entry, 0, len(seed))}
	c.entries = append(c.entries, seed...)
	return c
}

// Append adds a newly geocoded zone. Existing entries are kept as-is even
// if the label collides; lookups always return the earliest match.
func (c *Cache) Append(zone string, lat, lon float64) {
	c.entries = append(c.entries, Entry{Zone: zone, Lat: lat, Lon: lon})
}

// Match returns the first entry whose label loosely contains the given
// zone label (or vice versa), case-insensitive. The loose containment
// keeps "Mérida Centro" matching a bare "Centro" and the reverse.
func (c *Cache) Match(zone string) (Entry, bool) {
	needle := strings.ToLower(zone)
	for _, e := range c.entries {
		key := strings.ToLower(e.Zone)
		if strings.Contains(needle, key) || strings.Contains(key, needle) {
			return e, true
		}
	}
	return Entry{}, false
}

// ZoneFor walks the entries in stored order and returns the label of the
// first zone whose name occurs anywhere in the card text,
// case-insensitive. Returns fallback when no zone matches.
func (c *Cache) ZoneFor(blockText, fallback string) string {
	haystack := strings.ToLower(blockText)
	for _, e := range c.entries {
		if strings.Contains(haystack, strings.ToLower(e.Zone)) {
			return e.Zone
		}
	}
	return fallback
}

// Len returns the number of entries, seed plus appended.
func (c *Cache) Len() int {
	return len(c.entries)
}
