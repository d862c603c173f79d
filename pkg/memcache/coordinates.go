// pkg/memcache/coordinates.go
package mem

import (
	"strings"
	"time"
	"travelplanner/internal/models/trip_models"

	"github.com/patrickmn/go-cache"
)

const (
	DefaultCoordinateTTL = 24 * time.Hour
	cleanupInterval      = time.Hour
)

// CoordinateStore remembers geocoding results per destination name.
type CoordinateStore interface {
	Set(destination string, coords trip_models.Coordinates, ttl time.Duration)

	// Get returns the cached coordinates if present and not expired.
	Get(destination string) (trip_models.Coordinates, bool)

	Forget(destination string)
}

type Coordinates struct {
	store *cache.Cache
}

func NewCoordinates() *Coordinates {
	return &Coordinates{
		store: cache.New(DefaultCoordinateTTL, cleanupInterval),
	}
}

func key(destination string) string {
	return strings.ToLower(strings.TrimSpace(destination))
}

func (s *Coordinates) Set(destination string, coords trip_models.Coordinates, ttl time.Duration) {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	s.store.Set(key(destination), coords, ttl)
}

func (s *Coordinates) Get(destination string) (trip_models.Coordinates, bool) {
	v, ok := s.store.Get(key(destination))
	if !ok {
		return trip_models.Coordinates{}, false
	}
	coords, ok := v.(trip_models.Coordinates)
	return coords, ok
}

func (s *Coordinates) Forget(destination string) {
	s.store.Delete(key(destination))
}
