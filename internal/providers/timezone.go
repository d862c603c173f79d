package providers

import (
	"sync"
	"travelplanner/internal/models/trip_models"

	"github.com/ringsaturn/tzf"
	"go.uber.org/zap"
)

// TimeZoneFinder maps coordinates to IANA zone names. The boundary data is loaded on
// first use.
type TimeZoneFinder struct {
	once   sync.Once
	finder tzf.F
	logger *zap.Logger
}

func NewTimeZoneFinder(logger *zap.Logger) *TimeZoneFinder {
	return &TimeZoneFinder{logger: logger}
}

func (t *TimeZoneFinder) TimeZone(coords trip_models.Coordinates) string {
	t.once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			t.logger.Warn("time zone data unavailable", zap.Error(err))
			return
		}
		t.finder = finder
	})
	if t.finder == nil {
		return ""
	}
	return t.finder.GetTimezoneName(coords.Lon, coords.Lat)
}
