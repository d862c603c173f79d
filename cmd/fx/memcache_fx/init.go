package memcache_fx

import (
	mem "travelplanner/pkg/memcache"

	"go.uber.org/fx"
)

var Module = fx.Provide(provideCoordinateCache)

func provideCoordinateCache() mem.CoordinateStore {
	return mem.NewCoordinates()
}
