package config_fx

import (
	"travelplanner/internal/config"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

var Module = fx.Provide(provideConfig)

func provideConfig(v *viper.Viper) (config.Config, error) {
	return config.Load(v)
}
