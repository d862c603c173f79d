package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds provider credentials and server settings. Missing provider keys are
// allowed; the planner falls back to other sources.
type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	GooglePlacesAPIKey string
	TripAdvisorAPIKey  string
	WeatherAPIKey      string
	SerperAPIKey       string

	// DescriberProvider is "openai", "gemini" or empty to disable LLM descriptions.
	DescriberProvider string
	DescriberAPIKey   string
	DescriberModel    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("describer_provider", "")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("gemini_model", "gemini-1.5-flash")
}

// LoadDotEnv reads .env files into the process environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Load resolves the configuration from v, which may already carry a config file and
// bound flags. Environment variables win over file values.
func Load(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		Port:               v.GetString("port"),
		GinMode:            v.GetString("gin_mode"),
		LogLevel:           strings.ToLower(v.GetString("log_level")),
		GooglePlacesAPIKey: v.GetString("google_places_api_key"),
		TripAdvisorAPIKey:  v.GetString("tripadvisor_api_key"),
		WeatherAPIKey:      v.GetString("weather_api_key"),
		SerperAPIKey:       v.GetString("serper_api_key"),
		DescriberProvider:  strings.ToLower(strings.TrimSpace(v.GetString("describer_provider"))),
	}

	switch cfg.DescriberProvider {
	case "openai":
		cfg.DescriberAPIKey = v.GetString("openai_api_key")
		cfg.DescriberModel = v.GetString("openai_model")
	case "gemini":
		cfg.DescriberAPIKey = v.GetString("gemini_api_key")
		cfg.DescriberModel = v.GetString("gemini_model")
	}
	return cfg, nil
}
