package main

import (
	"fmt"
	"os"
	"travelplanner/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Conversational travel planner",
	Long: `planner collects trip details through a short conversation and builds a
day-by-day itinerary from Google Places, TripAdvisor, OpenWeatherMap and travel blogs.

Provider keys are read from the environment or a .env file. Missing keys are fine:
the planner falls back to other sources.`,
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to read .env:", err)
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	if verbose {
		viper.Set("log_level", "debug")
	}
}
