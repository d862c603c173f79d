package planner_fx

import (
	"travelplanner/internal/services"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(
	services.NewRandomPicker,
	services.SystemClock,
	provideAggregatorService,
	provideItineraryService,
	provideDialogueService,
	services.NewExportService,
)

func provideAggregatorService(providers services.Providers, logger *zap.Logger) services.AggregatorServiceInterface {
	return services.NewAggregatorService(providers, logger.Named("aggregator"))
}

func provideItineraryService(
	aggregator services.AggregatorServiceInterface,
	picker services.Picker,
	clock services.Clock,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(aggregator, picker, clock, logger.Named("itinerary"))
}

func provideDialogueService(planner services.ItineraryServiceInterface, logger *zap.Logger) services.DialogueServiceInterface {
	return services.NewDialogueService(planner, logger.Named("dialogue"))
}
