package controllers_fx

import (
	"travelplanner/internal/api/controllers"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPlannerController))
