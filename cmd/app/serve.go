package main

import (
	"context"
	"errors"
	"net/http"
	"travelplanner/cmd/fx/config_fx"
	"travelplanner/cmd/fx/controllers_fx"
	"travelplanner/cmd/fx/describer_fx"
	"travelplanner/cmd/fx/logger_fx"
	"travelplanner/cmd/fx/memcache_fx"
	"travelplanner/cmd/fx/planner_fx"
	"travelplanner/cmd/fx/providers_fx"
	"travelplanner/internal/api/controllers"
	"travelplanner/internal/config"
	"travelplanner/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planner HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		fx.New(
			appModules(),
			controllers_fx.Module,
			fx.Provide(ProvideRouter),
			fx.Invoke(StartServer),
		).Run()
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "HTTP listen port")
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
}

// appModules is the dependency graph shared by every command.
func appModules() fx.Option {
	return fx.Options(
		fx.Supply(viper.GetViper()),
		config_fx.Module,
		logger_fx.Module,
		memcache_fx.Module,
		describer_fx.Module,
		providers_fx.Module,
		planner_fx.Module,
	)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *zap.Logger) {
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: engine}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(cfg config.Config, logger *zap.Logger, plannerController *controllers.PlannerController) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger.Named("http")))
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, plannerController)

	return r
}

func RegisterRoutes(r *gin.Engine, plannerController *controllers.PlannerController) {
	api := r.Group("/api")

	chat := api.Group("/chat")
	chat.POST("", plannerController.ChatHandler)
	chat.GET("/history", plannerController.HistoryHandler)
	chat.POST("/reset", plannerController.ResetHandler)

	api.GET("/profile", plannerController.ProfileHandler)
	api.GET("/itinerary/export", plannerController.ExportHandler)
}
