package describer_fx

import (
	"errors"
	"io"
	"travelplanner/internal/config"
	"travelplanner/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(ProvideDescriber)

// ProvideDescriber creates the LLM describer selected by DESCRIBER_PROVIDER. A missing key
// disables descriptions instead of failing startup.
func ProvideDescriber(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (utils.DescriberInterface, error) {
	if cfg.DescriberProvider == "" {
		logger.Info("destination describer disabled")
		return nil, nil
	}

	logger.Info("initializing destination describer",
		zap.String("provider", cfg.DescriberProvider),
		zap.String("model", cfg.DescriberModel))

	describer, err := utils.NewDescriber(cfg.DescriberProvider, cfg.DescriberAPIKey, cfg.DescriberModel)
	if errors.Is(err, utils.ErrMissingCredential) {
		logger.Warn("describer credential missing, descriptions disabled", zap.Error(err))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if closer, ok := describer.(io.Closer); ok {
		lc.Append(fx.StopHook(closer.Close))
	}
	return describer, nil
}
