package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"strategy_dashboard/internal/app/bootstrap"
	"strategy_dashboard/internal/infrastructure/configloader"
	"strategy_dashboard/internal/pkg/logger"
	"strategy_dashboard/internal/pkg/utils"
)

type env struct {
	cfg    *configloader.Config
	app    *bootstrap.App
	logger *zap.Logger
}

// setup loads configuration and wires services. Logs go to stderr at warn level unless
// the config asks for something quieter.
func setup(ctx context.Context) (*env, error) {
	p := *configPath
	if p == "" {
		p = utils.GetEnv("CONFIG_PATH", "config/config.yml")
	}
	cfg, err := configloader.Load(p)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if level == "info" || level == "debug" {
		level = "warn"
	}
	zapLogger, err := logger.New(level, "console")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.InitSlog(zapLogger)

	app, err := bootstrap.Build(ctx, cfg, zapLogger)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, app: app, logger: zapLogger}, nil
}

func (e *env) close() {
	_ = e.app.Close()
	_ = e.logger.Sync()
}
