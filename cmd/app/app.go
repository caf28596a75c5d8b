package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/volleyhub/registration-api/internal/api"
	"github.com/volleyhub/registration-api/internal/config"
	"github.com/volleyhub/registration-api/internal/db"
	"github.com/volleyhub/registration-api/internal/logger"
	"github.com/volleyhub/registration-api/internal/storage"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml", func(reloaded *config.AppConfig) {
		if err := logger.SetLevel(reloaded.Log.Level); err != nil {
			zap.L().Warn("ignoring log level from reloaded config", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment, conf.Log.Level); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	gormDB, err := db.Open(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	ctx := context.Background()

	store, err := storage.NewS3Store(ctx, conf.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage -> %w", err)
	}

	s := api.NewServer(conf, gormDB, store)

	if err = s.Services.Auth.EnsureAdmin(ctx, conf.Admin); err != nil {
		return fmt.Errorf("failed to create the administrator -> %w", err)
	}

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
