package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-server/api"
	"github.com/carson-networks/expense-server/internal/config"
	"github.com/carson-networks/expense-server/internal/logging"
	"github.com/carson-networks/expense-server/internal/service"
	"github.com/carson-networks/expense-server/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("expense-server starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbStorage, err := storage.Open(ctx, envConfig.DatabaseURL, envConfig.DBConnectTimeout)
	if err != nil {
		logger.WithError(err).Fatal("storage.Open")
		return
	}
	defer dbStorage.Close()
	logger.Info("storage connected")

	if envConfig.AutoMigrate {
		preVersion, postVersion, err := storage.Migrate(dbStorage.DB)
		if err != nil {
			logger.WithError(err).Fatal("storage.Migrate")
			return
		}
		logger.WithFields(logrus.Fields{
			"preMigrationVersion":  preVersion,
			"postMigrationVersion": postVersion,
		}).Info("Migration status")
	}

	svc := service.NewService(dbStorage)

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.Port,
		Service: svc,
		Storage: dbStorage,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("HttpServer.Serve")
	}
}
