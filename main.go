package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"abtest/app"
	"abtest/internal/config"
	"abtest/internal/logging"
	"abtest/internal/report"
)

// main runs the two built-in A/B scenarios and prints the report to stdout
func main() {
	bootLog, _ := logging.New(os.Stderr, "info")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		bootLog.Debug("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		bootLog.WithError(err).Fatal("Failed to load configuration")
	}

	logger, err := logging.New(os.Stderr, appConfig.Logging.Level)
	if err != nil {
		bootLog.WithError(err).Fatal("Failed to configure logging")
	}

	svc, runCfg, err := app.Bootstrap(appConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize experiment")
	}

	result, err := svc.Run(context.Background(), runCfg)
	if err != nil {
		logger.WithError(err).Fatal("Experiment failed")
	}

	out := report.NewWriter(os.Stdout, report.Format(appConfig.Output.Format), report.ColorMode(appConfig.Output.Color))
	if err := out.Write(result); err != nil {
		logger.WithError(err).Fatal("Failed to write report")
	}
}
