// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Wobas/ngw-geofencer/internal/app"
	"github.com/Wobas/ngw-geofencer/internal/config"
	"github.com/Wobas/ngw-geofencer/internal/logger"
	"github.com/Wobas/ngw-geofencer/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("ngw-geofencer").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewFileLogger("ngw-geofencer", cfg.LogFile)
	if err = logger.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	ctx := context.Background()
	geofencer, err := app.NewApp(ctx, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init app error")
	}

	if err = geofencer.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("app run error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
