//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/bootstrap"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/dream"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/profile"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/config"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/scoring"
	httpiface "github.com/FILIWILY/morpheus-dream-app-sub000/internal/interface/http"
	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAstroConfig,
		provideDreamConfig,
		provideRegistry,
		provideAstroMetrics,
		provideEphemerisBackend,
		provideEphemerisProvider,
		provideHouseProvider,
		provideScoringWatcher,
		providePostgresPool,
		provideProfileRepository,
		provideDreamRepository,
		provideProfileReader,
		providePositionCache,
		astro.NewService,
		profile.NewService,
		dream.NewService,
		wire.Bind(new(astro.ScoringSource), new(*scoring.Watcher)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
