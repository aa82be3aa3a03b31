//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/tw-weather-advisor/internal/bootstrap"
	"github.com/yanqian/tw-weather-advisor/internal/domain/advisor"
	"github.com/yanqian/tw-weather-advisor/internal/domain/location"
	"github.com/yanqian/tw-weather-advisor/internal/domain/weather"
	"github.com/yanqian/tw-weather-advisor/internal/infra/config"
	"github.com/yanqian/tw-weather-advisor/internal/infra/cwa"
	httpiface "github.com/yanqian/tw-weather-advisor/internal/interface/http"
	"github.com/yanqian/tw-weather-advisor/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAdvisorConfig,
		provideWeatherConfig,
		provideCWAClient,
		provideTokenCounter,
		provideGenerator,
		location.NewCatalog,
		advisor.NewService,
		weather.NewService,
		wire.Bind(new(weather.Catalog), new(*location.Catalog)),
		wire.Bind(new(weather.ForecastClient), new(*cwa.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
