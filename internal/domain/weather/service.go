package weather

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/tw-weather-advisor/internal/domain/advisor"
	"github.com/yanqian/tw-weather-advisor/internal/domain/forecast"
	"github.com/yanqian/tw-weather-advisor/internal/domain/location"
	apperrors "github.com/yanqian/tw-weather-advisor/pkg/errors"
	"github.com/yanqian/tw-weather-advisor/pkg/util"
)

const defaultSourceName = "中央氣象署開放資料平台"

// Service exposes forecast and advisory lookups per region.
type Service interface {
	Report(ctx context.Context, req Request) (Report, error)
	Locations(query string) []location.Choice
	Menu() []location.Location
}

type service struct {
	cfg     Config
	catalog Catalog
	client  ForecastClient
	advisor advisor.Service
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires up the weather domain.
func NewService(cfg Config, catalog Catalog, client ForecastClient, advisorSvc advisor.Service, logger *slog.Logger) Service {
	if strings.TrimSpace(cfg.SourceName) == "" {
		cfg.SourceName = defaultSourceName
	}
	return &service{
		cfg:     cfg,
		catalog: catalog,
		client:  client,
		advisor: advisorSvc,
		logger:  logger.With("component", "weather.service"),
		now:     util.NowTaipei,
	}
}

func (s *service) Report(ctx context.Context, req Request) (Report, error) {
	input := strings.TrimSpace(req.Location)
	if input == "" {
		return Report{}, apperrors.Wrap(apperrors.CodeInvalidInput, "location is required", nil)
	}
	loc, ok := s.catalog.Normalize(input)
	if !ok {
		return Report{}, apperrors.Wrap(apperrors.CodeLocationNotFound, "找不到地點: "+input, nil)
	}

	now := s.now().In(util.Taipei)
	window := forecast.ResolveWindow(now)

	raw, err := s.client.Fetch(ctx, loc.Key, window)
	if err != nil {
		s.logger.Warn("forecast fetch failed", "location", loc.Key, "error", err)
		return Report{}, apperrors.Wrap(apperrors.CodeProviderUnavailable, "無法取得 "+string(loc.Key)+" 的天氣資料", err)
	}

	periods, err := forecast.Build(raw, loc.Key, now)
	if err != nil {
		switch {
		case errors.Is(err, forecast.ErrLocationNotFound):
			return Report{}, apperrors.Wrap(apperrors.CodeLocationNotFound, "找不到地點: "+string(loc.Key), err)
		default:
			s.logger.Warn("forecast payload malformed", "location", loc.Key, "error", err)
			return Report{}, apperrors.Wrap(apperrors.CodeMalformedForecast, "無法取得 "+string(loc.Key)+" 的天氣資料", err)
		}
	}
	s.logger.Info("forecast periods resolved", "location", loc.Key, "periods", len(periods), "from", window.From, "to", window.To)

	advice := s.advisor.Advise(ctx, loc, periods)

	return Report{
		Location: loc,
		Window:   window,
		Periods:  periods,
		Advice:   advice,
		IssuedAt: now,
		Source:   s.cfg.SourceName,
	}, nil
}

func (s *service) Locations(query string) []location.Choice {
	return s.catalog.Autocomplete(query)
}

func (s *service) Menu() []location.Location {
	return s.catalog.All()
}
