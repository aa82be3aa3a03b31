package weather

import (
	"context"
	"time"

	"github.com/yanqian/tw-weather-advisor/internal/domain/advisor"
	"github.com/yanqian/tw-weather-advisor/internal/domain/forecast"
	"github.com/yanqian/tw-weather-advisor/internal/domain/location"
)

// Request captures the payload accepted by the weather service.
type Request struct {
	Location string `json:"location" form:"location"`
}

// Report is serialized back to API consumers.
type Report struct {
	Location location.Location `json:"location"`
	Window   forecast.Window   `json:"window"`
	Periods  []forecast.Period `json:"periods"`
	Advice   advisor.Advice    `json:"advice"`
	IssuedAt time.Time         `json:"issuedAt"`
	Source   string            `json:"source"`
}

// ForecastClient fetches the raw provider payload for one location.
type ForecastClient interface {
	Fetch(ctx context.Context, key location.Key, window forecast.Window) (forecast.RawResponse, error)
}

// Catalog resolves caller input to regions.
type Catalog interface {
	Normalize(input string) (location.Location, bool)
	Autocomplete(query string) []location.Choice
	All() []location.Location
}

// Config wires runtime knobs for the weather domain.
type Config struct {
	SourceName string
}
