package cwa

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/yanqian/tw-weather-advisor/internal/domain/forecast"
	"github.com/yanqian/tw-weather-advisor/internal/domain/location"
)

const (
	defaultBaseURL = "https://opendata.cwa.gov.tw/api/v1/rest/datastore"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// Config holds the CWA open data settings.
type Config struct {
	APIKey  string
	BaseURL string
	Dataset string
	Timeout time.Duration
}

// Client fetches the 36 hour county forecast from the CWA open data platform.
type Client struct {
	http    *resty.Client
	apiKey  string
	dataset string
	logger  *slog.Logger
}

// NewClient builds an API client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	dataset := strings.TrimSpace(cfg.Dataset)
	if dataset == "" {
		dataset = forecast.ProviderDataset
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	log := logger.With("component", "cwa.client")

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.Debug("cwa response", "status", resp.StatusCode(), "duration", resp.Time(), "bytes", len(resp.Body()))
		return nil
	})

	return &Client{
		http:    httpClient,
		apiKey:  cfg.APIKey,
		dataset: dataset,
		logger:  log,
	}
}

// Fetch retrieves the raw forecast records for one region within window.
func (c *Client) Fetch(ctx context.Context, key location.Key, window forecast.Window) (forecast.RawResponse, error) {
	params := window.QueryParams()
	params["Authorization"] = c.apiKey
	params["locationName"] = string(key)
	params["format"] = "JSON"

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/" + c.dataset)
	if err != nil {
		return forecast.RawResponse{}, fmt.Errorf("cwa request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		body := resp.Body()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return forecast.RawResponse{}, fmt.Errorf("cwa request error: status=%d body=%s", resp.StatusCode(), string(body))
	}

	var raw forecast.RawResponse
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return forecast.RawResponse{}, fmt.Errorf("decode cwa response: %w", err)
	}
	if !raw.Success {
		return forecast.RawResponse{}, fmt.Errorf("cwa api reported failure for %s", key)
	}
	return raw, nil
}
