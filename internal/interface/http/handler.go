package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/tw-weather-advisor/internal/domain/location"
	"github.com/yanqian/tw-weather-advisor/internal/domain/weather"
)

const menuPrompt = "請選擇要查詢天氣的地點"

// Handler wires the HTTP transport to domain services.
type Handler struct {
	weatherSvc weather.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(weatherSvc weather.Service, logger *slog.Logger) *Handler {
	return &Handler{
		weatherSvc: weatherSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Locations serves autocomplete choices for a partial location name.
func (h *Handler) Locations(c *gin.Context) {
	choices := h.weatherSvc.Locations(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"choices": choices})
}

// Weather returns the forecast periods and advisory for one location. Without
// a location it returns the selection menu instead.
func (h *Handler) Weather(c *gin.Context) {
	var req weather.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if strings.TrimSpace(req.Location) == "" {
		c.JSON(http.StatusOK, gin.H{
			"prompt":    menuPrompt,
			"locations": menuChoices(h.weatherSvc.Menu()),
		})
		return
	}

	report, err := h.weatherSvc.Report(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "weather_failed"))
		return
	}

	c.JSON(http.StatusOK, report)
}

func menuChoices(locations []location.Location) []location.Choice {
	choices := make([]location.Choice, 0, len(locations))
	for _, loc := range locations {
		choices = append(choices, location.Choice{Name: loc.Label(), Value: loc.Key})
	}
	return choices
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
