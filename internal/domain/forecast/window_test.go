package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/tw-weather-advisor/pkg/util"
)

func TestResolveWindowDaytime(t *testing.T) {
	for hour := 6; hour < 18; hour++ {
		now := time.Date(2024, 7, 1, hour, 30, 0, 0, util.Taipei)
		require.True(t, IsDaytime(now), hour)

		window := ResolveWindow(now)
		require.Equal(t, time.Date(2024, 7, 1, 6, 0, 0, 0, util.Taipei), window.From, hour)
		require.Equal(t, time.Date(2024, 7, 2, 0, 0, 0, 0, util.Taipei), window.To, hour)
	}
}

func TestResolveWindowEveningSwitchesAtEighteen(t *testing.T) {
	now := time.Date(2024, 7, 1, 18, 0, 0, 0, util.Taipei)
	require.False(t, IsDaytime(now))

	window := ResolveWindow(now)
	require.Equal(t, time.Date(2024, 7, 1, 18, 0, 0, 0, util.Taipei), window.From)
	require.Equal(t, time.Date(2024, 7, 3, 0, 0, 0, 0, util.Taipei), window.To)

	late := ResolveWindow(time.Date(2024, 7, 1, 23, 59, 59, 0, util.Taipei))
	require.Equal(t, window, late)
}

func TestResolveWindowBeforeDawnContinuesYesterdayNight(t *testing.T) {
	now := time.Date(2024, 7, 1, 5, 59, 59, 0, util.Taipei)
	require.False(t, IsDaytime(now))

	window := ResolveWindow(now)
	require.Equal(t, time.Date(2024, 6, 30, 18, 0, 0, 0, util.Taipei), window.From)
	require.Equal(t, time.Date(2024, 7, 3, 0, 0, 0, 0, util.Taipei), window.To)

	midnight := ResolveWindow(time.Date(2024, 7, 1, 0, 0, 0, 0, util.Taipei))
	require.Equal(t, window, midnight)
}

func TestResolveWindowConvertsToCivilZone(t *testing.T) {
	// 2024-07-01 02:00 UTC is 10:00 in Taipei.
	now := time.Date(2024, 7, 1, 2, 0, 0, 0, time.UTC)
	window := ResolveWindow(now)
	require.Equal(t, time.Date(2024, 7, 1, 6, 0, 0, 0, util.Taipei), window.From)
	require.Equal(t, time.Date(2024, 7, 2, 0, 0, 0, 0, util.Taipei), window.To)
}

func TestResolveWindowCrossesMonthEnd(t *testing.T) {
	window := ResolveWindow(time.Date(2024, 12, 31, 20, 0, 0, 0, util.Taipei))
	require.Equal(t, time.Date(2024, 12, 31, 18, 0, 0, 0, util.Taipei), window.From)
	require.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, util.Taipei), window.To)
}

func TestWindowQueryParams(t *testing.T) {
	window := ResolveWindow(time.Date(2024, 7, 1, 10, 0, 0, 0, util.Taipei))
	require.Equal(t, map[string]string{
		"timeFrom": "2024-07-01T06:00:00",
		"timeTo":   "2024-07-02T00:00:00",
	}, window.QueryParams())
}
