package forecast

import (
	"time"

	"github.com/yanqian/tw-weather-advisor/pkg/util"
)

// QueryTimeLayout is the timestamp format CWA accepts for timeFrom/timeTo.
const QueryTimeLayout = "2006-01-02T15:04:05"

const (
	dayStartHour   = 6
	nightStartHour = 18
)

// Window is the half-open [From, To) interval requested from the provider.
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// QueryParams renders the window as CWA query parameters.
func (w Window) QueryParams() map[string]string {
	return map[string]string{
		"timeFrom": w.From.In(util.Taipei).Format(QueryTimeLayout),
		"timeTo":   w.To.In(util.Taipei).Format(QueryTimeLayout),
	}
}

// IsDaytime reports whether t falls in [06:00, 18:00) civil time.
func IsDaytime(t time.Time) bool {
	hour := t.In(util.Taipei).Hour()
	return hour >= dayStartHour && hour < nightStartHour
}

// ResolveWindow returns the window that starts at the beginning of the
// half-day containing now, so the in-progress period is still returned, and
// reaches far enough to cover the following two half-days.
func ResolveWindow(now time.Time) Window {
	local := now.In(util.Taipei)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, util.Taipei)

	switch {
	case IsDaytime(local):
		return Window{
			From: midnight.Add(dayStartHour * time.Hour),
			To:   midnight.AddDate(0, 0, 1),
		}
	case local.Hour() >= nightStartHour:
		return Window{
			From: midnight.Add(nightStartHour * time.Hour),
			To:   midnight.AddDate(0, 0, 2),
		}
	default:
		return Window{
			From: midnight.AddDate(0, 0, -1).Add(nightStartHour * time.Hour),
			To:   midnight.AddDate(0, 0, 2),
		}
	}
}
