package forecast

import (
	"time"

	"github.com/yanqian/tw-weather-advisor/pkg/util"
)

// LabelFor names the period starting at start relative to now, comparing
// civil calendar days only.
func LabelFor(start, now time.Time) Label {
	startLocal := start.In(util.Taipei)
	nowLocal := now.In(util.Taipei)
	daytime := IsDaytime(startLocal)

	switch civilDay(startLocal) {
	case civilDay(nowLocal):
		if daytime {
			return LabelTodayDaytime
		}
		return LabelTonight
	case civilDay(nowLocal.AddDate(0, 0, 1)):
		if daytime {
			return LabelTomorrowDaytime
		}
		return LabelTomorrowNight
	}
	if daytime {
		return LabelDaytime
	}
	return LabelNight
}

func civilDay(t time.Time) string {
	return t.In(util.Taipei).Format("2006-01-02")
}
