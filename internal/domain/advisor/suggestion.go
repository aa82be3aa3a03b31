package advisor

import (
	"strings"

	"github.com/yanqian/tw-weather-advisor/internal/domain/forecast"
)

const (
	hotThreshold      = 30
	warmThreshold     = 25
	mildThreshold     = 20
	tempSwingMinDelta = 5
	rainLikely        = 70
	rainPossible      = 30
	rainShiftMinDelta = 30
)

const (
	noAdviceText     = "無法提供建議"
	laterPeriodLabel = "稍後"
)

// Suggest builds a rule based advisory from the first one or two periods.
// It never fails: with no periods it returns a fixed notice, and extra
// periods beyond the second are ignored.
func Suggest(periods []forecast.Period) string {
	if len(periods) == 0 {
		return noAdviceText
	}
	if len(periods) > 2 {
		periods = periods[:2]
	}
	first := periods[0]

	var lines []string
	switch high := first.HighC(); {
	case high >= hotThreshold:
		lines = append(lines, "🌡️ 天氣炎熱，記得多補充水分", "👕 建議穿著輕薄透氣的衣物")
	case high >= warmThreshold:
		lines = append(lines, "🌡️ 天氣溫暖舒適", "👕 短袖或薄長袖即可")
	case high >= mildThreshold:
		lines = append(lines, "🌡️ 氣溫適中，早晚稍涼", "👔 建議洋蔥式穿搭")
	default:
		lines = append(lines, "🌡️ 天氣偏冷，注意保暖", "🧥 建議穿著外套或厚衣物")
	}

	if len(periods) == 2 && abs(first.HighC()-periods[1].HighC()) >= tempSwingMinDelta {
		lines = append(lines, "🌡️ 日夜溫差較大，建議洋蔥式穿搭")
	}

	maxPoP := first.PoPPercent()
	for _, p := range periods[1:] {
		if pop := p.PoPPercent(); pop > maxPoP {
			maxPoP = pop
		}
	}
	switch {
	case maxPoP >= rainLikely:
		lines = append(lines, "☂️ 降雨機率高，務必攜帶雨具")
	case maxPoP >= rainPossible:
		lines = append(lines, "☂️ 可能下雨，建議帶傘備用")
	}

	if len(periods) == 2 {
		second := periods[1]
		before, after := first.PoPPercent(), second.PoPPercent()
		if abs(before-after) >= rainShiftMinDelta {
			label := periodName(second)
			if after > before {
				lines = append(lines, "☂️ "+label+"降雨機率較高，記得帶傘")
			} else {
				lines = append(lines, "☀️ "+label+"天氣會轉好")
			}
		}
	}

	return strings.Join(lines, "\n")
}

func periodName(p forecast.Period) string {
	if p.LabelName != "" {
		return p.LabelName
	}
	if name := p.Label.DisplayName(); name != "" {
		return name
	}
	return laterPeriodLabel
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
