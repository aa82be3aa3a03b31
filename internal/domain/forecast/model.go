package forecast

import "time"

// ProviderTimeLayout is the civil-time timestamp format of CWA period bounds.
const ProviderTimeLayout = "2006-01-02 15:04:05"

const descriptionLayout = "01/02 15:04"

// Label names a period relative to the moment of the request.
type Label string

const (
	LabelTodayDaytime    Label = "today_daytime"
	LabelTonight         Label = "tonight"
	LabelTomorrowDaytime Label = "tomorrow_daytime"
	LabelTomorrowNight   Label = "tomorrow_night"
	LabelDaytime         Label = "daytime"
	LabelNight           Label = "night"
)

var labelNames = map[Label]string{
	LabelTodayDaytime:    "今天白天",
	LabelTonight:         "今晚",
	LabelTomorrowDaytime: "明天白天",
	LabelTomorrowNight:   "明天晚上",
	LabelDaytime:         "白天",
	LabelNight:           "晚上",
}

// DisplayName returns the Traditional Chinese rendering of the label.
func (l Label) DisplayName() string {
	return labelNames[l]
}

// Period is one normalized half-day forecast. Numeric fields keep the
// provider's text; callers convert them with ParseIntOr.
type Period struct {
	Start     time.Time `json:"startTime"`
	End       time.Time `json:"endTime"`
	Weather   string    `json:"weatherDescription"`
	PoP       string    `json:"pop"`
	LowTemp   string    `json:"lowTemp"`
	HighTemp  string    `json:"highTemp"`
	Comfort   string    `json:"comfort"`
	Label     Label     `json:"label"`
	LabelName string    `json:"labelName"`
	// Description is "MM/DD HH:MM - MM/DD HH:MM" in civil time.
	Description string `json:"description"`
}

func describe(start, end time.Time) string {
	return start.Format(descriptionLayout) + " - " + end.Format(descriptionLayout)
}
