package advisor

import (
	"fmt"
	"strings"

	"github.com/yanqian/tw-weather-advisor/internal/domain/forecast"
	"github.com/yanqian/tw-weather-advisor/internal/domain/location"
)

const defaultSystemPrompt = "你是一位熟悉台灣氣候的氣象顧問與生活建議專家，請使用繁體中文回答。"

const notAvailable = "N/A"

func (s *service) buildPrompt(loc location.Location, periods []forecast.Period) Prompt {
	system := strings.TrimSpace(s.cfg.Prompt)
	if system == "" {
		system = defaultSystemPrompt
	}

	blocks := make([]string, 0, len(periods))
	for i, p := range periods {
		label := p.LabelName
		if label == "" {
			label = fmt.Sprintf("時段 %d", i+1)
		}
		blocks = append(blocks, fmt.Sprintf("【%s】%s\n天氣: %s\n溫度: %s°C ~ %s°C\n降雨機率: %s%%\n舒適度: %s",
			label,
			p.Description,
			orNA(p.Weather),
			orNA(p.LowTemp),
			orNA(p.HighTemp),
			orNA(p.PoP),
			orNA(p.Comfort),
		))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "地點: %s\n\n", loc.Label())
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n\n請比較上述時段的天氣差異，分別就體感與舒適度、穿著（日夜溫差大時提醒洋蔥式穿搭）、外出準備（各時段降雨機率不同時特別提醒）與生活小提示給出建議。")
	b.WriteString("每項不超過三行，語氣親切口語，可使用少量 emoji，總長度控制在 250 字以內。")

	return Prompt{System: system, User: b.String()}
}

func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return notAvailable
	}
	return v
}
