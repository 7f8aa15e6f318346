package model

import "time"

// WeekLabel 周别列，例如 "9/1–9/7"
// Start/End 为按参考年份解析后的日期，仅用于排序与展示
type WeekLabel struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w WeekLabel) String() string {
	return w.Label
}

// Labels 提取周别字符串
func Labels(weeks []WeekLabel) []string {
	out := make([]string, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, w.Label)
	}
	return out
}
