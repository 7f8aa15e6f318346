package analysis

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"moonsales/internal/model"
)

// Schema 工作簿结构约定
type Schema struct {
	IDColumn      string // 產品代號
	NameColumn    string // 產品名稱
	Separator     string // 周别起止分隔符（en-dash）
	ReferenceYear int    // 周别不含年份，统一按此年份解析
}

// DefaultSchema 默认结构
func DefaultSchema() Schema {
	return Schema{
		IDColumn:      "產品代號",
		NameColumn:    "產品名稱",
		Separator:     "–",
		ReferenceYear: 2024,
	}
}

// IsWeekHeader 表头包含分隔符即视为周别列
func IsWeekHeader(header, sep string) bool {
	return sep != "" && strings.Contains(header, sep)
}

// ParseWeekLabel 解析 "<M>/<D>–<M>/<D>"
// 结束日期早于开始日期时视为跨年
func ParseWeekLabel(header, sep string, year int) (model.WeekLabel, error) {
	label := strings.TrimSpace(header)
	parts := strings.Split(label, sep)
	if sep == "" || len(parts) != 2 {
		return model.WeekLabel{}, formatError("", header, "", errors.New("week label must be <M>/<D>"+sep+"<M>/<D>"))
	}

	start, err := parseMonthDay(parts[0], year)
	if err != nil {
		return model.WeekLabel{}, formatError("", header, "", fmt.Errorf("week start: %w", err))
	}
	end, err := parseMonthDay(parts[1], year)
	if err != nil {
		return model.WeekLabel{}, formatError("", header, "", fmt.Errorf("week end: %w", err))
	}
	if end.Before(start) {
		end = end.AddDate(1, 0, 0)
	}

	return model.WeekLabel{Label: label, Start: start, End: end}, nil
}

func parseMonthDay(s string, year int) (time.Time, error) {
	s = strings.TrimSpace(s)
	md := strings.Split(s, "/")
	if len(md) != 2 {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	month, err := strconv.Atoi(strings.TrimSpace(md[0]))
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid month in %q", s)
	}
	day, err := strconv.Atoi(strings.TrimSpace(md[1]))
	if err != nil || day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, fmt.Errorf("invalid day in %q", s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DiscoverWeeks 从基准表表头找出周别列并按开始日期升序排列
func DiscoverWeeks(header []string, schema Schema) ([]model.WeekLabel, error) {
	weeks := make([]model.WeekLabel, 0, len(header))
	for _, h := range header {
		if !IsWeekHeader(h, schema.Separator) {
			continue
		}
		w, err := ParseWeekLabel(h, schema.Separator, schema.ReferenceYear)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, w)
	}

	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].Start.Before(weeks[j].Start)
	})

	for i := 1; i < len(weeks); i++ {
		if weeks[i].Start.Equal(weeks[i-1].Start) {
			return nil, formatError("", weeks[i].Label, "",
				fmt.Errorf("week starts on the same day as %q", weeks[i-1].Label))
		}
	}
	return weeks, nil
}
