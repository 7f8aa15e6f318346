package analysis

import (
	"fmt"

	"moonsales/internal/model"
)

// 分析表列名
const (
	ColumnWeek       = "週別"
	ColumnWeekly     = "單週銷售量"
	ColumnCumulative = "累積銷售量"
	ColumnGrowth     = "週成長率(%)"
)

// AnalysisColumns 分析表列顺序
var AnalysisColumns = []string{ColumnWeek, ColumnWeekly, ColumnCumulative, ColumnGrowth}

// Charts 由分析表生成三张图的描述：单周柱状、累计折线、成长率折线（含零基准线）
func Charts(table *model.AnalysisTable) []model.Chart {
	labels := table.Weeks()
	weekly := make([]float64, 0, len(table.Rows))
	cumulative := make([]float64, 0, len(table.Rows))
	growth := make([]float64, 0, len(table.Rows))
	for _, r := range table.Rows {
		weekly = append(weekly, r.WeeklyQuantity)
		cumulative = append(cumulative, r.CumulativeQuantity)
		growth = append(growth, r.GrowthRatePercent)
	}

	name := table.ProductName
	if name == "" {
		name = table.ProductID
	}

	return []model.Chart{
		{
			Kind:   model.ChartKindBar,
			Title:  fmt.Sprintf("%s 單週銷售量", name),
			XField: ColumnWeek,
			YField: ColumnWeekly,
			YLabel: ColumnWeekly,
			Labels: labels,
			Values: weekly,
		},
		{
			Kind:    model.ChartKindLine,
			Title:   fmt.Sprintf("%s 累積銷售量", name),
			XField:  ColumnWeek,
			YField:  ColumnCumulative,
			YLabel:  ColumnCumulative,
			Markers: true,
			Labels:  labels,
			Values:  cumulative,
		},
		{
			Kind:     model.ChartKindLine,
			Title:    fmt.Sprintf("%s 週成長率 (%%)", name),
			XField:   ColumnWeek,
			YField:   ColumnGrowth,
			YLabel:   ColumnGrowth,
			Markers:  true,
			Color:    "red",
			ZeroLine: true,
			Labels:   labels,
			Values:   growth,
		},
	}
}
