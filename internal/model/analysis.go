package model

// AnalysisRow 单个产品单周的分析结果
type AnalysisRow struct {
	Week               string  `json:"week"`
	WeeklyQuantity     float64 `json:"weeklyQuantity"`     // 單週銷售量
	CumulativeQuantity float64 `json:"cumulativeQuantity"` // 累積銷售量
	GrowthRatePercent  float64 `json:"growthRatePercent"`  // 週成長率(%)
}

// AnalysisTable 单个产品的逐周分析表，行顺序与周别顺序一致
type AnalysisTable struct {
	ProductID   string        `json:"productId"`
	ProductName string        `json:"productName"`
	Rows        []AnalysisRow `json:"rows"`
}

// Weeks 分析表的周别列
func (t *AnalysisTable) Weeks() []string {
	out := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r.Week)
	}
	return out
}

// ProductOption 产品下拉选项
type ProductOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"` // "<id> - <name>"
}
