package analysis

import (
	"testing"

	"moonsales/internal/model"
)

func TestCharts(t *testing.T) {
	t.Parallel()

	table := &model.AnalysisTable{
		ProductID:   "P001",
		ProductName: "蛋黃酥",
		Rows: []model.AnalysisRow{
			{Week: "9/1–9/7", WeeklyQuantity: 10, CumulativeQuantity: 10, GrowthRatePercent: 0},
			{Week: "9/8–9/14", WeeklyQuantity: 20, CumulativeQuantity: 30, GrowthRatePercent: 100},
		},
	}

	charts := Charts(table)
	if len(charts) != 3 {
		t.Fatalf("charts=%d want 3", len(charts))
	}
	if charts[0].Kind != model.ChartKindBar || charts[0].YField != ColumnWeekly {
		t.Fatalf("first chart should be weekly bar, got %+v", charts[0])
	}
	if charts[1].Kind != model.ChartKindLine || !charts[1].Markers || charts[1].ZeroLine {
		t.Fatalf("second chart should be cumulative line with markers, got %+v", charts[1])
	}
	if !charts[2].ZeroLine || !charts[2].Markers || charts[2].Values[1] != 100 {
		t.Fatalf("third chart should be growth line with zero line, got %+v", charts[2])
	}
	if charts[2].Title != "蛋黃酥 週成長率 (%)" {
		t.Fatalf("title=%q", charts[2].Title)
	}
}

func TestProductOptions(t *testing.T) {
	t.Parallel()

	ws, err := Normalize(festivalWorkbook(), DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	opts := ProductOptions(ws)
	if len(opts) != 2 || opts[0].Label != "P001 - 蛋黃酥" || opts[1].ID != "P002" {
		t.Fatalf("options=%+v", opts)
	}
	if name, ok := ProductName(ws, "P002"); !ok || name != "綠豆椪" {
		t.Fatalf("ProductName=%q,%v", name, ok)
	}
	if _, ok := ProductName(ws, "P999"); ok {
		t.Fatalf("P999 should not exist")
	}
}

func TestCheckCumulative(t *testing.T) {
	t.Parallel()

	table := &model.AnalysisTable{Rows: []model.AnalysisRow{
		{Week: "a", CumulativeQuantity: 10},
		{Week: "b", CumulativeQuantity: 8},
		{Week: "c", CumulativeQuantity: 8},
	}}
	got := CheckCumulative(table)
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("CheckCumulative=%v", got)
	}
}
