package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"moonsales/internal/analysis"
	"moonsales/internal/model"
)

const (
	maxSheetNameLen = 31
	zeroLineHeader  = "基準線"
	chartWidth      = 720
	chartHeight     = 300
	chartRowStep    = 16
)

// Exporter 分析报表导出器（表格 + 三张原生图表）
type Exporter struct {
	fontFamily string
}

// NewExporter 创建导出器
func NewExporter(fontFamily string) *Exporter {
	return &Exporter{fontFamily: fontFamily}
}

// Export 每个产品一张工作表
func (e *Exporter) Export(tables []*model.AnalysisTable) (*excelize.File, error) {
	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())

	used := make(map[string]struct{}, len(tables))
	for i, table := range tables {
		sheetName := uniqueSheetName(sheetNameFor(table), used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheetName); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheetName, err)
		}

		if err := e.WriteTable(f, sheetName, table); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteTable 写入分析表并在右侧堆叠三张图
func (e *Exporter) WriteTable(f *excelize.File, sheetName string, table *model.AnalysisTable) error {
	header := make([]interface{}, 0, len(analysis.AnalysisColumns)+1)
	for _, h := range analysis.AnalysisColumns {
		header = append(header, h)
	}
	header = append(header, zeroLineHeader)
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range table.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{r.Week, r.WeeklyQuantity, r.CumulativeQuantity, r.GrowthRatePercent, 0}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := e.applyStyles(f, sheetName, len(table.Rows)); err != nil {
		return err
	}

	if len(table.Rows) == 0 {
		return nil
	}
	return e.addCharts(f, sheetName, table)
}

func (e *Exporter) applyStyles(f *excelize.File, sheetName string, rowCount int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Family: e.fontFamily},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}

	if rowCount > 0 {
		last := rowCount + 1
		qtyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
		if err != nil {
			return fmt.Errorf("quantity style: %w", err)
		}
		pctFmt := "0.00"
		pctStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &pctFmt})
		if err != nil {
			return fmt.Errorf("growth style: %w", err)
		}
		if err := f.SetCellStyle(sheetName, "B2", fmt.Sprintf("C%d", last), qtyStyle); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, "D2", fmt.Sprintf("D%d", last), pctStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 14); err != nil {
		return err
	}
	return f.SetColWidth(sheetName, "B", "E", 14)
}

func (e *Exporter) addCharts(f *excelize.File, sheetName string, table *model.AnalysisTable) error {
	last := len(table.Rows) + 1
	ref := func(col string) string {
		return fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheetName, col, col, last)
	}
	nameRef := func(col string) string {
		return fmt.Sprintf("'%s'!$%s$1", sheetName, col)
	}
	categories := ref("A")

	for i, desc := range analysis.Charts(table) {
		col := "B"
		switch desc.YField {
		case analysis.ColumnCumulative:
			col = "C"
		case analysis.ColumnGrowth:
			col = "D"
		}

		series := excelize.ChartSeries{
			Name:       nameRef(col),
			Categories: categories,
			Values:     ref(col),
		}
		chartType := excelize.Col
		if desc.Kind == model.ChartKindLine {
			chartType = excelize.Line
			series.Line = excelize.ChartLine{Width: 2}
		}
		if desc.Markers {
			series.Marker = excelize.ChartMarker{Symbol: "circle", Size: 6}
		}
		if desc.Color == "red" {
			series.Fill = excelize.Fill{Type: "pattern", Color: []string{"FF0000"}, Pattern: 1}
		}

		allSeries := []excelize.ChartSeries{series}
		if desc.ZeroLine {
			allSeries = append(allSeries, excelize.ChartSeries{
				Name:       nameRef("E"),
				Categories: categories,
				Values:     ref("E"),
				Fill:       excelize.Fill{Type: "pattern", Color: []string{"808080"}, Pattern: 1},
				Line:       excelize.ChartLine{Width: 1},
				Marker:     excelize.ChartMarker{Symbol: "none"},
			})
		}

		chart := &excelize.Chart{
			Type:   chartType,
			Series: allSeries,
			Title:  []excelize.RichTextRun{{Text: desc.Title, Font: &excelize.Font{Bold: true}}},
			Legend: excelize.ChartLegend{Position: "none"},
			XAxis: excelize.ChartAxis{
				Font: e.axisFont(),
			},
			YAxis: excelize.ChartAxis{
				MajorGridLines: true,
				Title:          []excelize.RichTextRun{{Text: desc.YLabel}},
				Font:           e.axisFont(),
			},
			Dimension: excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
		}

		cell, _ := excelize.CoordinatesToCellName(7, 1+i*chartRowStep)
		if err := f.AddChart(sheetName, cell, chart); err != nil {
			return fmt.Errorf("add chart %q: %w", desc.Title, err)
		}
	}
	return nil
}

// axisFont 字体只设置在坐标轴上；标题 RichTextRun 带 Family 会让 excelize v2.9.0 的 drawChartFont 空指针
func (e *Exporter) axisFont() excelize.Font {
	return excelize.Font{Family: e.fontFamily}
}

// sheetNameFor "<id> <name>"，去掉 Excel 不允许的字符并截断到 31 个字符
func sheetNameFor(table *model.AnalysisTable) string {
	name := strings.TrimSpace(table.ProductID + " " + table.ProductName)
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']', '\'':
			return '_'
		}
		return r
	}, name)
	if name == "" {
		name = "Sheet"
	}
	runes := []rune(name)
	if len(runes) > maxSheetNameLen {
		runes = runes[:maxSheetNameLen]
	}
	return string(runes)
}

func uniqueSheetName(name string, used map[string]struct{}) string {
	candidate := name
	for n := 2; ; n++ {
		if _, ok := used[strings.ToLower(candidate)]; !ok {
			break
		}
		suffix := fmt.Sprintf("(%d)", n)
		runes := []rune(name)
		if len(runes)+len([]rune(suffix)) > maxSheetNameLen {
			runes = runes[:maxSheetNameLen-len([]rune(suffix))]
		}
		candidate = string(runes) + suffix
	}
	used[strings.ToLower(candidate)] = struct{}{}
	return candidate
}
