package analysis

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"moonsales/internal/model"
)

// MergeProduct 取出产品在三张表中的行，按周别对齐合并为逐周分析表
// 按周别键取值而非按位置拼接；重复产品取第一行。
func MergeProduct(ws *model.NormalizedWorkbook, productID string, weeks []model.WeekLabel) (*model.AnalysisTable, error) {
	productID = strings.TrimSpace(productID)

	rows := make(map[model.SheetKind]*model.NormalizedRow, len(model.SheetKinds))
	for _, kind := range model.SheetKinds {
		sheet := ws.Sheet(kind)
		if sheet == nil {
			return nil, missingSheet(string(kind))
		}
		row := findProduct(sheet, productID)
		if row == nil {
			return nil, productNotFound(sheet.Name, productID)
		}
		rows[kind] = row
	}

	table := &model.AnalysisTable{
		ProductID:   productID,
		ProductName: rows[model.SheetKindQuantity].ProductName,
		Rows:        make([]model.AnalysisRow, 0, len(weeks)),
	}

	for _, w := range weeks {
		var values [3]float64
		for i, kind := range model.SheetKinds {
			v, err := weekValue(ws.Sheet(kind), rows[kind], w.Label)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		table.Rows = append(table.Rows, model.AnalysisRow{
			Week:               w.Label,
			WeeklyQuantity:     values[0],
			CumulativeQuantity: values[1],
			GrowthRatePercent:  values[2],
		})
	}
	return table, nil
}

func findProduct(sheet *model.NormalizedSheet, productID string) *model.NormalizedRow {
	for i := range sheet.Rows {
		if sheet.Rows[i].ProductID == productID {
			return &sheet.Rows[i]
		}
	}
	return nil
}

func weekValue(sheet *model.NormalizedSheet, row *model.NormalizedRow, week string) (float64, error) {
	raw, ok := row.Cells[week]
	if !ok {
		return 0, lookupFailure(sheet.Name, week)
	}
	v, err := ParseNumber(raw)
	if err != nil {
		pe := formatError(sheet.Name, week, raw, err)
		pe.Product = row.ProductID
		return 0, pe
	}
	return v, nil
}

// ParseNumber 单元格转数值，容忍千分位逗号；空值与非数值均报错
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, errors.New("empty cell")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a finite number")
	}
	return f, nil
}
