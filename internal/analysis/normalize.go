package analysis

import (
	"strings"

	"moonsales/internal/model"
)

// Normalize 将三张原始宽表裁剪为 [產品代號, 產品名稱, 周别...]
// 周别只从基准表（每週銷售數量）推导一次，再原样套用到另外两张表；
// 非周别、非产品列一律忽略。
func Normalize(raw *model.RawWorkbook, schema Schema) (*model.NormalizedWorkbook, error) {
	if raw == nil {
		return nil, missingSheet(string(model.SheetKindQuantity))
	}
	for _, kind := range model.SheetKinds {
		if raw.Sheet(kind) == nil {
			return nil, missingSheet(string(kind))
		}
	}

	canonical := raw.Quantity
	weeks, err := DiscoverWeeks(canonical.Header, schema)
	if err != nil {
		return nil, withSheet(err, canonical.Name)
	}

	out := &model.NormalizedWorkbook{Weeks: weeks}
	for _, kind := range model.SheetKinds {
		ns, err := normalizeSheet(raw.Sheet(kind), kind, weeks, schema)
		if err != nil {
			return nil, err
		}
		switch kind {
		case model.SheetKindQuantity:
			out.Quantity = ns
		case model.SheetKindCumulative:
			out.Cumulative = ns
		case model.SheetKindGrowth:
			out.Growth = ns
		}
	}
	return out, nil
}

func normalizeSheet(sheet *model.RawSheet, kind model.SheetKind, weeks []model.WeekLabel, schema Schema) (*model.NormalizedSheet, error) {
	index := headerIndex(sheet.Header)

	idCol, ok := resolveColumn(index, schema.IDColumn, 0, len(sheet.Header))
	if !ok {
		return nil, lookupFailure(sheet.Name, schema.IDColumn)
	}
	nameCol, ok := resolveColumn(index, schema.NameColumn, 1, len(sheet.Header))
	if !ok {
		return nil, lookupFailure(sheet.Name, schema.NameColumn)
	}

	weekCols := make(map[string]int, len(weeks))
	for _, w := range weeks {
		idx, ok := index[w.Label]
		if !ok {
			return nil, lookupFailure(sheet.Name, w.Label)
		}
		weekCols[w.Label] = idx
	}

	out := &model.NormalizedSheet{
		Name:  sheet.Name,
		Kind:  kind,
		Weeks: weeks,
		Rows:  make([]model.NormalizedRow, 0, len(sheet.Rows)),
	}
	for _, row := range sheet.Rows {
		id := cellAt(row, idCol)
		if id == "" {
			// 空白行
			continue
		}
		cells := make(map[string]string, len(weekCols))
		for label, idx := range weekCols {
			cells[label] = cellAt(row, idx)
		}
		out.Rows = append(out.Rows, model.NormalizedRow{
			ProductID:   id,
			ProductName: cellAt(row, nameCol),
			Cells:       cells,
		})
	}
	return out, nil
}

// headerIndex 表头到列索引，重复表头取第一次出现
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}
	return index
}

// resolveColumn 优先按列名定位，找不到时退回到约定位置（第一列/第二列）
func resolveColumn(index map[string]int, name string, fallback, width int) (int, bool) {
	if idx, ok := index[strings.TrimSpace(name)]; ok && name != "" {
		return idx, true
	}
	if fallback < width {
		return fallback, true
	}
	return 0, false
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
