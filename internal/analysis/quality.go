package analysis

import "moonsales/internal/model"

// CheckCumulative 返回累计销量比上一周下降的周别（数据质量提示，不视为错误）
func CheckCumulative(table *model.AnalysisTable) []string {
	var out []string
	for i := 1; i < len(table.Rows); i++ {
		if table.Rows[i].CumulativeQuantity < table.Rows[i-1].CumulativeQuantity {
			out = append(out, table.Rows[i].Week)
		}
	}
	return out
}

// DuplicateProducts 每张表中出现多次的产品代号，按表名分组
func DuplicateProducts(ws *model.NormalizedWorkbook) map[string][]string {
	out := make(map[string][]string)
	for _, kind := range model.SheetKinds {
		sheet := ws.Sheet(kind)
		if sheet == nil {
			continue
		}
		count := make(map[string]int, len(sheet.Rows))
		for _, r := range sheet.Rows {
			count[r.ProductID]++
			if count[r.ProductID] == 2 {
				out[sheet.Name] = append(out[sheet.Name], r.ProductID)
			}
		}
	}
	return out
}
