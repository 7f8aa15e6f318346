package analysis

import (
	"fmt"

	"moonsales/internal/model"
)

// ProductOptions 以基准表行序列出可选产品，显示为 "<id> - <name>"
func ProductOptions(ws *model.NormalizedWorkbook) []model.ProductOption {
	sheet := ws.Sheet(model.SheetKindQuantity)
	if sheet == nil {
		return []model.ProductOption{}
	}

	seen := make(map[string]struct{}, len(sheet.Rows))
	out := make([]model.ProductOption, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}
		out = append(out, model.ProductOption{
			ID:    r.ProductID,
			Name:  r.ProductName,
			Label: fmt.Sprintf("%s - %s", r.ProductID, r.ProductName),
		})
	}
	return out
}

// ProductName 查询产品名称
func ProductName(ws *model.NormalizedWorkbook, productID string) (string, bool) {
	sheet := ws.Sheet(model.SheetKindQuantity)
	if sheet == nil {
		return "", false
	}
	if row := findProduct(sheet, productID); row != nil {
		return row.ProductName, true
	}
	return "", false
}
