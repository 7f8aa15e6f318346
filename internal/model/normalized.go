package model

// NormalizedRow 规范化后的一行：产品 + 周别到原始单元格的映射
type NormalizedRow struct {
	ProductID   string            `json:"productId"`
	ProductName string            `json:"productName"`
	Cells       map[string]string `json:"cells"` // key: WeekLabel.Label
}

// NormalizedSheet 只保留 [产品代号, 产品名称, 排序后的周别] 的工作表
type NormalizedSheet struct {
	Name  string          `json:"name"`
	Kind  SheetKind       `json:"kind"`
	Weeks []WeekLabel     `json:"weeks"`
	Rows  []NormalizedRow `json:"rows"`
}

// Columns 规范化后的列顺序
func (s *NormalizedSheet) Columns(idColumn, nameColumn string) []string {
	cols := make([]string, 0, len(s.Weeks)+2)
	cols = append(cols, idColumn, nameColumn)
	return append(cols, Labels(s.Weeks)...)
}

// NormalizedWorkbook 三张规范化工作表与共享的周别顺序
type NormalizedWorkbook struct {
	Quantity   *NormalizedSheet `json:"quantity"`
	Cumulative *NormalizedSheet `json:"cumulative"`
	Growth     *NormalizedSheet `json:"growth"`
	Weeks      []WeekLabel      `json:"weeks"`
}

// Sheet 按角色取表
func (w *NormalizedWorkbook) Sheet(kind SheetKind) *NormalizedSheet {
	if w == nil {
		return nil
	}
	switch kind {
	case SheetKindQuantity:
		return w.Quantity
	case SheetKindCumulative:
		return w.Cumulative
	case SheetKindGrowth:
		return w.Growth
	}
	return nil
}
