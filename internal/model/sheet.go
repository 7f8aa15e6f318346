package model

// SheetKind 工作表角色（三张固定工作表）
type SheetKind string

const (
	SheetKindQuantity   SheetKind = "quantity"   // 每週銷售數量
	SheetKindCumulative SheetKind = "cumulative" // 累計每週銷售數量
	SheetKindGrowth     SheetKind = "growth"     // 每週銷售成長率
)

// SheetKinds 固定顺序：单周数量（基准表）、累计数量、成长率
var SheetKinds = []SheetKind{SheetKindQuantity, SheetKindCumulative, SheetKindGrowth}

// RawSheet 原始宽表：首行表头，其余为数据行（单元格原始值）
type RawSheet struct {
	Name   string     `json:"name"`
	Kind   SheetKind  `json:"kind"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// RawWorkbook 一次上传得到的三张原始工作表
type RawWorkbook struct {
	Quantity   *RawSheet `json:"quantity"`
	Cumulative *RawSheet `json:"cumulative"`
	Growth     *RawSheet `json:"growth"`
}

// Sheet 按角色取表
func (w *RawWorkbook) Sheet(kind SheetKind) *RawSheet {
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

// SetSheet 按角色设置
func (w *RawWorkbook) SetSheet(kind SheetKind, sheet *RawSheet) {
	switch kind {
	case SheetKindQuantity:
		w.Quantity = sheet
	case SheetKindCumulative:
		w.Cumulative = sheet
	case SheetKindGrowth:
		w.Growth = sheet
	}
}
