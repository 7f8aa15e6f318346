package analysis

import "moonsales/internal/model"

func rawSheet(name string, kind model.SheetKind, header []string, rows ...[]string) *model.RawSheet {
	return &model.RawSheet{Name: name, Kind: kind, Header: append([]string(nil), header...), Rows: rows}
}

// festivalWorkbook 三周数据，周别列按非时间顺序排列
func festivalWorkbook() *model.RawWorkbook {
	header := []string{"產品代號", "產品名稱", "9/1–9/7", "9/15–9/21", "9/8–9/14"}
	return &model.RawWorkbook{
		Quantity: rawSheet("每週銷售數量", model.SheetKindQuantity, header,
			[]string{"P001", "蛋黃酥", "10", "15", "20"},
			[]string{"P002", "綠豆椪", "5", "7", "6"},
		),
		Cumulative: rawSheet("累計每週銷售數量", model.SheetKindCumulative, header,
			[]string{"P001", "蛋黃酥", "10", "45", "30"},
			[]string{"P002", "綠豆椪", "5", "18", "11"},
		),
		Growth: rawSheet("每週銷售成長率", model.SheetKindGrowth, header,
			[]string{"P001", "蛋黃酥", "0", "-25", "100"},
			[]string{"P002", "綠豆椪", "0", "16.67", "20"},
		),
	}
}
