package excel_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"moonsales/internal/analysis"
	"moonsales/internal/model"
	"moonsales/internal/service/excel"
)

var defaultNames = excel.SheetNames{
	Quantity:   "每週銷售數量",
	Cumulative: "累計每週銷售數量",
	Growth:     "每週銷售成長率",
}

type sheetSpec struct {
	name string
	rows [][]interface{}
}

func festivalSheets() []sheetSpec {
	header := []interface{}{"產品代號", "產品名稱", "9/1–9/7", "9/15–9/21", "9/8–9/14"}
	return []sheetSpec{
		{name: "每週銷售數量", rows: [][]interface{}{
			header,
			{"P001", "蛋黃酥", 10, 15, 20},
			{"P002", "綠豆椪", 5, 7, 6},
		}},
		{name: "累計每週銷售數量", rows: [][]interface{}{
			header,
			{"P001", "蛋黃酥", 10, 45, 30},
			{"P002", "綠豆椪", 5, 18, 11},
		}},
		{name: "每週銷售成長率", rows: [][]interface{}{
			header,
			{"P001", "蛋黃酥", 0, -25, 100},
			{"P002", "綠豆椪", 0, 16.67, 20},
		}},
	}
}

func buildWorkbook(t *testing.T, sheets []sheetSpec) *bytes.Buffer {
	t.Helper()

	wb := excelize.NewFile()
	defaultSheet := wb.GetSheetName(wb.GetActiveSheetIndex())

	for _, s := range sheets {
		if _, err := wb.NewSheet(s.name); err != nil {
			t.Fatalf("NewSheet %s: %v", s.name, err)
		}
		for i, row := range s.rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			r := row
			if err := wb.SetSheetRow(s.name, cell, &r); err != nil {
				t.Fatalf("SetSheetRow %s failed: %v", s.name, err)
			}
		}
	}
	if defaultSheet != "" {
		_ = wb.DeleteSheet(defaultSheet)
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf
}

func TestReadWorkbook(t *testing.T) {
	raw, err := excel.ReadWorkbook(buildWorkbook(t, festivalSheets()), defaultNames)
	if err != nil {
		t.Fatalf("ReadWorkbook: %v", err)
	}

	if raw.Quantity.Name != "每週銷售數量" || raw.Quantity.Kind != model.SheetKindQuantity {
		t.Fatalf("quantity sheet=%+v", raw.Quantity)
	}
	if raw.Cumulative.Name != "累計每週銷售數量" {
		t.Fatalf("cumulative sheet=%q", raw.Cumulative.Name)
	}
	if got := raw.Growth.Rows[1][3]; got != "16.67" {
		t.Fatalf("growth raw cell=%q want 16.67", got)
	}

	ws, err := analysis.Normalize(raw, analysis.DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	table, err := analysis.MergeProduct(ws, "P001", ws.Weeks)
	if err != nil {
		t.Fatalf("MergeProduct: %v", err)
	}
	if r := table.Rows[2]; r.Week != "9/15–9/21" || r.WeeklyQuantity != 15 || r.CumulativeQuantity != 45 || r.GrowthRatePercent != -25 {
		t.Fatalf("last row=%+v", r)
	}
}

func TestReadWorkbook_MissingSheet(t *testing.T) {
	sheets := festivalSheets()[:2]

	_, err := excel.ReadWorkbook(buildWorkbook(t, sheets), defaultNames)
	if !errors.Is(err, analysis.ErrMissingSheet) {
		t.Fatalf("want ErrMissingSheet, got %v", err)
	}
	var pe *analysis.Error
	if !errors.As(err, &pe) || pe.Sheet != "每週銷售成長率" {
		t.Fatalf("error should name the missing sheet, got %v", err)
	}
}

func TestReadWorkbook_NotExcel(t *testing.T) {
	_, err := excel.ReadWorkbook(bytes.NewBufferString("not a workbook"), defaultNames)
	if err == nil {
		t.Fatalf("expected error")
	}
	if analysis.KindOf(err) != "" {
		t.Fatalf("open failure is not a pipeline error, got kind %q", analysis.KindOf(err))
	}
}

func TestReader_GetSheets(t *testing.T) {
	r := excel.NewReader(defaultNames)
	if err := r.LoadFile(buildWorkbook(t, festivalSheets())); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	defer r.Close()

	sheets, err := r.GetSheets()
	if err != nil {
		t.Fatalf("GetSheets: %v", err)
	}
	if len(sheets) != 3 {
		t.Fatalf("sheets=%d want 3", len(sheets))
	}
	if sheets[0].RowCount != 3 || sheets[0].ColumnCount != 5 {
		t.Fatalf("sheet info=%+v", sheets[0])
	}
	if r.GetFileID() == "" {
		t.Fatalf("file id should be set")
	}
}

func TestRecognizer_Resolve(t *testing.T) {
	rec := excel.NewRecognizer(defaultNames)

	got := rec.Resolve([]string{"累計每週銷售數量 (中秋)", "說明", " 每週銷售數量(中秋)", "每週銷售成長率"})
	if got[model.SheetKindQuantity] != " 每週銷售數量(中秋)" {
		t.Fatalf("quantity=%q", got[model.SheetKindQuantity])
	}
	if got[model.SheetKindCumulative] != "累計每週銷售數量 (中秋)" {
		t.Fatalf("cumulative=%q", got[model.SheetKindCumulative])
	}
	if got[model.SheetKindGrowth] != "每週銷售成長率" {
		t.Fatalf("growth=%q", got[model.SheetKindGrowth])
	}

	exact := rec.Resolve([]string{"累計每週銷售數量", "每週銷售數量", "每週銷售成長率"})
	if exact[model.SheetKindQuantity] != "每週銷售數量" || exact[model.SheetKindCumulative] != "累計每週銷售數量" {
		t.Fatalf("exact=%v", exact)
	}
}

func TestRecognizer_ResolveSuffixedCumulativeOnly(t *testing.T) {
	rec := excel.NewRecognizer(defaultNames)

	got := rec.Resolve([]string{"累計每週銷售數量(2024)", "每週銷售成長率"})
	if name, ok := got[model.SheetKindQuantity]; ok {
		t.Fatalf("quantity should stay unresolved, got %q", name)
	}
	if got[model.SheetKindCumulative] != "累計每週銷售數量(2024)" {
		t.Fatalf("cumulative=%q", got[model.SheetKindCumulative])
	}
}

func TestReadWorkbook_MissingQuantityNamesQuantitySheet(t *testing.T) {
	sheets := festivalSheets()
	kept := sheets[:0]
	for _, s := range sheets {
		switch s.name {
		case defaultNames.Quantity:
			continue
		case defaultNames.Cumulative:
			s.name = defaultNames.Cumulative + "(2024)"
		}
		kept = append(kept, s)
	}

	_, err := excel.ReadWorkbook(buildWorkbook(t, kept), defaultNames)
	if !errors.Is(err, analysis.ErrMissingSheet) {
		t.Fatalf("expected ErrMissingSheet, got %v", err)
	}
	var pe *analysis.Error
	if !errors.As(err, &pe) || pe.Sheet != defaultNames.Quantity {
		t.Fatalf("missing sheet should name %q, got %v", defaultNames.Quantity, err)
	}
}
