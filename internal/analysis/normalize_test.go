package analysis

import (
	"errors"
	"reflect"
	"testing"

	"moonsales/internal/model"
)

func TestNormalize_SortedWeeksAndColumns(t *testing.T) {
	t.Parallel()

	ws, err := Normalize(festivalWorkbook(), DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	want := []string{"9/1–9/7", "9/8–9/14", "9/15–9/21"}
	if got := model.Labels(ws.Weeks); !reflect.DeepEqual(got, want) {
		t.Fatalf("weeks=%v want %v", got, want)
	}

	wantCols := append([]string{"產品代號", "產品名稱"}, want...)
	for _, kind := range model.SheetKinds {
		sheet := ws.Sheet(kind)
		if got := sheet.Columns("產品代號", "產品名稱"); !reflect.DeepEqual(got, wantCols) {
			t.Fatalf("%s columns=%v want %v", kind, got, wantCols)
		}
		if sheet.Kind != kind {
			t.Fatalf("%s kind=%s", sheet.Name, sheet.Kind)
		}
		if len(sheet.Rows) != 2 {
			t.Fatalf("%s rows=%d want 2", sheet.Name, len(sheet.Rows))
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	raw := festivalWorkbook()
	a, err := Normalize(raw, DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize #1: %v", err)
	}
	b, err := Normalize(raw, DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize #2: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("normalize is not idempotent")
	}
}

func TestNormalize_IgnoresUnknownColumns(t *testing.T) {
	t.Parallel()

	raw := festivalWorkbook()
	raw.Growth.Header = append(raw.Growth.Header, "備註")
	for i := range raw.Growth.Rows {
		raw.Growth.Rows[i] = append(raw.Growth.Rows[i], "x")
	}

	ws, err := Normalize(raw, DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if _, ok := ws.Growth.Rows[0].Cells["備註"]; ok {
		t.Fatalf("unknown column should be dropped")
	}
}

func TestNormalize_MissingWeekColumn(t *testing.T) {
	t.Parallel()

	raw := festivalWorkbook()
	raw.Growth = rawSheet("每週銷售成長率", model.SheetKindGrowth,
		[]string{"產品代號", "產品名稱", "9/1–9/7", "9/15–9/21"},
		[]string{"P001", "蛋黃酥", "0", "-25"},
	)

	_, err := Normalize(raw, DefaultSchema())
	if !errors.Is(err, ErrLookupFailure) {
		t.Fatalf("want ErrLookupFailure, got %v", err)
	}
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("want *Error, got %T", err)
	}
	if pe.Sheet != "每週銷售成長率" || pe.Column != "9/8–9/14" {
		t.Fatalf("unexpected error location: sheet=%q column=%q", pe.Sheet, pe.Column)
	}
}

func TestNormalize_MissingSheet(t *testing.T) {
	t.Parallel()

	raw := festivalWorkbook()
	raw.Cumulative = nil

	_, err := Normalize(raw, DefaultSchema())
	if !errors.Is(err, ErrMissingSheet) {
		t.Fatalf("want ErrMissingSheet, got %v", err)
	}
	if KindOf(err) != KindMissingSheet {
		t.Fatalf("kind=%q", KindOf(err))
	}
}

func TestNormalize_BadWeekHeader(t *testing.T) {
	t.Parallel()

	raw := festivalWorkbook()
	raw.Quantity.Header[2] = "9/x–9/7"

	_, err := Normalize(raw, DefaultSchema())
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("want ErrFormat, got %v", err)
	}
	var pe *Error
	if errors.As(err, &pe) && pe.Sheet != "每週銷售數量" {
		t.Fatalf("error should name the canonical sheet, got %q", pe.Sheet)
	}
}

func TestNormalize_ProductColumnsByPosition(t *testing.T) {
	t.Parallel()

	raw := festivalWorkbook()
	raw.Cumulative.Header = []string{"代號", "名稱", "9/1–9/7", "9/15–9/21", "9/8–9/14"}

	ws, err := Normalize(raw, DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := ws.Cumulative.Rows[1].ProductID; got != "P002" {
		t.Fatalf("product id=%q want P002", got)
	}
}

func TestNormalize_SkipsBlankRows(t *testing.T) {
	t.Parallel()

	raw := festivalWorkbook()
	raw.Quantity.Rows = append(raw.Quantity.Rows, []string{}, []string{"  ", "", "1"})

	ws, err := Normalize(raw, DefaultSchema())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(ws.Quantity.Rows) != 2 {
		t.Fatalf("rows=%d want 2", len(ws.Quantity.Rows))
	}
}
