package excel

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"moonsales/internal/analysis"
	"moonsales/internal/model"
)

// SheetInfo 工作表概况
type SheetInfo struct {
	Name        string `json:"name"`
	RowCount    int    `json:"rowCount"`
	ColumnCount int    `json:"columnCount"`
}

// Reader Excel 读取器
type Reader struct {
	file       *excelize.File
	fileID     string
	recognizer *Recognizer
}

// NewReader 创建读取器
func NewReader(names SheetNames) *Reader {
	return &Reader{
		fileID:     uuid.New().String(),
		recognizer: NewRecognizer(names),
	}
}

// LoadFile 加载 Excel 文件
func (p *Reader) LoadFile(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	p.file = file
	return nil
}

// GetFileID 获取文件ID
func (p *Reader) GetFileID() string {
	return p.fileID
}

// Close 释放工作簿
func (p *Reader) Close() error {
	if p.file == nil {
		return nil
	}
	return p.file.Close()
}

// GetSheets 获取工作表列表
func (p *Reader) GetSheets() ([]SheetInfo, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := p.file.GetSheetList()
	result := make([]SheetInfo, 0, len(sheets))
	for _, name := range sheets {
		rows, err := p.file.GetRows(name)
		if err != nil {
			continue
		}
		cols := 0
		if len(rows) > 0 {
			cols = len(rows[0])
		}
		result = append(result, SheetInfo{Name: name, RowCount: len(rows), ColumnCount: cols})
	}
	return result, nil
}

// ReadWorkbook 读取三张工作表；缺表时返回 MissingSheet
func (p *Reader) ReadWorkbook() (*model.RawWorkbook, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	resolved := p.recognizer.Resolve(p.file.GetSheetList())
	wb := &model.RawWorkbook{}
	for _, kind := range model.SheetKinds {
		name, ok := resolved[kind]
		if !ok {
			return nil, analysis.NewMissingSheet(p.recognizer.names.Name(kind))
		}
		sheet, err := p.readSheet(name, kind)
		if err != nil {
			return nil, err
		}
		wb.SetSheet(kind, sheet)
	}
	return wb, nil
}

func (p *Reader) readSheet(name string, kind model.SheetKind) (*model.RawSheet, error) {
	// 读取原始值，避免百分比 / 千分位格式影响数值解析
	rows, err := p.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}

	sheet := &model.RawSheet{Name: name, Kind: kind, Header: []string{}, Rows: [][]string{}}
	if len(rows) == 0 {
		return sheet, nil
	}
	sheet.Header = rows[0]
	sheet.Rows = rows[1:]
	return sheet, nil
}

// ReadWorkbook 便捷函数：从 reader 读取三张原始工作表
func ReadWorkbook(r io.Reader, names SheetNames) (*model.RawWorkbook, error) {
	p := NewReader(names)
	if err := p.LoadFile(r); err != nil {
		return nil, err
	}
	defer p.Close()
	return p.ReadWorkbook()
}
