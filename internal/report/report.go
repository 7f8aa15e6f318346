// Package report 批量生成产品分析报表（命令行使用）
package report

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/xuri/excelize/v2"

	"moonsales/internal/analysis"
	"moonsales/internal/model"
	"moonsales/internal/service/excel"
)

// Options 报表生成参数
type Options struct {
	Schema     analysis.Schema
	SheetNames excel.SheetNames
	FontFamily string
	ProductID  string    // 为空时导出全部产品
	Progress   io.Writer // 为 nil 时不显示进度条
}

// Result 报表生成结果
type Result struct {
	File     *excelize.File
	Tables   []*model.AnalysisTable
	Warnings []string
}

// Generate 读取工作簿，逐产品合并并写入同一份报表
func Generate(r io.Reader, opts Options) (*Result, error) {
	raw, err := excel.ReadWorkbook(r, opts.SheetNames)
	if err != nil {
		return nil, err
	}
	ws, err := analysis.Normalize(raw, opts.Schema)
	if err != nil {
		return nil, err
	}

	ids, err := productIDs(ws, opts.ProductID)
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(ids),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("分析產品"),
			progressbar.OptionShowCount(),
		)
	}

	res := &Result{Tables: make([]*model.AnalysisTable, 0, len(ids))}
	for _, id := range ids {
		table, err := analysis.MergeProduct(ws, id, ws.Weeks)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", id, err)
		}
		res.Tables = append(res.Tables, table)
		for _, week := range analysis.CheckCumulative(table) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: 累積銷售量於 %s 較前一週下降", id, week))
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	f, err := excel.NewExporter(opts.FontFamily).Export(res.Tables)
	if err != nil {
		return nil, err
	}
	res.File = f
	return res, nil
}

func productIDs(ws *model.NormalizedWorkbook, only string) ([]string, error) {
	if only != "" {
		if _, ok := analysis.ProductName(ws, only); !ok {
			return nil, analysis.NewProductNotFound(ws.Quantity.Name, only)
		}
		return []string{only}, nil
	}
	options := analysis.ProductOptions(ws)
	ids := make([]string, 0, len(options))
	for _, o := range options {
		ids = append(ids, o.ID)
	}
	return ids, nil
}
