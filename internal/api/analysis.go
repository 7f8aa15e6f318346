package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"moonsales/internal/analysis"
	"moonsales/internal/model"
)

// AnalysisResponse 单个产品的分析结果
type AnalysisResponse struct {
	Product  model.ProductOption `json:"product"`
	Columns  []string            `json:"columns"`
	Rows     []model.AnalysisRow `json:"rows"`
	Charts   []model.Chart       `json:"charts"`
	Warnings []string            `json:"warnings"`
}

// GetAnalysis 产品逐周分析表 + 图表描述
// GET /api/datasets/:id/products/:pid/analysis
func (h *Handler) GetAnalysis(c *gin.Context) {
	table, err := h.mergeForRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}

	warnings := []string{}
	for _, week := range analysis.CheckCumulative(table) {
		warnings = append(warnings, fmt.Sprintf("累積銷售量於 %s 較前一週下降", week))
	}

	c.JSON(http.StatusOK, AnalysisResponse{
		Product: model.ProductOption{
			ID:    table.ProductID,
			Name:  table.ProductName,
			Label: fmt.Sprintf("%s - %s", table.ProductID, table.ProductName),
		},
		Columns:  analysis.AnalysisColumns,
		Rows:     table.Rows,
		Charts:   analysis.Charts(table),
		Warnings: warnings,
	})
}

// ExportAnalysis 导出产品分析报表（含图表）
// GET /api/datasets/:id/products/:pid/export
func (h *Handler) ExportAnalysis(c *gin.Context) {
	table, err := h.mergeForRequest(c)
	if err != nil {
		writeError(c, err)
		return
	}

	f, err := h.exporter.Export([]*model.AnalysisTable{table})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "匯出失敗", Detail: err.Error()})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", buildExportContentDisposition(table.ProductID, table.ProductName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// mergeForRequest 每次请求都重新合并，不缓存分析结果
func (h *Handler) mergeForRequest(c *gin.Context) (*model.AnalysisTable, error) {
	ds, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return nil, err
	}
	return analysis.MergeProduct(ds.Workbook, c.Param("pid"), ds.Workbook.Weeks)
}

func buildExportContentDisposition(productID, productName string) string {
	ascii := fmt.Sprintf("sales-analysis-%s.xlsx", url.PathEscape(productID))
	utf8Name := fmt.Sprintf("%s %s 銷售分析.xlsx", productID, productName)
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", ascii, url.PathEscape(utf8Name))
}
