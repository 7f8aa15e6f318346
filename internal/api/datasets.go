package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moonsales/internal/analysis"
	"moonsales/internal/model"
)

// DatasetResponse 数据集概况
type DatasetResponse struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Weeks    []string `json:"weeks"`
	Products int      `json:"products"`
}

// GetDataset 数据集概况
// GET /api/datasets/:id
func (h *Handler) GetDataset(c *gin.Context) {
	ds, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, DatasetResponse{
		ID:       ds.ID,
		Filename: ds.Filename,
		Weeks:    model.Labels(ds.Workbook.Weeks),
		Products: len(analysis.ProductOptions(ds.Workbook)),
	})
}

// DeleteDataset 释放数据集
// DELETE /api/datasets/:id
func (h *Handler) DeleteDataset(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "資料集不存在或已過期，請重新上傳"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListProducts 产品选项
// GET /api/datasets/:id/products
func (h *Handler) ListProducts(c *gin.Context) {
	ds, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": analysis.ProductOptions(ds.Workbook)})
}

// ListImports 最近的上传记录
// GET /api/imports?limit=20
func (h *Handler) ListImports(c *gin.Context) {
	if h.audit == nil {
		c.JSON(http.StatusOK, gin.H{"items": []model.ImportLog{}})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	logs, err := h.audit.ListImportLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "查詢上傳記錄失敗", Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}
