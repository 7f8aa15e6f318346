package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moonsales/internal/analysis"
)

const emptyPrompt = "請先上傳檔案後再開始分析。"

// StatusResponse 系统状态响应
type StatusResponse struct {
	Ready    bool   `json:"ready"`
	Prompt   string `json:"prompt,omitempty"`
	Dataset  string `json:"dataset,omitempty"`
	Filename string `json:"filename,omitempty"`
	Weeks    int    `json:"weeks"`
	Products int    `json:"products"`
	Datasets int    `json:"datasets"`
}

// GetStatus 获取系统状态
// GET /api/status?dataset=<id>
func (h *Handler) GetStatus(c *gin.Context) {
	id := c.Query("dataset")
	if id == "" {
		c.JSON(http.StatusOK, StatusResponse{Prompt: emptyPrompt, Datasets: h.sessions.Count()})
		return
	}

	ds, err := h.sessions.Get(id)
	if err != nil {
		// 过期或未知的数据集回到空状态
		c.JSON(http.StatusOK, StatusResponse{Prompt: emptyPrompt, Datasets: h.sessions.Count()})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Ready:    true,
		Dataset:  ds.ID,
		Filename: ds.Filename,
		Weeks:    len(ds.Workbook.Weeks),
		Products: len(analysis.ProductOptions(ds.Workbook)),
		Datasets: h.sessions.Count(),
	})
}
