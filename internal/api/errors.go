package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moonsales/internal/analysis"
	"moonsales/internal/service/session"
)

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Detail string `json:"detail,omitempty"`
}

var kindMessages = map[analysis.ErrorKind]string{
	analysis.KindMissingSheet:    "缺少必要的工作表",
	analysis.KindLookupFailure:   "工作表欄位無法對應",
	analysis.KindProductNotFound: "找不到所選產品",
	analysis.KindFormat:          "資料格式錯誤",
}

// writeError 将流水线错误映射为 HTTP 响应
func writeError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrDatasetNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "資料集不存在或已過期，請重新上傳", Detail: err.Error()})
		return
	}

	kind := analysis.KindOf(err)
	msg, ok := kindMessages[kind]
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "處理失敗", Detail: err.Error()})
		return
	}

	status := http.StatusUnprocessableEntity
	if kind == analysis.KindProductNotFound {
		status = http.StatusNotFound
	}
	c.JSON(status, ErrorResponse{Error: msg, Kind: string(kind), Detail: err.Error()})
}
