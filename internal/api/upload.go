package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"moonsales/internal/analysis"
	"moonsales/internal/logger"
	"moonsales/internal/model"
	"moonsales/internal/service/excel"
	"moonsales/internal/service/session"
)

// UploadResponse 上传结果
type UploadResponse struct {
	Dataset  *session.Dataset      `json:"dataset"`
	Weeks    []string              `json:"weeks"`
	Products []model.ProductOption `json:"products"`
	Warnings []string              `json:"warnings"`
}

// Upload 上传含三张工作表的 Excel，完成规范化后保存为数据集
// POST /api/datasets  (multipart: file, replace)
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "未找到上傳檔案", Detail: err.Error()})
		return
	}
	if fileHeader.Size > h.opts.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "檔案過大"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "僅支援 .xlsx 檔案"})
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "讀取上傳檔案失敗", Detail: err.Error()})
		return
	}

	logID := h.beginAudit(fileHeader.Filename, data)

	raw, ws, err := h.runPipeline(data)
	if err != nil {
		logger.Warn("upload %s rejected: %v", fileHeader.Filename, err)
		h.failAudit(logID, err)
		writeError(c, err)
		return
	}

	ds := h.sessions.Replace(c.PostForm("replace"), fileHeader.Filename, ws)
	products := analysis.ProductOptions(ws)
	h.completeAudit(logID, ds.ID, raw, ws, len(products))

	logger.Info("dataset %s loaded from %s: %d weeks, %d products", ds.ID, fileHeader.Filename, len(ws.Weeks), len(products))

	c.JSON(http.StatusOK, UploadResponse{
		Dataset:  ds,
		Weeks:    model.Labels(ws.Weeks),
		Products: products,
		Warnings: duplicateWarnings(ws),
	})
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// runPipeline 读取工作簿并规范化
func (h *Handler) runPipeline(data []byte) (*model.RawWorkbook, *model.NormalizedWorkbook, error) {
	raw, err := excel.ReadWorkbook(bytes.NewReader(data), h.opts.SheetNames)
	if err != nil {
		return nil, nil, err
	}
	ws, err := analysis.Normalize(raw, h.opts.Schema)
	if err != nil {
		return nil, nil, err
	}
	return raw, ws, nil
}

func duplicateWarnings(ws *model.NormalizedWorkbook) []string {
	out := []string{}
	dups := analysis.DuplicateProducts(ws)
	for _, kind := range model.SheetKinds {
		sheet := ws.Sheet(kind)
		for _, id := range dups[sheet.Name] {
			out = append(out, fmt.Sprintf("工作表「%s」中產品代號 %s 重複，分析時採用第一筆", sheet.Name, id))
		}
	}
	return out
}

func (h *Handler) beginAudit(filename string, data []byte) int64 {
	if h.audit == nil {
		return 0
	}
	sum := sha256.Sum256(data)
	id, err := h.audit.CreateImportLog(filename, int64(len(data)), hex.EncodeToString(sum[:]))
	if err != nil {
		logger.Error("audit log: %v", err)
		return 0
	}
	return id
}

func (h *Handler) failAudit(logID int64, cause error) {
	if h.audit == nil || logID == 0 {
		return
	}
	if err := h.audit.FailImportLog(logID, string(analysis.KindOf(cause)), cause.Error()); err != nil {
		logger.Error("audit log: %v", err)
	}
}

func (h *Handler) completeAudit(logID int64, datasetID string, raw *model.RawWorkbook, ws *model.NormalizedWorkbook, products int) {
	if h.audit == nil || logID == 0 {
		return
	}
	for _, kind := range model.SheetKinds {
		sheet := raw.Sheet(kind)
		if err := h.audit.InsertSheetMeta(model.SheetMeta{
			ImportLogID:  logID,
			SheetName:    sheet.Name,
			SheetKind:    string(kind),
			TotalRows:    len(sheet.Rows),
			TotalColumns: len(sheet.Header),
			WeekColumns:  len(ws.Weeks),
		}); err != nil {
			logger.Error("audit log: %v", err)
		}
	}
	if err := h.audit.CompleteImportLog(logID, products, len(ws.Weeks)); err != nil {
		logger.Error("audit log: %v", err)
	}
	h.sessions.SetImportLog(datasetID, logID)
}
