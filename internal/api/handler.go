package api

import (
	"github.com/gin-gonic/gin"

	"moonsales/internal/analysis"
	"moonsales/internal/service/excel"
	"moonsales/internal/service/session"
	"moonsales/internal/store"
)

// Options Handler 依赖的配置项
type Options struct {
	Schema         analysis.Schema
	SheetNames     excel.SheetNames
	FontFamily     string
	MaxUploadBytes int64
}

// Handler API 处理器
type Handler struct {
	opts     Options
	sessions *session.Store
	audit    *store.Store // 可为 nil：不记录审计日志
	exporter *excel.Exporter
}

// NewHandler 创建 API 处理器
func NewHandler(opts Options, sessions *session.Store, audit *store.Store) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	return &Handler{
		opts:     opts,
		sessions: sessions,
		audit:    audit,
		exporter: excel.NewExporter(opts.FontFamily),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态（未上传时为空状态提示）
	router.GET("/status", h.GetStatus)

	// 上传与数据集
	router.POST("/datasets", h.Upload)
	router.GET("/datasets/:id", h.GetDataset)
	router.DELETE("/datasets/:id", h.DeleteDataset)

	// 产品与分析
	router.GET("/datasets/:id/products", h.ListProducts)
	router.GET("/datasets/:id/products/:pid/analysis", h.GetAnalysis)
	router.GET("/datasets/:id/products/:pid/export", h.ExportAnalysis)

	// 上传审计
	router.GET("/imports", h.ListImports)
}
