package server

import (
	"embed"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"moonsales/internal/api"
	"moonsales/internal/config"
	"moonsales/internal/logger"
	"moonsales/internal/service/excel"
	"moonsales/internal/service/session"
	"moonsales/internal/store"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	store    *store.Store
	sessions *session.Store
	api      *api.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) (*Server, error) {
	devMode := cfg.Server.DevMode
	if !devMode && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 上传审计日志（仅元数据）
	var auditStore *store.Store
	if cfg.Data.AuditLog {
		dataDir, err := config.EnsureDataDir(cfg)
		if err != nil {
			return nil, err
		}
		auditStore, err = store.New(filepath.Join(dataDir, "moonsales.db"))
		if err != nil {
			return nil, err
		}
	}

	sessions := session.NewStore(cfg.SessionTTL())
	handler := api.NewHandler(api.Options{
		Schema: cfg.Schema(),
		SheetNames: excel.SheetNames{
			Quantity:   cfg.Workbook.QuantitySheet,
			Cumulative: cfg.Workbook.CumulativeSheet,
			Growth:     cfg.Workbook.GrowthSheet,
		},
		FontFamily:     cfg.Excel.FontFamily,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	}, sessions, auditStore)

	router := gin.New()
	// 产品代号可能含 "/"，前端以 %2F 编码，按原始路径匹配后再解码参数
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.Use(gin.Recovery())
	if gin.Mode() != gin.TestMode {
		router.Use(gin.Logger())
	}

	s := &Server{
		router:   router,
		store:    auditStore,
		sessions: sessions,
		api:      handler,
	}

	s.setupRoutes(devMode)

	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	// 静态资源
	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	sub, _ := fs.Sub(staticFiles, "dist")

	assetsSub, _ := fs.Sub(sub, "assets")
	s.router.StaticFS("/assets", http.FS(assetsSub))

	s.router.GET("/favicon.svg", func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "favicon.svg")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", data)
	})

	index := func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
	s.router.GET("/", index)
	s.router.NoRoute(index)
}

// Handler 返回 http.Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放会话数据并关闭审计库
func (s *Server) Close() error {
	s.sessions.Clear()
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		logger.Error("close audit store: %v", err)
		return err
	}
	return nil
}

// GetStore 获取审计存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
