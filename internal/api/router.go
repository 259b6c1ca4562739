package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"photo-editor/internal/api/handlers/health"
	imageHandler "photo-editor/internal/api/handlers/image"
	"photo-editor/internal/api/middleware"
	imageService "photo-editor/internal/core/image"
	"photo-editor/internal/infrastructure/config"
	"photo-editor/internal/infrastructure/storage"
	"photo-editor/internal/pkg/common"
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store *storage.Store, svc *imageService.Service) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORS.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        cfg.CORS.MaxAge,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Storage.MaxUploadBytes))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	if cfg.DedupWindow > 0 {
		router.Use(middleware.Deduplication(cfg.DedupWindow))
	}

	// 健康檢查路由
	router.GET("/health", health.HealthCheck(cfg))
	router.GET("/ready", health.ReadinessCheck(store.CheckWritable))
	router.GET("/live", health.LivenessCheck)

	// 圖片路由
	h := imageHandler.NewHandler(svc, store)
	router.POST("/upload", h.HandleUpload)
	router.POST("/edit", h.HandleEdit)
	router.POST("/crop", h.HandleCrop)
	router.GET("/uploads/:filename", h.HandleGetFile)
	router.HEAD("/uploads/:filename", h.HandleGetFile)

	router.NoMethod(func(c *gin.Context) {
		common.WriteError(c, common.ErrMethodNotAllowed)
	})

	notFound := func(c *gin.Context) {
		common.WriteError(c, common.ErrNotFound)
	}

	if cfg.Server.StaticDir != "" {
		router.NoRoute(staticHandler(cfg.Server.StaticDir, notFound))
	} else {
		router.NoRoute(notFound)
	}

	common.LogInfo("Router setup completed successfully",
		zap.String("upload_dir", store.Dir()),
		zap.String("static_dir", cfg.Server.StaticDir),
		zap.Int64("max_body_size", cfg.Storage.MaxUploadBytes),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("dedup_window", cfg.DedupWindow),
	)

	return router, nil
}

// staticHandler 以唯讀方式提供前端靜態檔案，只回應 GET 與 HEAD
func staticHandler(dir string, fallback gin.HandlerFunc) gin.HandlerFunc {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	fs := afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), abs))
	fileServer := http.FileServer(afero.NewHttpFs(fs))

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			fallback(c)
			return
		}
		c.Header("Cache-Control", "public, max-age=3600")
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}
