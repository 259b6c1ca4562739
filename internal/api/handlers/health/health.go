package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"photo-editor/internal/infrastructure/config"
	"photo-editor/internal/pkg/common"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Storage   *StorageStatus         `json:"storage,omitempty"`
}

// StorageStatus 上傳目錄狀態
type StorageStatus struct {
	UploadDir         string   `json:"upload_dir"`
	AllowedExtensions []string `json:"allowed_extensions"`
	MaxUploadBytes    int64    `json:"max_upload_bytes"`
}

// Probe 就緒檢查，回傳錯誤表示尚未就緒
type Probe func() error

// HealthCheck 健康檢查處理器
func HealthCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 獲取運行時信息
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		response := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
			Version:   cfg.App.Version,
			Runtime: map[string]interface{}{
				"goroutines": runtime.NumGoroutine(),
				"memory": map[string]interface{}{
					"alloc":       m.Alloc,
					"total_alloc": m.TotalAlloc,
					"sys":         m.Sys,
					"num_gc":      m.NumGC,
				},
			},
			Storage: &StorageStatus{
				UploadDir:         cfg.Storage.UploadDir,
				AllowedExtensions: cfg.Storage.AllowedExtensions,
				MaxUploadBytes:    cfg.Storage.MaxUploadBytes,
			},
		}

		common.LogDebug("Health check request",
			zap.String("client_ip", c.ClientIP()),
			zap.String("path", c.Request.URL.Path),
		)

		c.JSON(http.StatusOK, response)
	}
}

// ReadinessCheck 就緒檢查處理器，所有 probe 都通過才回傳 ready
func ReadinessCheck(probes ...Probe) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, probe := range probes {
			if err := probe(); err != nil {
				common.LogWarn("Readiness probe failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
					Error: err.Error(),
					Code:  common.ErrServiceUnavailable.Code,
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
		})
	}
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
