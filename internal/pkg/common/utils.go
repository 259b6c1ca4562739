package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// RequestID 取得請求 ID，沒有時生成一個並寫回響應標頭
func RequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.Writer.Header().Get("X-Request-ID")
	}
	if requestID == "" {
		requestID = GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// WriteError 以統一格式寫入錯誤響應
func WriteError(c *gin.Context, err error) {
	ce := AsCustomError(err)

	fields := []zap.Field{
		zap.String("code", ce.Code),
		zap.Int("status", ce.Status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", RequestID(c)),
	}
	if ce.Err != nil {
		fields = append(fields, zap.Error(ce.Err))
	}
	if ce.Status >= 500 {
		LogError(ce.Message, fields...)
	} else {
		LogWarn(ce.Message, fields...)
	}

	_ = c.Error(ce)
	c.AbortWithStatusJSON(ce.Status, ErrorResponse{
		Error: ce.Error(),
		Code:  ce.Code,
	})
}
