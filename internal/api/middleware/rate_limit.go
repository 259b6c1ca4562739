package middleware

import (
	"fmt"
	"net/http"
	"time"

	"photo-editor/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter 全域令牌桶，window 內最多 requests 次，允許一次用完
type RateLimiter struct {
	limiter *rate.Limiter
	now     func() time.Time
}

// NewRateLimiter 創建新的限流器
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	every := rate.Every(window / time.Duration(max(requests, 1)))
	return &RateLimiter{
		limiter: rate.NewLimiter(every, max(requests, 1)),
		now:     time.Now,
	}
}

// Allow 檢查是否允許請求
func (rl *RateLimiter) Allow() bool {
	return rl.limiter.AllowN(rl.now(), 1)
}

// RateLimit 限流中間件
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return rateLimitWith(NewRateLimiter(requests, window), window)
}

func rateLimitWith(limiter *RateLimiter, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrorResponse{
				Error: common.ErrTooManyRequests.Message,
				Code:  common.ErrCodeTooManyRequests,
			})
			return
		}

		c.Next()
	}
}
