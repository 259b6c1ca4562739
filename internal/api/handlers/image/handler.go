package image

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	photo "photo-editor/internal/core/image"
	"photo-editor/internal/infrastructure/storage"
	"photo-editor/internal/pkg/common"
)

// Handler 圖片相關 API 的處理程序
type Handler struct {
	service *photo.Service
	store   *storage.Store
}

// NewHandler 創建新的圖片處理程序
func NewHandler(service *photo.Service, store *storage.Store) *Handler {
	return &Handler{
		service: service,
		store:   store,
	}
}

// bindJSON 解析請求體，失敗時寫入錯誤響應並回傳 false
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := common.DecodeJSON(c.Request.Body, v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			common.WriteError(c, common.ErrRequestTooLarge.WithErr(err))
			return false
		}
		common.WriteError(c, common.ErrInvalidRequest.WithErr(err))
		return false
	}
	return true
}
