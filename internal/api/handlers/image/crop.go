package image

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	photo "photo-editor/internal/core/image"
	"photo-editor/internal/pkg/common"
)

// HandleCrop 處理 POST /crop
//
// 請求：{"filename": "...", "crop": {"x": 0, "y": 0, "width": 100, "height": 100}}
// 結果存為 cropped_<filename>。
func (h *Handler) HandleCrop(c *gin.Context) {
	requestID := common.RequestID(c)

	var req common.CropRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Filename == "" || req.Crop == nil {
		common.WriteError(c, common.ErrMissingCropData)
		return
	}

	rect, err := photo.ParseRect(req.Crop)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	common.LogInfo("開始處理圖片裁切請求",
		zap.String("request_id", requestID),
		zap.String("filename", req.Filename),
		zap.Any("crop", rect),
	)

	cropped, clamped, err := h.service.Crop(req.Filename, rect)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.CropResponse{
		Filename: cropped,
		Width:    clamped.Width,
		Height:   clamped.Height,
	})
}
