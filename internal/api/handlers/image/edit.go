package image

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	photo "photo-editor/internal/core/image"
	"photo-editor/internal/pkg/common"
)

// HandleEdit 處理 POST /edit
//
// 請求：{"filename": "...", "adjustments": {"exposure": 1.2, ...}}
// 結果存為 edited_<filename>。
func (h *Handler) HandleEdit(c *gin.Context) {
	requestID := common.RequestID(c)

	var req common.EditRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Filename == "" {
		common.WriteError(c, common.ErrMissingFilename)
		return
	}

	adj, err := photo.ParseAdjustments(req.Adjustments)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	common.LogInfo("開始處理圖片調整請求",
		zap.String("request_id", requestID),
		zap.String("filename", req.Filename),
		zap.String("adjustments", adj.String()),
	)

	edited, err := h.service.Adjust(req.Filename, adj)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.EditResponse{EditedFilename: edited})
}
