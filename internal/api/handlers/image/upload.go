package image

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"photo-editor/internal/pkg/common"
)

// HandleUpload 處理 POST /upload
//
// multipart 欄位 file 的內容原封不動地存入上傳目錄，回傳清理後的檔名。
func (h *Handler) HandleUpload(c *gin.Context) {
	requestID := common.RequestID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		// 檔名為空的 part 會被當成一般表單欄位
		if errors.Is(err, http.ErrMissingFile) && c.Request.MultipartForm != nil {
			if _, ok := c.Request.MultipartForm.Value["file"]; ok {
				common.WriteError(c, common.ErrNoSelectedFile)
				return
			}
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			common.WriteError(c, common.ErrRequestTooLarge.WithErr(err))
			return
		}
		common.WriteError(c, common.ErrMissingFilePart)
		return
	}

	if fileHeader.Filename == "" {
		common.WriteError(c, common.ErrNoSelectedFile)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		common.WriteError(c, common.ErrInvalidRequest.WithErr(err))
		return
	}
	defer f.Close()

	name, err := h.store.Save(fileHeader.Filename, f)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	common.LogInfo("圖片已上傳",
		zap.String("request_id", requestID),
		zap.String("original_filename", fileHeader.Filename),
		zap.String("filename", name),
		zap.Int64("size", fileHeader.Size),
	)

	c.JSON(http.StatusOK, common.UploadResponse{Filename: name})
}
