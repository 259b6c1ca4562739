package image

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photo-editor/internal/pkg/common"
)

// HandleGetFile 處理 GET /uploads/:filename，回傳儲存的原始位元組
func (h *Handler) HandleGetFile(c *gin.Context) {
	name := c.Param("filename")

	f, err := h.store.Open(name)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		common.WriteError(c, common.ErrStorage.WithErr(err))
		return
	}

	http.ServeContent(c.Writer, c.Request, name, info.ModTime(), f)
}
