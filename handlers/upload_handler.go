package handlers

import (
	"phantoms-store/helper"
	"phantoms-store/models"
	"phantoms-store/services"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService services.UploadService
	Helper        *helper.HTTPHelper
}

func NewUploadHandler(uploadService services.UploadService, h *helper.HTTPHelper) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, Helper: h}
}

func (h *UploadHandler) Presign(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}

	var req models.PresignRequest
	if !h.Helper.BindQuery(c, &req) {
		return
	}

	resp, err := h.uploadService.PresignUpload(c.Request.Context(), p, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Upload URL issued", resp)
}
