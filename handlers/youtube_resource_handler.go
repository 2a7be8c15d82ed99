package handlers

import (
	"phantoms-store/helper"
	"phantoms-store/models"
	"phantoms-store/services"

	"github.com/gin-gonic/gin"
)

type YoutubeResourceHandler struct {
	service services.YoutubeResourceService
	Helper  *helper.HTTPHelper
}

func NewYoutubeResourceHandler(service services.YoutubeResourceService, h *helper.HTTPHelper) *YoutubeResourceHandler {
	return &YoutubeResourceHandler{service: service, Helper: h}
}

func (h *YoutubeResourceHandler) list(c *gin.Context, viewer *models.Principal) {
	var params models.ListParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}
	params.Normalize()

	var (
		resources []models.YoutubeResource
		total     int64
		err       error
	)
	ctx := c.Request.Context()
	switch {
	case params.Search != "":
		resources, total, err = h.service.Search(ctx, viewer, params.Search, params)
	case params.Category != "":
		resources, total, err = h.service.ListByCategory(ctx, viewer, params.Category, params)
	default:
		resources, total, err = h.service.List(ctx, viewer, params)
	}
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendList(c, resources, params.Limit, params.Page, total)
}

func (h *YoutubeResourceHandler) GetPublicResources(c *gin.Context) {
	h.list(c, nil)
}

func (h *YoutubeResourceHandler) GetAdminResources(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}
	h.list(c, &p)
}

func (h *YoutubeResourceHandler) GetPublicResource(c *gin.Context) {
	id, ok := parseID(c, h.Helper)
	if !ok {
		return
	}

	resource, err := h.service.Get(c.Request.Context(), nil, id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Resource loaded", resource)
}

func (h *YoutubeResourceHandler) GetAdminResource(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}
	id, ok := parseID(c, h.Helper)
	if !ok {
		return
	}

	resource, err := h.service.Get(c.Request.Context(), &p, id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Resource loaded", resource)
}

func (h *YoutubeResourceHandler) CreateResource(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}

	var req models.CreateYoutubeResourceRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	resource, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Resource created", resource)
}

func (h *YoutubeResourceHandler) UpdateResource(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}
	id, ok := parseID(c, h.Helper)
	if !ok {
		return
	}

	var req models.UpdateYoutubeResourceRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	resource, err := h.service.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Resource updated", resource)
}

func (h *YoutubeResourceHandler) DeleteResource(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}
	id, ok := parseID(c, h.Helper)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, id); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Resource deleted", h.Helper.EmptyJsonMap())
}
