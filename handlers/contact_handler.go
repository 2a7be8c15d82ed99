package handlers

import (
	"strconv"

	"phantoms-store/helper"
	"phantoms-store/models"
	"phantoms-store/services"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService services.ContactService
	Helper         *helper.HTTPHelper
}

func NewContactHandler(contactService services.ContactService, h *helper.HTTPHelper) *ContactHandler {
	return &ContactHandler{contactService: contactService, Helper: h}
}

func (h *ContactHandler) CreateMessage(c *gin.Context) {
	var req models.CreateContactMessageRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	msg, err := h.contactService.Submit(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Message received", msg)
}

func (h *ContactHandler) ListMessages(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}

	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))
	messages, err := h.contactService.List(c.Request.Context(), p, unreadOnly)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Messages loaded", messages)
}

func (h *ContactHandler) MarkRead(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}
	id, ok := parseID(c, h.Helper)
	if !ok {
		return
	}

	msg, err := h.contactService.MarkRead(c.Request.Context(), p, id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Message marked as read", msg)
}
