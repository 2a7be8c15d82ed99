package handlers

import (
	"phantoms-store/helper"
	"phantoms-store/models"
	"phantoms-store/services"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService services.ChatService
	Helper      *helper.HTTPHelper
}

func NewChatHandler(chatService services.ChatService, h *helper.HTTPHelper) *ChatHandler {
	return &ChatHandler{chatService: chatService, Helper: h}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	h.Helper.SendSuccess(c, "", h.chatService.Reply(c.Request.Context(), req))
}
