package handlers

import (
	"phantoms-store/helper"
	"phantoms-store/models"
	"phantoms-store/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService services.PaymentService
	Helper         *helper.HTTPHelper
}

func NewPaymentHandler(paymentService services.PaymentService, h *helper.HTTPHelper) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, Helper: h}
}

func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req models.PaymentRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	resp, err := h.paymentService.ProcessPayment(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, resp.Message, resp)
}

func (h *PaymentHandler) EmiOptions(c *gin.Context) {
	var req models.EmiOptionsRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	plans, err := h.paymentService.EmiOptions(req.Amount)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "EMI options", plans)
}
