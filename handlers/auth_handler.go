package handlers

import (
	"phantoms-store/helper"
	"phantoms-store/models"
	"phantoms-store/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h}
}

func sessionMeta(c *gin.Context) services.SessionMeta {
	return services.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req, sessionMeta(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Login success", response)
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req models.GoogleLoginRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.GoogleLogin(c.Request.Context(), req, sessionMeta(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	if response.IsNewUser {
		h.Helper.SendCreated(c, "Account created", response)
		return
	}
	h.Helper.SendSuccess(c, "Login success", response)
}

func (h *AuthHandler) RegisterSeller(c *gin.Context) {
	var req models.RegisterSellerRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.RegisterSeller(c.Request.Context(), req, sessionMeta(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Seller registered", response)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), p); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Logged out", h.Helper.EmptyJsonMap())
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), p)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile loaded", user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	p, ok := principal(c, h.Helper)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), p, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile updated", user)
}
