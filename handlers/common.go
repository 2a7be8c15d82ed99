package handlers

import (
	"strconv"

	"phantoms-store/helper"
	"phantoms-store/middleware"
	"phantoms-store/models"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context, h *helper.HTTPHelper) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.SendBadRequest(c, "Invalid ID", h.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}

// principal answers 401 itself when the route was mounted without AuthMiddleware.
func principal(c *gin.Context, h *helper.HTTPHelper) (models.Principal, bool) {
	p := middleware.CurrentPrincipal(c)
	if p == nil {
		h.SendUnauthorizedError(c, "Authentication required", h.EmptyJsonMap())
		return models.Principal{}, false
	}
	return *p, true
}
