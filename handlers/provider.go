package handlers

import (
	"net/http"

	"servicehub/api"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler serves the provider detail page.
type ProviderHandler struct {
	API    api.ProviderAPI
	Logger *zap.Logger
}

func NewProviderHandler(providerAPI api.ProviderAPI, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{API: providerAPI, Logger: logger}
}

// GetProviderProfileHandler handles GET /api/providers/:id.
func (h *ProviderHandler) GetProviderProfileHandler(c *gin.Context) {
	id := c.Param("id")
	profile, err := h.API.GetProfile(c.Request.Context(), id)
	if err != nil {
		if api.IsNetworkError(err) {
			utils.JSONError(c, http.StatusBadGateway, "failed to load provider", "")
			return
		}
		utils.JSONError(c, http.StatusNotFound, "provider not found", "")
		return
	}
	c.JSON(http.StatusOK, profile)
}
