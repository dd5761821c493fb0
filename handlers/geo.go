package handlers

import (
	"net/http"

	"servicehub/models"
	"servicehub/services/geo"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GeoHandler exposes geolocation resolution to the frontend.
type GeoHandler struct {
	Service geo.GeoService
	// Source receives frontend-reported positions so later bounded-wait
	// resolutions can use them. Optional.
	Source *geo.PushSource
	Logger *zap.Logger
}

func NewGeoHandler(service geo.GeoService, source *geo.PushSource, logger *zap.Logger) *GeoHandler {
	return &GeoHandler{Service: service, Source: source, Logger: logger}
}

type locateInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// LocateHandler handles POST /api/geo/locate. With coordinates in the body
// it reverse-geocodes them directly; without, it waits (bounded) for a
// position from the source. Either way the response is a usable location
// state, detected or not.
func (h *GeoHandler) LocateHandler(c *gin.Context) {
	var input locateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if input.Latitude != nil && input.Longitude != nil {
		coords := models.Coordinates{Latitude: *input.Latitude, Longitude: *input.Longitude}
		if h.Source != nil {
			h.Source.Push(coords)
		}
		c.JSON(http.StatusOK, h.Service.Locate(c.Request.Context(), coords))
		return
	}

	loc := h.Service.Resolve(c.Request.Context())
	if !loc.Detected {
		h.Logger.Debug("Location not detected; manual search remains available")
	}
	c.JSON(http.StatusOK, loc)
}
