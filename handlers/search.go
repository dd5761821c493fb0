package handlers

import (
	"errors"
	"net/http"

	"servicehub/models"
	"servicehub/services/search"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler exposes the discovery pipeline to the web frontend.
type SearchHandler struct {
	Service search.SearchService
	Logger  *zap.Logger
}

func NewSearchHandler(service search.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{Service: service, Logger: logger}
}

// searchParams is the gateway's query-string contract, mirroring the
// backend's filter names.
type searchParams struct {
	Search       string   `form:"search"`
	Category     string   `form:"category"`
	Location     string   `form:"location"`
	Lat          *float64 `form:"lat"`
	Lon          *float64 `form:"lon"`
	Radius       float64  `form:"radius"`
	PriceMin     *float64 `form:"priceMin"`
	PriceMax     *float64 `form:"priceMax"`
	Rating       float64  `form:"rating"`
	Availability bool     `form:"availability"`
	Verified     bool     `form:"verified"`
	SortBy       string   `form:"sortBy"`
	Page         int      `form:"page"`
	Limit        int      `form:"limit"`
}

func (p searchParams) toIntent() models.SearchIntent {
	return models.SearchIntent{
		Term:          p.Search,
		Category:      p.Category,
		Location:      p.Location,
		Latitude:      p.Lat,
		Longitude:     p.Lon,
		RadiusKm:      p.Radius,
		PriceMin:      p.PriceMin,
		PriceMax:      p.PriceMax,
		MinRating:     p.Rating,
		AvailableOnly: p.Availability,
		VerifiedOnly:  p.Verified,
		Sort:          models.SortKey(p.SortBy),
		Page:          p.Page,
		Limit:         p.Limit,
	}
}

// SearchProvidersHandler handles GET /api/search.
func (h *SearchHandler) SearchProvidersHandler(c *gin.Context) {
	var params searchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid search parameters", err.Error())
		return
	}

	result, err := h.Service.Search(c.Request.Context(), params.toIntent())
	if err != nil {
		h.respondSearchError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExpandSearchHandler handles POST /api/search/:sessionID/expand with a
// body of {"accept": true|false}.
func (h *SearchHandler) ExpandSearchHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Accept bool `json:"accept"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	var (
		result *search.Result
		err    error
	)
	if input.Accept {
		result, err = h.Service.AcceptExpansion(c.Request.Context(), sessionID)
	} else {
		result, err = h.Service.DeclineExpansion(c.Request.Context(), sessionID)
	}
	if err != nil {
		h.respondSearchError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondSearchError maps pipeline failures to an explicit error state,
// never a silently empty result.
func (h *SearchHandler) respondSearchError(c *gin.Context, err error) {
	var se *search.SearchError
	if errors.As(err, &se) {
		switch se.Code {
		case "sessionError":
			utils.JSONError(c, http.StatusNotFound, se.Message, "")
			return
		case "fetchFailed":
			h.Logger.Warn("Search fetch failed", zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "failed to fetch providers", se.Message)
			return
		}
	}
	utils.JSONError(c, http.StatusInternalServerError, "search failed", err.Error())
}
