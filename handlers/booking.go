package handlers

import (
	"errors"
	"net/http"
	"time"

	"servicehub/api"
	"servicehub/models"
	"servicehub/services/booking"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingHandler exposes availability lookup and booking submission.
type BookingHandler struct {
	Availability booking.AvailabilityService
	Registry     *booking.Registry
	Logger       *zap.Logger
}

func NewBookingHandler(availability booking.AvailabilityService, registry *booking.Registry, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Availability: availability, Registry: registry, Logger: logger}
}

// GetAvailabilityHandler handles
// GET /api/providers/:id/availability?date=YYYY-MM-DD. An empty slot list
// is returned as a 200 "no openings" state, not an error.
func (h *BookingHandler) GetAvailabilityHandler(c *gin.Context) {
	providerID := c.Param("id")
	date := c.Query("date")

	day, err := h.Availability.SlotsFor(c.Request.Context(), providerID, date)
	if err != nil {
		if booking.IsValidation(err) {
			utils.JSONError(c, http.StatusBadRequest, "invalid availability request", err.Error())
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "failed to load availability", "")
		return
	}
	c.JSON(http.StatusOK, day)
}

type createBookingInput struct {
	AttemptID     string    `json:"attemptId"`
	ProviderID    string    `json:"providerId"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	LocationCity  string    `json:"locationCity"`
	LocationState string    `json:"locationState"`
	Notes         string    `json:"notes"`
}

// CreateBookingHandler handles POST /api/bookings. The attemptId ties
// repeated submissions from one UI instance to the same coordinator, which
// enforces the at-most-one-in-flight and terminal guarantees.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking payload", err.Error())
		return
	}
	if input.AttemptID == "" {
		input.AttemptID = uuid.New().String()
	}

	coordinator := h.Registry.For(input.AttemptID)
	record, err := coordinator.Submit(c.Request.Context(), models.BookingRequest{
		ProviderID:    input.ProviderID,
		ScheduledAt:   input.ScheduledAt,
		LocationCity:  input.LocationCity,
		LocationState: input.LocationState,
		Notes:         input.Notes,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"attemptId":    input.AttemptID,
		"booking":      record,
		"confirmation": booking.PresentBooking(*record),
	})
}

func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	if api.IsAuthError(err) {
		utils.JSONError(c, http.StatusUnauthorized, "sign in before booking", "")
		return
	}
	var be *booking.BookingError
	if errors.As(err, &be) {
		switch be.Code {
		case booking.CodeValidation:
			utils.JSONError(c, http.StatusBadRequest, be.Message, "")
		case booking.CodeInFlight, booking.CodeTerminal:
			utils.JSONError(c, http.StatusConflict, be.Message, "")
		case booking.CodeSubmit:
			// Message carries the server's text verbatim when one exists.
			utils.JSONError(c, http.StatusBadGateway, be.Message, "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "booking failed", be.Message)
		}
		return
	}
	h.Logger.Error("Unexpected booking failure", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "booking failed", "")
}
