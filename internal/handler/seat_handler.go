package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mannar-express/service-seats/internal/application"
	"github.com/mannar-express/service-seats/internal/domain/route"
	"github.com/mannar-express/service-seats/internal/response"
)

// SeatHandler handles HTTP requests for seat operations.
type SeatHandler struct {
	service          *application.SeatService
	defaultSeatCount int
}

// NewSeatHandler creates a new SeatHandler.
func NewSeatHandler(service *application.SeatService, defaultSeatCount int) *SeatHandler {
	return &SeatHandler{service: service, defaultSeatCount: defaultSeatCount}
}

// RegisterRoutes registers all seat routes on the given router group.
func (h *SeatHandler) RegisterRoutes(r *gin.RouterGroup) {
	seats := r.Group("/api/seats")
	{
		seats.POST("/initialize", h.Initialize)
		seats.GET("", h.ListSeats)
		seats.POST("/:id/book", h.Book)
		seats.PUT("/:id/update", h.Update)
		seats.DELETE("/:id/cancel", h.Cancel)
		seats.PATCH("/:id/pickup", h.Pickup)
	}
}

// Initialize handles POST /api/seats/initialize. It ensures a seat-set exists
// for both routes on the target date; with force=true the layout is migrated
// to the requested seat count.
func (h *SeatHandler) Initialize(c *gin.Context) {
	date, err := application.ResolveDate(c.Query("date"))
	if err != nil {
		response.Error(c, "Error initializing seats", err)
		return
	}

	seatCount := h.defaultSeatCount
	if raw := c.Query("seatCount"); raw != "" {
		seatCount, err = strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "seatCount must be an integer")
			return
		}
	}

	force := false
	if raw := c.Query("force"); raw != "" {
		force, err = strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "force must be a boolean value")
			return
		}
	}

	initialized, err := h.service.InitializeRoutes(c.Request.Context(), date, seatCount, force)
	if err != nil {
		response.Error(c, "Error initializing seats", err)
		return
	}

	response.OK(c, fmt.Sprintf("Seats initialized successfully for %d route(s) on %s", initialized, date), nil)
}

// ListSeats handles GET /api/seats.
func (h *SeatHandler) ListSeats(c *gin.Context) {
	date, err := application.ResolveDate(c.Query("date"))
	if err != nil {
		response.Error(c, "Error fetching seats", err)
		return
	}

	seats, err := h.service.ListSeats(c.Request.Context(), route.Route(c.Query("route")), date)
	if err != nil {
		response.Error(c, "Error fetching seats", err)
		return
	}

	response.List(c, seats)
}

// Book handles POST /api/seats/:id/book.
func (h *SeatHandler) Book(c *gin.Context) {
	seatID, ok := parseSeatID(c)
	if !ok {
		return
	}

	var req application.PassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Book(c.Request.Context(), seatID, req)
	if err != nil {
		response.Error(c, "Error booking seat", err)
		return
	}

	response.OK(c, "Seat booked successfully", result)
}

// Update handles PUT /api/seats/:id/update.
func (h *SeatHandler) Update(c *gin.Context) {
	seatID, ok := parseSeatID(c)
	if !ok {
		return
	}

	var req application.PassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.UpdatePassenger(c.Request.Context(), seatID, req)
	if err != nil {
		response.Error(c, "Error updating passenger information", err)
		return
	}

	response.OK(c, "Passenger information updated successfully", result)
}

// Cancel handles DELETE /api/seats/:id/cancel.
func (h *SeatHandler) Cancel(c *gin.Context) {
	seatID, ok := parseSeatID(c)
	if !ok {
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), seatID)
	if err != nil {
		response.Error(c, "Error cancelling booking", err)
		return
	}

	response.OK(c, "Booking cancelled successfully", result)
}

// Pickup handles PATCH /api/seats/:id/pickup.
func (h *SeatHandler) Pickup(c *gin.Context) {
	seatID, ok := parseSeatID(c)
	if !ok {
		return
	}

	var body struct {
		IsPickedUp *bool `json:"isPickedUp"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.IsPickedUp == nil {
		response.BadRequest(c, "isPickedUp must be a boolean value")
		return
	}

	result, err := h.service.SetPickup(c.Request.Context(), seatID, *body.IsPickedUp)
	if err != nil {
		response.Error(c, "Error updating pickup status", err)
		return
	}

	message := "Passenger marked as waiting"
	if *body.IsPickedUp {
		message = "Passenger marked as picked up"
	}
	response.OK(c, message, result)
}

func parseSeatID(c *gin.Context) (uuid.UUID, bool) {
	seatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid seat ID")
		return uuid.Nil, false
	}
	return seatID, true
}
