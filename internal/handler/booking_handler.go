package handler

import (
	"net/http"

	"vtc/internal/middleware"
	"vtc/internal/service"
	"vtc/pkg/pagination"
	"vtc/pkg/response"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) RegisterRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/bookings")
	{
		bookings.GET("", middleware.RequirePermission("bookings.read"), h.ListBookings)
		bookings.GET("/:id", middleware.RequirePermission("bookings.read"), h.GetBooking)
		bookings.POST("", middleware.RequirePermission("bookings.write"), h.CreateBooking)
		bookings.PATCH("/:id/status", middleware.RequirePermission("bookings.manage"), h.UpdateStatus)
		bookings.POST("/:id/cancel", middleware.RequirePermission("bookings.write"), h.CancelBooking)
	}
}

// CreateBooking creates a one-way or round-trip booking
// @Summary      Create booking
// @Description  Creates a booking for the authenticated client. A return segment makes it a round trip.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateBookingRequest  true  "Create Booking Payload"
// @Success      201      {object}  response.Response{data=model.Booking}
// @Failure      400      {object}  response.Response
// @Router       /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, booking))
}

// UpdateStatus advances a booking through its lifecycle
// @Summary      Update booking status
// @Description  Applies a status transition; invalid transitions are rejected
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                              true  "Booking ID"
// @Param        payload  body      service.UpdateBookingStatusRequest  true  "Status Payload"
// @Success      200      {object}  response.Response{data=model.Booking}
// @Failure      400      {object}  response.Response
// @Router       /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), c.Param("id"), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}

// CancelBooking cancels a booking from any non-terminal state
// @Summary      Cancel booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  response.Response{data=model.Booking}
// @Failure      400  {object}  response.Response
// @Router       /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	req := service.UpdateBookingStatusRequest{Status: "CANCELLED"}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), c.Param("id"), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}

// GetBooking returns one booking with segments and relations
// @Summary      Get booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  response.Response{data=model.Booking}
// @Failure      404  {object}  response.Response
// @Router       /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}

// ListBookings returns bookings with optional filters
// @Summary      List bookings
// @Description  Clients see their own bookings; staff may filter by client_id and status
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query     string  false  "Filter by client"
// @Param        status     query     string  false  "Filter by status"
// @Param        page       query     int     false  "Page number"
// @Param        limit      query     int     false  "Items per page"
// @Success      200        {object}  response.Response{data=object}
// @Failure      500        {object}  response.Response
// @Router       /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	p := pagination.Parse(c)

	// Clients are always scoped to their own bookings.
	clientID := c.Query("client_id")
	if c.GetString("userRole") == "client" {
		clientID = c.GetString("userID")
	}

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), clientID, c.Query("status"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch bookings"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"total":    total,
		"page":     p.Page,
		"limit":    p.Limit,
	}))
}
