package handlers

import (
	"net/http"

	"glowbook/middleware"
	"glowbook/models"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking manager at the UI boundary.
type BookingHandler struct {
	Registry *ManagerRegistry
}

func NewBookingHandler(registry *ManagerRegistry) *BookingHandler {
	return &BookingHandler{Registry: registry}
}

// ListBookings returns all bookings where the session user is the client
// or the counterparty business. Gateway failures degrade to the cached
// list rather than an error response.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}

	mgr := h.Registry.BookingFor(sess.UserID)
	bookings := mgr.FetchBookings(c.Request.Context(), sess.UserID)
	c.JSON(http.StatusOK, gin.H{
		"bookings":   bookings,
		"generation": mgr.Generation(),
	})
}

// CreateBooking books an appointment for the session user. The booking
// always starts out pending whatever status the payload carries.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	bk, err := h.Registry.BookingFor(sess.UserID).CreateBooking(c.Request.Context(), sess.UserID, input)
	if err != nil {
		respondError(c, "failed to create booking", err)
		return
	}
	c.JSON(http.StatusCreated, bk)
}

// UpdateBookingStatus transitions a booking through its state machine.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	bk, err := h.Registry.BookingFor(sess.UserID).UpdateBookingStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondError(c, "failed to update booking status", err)
		return
	}
	c.JSON(http.StatusOK, bk)
}

// CancelBooking cancels a pending or confirmed booking.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}

	bk, err := h.Registry.BookingFor(sess.UserID).CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to cancel booking", err)
		return
	}
	c.JSON(http.StatusOK, bk)
}
